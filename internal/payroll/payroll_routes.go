package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", handler.GetAll)
		payrolls.GET("/preview", middleware.RateLimitByIP(1, 2), handler.Preview)
		payrolls.GET("/calculate/:employee_id", handler.Calculate)
		payrolls.GET("/:employee_id/:year/:month", handler.GetSnapshot)
		payrolls.POST("/generate", middleware.RateLimitByIP(0.2, 1), middleware.Idempotency(redisClient), handler.Generate)
		payrolls.POST("/generate/async", middleware.RateLimitByIP(1, 3), middleware.Idempotency(redisClient), handler.GenerateAsync)
	}
}
