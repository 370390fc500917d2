package absence

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	absences := r.Group("/absences")
	{
		absences.POST("", middleware.RateLimitByIP(2, 5), h.Record)
		absences.GET("/:employee_id/:year/:month", h.Get)
	}
}
