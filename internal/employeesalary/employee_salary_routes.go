package employeesalary

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	salaries := r.Group("/salaries")
	{
		salaries.GET("/:employee_id", middleware.RateLimitByIP(2, 5), handler.GetByEmployee)
		salaries.POST("", middleware.RateLimitByIP(1, 2), handler.Create)
	}
}
