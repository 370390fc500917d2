package bracket

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	brackets := r.Group("/brackets/:kind")
	{
		brackets.GET("", handler.GetAll)
		brackets.GET("/match", handler.Match)
		brackets.GET("/overlap", handler.ValidateOverlap)
		brackets.GET("/:id", handler.GetByID)
		brackets.POST("", handler.Create)
		brackets.PUT("/:id", handler.Update)
		brackets.DELETE("/:id", handler.Deactivate)
	}
}
