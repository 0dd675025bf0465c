package routes

import (
	"github.com/gin-gonic/gin"

	"smart_health/internal/controllers"
	"smart_health/internal/middleware"
	"smart_health/internal/models"
)

func AdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/patients", controllers.ListPatients)
		admin.GET("/stats", controllers.Stats)
	}
}
