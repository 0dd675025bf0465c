package routes

import (
	"github.com/gin-gonic/gin"

	"smart_health/internal/controllers"
	"smart_health/internal/middleware"
	"smart_health/internal/models"
)

func DoctorRoutes(api *gin.RouterGroup) {
	// Public directory of approved doctors.
	api.GET("/doctors/approved", controllers.ListApprovedDoctors)

	doctors := api.Group("/doctors")
	doctors.Use(middleware.RequireRole(models.RoleAdmin))
	{
		doctors.GET("", controllers.ListDoctors)
		doctors.POST("", controllers.CreateDoctor)
		doctors.PUT("/:id/status", controllers.SetDoctorStatus)
		doctors.DELETE("/:id", controllers.DeleteDoctor)
	}
}
