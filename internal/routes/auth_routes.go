package routes

import (
	"github.com/gin-gonic/gin"

	"smart_health/internal/controllers"
	"smart_health/internal/middleware"
)

func AuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.LoginRateLimit(), controllers.Signup)
		auth.POST("/login", middleware.LoginRateLimit(), controllers.Login)
		auth.GET("/me", middleware.RequireAuth(), controllers.Me)
		auth.POST("/change-password", middleware.RequireAuth(), controllers.ChangePassword)
	}
}
