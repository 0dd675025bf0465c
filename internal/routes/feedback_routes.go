package routes

import (
	"github.com/gin-gonic/gin"

	"smart_health/internal/controllers"
	"smart_health/internal/middleware"
	"smart_health/internal/models"
)

func FeedbackRoutes(api *gin.RouterGroup) {
	api.POST("/feedback", middleware.RequireAuth(), controllers.SubmitFeedback)
	api.GET("/feedback", middleware.RequireRole(models.RoleAdmin), controllers.ListFeedback)
}
