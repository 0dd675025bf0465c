package routes

import (
	"github.com/gin-gonic/gin"

	"smart_health/internal/controllers"
	"smart_health/internal/middleware"
)

func PredictionRoutes(api *gin.RouterGroup) {
	api.POST("/predict", middleware.RequireAuth(), controllers.Predict)
	api.GET("/predictions", middleware.RequireAuth(), controllers.ListPredictions)
	api.DELETE("/predictions/:ref", middleware.RequireAuth(), controllers.DeletePrediction)
}
