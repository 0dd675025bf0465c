package routes

import (
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"smart_health/internal/middleware"
)

// SetupRouter wires every route group under the /api prefix.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(ginlog.SetLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	api := r.Group("/api")
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Smart Health Disease Prediction System API", "status": "active"})
	})

	AuthRoutes(api)
	DoctorRoutes(api)
	PredictionRoutes(api)
	FeedbackRoutes(api)
	AdminRoutes(api)

	return r
}
