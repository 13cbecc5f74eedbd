package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gleviosaa/expireTrack/internal/api"
	"github.com/gleviosaa/expireTrack/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	productHandler *api.ProductHandler,
	mealHandler *api.MealHandler,
	uploadHandler *api.UploadHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	productHandler.RegisterRoutes(v1)
	mealHandler.RegisterRoutes(v1)
	uploadHandler.RegisterRoutes(v1)

	return router
}
