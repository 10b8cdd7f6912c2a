package routes

import (
	"net/http"

	"gatherly_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.EventHandler.RegisterRoutes(api)
		appHandlers.GuestHandler.RegisterRoutes(api)
		appHandlers.BookingHandler.RegisterRoutes(api)
		appHandlers.ProviderHandler.RegisterRoutes(api)
	}
}
