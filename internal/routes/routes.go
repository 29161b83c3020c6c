package routes

import (
	"net/http"

	"dangnyang_backend/internal/handlers"
	"dangnyang_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Setup registers every route under /api.
func Setup(router *gin.Engine, h *handlers.AppHandlers, authMW *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	h.AuthHandler.RegisterRoutes(api, authMW)
	h.UserHandler.RegisterRoutes(api, authMW)
	h.ShelterHandler.RegisterRoutes(api, authMW)
	h.RecruitmentHandler.RegisterRoutes(api, authMW)
	h.ApplicationHandler.RegisterRoutes(api, authMW)
	h.HistoryHandler.RegisterRoutes(api, authMW)
}
