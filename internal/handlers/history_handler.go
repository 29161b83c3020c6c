package handlers

import (
	"net/http"

	"dangnyang_backend/internal/middleware"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/services"
	"dangnyang_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	*BaseHandler
	historyService services.HistoryService
}

func NewHistoryHandler(base *BaseHandler, historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler:    base,
		historyService: historyService,
	}
}

func (h *HistoryHandler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	histories := r.Group("/histories")
	histories.Use(authMW.Handle(), authMW.RequireUserType(models.UserTypeVolunteer))
	{
		histories.GET("/my", h.ListMine)
		histories.PATCH("/:historyId/rate", h.Rate)
	}
}

func (h *HistoryHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	histories, err := h.historyService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"histories": histories, "total": len(histories)})
}

func (h *HistoryHandler) Rate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RateHistoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	history, err := h.historyService.Rate(c.Request.Context(), userID, c.Param("historyId"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
