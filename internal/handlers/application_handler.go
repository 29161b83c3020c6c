package handlers

import (
	"context"
	"net/http"

	"dangnyang_backend/internal/middleware"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/services"
	"dangnyang_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	applications := r.Group("/applications")
	applications.Use(authMW.Handle())
	{
		// Volunteer routes
		volunteerOnly := authMW.RequireUserType(models.UserTypeVolunteer)
		applications.POST("", volunteerOnly, h.Apply)
		applications.GET("/my", volunteerOnly, h.ListMine)
		applications.GET("/:applicationId", volunteerOnly, h.GetMine)
		applications.DELETE("/:applicationId", volunteerOnly, h.CancelMine)

		// Shelter admin routes
		adminOnly := authMW.RequireUserType(models.UserTypeShelterAdmin)
		applications.PATCH("/:applicationId/approved", adminOnly, h.Approve)
		applications.PATCH("/:applicationId/rejected", adminOnly, h.Reject)
		applications.PATCH("/:applicationId/attended", adminOnly, h.MarkAttended)
		applications.PATCH("/:applicationId/absence", adminOnly, h.MarkAbsence)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications, "total": len(applications)})
}

func (h *ApplicationHandler) GetMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.GetMine(c.Request.Context(), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) CancelMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.applicationService.CancelMine(c.Request.Context(), userID, c.Param("applicationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application cancelled"})
}

func (h *ApplicationHandler) Approve(c *gin.Context) {
	h.transition(c, h.applicationService.Approve)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectApplicationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Reject(c.Request.Context(), userID, c.Param("applicationId"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) MarkAttended(c *gin.Context) {
	h.transition(c, h.applicationService.MarkAttended)
}

func (h *ApplicationHandler) MarkAbsence(c *gin.Context) {
	h.transition(c, h.applicationService.MarkAbsence)
}

func (h *ApplicationHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error),
) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := fn(c.Request.Context(), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
