package handlers

import (
	"net/http"

	"dangnyang_backend/internal/middleware"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/services"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type RecruitmentHandler struct {
	*BaseHandler
	recruitmentService services.RecruitmentService
	applicationService services.ApplicationService
	uploadService      services.UploadService
}

func NewRecruitmentHandler(
	base *BaseHandler,
	recruitmentService services.RecruitmentService,
	applicationService services.ApplicationService,
	uploadService services.UploadService,
) *RecruitmentHandler {
	return &RecruitmentHandler{
		BaseHandler:        base,
		recruitmentService: recruitmentService,
		applicationService: applicationService,
		uploadService:      uploadService,
	}
}

func (h *RecruitmentHandler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	recruitments := r.Group("/recruitments")
	{
		recruitments.GET("", h.List)
		recruitments.GET("/search", h.Search)

		adminOnly := authMW.RequireUserType(models.UserTypeShelterAdmin)
		recruitments.GET("/me", authMW.Handle(), adminOnly, h.ListMine)
		recruitments.POST("", authMW.Handle(), adminOnly, h.Create)
		recruitments.PATCH("/:recruitmentId", authMW.Handle(), adminOnly, h.Update)
		recruitments.GET("/:recruitmentId/applicants", authMW.Handle(), adminOnly, h.ListApplicants)
		recruitments.POST("/:recruitmentId/images", authMW.Handle(), adminOnly, h.UploadImages)
		recruitments.DELETE("/:recruitmentId/images/:imageId", authMW.Handle(), adminOnly, h.DeleteImage)

		recruitments.GET("/:recruitmentId", h.GetByID)
		recruitments.GET("/:recruitmentId/images", h.ListImages)
	}
}

func (h *RecruitmentHandler) List(c *gin.Context) {
	recruitments, err := h.recruitmentService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recruitments": recruitments, "total": len(recruitments)})
}

func (h *RecruitmentHandler) Search(c *gin.Context) {
	var query dto.RecruitmentSearchQuery
	if !h.BindQuery(c, &query) {
		return
	}

	recruitments, err := h.recruitmentService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recruitments": recruitments, "total": len(recruitments)})
}

func (h *RecruitmentHandler) GetByID(c *gin.Context) {
	recruitment, err := h.recruitmentService.GetByID(c.Request.Context(), c.Param("recruitmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recruitment)
}

func (h *RecruitmentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRecruitmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	recruitment, err := h.recruitmentService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recruitment)
}

func (h *RecruitmentHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRecruitmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	recruitment, err := h.recruitmentService.Update(c.Request.Context(), userID, c.Param("recruitmentId"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recruitment)
}

func (h *RecruitmentHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	recruitments, err := h.recruitmentService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recruitments": recruitments, "total": len(recruitments)})
}

func (h *RecruitmentHandler) ListImages(c *gin.Context) {
	images, err := h.recruitmentService.ListImages(c.Request.Context(), c.Param("recruitmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "total": len(images)})
}

func (h *RecruitmentHandler) ListApplicants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicants, err := h.applicationService.ListApplicants(c.Request.Context(), userID, c.Param("recruitmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicants": applicants, "total": len(applicants)})
}

func (h *RecruitmentHandler) UploadImages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("A multipart form with image files is required"))
		return
	}

	images, err := h.uploadService.UploadRecruitmentImages(
		c.Request.Context(), userID, c.Param("recruitmentId"), form.File["images"])
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"images": images})
}

func (h *RecruitmentHandler) DeleteImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.uploadService.DeleteRecruitmentImage(
		c.Request.Context(), userID, c.Param("recruitmentId"), c.Param("imageId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
