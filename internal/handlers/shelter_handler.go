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

type ShelterHandler struct {
	*BaseHandler
	shelterService services.ShelterService
	uploadService  services.UploadService
}

func NewShelterHandler(base *BaseHandler, shelterService services.ShelterService, uploadService services.UploadService) *ShelterHandler {
	return &ShelterHandler{
		BaseHandler:    base,
		shelterService: shelterService,
		uploadService:  uploadService,
	}
}

func (h *ShelterHandler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	shelters := r.Group("/shelters")
	{
		shelters.GET("", h.List)
		shelters.GET("/search", h.Search)

		admin := shelters.Group("/me")
		admin.Use(authMW.Handle(), authMW.RequireUserType(models.UserTypeShelterAdmin))
		{
			admin.GET("", h.GetMine)
			admin.PATCH("", h.UpdateMine)
			admin.POST("/license", h.UploadLicense)
			admin.POST("/images", h.UploadImages)
			admin.DELETE("/images/:imageId", h.DeleteImage)
		}

		shelters.GET("/:shelterId", h.GetByID)
		shelters.GET("/:shelterId/images", h.ListImages)
	}
}

func (h *ShelterHandler) List(c *gin.Context) {
	shelters, err := h.shelterService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shelters": shelters, "total": len(shelters)})
}

func (h *ShelterHandler) Search(c *gin.Context) {
	var query dto.ShelterSearchQuery
	if !h.BindQuery(c, &query) {
		return
	}

	shelters, err := h.shelterService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shelters": shelters, "total": len(shelters)})
}

func (h *ShelterHandler) GetByID(c *gin.Context) {
	shelter, err := h.shelterService.GetByID(c.Request.Context(), c.Param("shelterId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shelter)
}

func (h *ShelterHandler) ListImages(c *gin.Context) {
	images, err := h.shelterService.ListImages(c.Request.Context(), c.Param("shelterId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "total": len(images)})
}

func (h *ShelterHandler) GetMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	shelter, err := h.shelterService.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shelter)
}

func (h *ShelterHandler) UpdateMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateShelterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	shelter, err := h.shelterService.UpdateMine(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shelter)
}

func (h *ShelterHandler) UploadLicense(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("A license file is required"))
		return
	}

	shelter, err := h.uploadService.UploadShelterLicense(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shelter)
}

func (h *ShelterHandler) UploadImages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("A multipart form with image files is required"))
		return
	}

	images, err := h.uploadService.UploadShelterImages(c.Request.Context(), userID, form.File["images"])
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"images": images})
}

func (h *ShelterHandler) DeleteImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.DeleteShelterImage(c.Request.Context(), userID, c.Param("imageId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
