package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/storage"
	"dangnyang_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const maxImageSize = 5 << 20 // 5 MB

var (
	imageExtensions   = map[string]string{".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png"}
	licenseExtensions = map[string]string{".pdf": "application/pdf", ".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png"}
)

type UploadService interface {
	UploadProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.ProfileImageResponse, error)
	DeleteProfileImage(ctx context.Context, userID string) error
	UploadShelterLicense(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.ShelterDTO, error)
	UploadShelterImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]dto.ShelterImageDTO, error)
	DeleteShelterImage(ctx context.Context, userID, imageID string) error
	UploadRecruitmentImages(ctx context.Context, userID, recruitmentID string, files []*multipart.FileHeader) ([]dto.RecruitmentImageDTO, error)
	DeleteRecruitmentImage(ctx context.Context, userID, recruitmentID, imageID string) error
}

type UploadServiceImpl struct {
	store           storage.Storage
	userRepo        repositories.UserRepository
	shelterRepo     repositories.ShelterRepository
	recruitmentRepo repositories.RecruitmentRepository
}

func NewUploadService(
	store storage.Storage,
	userRepo repositories.UserRepository,
	shelterRepo repositories.ShelterRepository,
	recruitmentRepo repositories.RecruitmentRepository,
) UploadService {
	return &UploadServiceImpl{
		store:           store,
		userRepo:        userRepo,
		shelterRepo:     shelterRepo,
		recruitmentRepo: recruitmentRepo,
	}
}

func (s *UploadServiceImpl) UploadProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.ProfileImageResponse, error) {
	contentType, err := checkFile(file, imageExtensions, maxImageSize)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	url, err := s.saveFile(ctx, "users", userID, file, contentType)
	if err != nil {
		return nil, err
	}

	// Replace before delete so a failed cleanup never loses the new image.
	old := user.ProfileImage
	if err := s.userRepo.UpdateProfileImage(userID, url); err != nil {
		return nil, apperrors.InternalError(err)
	}
	s.removeStored(ctx, old)

	return &dto.ProfileImageResponse{ProfileImage: url}, nil
}

func (s *UploadServiceImpl) DeleteProfileImage(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, "user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	if user.ProfileImage == "" {
		return apperrors.ErrNotFound(nil, "upload", "No profile image to delete")
	}

	if err := s.userRepo.UpdateProfileImage(userID, ""); err != nil {
		return apperrors.InternalError(err)
	}
	s.removeStored(ctx, user.ProfileImage)
	return nil
}

func (s *UploadServiceImpl) UploadShelterLicense(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.ShelterDTO, error) {
	contentType, err := checkFile(file, licenseExtensions, maxImageSize)
	if err != nil {
		return nil, err
	}

	shelter, err := s.findOwnShelter(userID)
	if err != nil {
		return nil, err
	}

	url, err := s.saveFile(ctx, "licenses", shelter.ID, file, contentType)
	if err != nil {
		return nil, err
	}

	old := shelter.BusinessLicenseFile
	if err := s.shelterRepo.UpdateLicenseFile(shelter.ID, url); err != nil {
		return nil, apperrors.InternalError(err)
	}
	s.removeStored(ctx, old)

	shelter.BusinessLicenseFile = url
	result := dto.NewShelterDTO(shelter)
	return &result, nil
}

func (s *UploadServiceImpl) UploadShelterImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]dto.ShelterImageDTO, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("At least one image file is required")
	}

	// Validate every file before touching storage.
	contentTypes := make([]string, len(files))
	for i, file := range files {
		contentType, err := checkFile(file, imageExtensions, maxImageSize)
		if err != nil {
			return nil, err
		}
		contentTypes[i] = contentType
	}

	shelter, err := s.findOwnShelter(userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ShelterImageDTO, 0, len(files))
	for i, file := range files {
		url, err := s.saveFile(ctx, "shelters", shelter.ID, file, contentTypes[i])
		if err != nil {
			return nil, err
		}
		image := &models.ShelterImage{ShelterID: shelter.ID, ImageURL: url}
		if err := s.shelterRepo.AddImage(image); err != nil {
			return nil, apperrors.InternalError(err)
		}
		result = append(result, dto.ShelterImageDTO{ID: image.ID, ImageURL: image.ImageURL})
	}
	return result, nil
}

func (s *UploadServiceImpl) DeleteShelterImage(ctx context.Context, userID, imageID string) error {
	shelter, err := s.findOwnShelter(userID)
	if err != nil {
		return err
	}

	image, err := s.shelterRepo.FindImage(imageID)
	if err != nil {
		if errors.Is(err, repositories.ErrShelterNotFound) {
			return apperrors.ErrNotFound(err, "upload", "Image not found")
		}
		return apperrors.InternalError(err)
	}
	if image.ShelterID != shelter.ID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.shelterRepo.DeleteImage(imageID); err != nil {
		return apperrors.InternalError(err)
	}
	s.removeStored(ctx, image.ImageURL)
	return nil
}

func (s *UploadServiceImpl) UploadRecruitmentImages(ctx context.Context, userID, recruitmentID string, files []*multipart.FileHeader) ([]dto.RecruitmentImageDTO, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("At least one image file is required")
	}

	contentTypes := make([]string, len(files))
	for i, file := range files {
		contentType, err := checkFile(file, imageExtensions, maxImageSize)
		if err != nil {
			return nil, err
		}
		contentTypes[i] = contentType
	}

	recruitment, err := s.findOwnRecruitment(userID, recruitmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RecruitmentImageDTO, 0, len(files))
	for i, file := range files {
		url, err := s.saveFile(ctx, "recruitments", recruitment.ID, file, contentTypes[i])
		if err != nil {
			return nil, err
		}
		image := &models.RecruitmentImage{RecruitmentID: recruitment.ID, ImageURL: url}
		if err := s.recruitmentRepo.AddImage(image); err != nil {
			return nil, apperrors.InternalError(err)
		}
		result = append(result, dto.RecruitmentImageDTO{ID: image.ID, ImageURL: image.ImageURL})
	}
	return result, nil
}

func (s *UploadServiceImpl) DeleteRecruitmentImage(ctx context.Context, userID, recruitmentID, imageID string) error {
	if _, err := s.findOwnRecruitment(userID, recruitmentID); err != nil {
		return err
	}

	image, err := s.recruitmentRepo.FindImage(imageID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecruitmentNotFound) {
			return apperrors.ErrNotFound(err, "upload", "Image not found")
		}
		return apperrors.InternalError(err)
	}
	if image.RecruitmentID != recruitmentID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.recruitmentRepo.DeleteImage(imageID); err != nil {
		return apperrors.InternalError(err)
	}
	s.removeStored(ctx, image.ImageURL)
	return nil
}

// --- helpers ---

// checkFile enforces the extension whitelist and size limit, returning
// the content type to store.
func checkFile(file *multipart.FileHeader, allowed map[string]string, maxSize int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowed[ext]
	if !ok {
		return "", apperrors.ErrInvalidFileExtension
	}
	if file.Size > maxSize {
		return "", apperrors.ErrFileTooLarge
	}
	return contentType, nil
}

// saveFile stores the upload under {entity}/{ownerID}/{uuid}_{name} and
// returns the public URL.
func (s *UploadServiceImpl) saveFile(ctx context.Context, entity, ownerID string, file *multipart.FileHeader, contentType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	base := filepath.Base(file.Filename)
	key := fmt.Sprintf("%s/%s/%s_%s", entity, ownerID, uuid.NewString(), base)
	if err := s.store.Save(ctx, key, src, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	return s.store.GetURL(key), nil
}

// removeStored deletes the object behind a previously issued URL. A
// failure is logged, not surfaced: the database is already consistent.
func (s *UploadServiceImpl) removeStored(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key, ok := s.store.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.CtxWarn(ctx, "failed to delete stored file", "key", key, "error", err)
	}
}

func (s *UploadServiceImpl) findOwnShelter(userID string) (*models.Shelter, error) {
	shelter, err := s.shelterRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrShelterNotFound) {
			return nil, apperrors.ErrNotFound(err, "shelter", "No shelter registered for this account")
		}
		return nil, apperrors.InternalError(err)
	}
	return shelter, nil
}

func (s *UploadServiceImpl) findOwnRecruitment(userID, recruitmentID string) (*models.Recruitment, error) {
	recruitment, err := s.recruitmentRepo.FindByID(recruitmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecruitmentNotFound) {
			return nil, apperrors.ErrNotFound(err, "recruitment", "Recruitment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	shelter, err := s.findOwnShelter(userID)
	if err != nil {
		return nil, err
	}
	if recruitment.ShelterID != shelter.ID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return recruitment, nil
}
