package services

import (
	"context"
	"errors"

	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"
)

type ShelterService interface {
	List(ctx context.Context) ([]dto.ShelterDTO, error)
	GetByID(ctx context.Context, id string) (*dto.ShelterDTO, error)
	// Search returns matching shelters; an empty result is a not-found
	// error.
	Search(ctx context.Context, query dto.ShelterSearchQuery) ([]dto.ShelterDTO, error)
	ListImages(ctx context.Context, shelterID string) ([]dto.ShelterImageDTO, error)
	GetMine(ctx context.Context, userID string) (*dto.ShelterDTO, error)
	UpdateMine(ctx context.Context, userID string, req dto.UpdateShelterRequest) (*dto.ShelterDTO, error)
}

type ShelterServiceImpl struct {
	shelterRepo repositories.ShelterRepository
	validator   *validator.Validator
}

func NewShelterService(shelterRepo repositories.ShelterRepository, v *validator.Validator) ShelterService {
	return &ShelterServiceImpl{shelterRepo: shelterRepo, validator: v}
}

func (s *ShelterServiceImpl) List(ctx context.Context) ([]dto.ShelterDTO, error) {
	shelters, err := s.shelterRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapShelters(shelters), nil
}

func (s *ShelterServiceImpl) GetByID(ctx context.Context, id string) (*dto.ShelterDTO, error) {
	shelter, err := s.shelterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrShelterNotFound) {
			return nil, apperrors.ErrNotFound(err, "shelter", "Shelter not found")
		}
		return nil, apperrors.InternalError(err)
	}
	result := dto.NewShelterDTO(shelter)
	return &result, nil
}

func (s *ShelterServiceImpl) Search(ctx context.Context, query dto.ShelterSearchQuery) ([]dto.ShelterDTO, error) {
	if err := s.validator.Validate(query); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return nil, apperrors.ValidationError(verr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	shelters, err := s.shelterRepo.Search(repositories.ShelterFilter{
		Name:    query.Name,
		Region:  query.Region,
		Address: query.Address,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(shelters) == 0 {
		return nil, apperrors.ErrNotFound(nil, "shelter", "No shelters match the search")
	}
	return mapShelters(shelters), nil
}

func (s *ShelterServiceImpl) ListImages(ctx context.Context, shelterID string) ([]dto.ShelterImageDTO, error) {
	shelter, err := s.GetByID(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	return shelter.Images, nil
}

func (s *ShelterServiceImpl) GetMine(ctx context.Context, userID string) (*dto.ShelterDTO, error) {
	shelter, err := s.findOwn(userID)
	if err != nil {
		return nil, err
	}
	result := dto.NewShelterDTO(shelter)
	return &result, nil
}

func (s *ShelterServiceImpl) UpdateMine(ctx context.Context, userID string, req dto.UpdateShelterRequest) (*dto.ShelterDTO, error) {
	if err := s.validator.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return nil, apperrors.ValidationError(verr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	shelter, err := s.findOwn(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shelter.Name = *req.Name
	}
	if req.Address != nil {
		shelter.Address = *req.Address
	}
	if req.Region != nil {
		shelter.Region = *req.Region
	}
	if req.ShelterType != nil {
		shelter.ShelterType = models.ShelterType(*req.ShelterType)
	}
	if req.ContactNumber != nil {
		shelter.ContactNumber = *req.ContactNumber
	}

	if err := s.shelterRepo.Update(shelter); err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := dto.NewShelterDTO(shelter)
	return &result, nil
}

func (s *ShelterServiceImpl) findOwn(userID string) (*models.Shelter, error) {
	shelter, err := s.shelterRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrShelterNotFound) {
			return nil, apperrors.ErrNotFound(err, "shelter", "No shelter registered for this account")
		}
		return nil, apperrors.InternalError(err)
	}
	return shelter, nil
}

func mapShelters(shelters []models.Shelter) []dto.ShelterDTO {
	result := make([]dto.ShelterDTO, 0, len(shelters))
	for i := range shelters {
		result = append(result, dto.NewShelterDTO(&shelters[i]))
	}
	return result
}
