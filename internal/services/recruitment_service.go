package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

const maxSearchRegions = 3

type RecruitmentService interface {
	List(ctx context.Context) ([]dto.RecruitmentDTO, error)
	GetByID(ctx context.Context, id string) (*dto.RecruitmentDTO, error)
	// Search returns matching recruitments; an empty result is a
	// not-found error.
	Search(ctx context.Context, query dto.RecruitmentSearchQuery) ([]dto.RecruitmentDTO, error)
	ListImages(ctx context.Context, recruitmentID string) ([]dto.RecruitmentImageDTO, error)
	Create(ctx context.Context, userID string, req dto.CreateRecruitmentRequest) (*dto.RecruitmentDTO, error)
	Update(ctx context.Context, userID, recruitmentID string, req dto.UpdateRecruitmentRequest) (*dto.RecruitmentDTO, error)
	ListMine(ctx context.Context, userID string) ([]dto.RecruitmentDTO, error)
}

type RecruitmentServiceImpl struct {
	recruitmentRepo repositories.RecruitmentRepository
	shelterRepo     repositories.ShelterRepository
	validator       *validator.Validator
}

func NewRecruitmentService(
	recruitmentRepo repositories.RecruitmentRepository,
	shelterRepo repositories.ShelterRepository,
	v *validator.Validator,
) RecruitmentService {
	return &RecruitmentServiceImpl{
		recruitmentRepo: recruitmentRepo,
		shelterRepo:     shelterRepo,
		validator:       v,
	}
}

func (s *RecruitmentServiceImpl) List(ctx context.Context) ([]dto.RecruitmentDTO, error) {
	recruitments, err := s.recruitmentRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapRecruitments(recruitments), nil
}

func (s *RecruitmentServiceImpl) GetByID(ctx context.Context, id string) (*dto.RecruitmentDTO, error) {
	recruitment, err := s.recruitmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecruitmentNotFound) {
			return nil, apperrors.ErrNotFound(err, "recruitment", "Recruitment not found")
		}
		return nil, apperrors.InternalError(err)
	}
	result := dto.NewRecruitmentDTO(recruitment)
	return &result, nil
}

func (s *RecruitmentServiceImpl) Search(ctx context.Context, query dto.RecruitmentSearchQuery) ([]dto.RecruitmentDTO, error) {
	if err := s.validateStruct(query); err != nil {
		return nil, err
	}

	filter := repositories.RecruitmentFilter{
		StartTime: query.StartTime,
		EndTime:   query.EndTime,
	}

	if query.Region != "" {
		regions := strings.Split(query.Region, ",")
		if len(regions) > maxSearchRegions {
			return nil, apperrors.NewBadRequestError("At most 3 regions can be searched at once")
		}
		for _, region := range regions {
			region = strings.TrimSpace(region)
			if !models.IsValidRegion(region) {
				return nil, apperrors.NewBadRequestError("Unknown region: " + region)
			}
			filter.Regions = append(filter.Regions, region)
		}
	}
	if query.DateFrom != "" {
		from, _ := time.Parse("2006-01-02", query.DateFrom)
		filter.DateFrom = &from
	}
	if query.DateTo != "" {
		to, _ := time.Parse("2006-01-02", query.DateTo)
		filter.DateTo = &to
	}
	if (query.StartTime == "") != (query.EndTime == "") {
		return nil, apperrors.NewBadRequestError("start_time and end_time must be provided together")
	}
	if query.StartTime != "" && query.StartTime >= query.EndTime {
		return nil, apperrors.NewBadRequestError("start_time must be before end_time")
	}

	recruitments, err := s.recruitmentRepo.Search(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(recruitments) == 0 {
		return nil, apperrors.ErrNotFound(nil, "recruitment", "No recruitments match the search")
	}
	return mapRecruitments(recruitments), nil
}

func (s *RecruitmentServiceImpl) ListImages(ctx context.Context, recruitmentID string) ([]dto.RecruitmentImageDTO, error) {
	recruitment, err := s.GetByID(ctx, recruitmentID)
	if err != nil {
		return nil, err
	}
	return recruitment.Images, nil
}

// Create registers a recruitment for the caller's shelter. The shelter
// is resolved from the session, never from the request body.
func (s *RecruitmentServiceImpl) Create(ctx context.Context, userID string, req dto.CreateRecruitmentRequest) (*dto.RecruitmentDTO, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if req.StartTime >= req.EndTime {
		return nil, apperrors.NewBadRequestError("start_time must be before end_time")
	}

	shelter, err := s.shelterRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrShelterNotFound) {
			return nil, apperrors.ErrNotFound(err, "shelter", "No shelter registered for this account")
		}
		return nil, apperrors.InternalError(err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must be a date in 2006-01-02 format")
	}

	recruitment := &models.Recruitment{
		ShelterID:   shelter.ID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Type:        models.RecruitmentType(req.Type),
		Description: req.Description,
		Status:      models.RecruitmentStatusOpen,
	}
	if recruitment.Supplies, err = encodeSupplies(req.Supplies); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.recruitmentRepo.Create(recruitment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	recruitment.Shelter = shelter

	logger.CtxInfo(ctx, "recruitment created", "recruitment_id", recruitment.ID, "shelter_id", shelter.ID)
	result := dto.NewRecruitmentDTO(recruitment)
	return &result, nil
}

func (s *RecruitmentServiceImpl) Update(ctx context.Context, userID, recruitmentID string, req dto.UpdateRecruitmentRequest) (*dto.RecruitmentDTO, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	recruitment, err := s.recruitmentRepo.FindByID(recruitmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecruitmentNotFound) {
			return nil, apperrors.ErrNotFound(err, "recruitment", "Recruitment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	shelter, err := s.shelterRepo.FindByUserID(userID)
	if err != nil || shelter.ID != recruitment.ShelterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, apperrors.NewBadRequestError("date must be a date in 2006-01-02 format")
		}
		recruitment.Date = date
	}
	if req.StartTime != nil {
		recruitment.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		recruitment.EndTime = *req.EndTime
	}
	if recruitment.StartTime >= recruitment.EndTime {
		return nil, apperrors.NewBadRequestError("start_time must be before end_time")
	}
	if req.Type != nil {
		recruitment.Type = models.RecruitmentType(*req.Type)
	}
	if req.Description != nil {
		recruitment.Description = *req.Description
	}
	if req.Supplies != nil {
		if recruitment.Supplies, err = encodeSupplies(*req.Supplies); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if req.Status != nil {
		recruitment.Status = models.RecruitmentStatus(*req.Status)
	}

	if err := s.recruitmentRepo.Update(recruitment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := dto.NewRecruitmentDTO(recruitment)
	return &result, nil
}

func (s *RecruitmentServiceImpl) ListMine(ctx context.Context, userID string) ([]dto.RecruitmentDTO, error) {
	shelter, err := s.shelterRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrShelterNotFound) {
			return nil, apperrors.ErrNotFound(err, "shelter", "No shelter registered for this account")
		}
		return nil, apperrors.InternalError(err)
	}

	recruitments, err := s.recruitmentRepo.FindByShelterID(shelter.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapRecruitments(recruitments), nil
}

func (s *RecruitmentServiceImpl) validateStruct(req interface{}) error {
	if err := s.validator.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return apperrors.ValidationError(verr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func encodeSupplies(supplies []string) (datatypes.JSON, error) {
	if supplies == nil {
		supplies = []string{}
	}
	raw, err := json.Marshal(supplies)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func mapRecruitments(recruitments []models.Recruitment) []dto.RecruitmentDTO {
	result := make([]dto.RecruitmentDTO, 0, len(recruitments))
	for i := range recruitments {
		result = append(result, dto.NewRecruitmentDTO(&recruitments[i]))
	}
	return result
}
