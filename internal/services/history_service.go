package services

import (
	"context"
	"errors"

	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"
)

type HistoryService interface {
	// ListMine returns the caller's attended volunteer work; an empty
	// result is a not-found error.
	ListMine(ctx context.Context, userID string) ([]dto.HistoryDTO, error)
	// Rate sets the 1-5 score. Re-rating overwrites the previous score.
	Rate(ctx context.Context, userID, historyID string, req dto.RateHistoryRequest) (*dto.HistoryDTO, error)
}

type HistoryServiceImpl struct {
	historyRepo repositories.HistoryRepository
	validator   *validator.Validator
}

func NewHistoryService(historyRepo repositories.HistoryRepository, v *validator.Validator) HistoryService {
	return &HistoryServiceImpl{historyRepo: historyRepo, validator: v}
}

func (s *HistoryServiceImpl) ListMine(ctx context.Context, userID string) ([]dto.HistoryDTO, error) {
	histories, err := s.historyRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(histories) == 0 {
		return nil, apperrors.ErrNotFound(nil, "history", "No volunteer history yet")
	}

	result := make([]dto.HistoryDTO, 0, len(histories))
	for i := range histories {
		result = append(result, dto.NewHistoryDTO(&histories[i]))
	}
	return result, nil
}

func (s *HistoryServiceImpl) Rate(ctx context.Context, userID, historyID string, req dto.RateHistoryRequest) (*dto.HistoryDTO, error) {
	if err := s.validator.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return nil, apperrors.ValidationError(verr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	history, err := s.historyRepo.FindByID(historyID)
	if err != nil {
		if errors.Is(err, repositories.ErrHistoryNotFound) {
			return nil, apperrors.ErrNotFound(err, "history", "History not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if history.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if err := s.historyRepo.UpdateRating(history.ID, req.Rating); err != nil {
		return nil, apperrors.InternalError(err)
	}
	history.Rating = req.Rating

	logger.CtxInfo(ctx, "volunteer work rated", "history_id", history.ID, "rating", req.Rating)
	result := dto.NewHistoryDTO(history)
	return &result, nil
}
