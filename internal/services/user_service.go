package services

import (
	"context"
	"errors"
	"time"

	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"
)

type UserService interface {
	GetMe(ctx context.Context, userID string) (*dto.UserDTO, error)
	UpdateMe(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserDTO, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	validator *validator.Validator
}

func NewUserService(userRepo repositories.UserRepository, v *validator.Validator) UserService {
	return &UserServiceImpl{userRepo: userRepo, validator: v}
}

func (s *UserServiceImpl) GetMe(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	result := dto.NewUserDTO(user)
	return &result, nil
}

func (s *UserServiceImpl) UpdateMe(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserDTO, error) {
	if err := s.validator.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return nil, apperrors.ValidationError(verr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("birth_date must be a date in 2006-01-02 format")
		}
		user.BirthDate = &parsed
	}
	if req.ContactNumber != nil && (user.ContactNumber == nil || *req.ContactNumber != *user.ContactNumber) {
		exists, err := s.userRepo.ExistsByContactNumber(*req.ContactNumber)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if exists {
			return nil, apperrors.ErrContactNumberAlreadyExists
		}
		user.ContactNumber = req.ContactNumber
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := dto.NewUserDTO(user)
	return &result, nil
}

func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, "user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "account deleted", "user_id", userID)
	return nil
}
