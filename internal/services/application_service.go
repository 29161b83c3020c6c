package services

import (
	"context"
	"errors"
	"strings"

	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"
)

type ApplicationService interface {
	// Apply creates a pending application for the volunteer.
	Apply(ctx context.Context, userID string, req dto.CreateApplicationRequest) (*dto.ApplicationDTO, error)
	ListMine(ctx context.Context, userID string) ([]dto.ApplicationDTO, error)
	GetMine(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error)
	CancelMine(ctx context.Context, userID, applicationID string) error
	// ListApplicants returns the applications for a recruitment owned
	// by the caller's shelter.
	ListApplicants(ctx context.Context, userID, recruitmentID string) ([]dto.ApplicantDTO, error)
	Approve(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error)
	Reject(ctx context.Context, userID, applicationID string, req dto.RejectApplicationRequest) (*dto.ApplicationDTO, error)
	MarkAttended(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error)
	MarkAbsence(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	recruitmentRepo repositories.RecruitmentRepository
	shelterRepo     repositories.ShelterRepository
	userRepo        repositories.UserRepository
	validator       *validator.Validator
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	recruitmentRepo repositories.RecruitmentRepository,
	shelterRepo repositories.ShelterRepository,
	userRepo repositories.UserRepository,
	v *validator.Validator,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		recruitmentRepo: recruitmentRepo,
		shelterRepo:     shelterRepo,
		userRepo:        userRepo,
		validator:       v,
	}
}

func (s *ApplicationServiceImpl) Apply(ctx context.Context, userID string, req dto.CreateApplicationRequest) (*dto.ApplicationDTO, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if user.IsShelterAdmin() {
		return nil, apperrors.ErrShelterCannotApply
	}

	recruitment, err := s.recruitmentRepo.FindByID(req.RecruitmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecruitmentNotFound) {
			return nil, apperrors.ErrNotFound(err, "recruitment", "Recruitment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Reject when another pending or approved application on the same
	// date has an overlapping [start,end) window. The duplicate case is
	// also caught here when the windows coincide.
	active, err := s.applicationRepo.FindActiveByUserOnDate(userID, recruitment.Date)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range active {
		if active[i].RecruitmentID == recruitment.ID {
			return nil, apperrors.ErrDuplicateApplication
		}
		other := active[i].Recruitment
		if other == nil {
			continue
		}
		if models.TimeWindowsOverlap(recruitment.StartTime, recruitment.EndTime, other.StartTime, other.EndTime) {
			return nil, apperrors.ErrOverlappingApplication
		}
	}

	application := &models.Application{
		UserID:        userID,
		RecruitmentID: recruitment.ID,
		ShelterID:     recruitment.ShelterID,
		Status:        models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		if errors.Is(err, repositories.ErrApplicationDuplicate) {
			// The unique index also blocks rows the pre-check skips,
			// such as a rejected application for the same recruitment.
			return nil, apperrors.ErrAlreadyExists(err, "application",
				"Application for this recruitment already exists")
		}
		return nil, apperrors.InternalError(err)
	}
	application.Recruitment = recruitment

	logger.CtxInfo(ctx, "application created",
		"application_id", application.ID, "recruitment_id", recruitment.ID)
	result := dto.NewApplicationDTO(application)
	return &result, nil
}

func (s *ApplicationServiceImpl) ListMine(ctx context.Context, userID string) ([]dto.ApplicationDTO, error) {
	applications, err := s.applicationRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.ApplicationDTO, 0, len(applications))
	for i := range applications {
		result = append(result, dto.NewApplicationDTO(&applications[i]))
	}
	return result, nil
}

func (s *ApplicationServiceImpl) GetMine(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error) {
	application, err := s.findOwnApplication(userID, applicationID)
	if err != nil {
		return nil, err
	}
	result := dto.NewApplicationDTO(application)
	return &result, nil
}

func (s *ApplicationServiceImpl) CancelMine(ctx context.Context, userID, applicationID string) error {
	application, err := s.findOwnApplication(userID, applicationID)
	if err != nil {
		return err
	}
	if err := s.applicationRepo.Delete(application.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "application cancelled", "application_id", applicationID)
	return nil
}

func (s *ApplicationServiceImpl) ListApplicants(ctx context.Context, userID, recruitmentID string) ([]dto.ApplicantDTO, error) {
	recruitment, err := s.recruitmentRepo.FindByID(recruitmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecruitmentNotFound) {
			return nil, apperrors.ErrNotFound(err, "recruitment", "Recruitment not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.checkShelterOwnership(userID, recruitment.ShelterID); err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.FindByRecruitmentID(recruitmentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.ApplicantDTO, 0, len(applications))
	for i := range applications {
		result = append(result, dto.NewApplicantDTO(&applications[i]))
	}
	return result, nil
}

func (s *ApplicationServiceImpl) Approve(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error) {
	return s.transition(ctx, userID, applicationID, models.ApplicationStatusApproved, nil)
}

func (s *ApplicationServiceImpl) Reject(ctx context.Context, userID, applicationID string, req dto.RejectApplicationRequest) (*dto.ApplicationDTO, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.RejectedReason) == "" {
		return nil, apperrors.ErrRejectionReasonRequired
	}
	return s.transition(ctx, userID, applicationID, models.ApplicationStatusRejected, &req.RejectedReason)
}

func (s *ApplicationServiceImpl) MarkAttended(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error) {
	return s.transition(ctx, userID, applicationID, models.ApplicationStatusAttended, nil)
}

func (s *ApplicationServiceImpl) MarkAbsence(ctx context.Context, userID, applicationID string) (*dto.ApplicationDTO, error) {
	return s.transition(ctx, userID, applicationID, models.ApplicationStatusAbsence, nil)
}

// transition applies a status change on behalf of the owning shelter.
// Reaching attended records the history row in the same transaction.
func (s *ApplicationServiceImpl) transition(ctx context.Context, userID, applicationID string, next models.ApplicationStatus, rejectedReason *string) (*dto.ApplicationDTO, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err, "application", "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.checkShelterOwnership(userID, application.ShelterID); err != nil {
		return nil, err
	}

	if !application.Status.CanTransitionTo(next) {
		return nil, apperrors.ErrInvalidStatus("application",
			"Cannot change status from "+string(application.Status)+" to "+string(next))
	}

	if next == models.ApplicationStatusAttended {
		if _, err := s.applicationRepo.MarkAttended(application); err != nil {
			return nil, apperrors.InternalError(err)
		}
		application.Status = models.ApplicationStatusAttended
	} else {
		application.Status = next
		application.RejectedReason = rejectedReason
		if err := s.applicationRepo.UpdateStatus(application); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "application status changed",
		"application_id", application.ID, "status", application.Status)
	result := dto.NewApplicationDTO(application)
	return &result, nil
}

func (s *ApplicationServiceImpl) findOwnApplication(userID, applicationID string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err, "application", "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if application.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return application, nil
}

func (s *ApplicationServiceImpl) checkShelterOwnership(userID, shelterID string) error {
	shelter, err := s.shelterRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrShelterNotFound) {
			return apperrors.ErrInsufficientPermissions
		}
		return apperrors.InternalError(err)
	}
	if shelter.ID != shelterID {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

func (s *ApplicationServiceImpl) validateStruct(req interface{}) error {
	if err := s.validator.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return apperrors.ValidationError(verr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
