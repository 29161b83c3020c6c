package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dangnyang_backend/internal/auth"
	"dangnyang_backend/internal/email"
	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/repositories"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/social"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"
)

const (
	tempPasswordLength     = 10
	verificationCodeLength = 6
	verificationCodeTTL    = 10 * time.Minute
)

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	SignupShelter(ctx context.Context, req dto.ShelterSignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	KakaoLogin(ctx context.Context, req dto.KakaoLoginRequest) (*dto.AuthResponse, error)
	FindEmail(ctx context.Context, req dto.FindEmailRequest) (*dto.FindEmailResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
	CheckEmail(ctx context.Context, req dto.EmailCheckRequest) error
	SendEmailConfirmation(ctx context.Context, req dto.EmailConfirmationRequest) error
	VerifyEmailCode(ctx context.Context, req dto.VerifyEmailCodeRequest) error
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	issuer    *auth.TokenIssuer
	validator *validator.Validator
	mailer    email.Mailer
	kakao     *social.KakaoClient
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	issuer *auth.TokenIssuer,
	v *validator.Validator,
	mailer email.Mailer,
	kakao *social.KakaoClient,
) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		issuer:    issuer,
		validator: v,
		mailer:    mailer,
		kakao:     kakao,
	}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicates(req.Email, req.ContactNumber); err != nil {
		return nil, err
	}

	user, err := s.buildUser(req.Email, req.Password, req.Name, req.BirthDate, req.ContactNumber, models.UserTypeVolunteer)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "volunteer signed up", "user_id", user.ID)
	return s.issueAuthResponse(user)
}

func (s *AuthServiceImpl) SignupShelter(ctx context.Context, req dto.ShelterSignupRequest) (*dto.AuthResponse, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicates(req.Email, req.ContactNumber); err != nil {
		return nil, err
	}

	user, err := s.buildUser(req.Email, req.Password, req.Name, req.BirthDate, req.ContactNumber, models.UserTypeShelterAdmin)
	if err != nil {
		return nil, err
	}
	shelter := &models.Shelter{
		Name:                       req.ShelterName,
		Address:                    req.Address,
		Region:                     req.Region,
		ShelterType:                models.ShelterType(req.ShelterType),
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		BusinessRegistrationEmail:  req.BusinessRegistrationEmail,
		ContactNumber:              req.ShelterContactNumber,
	}

	if err := s.userRepo.CreateWithShelter(user, shelter); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "shelter admin signed up", "user_id", user.ID, "shelter_id", shelter.ID)
	return s.issueAuthResponse(user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return s.issueAuthResponse(user)
}

// RefreshTokens rotates the refresh token: the presented token's jti is
// blacklisted and a fresh pair is issued.
func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.checkRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.revokeRefreshToken(ctx, claims); err != nil {
		return nil, err
	}

	access, refresh, err := s.issuer.GeneratePair(claims.UserID, claims.UserType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.checkRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := s.revokeRefreshToken(ctx, claims); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "user logged out", "user_id", claims.UserID)
	return nil
}

// KakaoLogin exchanges a Kakao access token for a local session,
// provisioning the account on first login.
func (s *AuthServiceImpl) KakaoLogin(ctx context.Context, req dto.KakaoLoginRequest) (*dto.AuthResponse, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	info, err := s.kakao.GetUserInfo(ctx, req.AccessToken)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "auth", "Failed to fetch Kakao user profile")
	}

	user, err := s.userRepo.FindBySocialID(models.SocialTypeKakao, info.ID)
	if err == nil {
		return s.issueAuthResponse(user)
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	emailAddr := info.Email
	if emailAddr == "" {
		emailAddr = fmt.Sprintf("kakao_%s@kakao.com", info.ID)
	}
	name := info.Nickname
	if name == "" {
		name = "카카오 사용자"
	}

	socialID := info.ID
	user = &models.User{
		Email:           emailAddr,
		Password:        "",
		Name:            name,
		UserType:        models.UserTypeVolunteer,
		ProfileImage:    info.ProfileImage,
		SocialType:      models.SocialTypeKakao,
		SocialID:        &socialID,
		IsEmailVerified: info.Email != "",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "kakao account provisioned", "user_id", user.ID)
	return s.issueAuthResponse(user)
}

func (s *AuthServiceImpl) FindEmail(ctx context.Context, req dto.FindEmailRequest) (*dto.FindEmailResponse, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByNameAndContactNumber(req.Name, req.ContactNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "No account matches the given name and contact number")
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.FindEmailResponse{Email: user.Email}, nil
}

// ResetPassword replaces the password with a random temporary one and
// mails it to the account address.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := s.validateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, "user", "No account with this email")
		}
		return apperrors.InternalError(err)
	}
	if user.SocialType != models.SocialTypeEmail {
		return apperrors.ErrInvalidOperation("auth", "Social accounts cannot reset a password")
	}

	tempPassword, err := auth.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return apperrors.InternalError(err)
	}
	hashed, err := auth.HashPassword(tempPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hashed); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.mailer.SendTempPassword(user.Email, tempPassword); err != nil {
		return apperrors.ErrExternalService(err, "auth", "Failed to send the temporary password mail")
	}

	logger.CtxInfo(ctx, "temporary password issued", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	if err := s.validateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, "user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hashed); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password changed", "user_id", user.ID)
	return nil
}

// CheckEmail reports a conflict when the address is already registered,
// so clients can key off the status code alone.
func (s *AuthServiceImpl) CheckEmail(ctx context.Context, req dto.EmailCheckRequest) error {
	if err := s.validateStruct(req); err != nil {
		return err
	}
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}
	return nil
}

func (s *AuthServiceImpl) SendEmailConfirmation(ctx context.Context, req dto.EmailConfirmationRequest) error {
	if err := s.validateStruct(req); err != nil {
		return err
	}

	code, err := auth.GenerateVerificationCode(verificationCodeLength)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.tokenRepo.StoreEmailCode(ctx, req.Email, code, verificationCodeTTL); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.mailer.SendVerificationCode(req.Email, code); err != nil {
		return apperrors.ErrExternalService(err, "auth", "Failed to send the verification mail")
	}
	return nil
}

func (s *AuthServiceImpl) VerifyEmailCode(ctx context.Context, req dto.VerifyEmailCodeRequest) error {
	if err := s.validateStruct(req); err != nil {
		return err
	}

	stored, err := s.tokenRepo.GetEmailCode(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrCodeNotFound) {
			return apperrors.NewBadRequestError("Verification code is expired or was never issued")
		}
		return apperrors.InternalError(err)
	}
	if stored != req.Code {
		return apperrors.NewBadRequestError("Verification code does not match")
	}

	if err := s.tokenRepo.DeleteEmailCode(ctx, req.Email); err != nil {
		return apperrors.InternalError(err)
	}

	// The code may be verified before the account exists.
	if user, err := s.userRepo.FindByEmail(req.Email); err == nil {
		if err := s.userRepo.MarkEmailVerified(user.ID); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

// --- helpers ---

func (s *AuthServiceImpl) validateStruct(req interface{}) error {
	if err := s.validator.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return apperrors.ValidationError(verr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) checkDuplicates(emailAddr, contactNumber string) error {
	exists, err := s.userRepo.ExistsByEmail(emailAddr)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	exists, err = s.userRepo.ExistsByContactNumber(contactNumber)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrContactNumberAlreadyExists
	}
	return nil
}

func (s *AuthServiceImpl) buildUser(emailAddr, password, name, birthDate, contactNumber string, userType models.UserType) (*models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:         emailAddr,
		Password:      hashed,
		Name:          name,
		ContactNumber: &contactNumber,
		UserType:      userType,
		SocialType:    models.SocialTypeEmail,
	}
	if birthDate != "" {
		parsed, err := time.Parse("2006-01-02", birthDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("birth_date must be a date in 2006-01-02 format")
		}
		user.BirthDate = &parsed
	}
	return user, nil
}

func (s *AuthServiceImpl) issueAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	access, refresh, err := s.issuer.GeneratePair(user.ID, user.UserType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.NewUserDTO(user),
	}, nil
}

func (s *AuthServiceImpl) checkRefreshToken(ctx context.Context, refreshToken string) (*auth.Claims, error) {
	claims, err := s.issuer.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	revoked, err := s.tokenRepo.IsRefreshTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthServiceImpl) revokeRefreshToken(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.tokenRepo.BlacklistRefreshToken(ctx, claims.ID, ttl); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
