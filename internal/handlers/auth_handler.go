package handlers

import (
	"net/http"

	"dangnyang_backend/internal/middleware"
	"dangnyang_backend/internal/services"
	"dangnyang_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	users := r.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/signup/shelter", h.SignupShelter)
		users.POST("/login", h.Login)
		users.POST("/token/refresh", h.RefreshTokens)
		users.POST("/kakao-login", h.KakaoLogin)
		users.POST("/find-email", h.FindEmail)
		users.POST("/reset-password", h.ResetPassword)
		users.POST("/email-check", h.CheckEmail)
		users.POST("/email-confirmation", h.SendEmailConfirmation)
		users.POST("/verify/email-code", h.VerifyEmailCode)

		users.POST("/logout", authMW.Handle(), h.Logout)
		users.POST("/change-password", authMW.Handle(), h.ChangePassword)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) SignupShelter(c *gin.Context) {
	var req dto.ShelterSignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.SignupShelter(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RefreshTokens(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) KakaoLogin(c *gin.Context) {
	var req dto.KakaoLoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.KakaoLogin(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) FindEmail(c *gin.Context) {
	var req dto.FindEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.FindEmail(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Temporary password sent"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req dto.EmailCheckRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.CheckEmail(c.Request.Context(), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email is available"})
}

func (h *AuthHandler) SendEmailConfirmation(c *gin.Context) {
	var req dto.EmailConfirmationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.SendEmailConfirmation(c.Request.Context(), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

func (h *AuthHandler) VerifyEmailCode(c *gin.Context) {
	var req dto.VerifyEmailCodeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.VerifyEmailCode(c.Request.Context(), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}
