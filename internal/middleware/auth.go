package middleware

import (
	"net/http"
	"strings"

	"dangnyang_backend/internal/auth"
	"dangnyang_backend/internal/logger"
	"dangnyang_backend/internal/models"
	"dangnyang_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies access tokens issued by the given issuer.
type AuthMiddleware struct {
	issuer *auth.TokenIssuer
}

func NewAuthMiddleware(issuer *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// Handle rejects requests without a valid Bearer access token and puts
// the user id and type into both the gin and the request context.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.issuer.Parse(tokenStr, auth.TokenTypeAccess)
		if err != nil {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userType", claims.UserType)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireUserType restricts a route to one account type.
func (m *AuthMiddleware) RequireUserType(required models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		typeVal, exists := c.Get("userType")
		if !exists {
			abortWithError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		userType, ok := typeVal.(models.UserType)
		if !ok {
			typeStr, isString := typeVal.(string)
			if !isString {
				abortWithError(c, apperrors.ErrInsufficientPermissions)
				return
			}
			userType = models.UserType(typeStr)
		}

		if userType != required {
			abortWithError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(statusOf(appErr), apperrors.ErrorResponse{Error: appErr})
}

func statusOf(appErr *apperrors.AppError) int {
	if appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}
