package apperrors

import (
	"dangnyang_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every error response uses.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError renders err as the standard envelope, wrapping unknown
// errors into an internal error first.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "server error", "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
