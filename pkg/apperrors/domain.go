package apperrors

import "net/http"

// Factories for errors that need an underlying cause or a dynamic message.

func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrConflict(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrContactNumberAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Contact number already registered",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Applications ---

var ErrShelterCannotApply = New(
	CodeForbidden,
	"application",
	"Shelter admins cannot apply for volunteer work",
	http.StatusForbidden,
)

var ErrDuplicateApplication = New(
	CodeAlreadyExists,
	"application",
	"Application for this recruitment already exists",
	http.StatusConflict,
)

var ErrOverlappingApplication = ErrConflict(
	"application",
	"An existing application overlaps with this recruitment's time window",
)

var ErrRejectionReasonRequired = New(
	CodeValidationFailed,
	"application",
	"A rejection reason is required",
	http.StatusBadRequest,
)

// --- Histories ---

var ErrInvalidRating = New(
	CodeValidationFailed,
	"history",
	"Rating must be an integer between 1 and 5",
	http.StatusBadRequest,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileExtension = New(
	CodeValidationFailed,
	"upload",
	"The provided file extension is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- External services ---

func ErrExternalService(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusInternalServerError)
}
