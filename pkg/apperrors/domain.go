package apperrors

import (
	"net/http"
)

// Factories and predefined variables for common domain errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- auth ---

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

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- messaging ---

// ErrInvalidPairing rejects a message whose sender/receiver pair is not
// {job poster, administrator}.
var ErrInvalidPairing = New(
	CodeForbidden,
	"message",
	"Messages may only be exchanged between the job poster and an administrator",
	http.StatusForbidden,
)

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- jobs ---

var ErrJobAccessDenied = New(
	CodeForbidden,
	"job",
	"You do not have access to this job",
	http.StatusForbidden,
)

var ErrJobNotPublishable = New(
	CodeInvalidStatus,
	"job",
	"Job is missing required fields or is not in a publishable state",
	http.StatusConflict,
)

// --- uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
