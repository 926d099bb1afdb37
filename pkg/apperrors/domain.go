package apperrors

import (
	"net/http"
)

// ErrNotFound wraps a lookup failure into a 404 for the given domain.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness failure into a 409.
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeEmailExists,
	"auth",
	"User with this email already exists",
	http.StatusConflict,
)

// ErrInvalidCredentials is returned for unknown email, role mismatch and wrong
// password alike.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid refresh token",
	http.StatusUnauthorized,
)

var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired reset token",
	http.StatusBadRequest,
)

var ErrInvalidVerificationToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired verification token",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"auth",
	"User not found",
	http.StatusNotFound,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Candidate ---

var ErrCandidateNotFound = New(
	CodeNotFound,
	"candidate",
	"Candidate profile not found",
	http.StatusNotFound,
)

var ErrCandidateAlreadyClaimed = New(
	CodeNotFound,
	"candidate",
	"Profile not found or already claimed",
	http.StatusNotFound,
)

var ErrCandidateProfileExists = New(
	CodeAlreadyExists,
	"candidate",
	"Candidate profile already exists for this user",
	http.StatusConflict,
)

// --- Employer ---

var ErrCompanyNotFound = New(
	CodeNotFound,
	"employer",
	"Company profile not found",
	http.StatusNotFound,
)

var ErrCompanyAlreadyClaimed = New(
	CodeNotFound,
	"employer",
	"Company not found or already claimed",
	http.StatusNotFound,
)

var ErrCompanyProfileExists = New(
	CodeAlreadyExists,
	"employer",
	"Company profile already exists for this user",
	http.StatusConflict,
)

var ErrCompanyRequired = New(
	CodeNotFound,
	"employer",
	"Company profile not found. Please create a company profile first.",
	http.StatusNotFound,
)

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

// --- Video ---

var ErrVideoNotFound = New(
	CodeNotFound,
	"video",
	"Video not found",
	http.StatusNotFound,
)

var ErrVideoTooLarge = New(
	CodeLimitExceeded,
	"video",
	"Video size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidVideoBlob = New(
	CodeValidationFailed,
	"video",
	"Video blob must be valid base64",
	http.StatusBadRequest,
)

// --- Shared ---

var ErrAccessDenied = New(
	CodeForbidden,
	"auth",
	"Access denied",
	http.StatusForbidden,
)

var ErrNoFieldsToUpdate = New(
	CodeValidationFailed,
	"request",
	"No valid fields to update",
	http.StatusBadRequest,
)
