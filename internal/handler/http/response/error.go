package response

import (
	"errors"
	"net/http"

	"github.com/simagang/presensi-backend-go/internal/domain/attendance"
	"github.com/simagang/presensi-backend-go/internal/domain/auth"
	"github.com/simagang/presensi-backend-go/internal/domain/evaluation"
	"github.com/simagang/presensi-backend-go/internal/domain/leave"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/simagang/presensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrProfileNotFound):
		NotFound(w, "Internship profile not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Attendance already recorded for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in today", nil)
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		BadRequest(w, "Location is outside the allowed office radius", nil)
	case errors.Is(err, attendance.ErrNotOperatingDay):
		BadRequest(w, "Today is not an operating day", nil)
	case errors.Is(err, attendance.ErrTooEarlyToCheckIn):
		BadRequest(w, "Check-in window has not opened yet", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrDuplicateRequest):
		Conflict(w, "A leave request for that date already exists")
	case errors.Is(err, leave.ErrAdminOnly):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, leave.ErrInvalidDecision):
		BadRequest(w, "Decision must be APPROVED or REJECTED", nil)

	// Evaluation domain errors
	case errors.Is(err, evaluation.ErrEvaluationNotFound):
		NotFound(w, "Evaluation not found")
	case errors.Is(err, evaluation.ErrAlreadyGraded):
		Conflict(w, "Evaluation has already been graded")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
