package domain

import (
	"errors"
	"fmt"
)

// Error categories. Resource-specific errors wrap one of these so callers can
// branch with errors.Is on the category alone.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")
)

var (
	ErrUserNotFound              = fmt.Errorf("user %w", ErrNotFound)
	ErrBookingNotFound           = fmt.Errorf("booking %w", ErrNotFound)
	ErrStationNotFound           = fmt.Errorf("station %w", ErrNotFound)
	ErrQuestionNotFound          = fmt.Errorf("question %w", ErrNotFound)
	ErrUserProfileNotFound       = fmt.Errorf("user profile %w", ErrNotFound)
	ErrInstructorProfileNotFound = fmt.Errorf("instructor profile %w", ErrNotFound)
	ErrLearnerProfileNotFound    = fmt.Errorf("learner profile %w", ErrNotFound)
	ErrUserExists                = fmt.Errorf("username or email %w", ErrConflict)
	ErrAnswerExists              = fmt.Errorf("answer for this question %w", ErrConflict)
	ErrQuestionExists            = fmt.Errorf("question %w", ErrConflict)
	ErrUserProfileExists         = fmt.Errorf("user profile %w", ErrConflict)
	ErrIDNumberTaken             = fmt.Errorf("id number %w", ErrConflict)
	ErrInstructorProfileExists   = fmt.Errorf("instructor profile %w", ErrConflict)
	ErrInstructorNumberTaken     = fmt.Errorf("instructor number %w", ErrConflict)
	ErrLearnerProfileExists      = fmt.Errorf("learner profile %w", ErrConflict)
	ErrIdempotencyKeyInUse       = fmt.Errorf("idempotency key is in use by a concurrent request: %w", ErrConflict)
	ErrRoleNotAllowed            = fmt.Errorf("only instructors, admins, and super admins can access this application: %w", ErrForbidden)
	ErrUserInactive              = fmt.Errorf("user inactive: %w", ErrForbidden)
)

// Invalid builds a validation error carrying a human-readable reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
