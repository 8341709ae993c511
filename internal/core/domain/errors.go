package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("email already registered")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError reports a missing or malformed input. Message is safe to
// return to API callers as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets callers match any validation failure with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports an entity that is absent or not owned by the caller.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	t, ok := target.(*NotFoundError)
	return ok && t.Resource == e.Resource
}

var (
	ErrTaskNotFound    = &NotFoundError{Resource: "Task"}
	ErrSubtaskNotFound = &NotFoundError{Resource: "Subtask"}
	ErrUserNotFound    = &NotFoundError{Resource: "User"}
)

var (
	ErrTitleRequired        = NewValidationError("title", "Title is required")
	ErrSubtaskTitleRequired = NewValidationError("title", "Subtask title is required")
	ErrInvalidPriority      = NewValidationError("priority", "Priority must be one of: low, medium, high")
	ErrInvalidSortField     = NewValidationError("sort_by", "Invalid sort field")
	ErrSignupFieldsRequired = NewValidationError("", "Email, password, and name are required")
	ErrLoginFieldsRequired  = NewValidationError("", "Email and password are required")
	ErrEmailRequired        = NewValidationError("email", "Email is required")
)
