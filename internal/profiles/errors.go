package profiles

import "fmt"

// ErrValidation indicates an onboarding submission failed validation
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates no profile exists for the user
type ErrNotFound struct {
	UserID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.UserID)
}
