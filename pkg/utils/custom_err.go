package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateRequest   = errors.New("hostel already has a pending placement request")
	ErrAlreadyReviewed    = errors.New("placement request has already been reviewed")
	ErrNotHostelOwner     = errors.New("caller does not own this hostel")
	ErrPlanInUse          = errors.New("placement plan is referenced by requests")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrSubscriptionExists = errors.New("hostel already has a subscription")
)

// DBError tags a storage failure so HandleServiceError reports 500 while logs keep the cause.
func DBError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrDatabaseError, err)
}

// NotFound wraps ErrRecordNotFound with the missing entity and id.
func NotFound(entity string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrRecordNotFound)
}

// ValidationError reports malformed input. Field is empty for whole-object failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
