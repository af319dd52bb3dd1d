package domain

import (
	"errors"
	"fmt"
)

// Error codes returned to clients in the "code" field
const (
	CodeSlotsDateRequired = "SLOTS-01"
	CodeSlotsDateFormat   = "SLOTS-02"

	CodeBookCapacityReached = "BOOK-01"
	CodeBookMissingBoth     = "BOOK-02"
	CodeBookMissingDate     = "BOOK-03"
	CodeBookMissingTime     = "BOOK-04"
	CodeBookDateFormat      = "BOOK-05"
	CodeBookInPast          = "BOOK-06"
	CodeBookOutsideHours    = "BOOK-07"
	CodeBookOffGrid         = "BOOK-08"
	CodeBookWeekend         = "BOOK-09"
	CodeBookDayOff          = "BOOK-10"
	CodeBookUnavailableHour = "BOOK-11"

	CodeCancelNotFound     = "CANCEL-01"
	CodeCancelMissingBoth  = "CANCEL-02"
	CodeCancelMissingDate  = "CANCEL-03"
	CodeCancelMissingTime  = "CANCEL-04"
	CodeCancelDateFormat   = "CANCEL-05"
	CodeCancelInPast       = "CANCEL-06"
	CodeCancelOutsideHours = "CANCEL-07"
	CodeCancelOffGrid      = "CANCEL-08"

	CodeConfigSlotDuration     = "CONFIG-01"
	CodeConfigMaxSlots         = "CONFIG-02"
	CodeConfigOperationalStart = "CONFIG-03"
	CodeConfigOperationalEnd   = "CONFIG-04"
	CodeConfigDaysOffType      = "CONFIG-05"
	CodeConfigDaysOffEntry     = "CONFIG-06"
	CodeConfigUnavailableType  = "CONFIG-07"
	CodeConfigUnavailableEntry = "CONFIG-08"
	CodeConfigUnavailableRange = "CONFIG-09"
	CodeConfigWeekendOff       = "CONFIG-10"
	CodeConfigWindowOrder      = "CONFIG-11"

	CodeIdempotencyMismatch   = "IDEMPOTENCY-01"
	CodeIdempotencyInProgress = "IDEMPOTENCY-02"
)

// ValidationError is a rule violation reported to the client as 400 {message, code}
type ValidationError struct {
	Code    string
	Message string
}

// NewValidationError creates a ValidationError
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// NewValidationErrorf creates a ValidationError with a formatted message
func NewValidationErrorf(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

// AsValidationError extracts a ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// HasCode returns true if err is a ValidationError with the given code
func HasCode(err error, code string) bool {
	vErr, ok := AsValidationError(err)
	return ok && vErr.Code == code
}
