package services

import (
	"errors"
	"fmt"
)

// ValidationError is a client input problem. Message is safe to return to
// the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrMissingFields        = &ValidationError{Message: "All fields are required"}
	ErrInvalidContactPrefix = &ValidationError{Message: "Invalid phone number format. Must start with +263"}
	ErrInvalidPhoneFormat   = &ValidationError{Message: "Invalid Zimbabwean phone number format."}
)

// ErrNoReport means a well-formed contact has no stored reports.
var ErrNoReport = errors.New("no report found for this contact number")

// Failure kinds carried by StepError.
var (
	ErrPersistence  = errors.New("persistence failure")
	ErrNotification = errors.New("notification failure")
)

type Step string

const (
	StepInsert              Step = "insert"
	StepCountPending        Step = "count_pending"
	StepComposeNotification Step = "compose_notification"
	StepSendNotification    Step = "send_notification"
	StepMarkNotified        Step = "mark_notified"
	StepLookup              Step = "lookup"
)

// StepError records which pipeline step failed and why. errors.Is matches
// both Kind and anything in the wrapped chain.
type StepError struct {
	Step Step
	Kind error
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IsValidation reports whether err is a client input problem.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
