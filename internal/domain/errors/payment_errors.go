package errors

import "fmt"

// NotFoundError is returned when no payment exists for the given ID
type NotFoundError struct {
	PaymentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("payment not found: %s", e.PaymentID)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(paymentID string) *NotFoundError {
	return &NotFoundError{PaymentID: paymentID}
}

// InvalidStateError is returned when an operation is not allowed from the
// payment's current status, e.g. refunding a payment that never completed
type InvalidStateError struct {
	PaymentID string
	Status    string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s payment %s in status %s", e.Operation, e.PaymentID, e.Status)
}

// NewInvalidStateError creates a new InvalidStateError
func NewInvalidStateError(paymentID, status, operation string) *InvalidStateError {
	return &InvalidStateError{PaymentID: paymentID, Status: status, Operation: operation}
}

// ValidationError is returned for malformed or missing request fields,
// before any processor or store call is made
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
