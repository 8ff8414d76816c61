package processor

import (
	"context"
)

// PaymentProcessor defines the calls made against the external payment
// processor. Implementations return *ProcessorError on any network or
// validation failure.
type PaymentProcessor interface {
	// CreateIntent creates a payment intent for the given amount in minor
	// units and returns the processor-assigned intent ID and status.
	CreateIntent(ctx context.Context, req *CreateIntentRequest) (*Intent, error)

	// RetrieveIntent fetches the current state of a payment intent.
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)

	// CreateRefund refunds a captured charge and returns the refund ID.
	CreateRefund(ctx context.Context, chargeID string) (string, error)
}

// CreateIntentRequest carries everything the processor needs to create an intent
type CreateIntentRequest struct {
	AmountMinorUnits int64
	Currency         string
	Description      string
	Metadata         map[string]string
}

// Intent is the processor-side view of a payment intent
type Intent struct {
	ID             string
	Status         string
	LatestChargeID string
}

// StatusSucceeded is the processor status indicating funds were captured
const StatusSucceeded = "succeeded"

// ProcessorError represents a failed call to the payment processor
type ProcessorError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProcessorError) Error() string {
	if e.Code != "" {
		return "processor error " + e.Code + ": " + e.Message
	}
	return "processor error: " + e.Message
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}
