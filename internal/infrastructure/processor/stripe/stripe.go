package stripe

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/roomlet/payment-service/internal/domain/processor"
)

// Processor implements the PaymentProcessor interface against Stripe. The
// secret key is injected at construction; no process-wide stripe.Key is set.
type Processor struct {
	api    *client.API
	logger *zap.Logger
}

// NewProcessor creates a new Stripe-backed payment processor
func NewProcessor(secretKey string, logger *zap.Logger) *Processor {
	return &Processor{
		api:    client.New(secretKey, nil),
		logger: logger,
	}
}

// CreateIntent creates a Stripe PaymentIntent
func (p *Processor) CreateIntent(ctx context.Context, req *processor.CreateIntentRequest) (*processor.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinorUnits),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, p.wrap("create payment intent", err)
	}

	p.logger.Debug("Created Stripe payment intent",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", req.AmountMinorUnits),
		zap.String("currency", req.Currency))

	return toIntent(intent), nil
}

// RetrieveIntent fetches a Stripe PaymentIntent by ID
func (p *Processor) RetrieveIntent(ctx context.Context, intentID string) (*processor.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, p.wrap("retrieve payment intent", err)
	}

	return toIntent(intent), nil
}

// CreateRefund refunds a captured charge
func (p *Processor) CreateRefund(ctx context.Context, chargeID string) (string, error) {
	params := &stripe.RefundParams{
		Charge: stripe.String(chargeID),
	}
	params.Context = ctx

	refund, err := p.api.Refunds.New(params)
	if err != nil {
		return "", p.wrap("create refund", err)
	}

	p.logger.Debug("Created Stripe refund",
		zap.String("charge_id", chargeID),
		zap.String("refund_id", refund.ID))

	return refund.ID, nil
}

func toIntent(intent *stripe.PaymentIntent) *processor.Intent {
	out := &processor.Intent{
		ID:     intent.ID,
		Status: string(intent.Status),
	}
	if intent.LatestCharge != nil {
		out.LatestChargeID = intent.LatestCharge.ID
	}
	return out
}

func (p *Processor) wrap(op string, err error) *processor.ProcessorError {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		p.logger.Error("Stripe call failed",
			zap.String("operation", op),
			zap.String("code", string(stripeErr.Code)),
			zap.Error(err))
		return &processor.ProcessorError{
			Code:    string(stripeErr.Code),
			Message: stripeErr.Msg,
			Err:     err,
		}
	}

	p.logger.Error("Stripe call failed",
		zap.String("operation", op),
		zap.Error(err))
	return &processor.ProcessorError{
		Message: "failed to " + op,
		Err:     err,
	}
}
