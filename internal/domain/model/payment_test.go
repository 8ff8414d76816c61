package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/roomlet/payment-service/internal/domain/model"
)

func TestPayment_MinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"19.99", 1999},
		{"100.00", 10000},
		{"0.01", 1},
		{"10.005", 1001}, // half away from zero
		{"10.004", 1000},
		{"1234.56", 123456},
	}

	for _, tc := range cases {
		p := &model.Payment{Amount: decimal.RequireFromString(tc.amount)}
		assert.Equal(t, tc.want, p.MinorUnits(), "amount %s", tc.amount)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PROCESSING", "COMPLETED", "FAILED", "CANCELLED", "REFUNDED"} {
		status, ok := model.ParsePaymentStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, model.PaymentStatus(s), status)
	}

	for _, s := range []string{"", "pending", "DONE", "completed"} {
		_, ok := model.ParsePaymentStatus(s)
		assert.False(t, ok, s)
	}
}
