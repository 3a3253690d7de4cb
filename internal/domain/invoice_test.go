package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	rent := decimal.NewFromInt(15000)

	tests := []struct {
		name string
		paid decimal.Decimal
		want string
	}{
		{"nothing paid", decimal.Zero, InvoiceStatusUnpaid},
		{"partial payment", decimal.NewFromInt(10000), InvoiceStatusPartiallyPaid},
		{"one shilling short", decimal.NewFromInt(14999), InvoiceStatusPartiallyPaid},
		{"exactly settled", decimal.NewFromInt(15000), InvoiceStatusPaid},
		{"overpaid", decimal.NewFromInt(20000), InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.paid, rent))
		})
	}
}

func TestInvoiceBalance(t *testing.T) {
	invoice := &Invoice{
		AmountDue: decimal.NewFromInt(15000),
		PaidTotal: decimal.NewFromInt(20000),
	}

	assert.True(t, invoice.Balance().Equal(decimal.NewFromInt(-5000)))
	assert.True(t, invoice.RemainingDue().IsZero(), "remaining due never goes negative")

	invoice.PaidTotal = decimal.NewFromInt(4000)
	assert.True(t, invoice.Balance().Equal(decimal.NewFromInt(11000)))
	assert.True(t, invoice.RemainingDue().Equal(decimal.NewFromInt(11000)))
}
