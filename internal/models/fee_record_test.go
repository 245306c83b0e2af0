package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	now := date(2025, 6, 15)
	future := date(2025, 7, 1)
	past := date(2025, 6, 1)

	tests := []struct {
		name        string
		paid, total float64
		dueDate     time.Time
		want        string
	}{
		{"nothing paid, not due", 0, 5000, future, StatusUnpaid},
		{"partially paid, not due", 2000, 5000, future, StatusPartial},
		{"fully paid", 5000, 5000, future, StatusPaid},
		{"unpaid past due", 0, 5000, past, StatusOverdue},
		{"partial past due", 2000, 5000, past, StatusOverdue},
		// Paid wins over overdue even when the due date has passed
		{"paid past due", 5000, 5000, past, StatusPaid},
		{"zero total counts as settled", 0, 0, past, StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.paid, tt.total, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeeRecordBalanceDue(t *testing.T) {
	rec := &FeeRecord{TotalAmount: 5000, AmountPaid: 2000}
	assert.Equal(t, 3000.0, rec.BalanceDue())

	rec.AmountPaid = 5000
	assert.Equal(t, 0.0, rec.BalanceDue())

	// Never negative, even if stored amounts drift
	rec.AmountPaid = 6000
	assert.Equal(t, 0.0, rec.BalanceDue())
}

func TestFeeRecordRecomputeTotal(t *testing.T) {
	rec := &FeeRecord{Amount: 5000, Discount: 500, Fine: 200}
	rec.RecomputeTotal()
	assert.Equal(t, 4700.0, rec.TotalAmount)

	rec.Discount = 0
	rec.Fine = 0
	rec.RecomputeTotal()
	assert.Equal(t, 5000.0, rec.TotalAmount)
}

func TestFeeRecordStatusTransitions(t *testing.T) {
	now := date(2025, 6, 15)
	rec := &FeeRecord{Amount: 5000, DueDate: date(2025, 7, 1)}
	rec.RecomputeTotal()

	assert.Equal(t, StatusUnpaid, rec.Status(now))

	rec.AmountPaid = 2000
	assert.Equal(t, StatusPartial, rec.Status(now))

	rec.AmountPaid = 5000
	assert.Equal(t, StatusPaid, rec.Status(now))

	// Status is read-time: the same record flips to overdue after the due
	// date passes, without any write
	rec.AmountPaid = 2000
	assert.Equal(t, StatusOverdue, rec.Status(date(2025, 7, 2)))
}

func TestValidFeeTypeAndMethod(t *testing.T) {
	assert.True(t, ValidFeeType(FeeTypeTuition))
	assert.False(t, ValidFeeType("donation"))
	assert.True(t, ValidPaymentMethod(MethodUPI))
	assert.False(t, ValidPaymentMethod("barter"))
}
