package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"school-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger backs the payment processor with an in-memory record and
// mimics the repository's atomic apply: re-validate, then mutate.
type fakeLedger struct {
	record   *models.FeeRecord
	payments []*models.FeePayment
	seq      int
}

func (f *fakeLedger) Get(ctx context.Context, id int) (*models.FeeRecord, error) {
	if f.record == nil || f.record.ID != id {
		return nil, models.ErrRecordNotFound
	}
	clone := *f.record
	return &clone, nil
}

func (f *fakeLedger) ApplyPayment(ctx context.Context, payment *models.FeePayment) error {
	if f.record == nil || f.record.ID != payment.FeeRecordID {
		return models.ErrRecordNotFound
	}
	balance := f.record.BalanceDue()
	if balance <= 0 {
		return models.ErrAlreadySettled
	}
	if payment.Amount > balance {
		return models.ErrOverpayment
	}
	// Same duplicate rule as the repository: an immediate re-submission is
	// one matching record, amount and transaction reference
	for _, prev := range f.payments {
		if prev.FeeRecordID == payment.FeeRecordID &&
			prev.Amount == payment.Amount &&
			prev.TransactionRef == payment.TransactionRef {
			return models.ErrDuplicatePayment
		}
	}
	f.seq++
	payment.ReceiptNumber = fmt.Sprintf("RCP-%06d", f.seq)
	payment.Status = models.PaymentSuccess
	f.record.AmountPaid += payment.Amount
	f.payments = append(f.payments, payment)
	return nil
}

func ledgerWith(total, paid float64) *fakeLedger {
	rec := &models.FeeRecord{
		ID:          1,
		StudentID:   10,
		FeeType:     models.FeeTypeTuition,
		Amount:      total,
		AmountPaid:  paid,
		DueDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: total,
	}
	return &fakeLedger{record: rec}
}

func TestPayPartialThenSettle(t *testing.T) {
	ledger := ledgerWith(5000, 0)
	svc := NewPaymentService(ledger, ledger)
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	payment, err := svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 2000, PaymentMethod: models.MethodCash},
		models.PaidByAdmin, 5)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, payment.Amount)
	assert.NotEmpty(t, payment.ReceiptNumber)
	assert.Equal(t, 2000.0, ledger.record.AmountPaid)
	assert.Equal(t, models.StatusPartial, ledger.record.Status(now))

	_, err = svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 3000, PaymentMethod: models.MethodUPI},
		models.PaidByAdmin, 5)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, ledger.record.AmountPaid)
	assert.Equal(t, models.StatusPaid, ledger.record.Status(now))

	// amountPaid equals the sum of successful payments
	var sum float64
	for _, p := range ledger.payments {
		sum += p.Amount
	}
	assert.Equal(t, ledger.record.AmountPaid, sum)
}

func TestPayRejectsSettledRecord(t *testing.T) {
	ledger := ledgerWith(5000, 5000)
	svc := NewPaymentService(ledger, ledger)

	_, err := svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 100, PaymentMethod: models.MethodCash},
		models.PaidByAdmin, 5)
	assert.ErrorIs(t, err, models.ErrAlreadySettled)
	assert.Empty(t, ledger.payments)
}

func TestPayRejectsOverpayment(t *testing.T) {
	ledger := ledgerWith(5000, 2000)
	svc := NewPaymentService(ledger, ledger)

	// Balance is 3000; never clamp, reject outright
	_, err := svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 3001, PaymentMethod: models.MethodCash},
		models.PaidByAdmin, 5)
	assert.ErrorIs(t, err, models.ErrOverpayment)

	// The rejected attempt left no trace
	assert.Equal(t, 2000.0, ledger.record.AmountPaid)
	assert.Empty(t, ledger.payments)
}

func TestPayExactBalanceSucceeds(t *testing.T) {
	ledger := ledgerWith(5000, 2000)
	svc := NewPaymentService(ledger, ledger)

	_, err := svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 3000, PaymentMethod: models.MethodCard},
		models.PaidByParent, 8)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, ledger.record.AmountPaid)
	assert.Equal(t, models.PaidByParent, ledger.payments[0].PaidBy)
}

func TestPayValidation(t *testing.T) {
	ledger := ledgerWith(5000, 0)
	svc := NewPaymentService(ledger, ledger)

	_, err := svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 0, PaymentMethod: models.MethodCash},
		models.PaidByAdmin, 5)
	assert.Error(t, err)

	_, err = svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: -50, PaymentMethod: models.MethodCash},
		models.PaidByAdmin, 5)
	assert.Error(t, err)

	_, err = svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 100, PaymentMethod: "barter"},
		models.PaidByAdmin, 5)
	assert.Error(t, err)
}

func TestPayRepeatedAmountDistinctReferences(t *testing.T) {
	ledger := ledgerWith(5000, 0)
	svc := NewPaymentService(ledger, ledger)

	// Two deliberate payments of the same amount carry different references
	// and both go through
	_, err := svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 1000, PaymentMethod: models.MethodUPI, TransactionRef: "TXN-1"},
		models.PaidByParent, 8)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 1000, PaymentMethod: models.MethodUPI, TransactionRef: "TXN-2"},
		models.PaidByParent, 8)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, ledger.record.AmountPaid)

	// Re-submitting an identical payment is rejected and leaves no trace
	_, err = svc.Pay(context.Background(), 1,
		&models.PayRequest{Amount: 1000, PaymentMethod: models.MethodUPI, TransactionRef: "TXN-2"},
		models.PaidByParent, 8)
	assert.ErrorIs(t, err, models.ErrDuplicatePayment)
	assert.Equal(t, 2000.0, ledger.record.AmountPaid)
	assert.Len(t, ledger.payments, 2)
}

func TestPayUnknownRecord(t *testing.T) {
	ledger := ledgerWith(5000, 0)
	svc := NewPaymentService(ledger, ledger)

	_, err := svc.Pay(context.Background(), 42,
		&models.PayRequest{Amount: 100, PaymentMethod: models.MethodCash},
		models.PaidByAdmin, 5)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}
