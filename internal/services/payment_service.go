package services

import (
	"context"
	"errors"
	"fmt"

	"school-backend/internal/metrics"
	"school-backend/internal/models"
)

type recordGetter interface {
	Get(ctx context.Context, id int) (*models.FeeRecord, error)
}

type paymentApplier interface {
	ApplyPayment(ctx context.Context, payment *models.FeePayment) error
}

// PaymentService is the Payment Processor: it validates a payment against
// the record's current balance and applies it atomically. It never clamps -
// an overpayment is rejected outright so the caller can correct the amount.
type PaymentService struct {
	Records  recordGetter
	Payments paymentApplier
}

func NewPaymentService(records recordGetter, payments paymentApplier) *PaymentService {
	return &PaymentService{Records: records, Payments: payments}
}

// Pay records a payment against a fee record on behalf of paidBy
// ("admin" for staff-recorded, "parent" for self-service). The returned
// payment carries the freshly minted receipt number.
func (s *PaymentService) Pay(ctx context.Context, feeRecordID int, req *models.PayRequest, paidBy string, processedByUserID int) (*models.FeePayment, error) {
	if req.Amount <= 0 {
		metrics.PaymentsRejectedTotal.WithLabelValues("non_positive_amount").Inc()
		return nil, errors.New("payment amount must be greater than zero")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		metrics.PaymentsRejectedTotal.WithLabelValues("invalid_method").Inc()
		return nil, fmt.Errorf("invalid payment method %q", req.PaymentMethod)
	}

	rec, err := s.Records.Get(ctx, feeRecordID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			metrics.PaymentsRejectedTotal.WithLabelValues("record_not_found").Inc()
		}
		return nil, err
	}

	balance := rec.BalanceDue()
	if balance <= 0 {
		metrics.PaymentsRejectedTotal.WithLabelValues("already_settled").Inc()
		return nil, models.ErrAlreadySettled
	}
	if req.Amount > balance {
		metrics.PaymentsRejectedTotal.WithLabelValues("overpayment").Inc()
		return nil, models.ErrOverpayment
	}

	payment := &models.FeePayment{
		FeeRecordID:       feeRecordID,
		StudentID:         rec.StudentID,
		Amount:            req.Amount,
		PaymentMethod:     req.PaymentMethod,
		PaidBy:            paidBy,
		TransactionRef:    req.TransactionRef,
		Remarks:           req.Remarks,
		ProcessedByUserID: processedByUserID,
	}

	// The repository re-validates under a row lock; a concurrent payment
	// that settles the record first surfaces here as the same typed errors.
	if err := s.Payments.ApplyPayment(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(payment.PaymentMethod, payment.PaidBy).Inc()
	return payment, nil
}
