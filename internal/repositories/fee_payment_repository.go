package repositories

import (
	"context"
	"errors"
	"fmt"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeePaymentRepository struct {
	DB *pgxpool.Pool
}

func NewFeePaymentRepository(db *pgxpool.Pool) *FeePaymentRepository {
	return &FeePaymentRepository{DB: db}
}

// ApplyPayment records a payment atomically: the fee record row is locked,
// the balance re-validated under the lock, the payment row appended and the
// record's amount_paid advanced, all in one transaction. The service layer
// validates first for a friendly error; this re-check closes the race window
// between two concurrent payments against the same record.
func (r *FeePaymentRepository) ApplyPayment(ctx context.Context, payment *models.FeePayment) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin payment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalAmount, amountPaid float64
	var studentID int
	err = tx.QueryRow(ctx, `
		SELECT total_amount, amount_paid, student_id
		FROM fee_records
		WHERE id = $1
		FOR UPDATE
	`, payment.FeeRecordID).Scan(&totalAmount, &amountPaid, &studentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	balance := totalAmount - amountPaid
	if balance <= 0 {
		return models.ErrAlreadySettled
	}
	if payment.Amount > balance {
		return models.ErrOverpayment
	}

	// Reject identical rapid re-submissions (same record, same amount, same
	// reference, within 10 seconds). Matching the reference keeps distinct
	// intentional payments of the same amount from being blocked.
	var dupes int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM fee_payments
		WHERE fee_record_id = $1
		AND amount = $2
		AND COALESCE(transaction_ref, '') = $3
		AND created_at > NOW() - INTERVAL '10 seconds'
	`, payment.FeeRecordID, payment.Amount, payment.TransactionRef).Scan(&dupes)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate payment: %w", err)
	}
	if dupes > 0 {
		return models.ErrDuplicatePayment
	}

	var nextNum int
	if err := tx.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum); err != nil {
		return fmt.Errorf("failed to get next receipt number: %w", err)
	}
	receiptNumber := fmt.Sprintf("RCP-%06d", nextNum)

	err = tx.QueryRow(ctx, `
		INSERT INTO fee_payments (receipt_number, fee_record_id, student_id, amount,
		                          payment_method, paid_by, transaction_ref, remarks,
		                          status, processed_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`,
		receiptNumber,
		payment.FeeRecordID,
		studentID,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaidBy,
		payment.TransactionRef,
		payment.Remarks,
		models.PaymentSuccess,
		payment.ProcessedByUserID,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE fee_records
		SET amount_paid = amount_paid + $1, updated_at = NOW()
		WHERE id = $2
	`, payment.Amount, payment.FeeRecordID)
	if err != nil {
		return fmt.Errorf("failed to update fee record balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit payment: %w", err)
	}

	payment.ReceiptNumber = receiptNumber
	payment.StudentID = studentID
	payment.Status = models.PaymentSuccess
	return nil
}

const feePaymentColumns = `
	p.id, p.receipt_number, p.fee_record_id, p.student_id, COALESCE(s.name, ''),
	p.amount, p.payment_method, p.paid_by, COALESCE(p.transaction_ref, ''),
	COALESCE(p.remarks, ''), p.status, COALESCE(p.processed_by_user_id, 0), p.created_at
`

func scanFeePayment(row pgx.Row) (*models.FeePayment, error) {
	p := &models.FeePayment{}
	err := row.Scan(
		&p.ID,
		&p.ReceiptNumber,
		&p.FeeRecordID,
		&p.StudentID,
		&p.StudentName,
		&p.Amount,
		&p.PaymentMethod,
		&p.PaidBy,
		&p.TransactionRef,
		&p.Remarks,
		&p.Status,
		&p.ProcessedByUserID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *FeePaymentRepository) Get(ctx context.Context, id int) (*models.FeePayment, error) {
	query := `
		SELECT ` + feePaymentColumns + `
		FROM fee_payments p
		LEFT JOIN students s ON p.student_id = s.id
		WHERE p.id = $1
	`
	return scanFeePayment(r.DB.QueryRow(ctx, query, id))
}

func (r *FeePaymentRepository) ListByStudent(ctx context.Context, studentID int) ([]*models.FeePayment, error) {
	query := `
		SELECT ` + feePaymentColumns + `
		FROM fee_payments p
		LEFT JOIN students s ON p.student_id = s.id
		WHERE p.student_id = $1
		ORDER BY p.created_at DESC
	`
	return r.queryPayments(ctx, query, studentID)
}

func (r *FeePaymentRepository) ListByFeeRecord(ctx context.Context, feeRecordID int) ([]*models.FeePayment, error) {
	query := `
		SELECT ` + feePaymentColumns + `
		FROM fee_payments p
		LEFT JOIN students s ON p.student_id = s.id
		WHERE p.fee_record_id = $1
		ORDER BY p.created_at DESC
	`
	return r.queryPayments(ctx, query, feeRecordID)
}

func (r *FeePaymentRepository) List(ctx context.Context, limit int) ([]*models.FeePayment, error) {
	query := `
		SELECT ` + feePaymentColumns + `
		FROM fee_payments p
		LEFT JOIN students s ON p.student_id = s.id
		ORDER BY p.created_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return r.queryPayments(ctx, query)
}

func (r *FeePaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*models.FeePayment, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.FeePayment
	for rows.Next() {
		p, err := scanFeePayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
