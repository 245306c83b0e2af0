package models

import "time"

// Payment status values. "paid", "partial" and "unpaid" follow from the
// amounts alone; "overdue" is a read-time view over unpaid/partial records
// whose due date has passed. Status is never stored - it is derived on every
// read so the stored row can never drift from the time-based truth.
const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// FeeRecord is one student's obligation instance with payment progress
type FeeRecord struct {
	ID             int       `json:"id"`
	StudentID      int       `json:"student_id"`
	StudentName    string    `json:"student_name,omitempty"` // Joined from students table
	FeeStructureID *int      `json:"fee_structure_id"`       // nil for ad-hoc records
	FeeType        string    `json:"fee_type"`
	Description    string    `json:"description"`
	Amount         float64   `json:"amount"`
	Discount       float64   `json:"discount"`
	Fine           float64   `json:"fine"`
	TotalAmount    float64   `json:"total_amount"`
	AmountPaid     float64   `json:"amount_paid"`
	DueDate        time.Time `json:"due_date"`
	AcademicYear   string    `json:"academic_year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BalanceDue is always totalAmount - amountPaid and never negative
func (r *FeeRecord) BalanceDue() float64 {
	b := r.TotalAmount - r.AmountPaid
	if b < 0 {
		return 0
	}
	return b
}

// RecomputeTotal re-derives totalAmount from amount, discount and fine.
// Called whenever any of the three change.
func (r *FeeRecord) RecomputeTotal() {
	r.TotalAmount = r.Amount - r.Discount + r.Fine
}

// Status derives the payment status at the given instant. Paid always wins
// over overdue.
func (r *FeeRecord) Status(now time.Time) string {
	return DeriveStatus(r.AmountPaid, r.TotalAmount, r.DueDate, now)
}

// DeriveStatus is the single status derivation used by every call site:
// services, aggregation and the document renderer.
func DeriveStatus(amountPaid, totalAmount float64, dueDate, now time.Time) string {
	if amountPaid >= totalAmount && totalAmount > 0 {
		return StatusPaid
	}
	if totalAmount == 0 && amountPaid >= 0 {
		// A zero-total record has nothing owed; report it as paid so it
		// never shows up as a defaulter.
		return StatusPaid
	}
	if dueDate.Before(now) {
		return StatusOverdue
	}
	if amountPaid > 0 {
		return StatusPartial
	}
	return StatusUnpaid
}

// CreateFeeRecordRequest represents the request body for a direct (ad-hoc) record
type CreateFeeRecordRequest struct {
	StudentID    int     `json:"student_id"`
	FeeType      string  `json:"fee_type"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Discount     float64 `json:"discount"`
	Fine         float64 `json:"fine"`
	DueDate      string  `json:"due_date"` // YYYY-MM-DD
	AcademicYear string  `json:"academic_year"`
}

// UpdateFeeRecordRequest adjusts amount/discount/fine/due date; totals are
// recomputed server-side
type UpdateFeeRecordRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Discount    float64 `json:"discount"`
	Fine        float64 `json:"fine"`
	DueDate     string  `json:"due_date"`
}

// FeeRecordFilter narrows GET /fees listings
type FeeRecordFilter struct {
	FeeType       string
	PaymentStatus string
	AcademicYear  string
	ClassID       int
	Search        string
}
