package models

import "time"

// Payment method values
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodBankTransfer = "bank-transfer"
	MethodOnline       = "online"
	MethodCheque       = "cheque"
	MethodUPI          = "upi"
	MethodWallet       = "wallet"
)

// PaidBy values distinguish staff-recorded payments from parent self-service
const (
	PaidByAdmin  = "admin"
	PaidByParent = "parent"
)

// FeePayment is an immutable log entry of one payment applied to a FeeRecord.
// Corrections happen via new records, never edits.
type FeePayment struct {
	ID                int       `json:"id"`
	ReceiptNumber     string    `json:"receipt_number"`
	FeeRecordID       int       `json:"fee_record_id"`
	StudentID         int       `json:"student_id"`
	StudentName       string    `json:"student_name,omitempty"` // Joined from students table
	Amount            float64   `json:"amount"`
	PaymentMethod     string    `json:"payment_method"`
	PaidBy            string    `json:"paid_by"`
	TransactionRef    string    `json:"transaction_ref,omitempty"`
	Remarks           string    `json:"remarks,omitempty"`
	Status            string    `json:"status"` // success|pending|failed
	ProcessedByUserID int       `json:"processed_by_user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Payment row status values
const (
	PaymentSuccess = "success"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// PayRequest represents the request body for recording a payment
type PayRequest struct {
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	TransactionRef string  `json:"transaction_ref"`
	Remarks        string  `json:"remarks"`
}

// ValidPaymentMethod reports whether m is one of the accepted methods
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer, MethodOnline,
		MethodCheque, MethodUPI, MethodWallet:
		return true
	}
	return false
}
