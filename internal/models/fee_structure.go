package models

import "time"

// Fee type values accepted for structures and records
const (
	FeeTypeTuition   = "tuition"
	FeeTypeExam      = "exam"
	FeeTypeTransport = "transport"
	FeeTypeFine      = "fine"
	FeeTypeLibrary   = "library"
	FeeTypeLab       = "lab"
	FeeTypeAdmission = "admission"
	FeeTypeSports    = "sports"
	FeeTypeOther     = "other"
)

// Frequency values for fee structures
const (
	FrequencyOneTime   = "one-time"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// FeeStructure is a reusable fee template assigned onto the students of a class
type FeeStructure struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	FeeType      string    `json:"fee_type"`
	ClassID      int       `json:"class_id"`
	AcademicYear string    `json:"academic_year"`
	Amount       float64   `json:"amount"`
	DueDate      time.Time `json:"due_date"`
	Frequency    string    `json:"frequency"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateFeeStructureRequest represents the request body for creating a structure
type CreateFeeStructureRequest struct {
	Name         string  `json:"name"`
	FeeType      string  `json:"fee_type"`
	ClassID      int     `json:"class_id"`
	AcademicYear string  `json:"academic_year"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"due_date"` // YYYY-MM-DD
	Frequency    string  `json:"frequency"`
}

// MultiFeeStructureRequest creates up to four structures in one submission,
// one per non-zero component amount. A zero component means "not applicable".
type MultiFeeStructureRequest struct {
	BaseName        string  `json:"base_name"`
	ClassID         int     `json:"class_id"`
	AcademicYear    string  `json:"academic_year"`
	DueDate         string  `json:"due_date"`
	Frequency       string  `json:"frequency"`
	TuitionAmount   float64 `json:"tuition_amount"`
	ExamAmount      float64 `json:"exam_amount"`
	TransportAmount float64 `json:"transport_amount"`
	FineAmount      float64 `json:"fine_amount"`
}

// ValidFeeType reports whether t is one of the accepted fee types
func ValidFeeType(t string) bool {
	switch t {
	case FeeTypeTuition, FeeTypeExam, FeeTypeTransport, FeeTypeFine,
		FeeTypeLibrary, FeeTypeLab, FeeTypeAdmission, FeeTypeSports, FeeTypeOther:
		return true
	}
	return false
}

// ValidFrequency reports whether f is one of the accepted frequencies
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}
