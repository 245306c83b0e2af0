package models

import "time"

// Student is the enrolled-student directory entry the Assignment Engine
// expands structures over
type Student struct {
	ID              int       `json:"id"`
	AdmissionNumber string    `json:"admission_number"`
	Name            string    `json:"name"`
	ClassID         int       `json:"class_id"`
	ClassName       string    `json:"class_name"`
	GuardianName    string    `json:"guardian_name"`
	GuardianPhone   string    `json:"guardian_phone"`
	IsEnrolled      bool      `json:"is_enrolled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateStudentRequest represents the request body for creating a student
type CreateStudentRequest struct {
	AdmissionNumber string `json:"admission_number"`
	Name            string `json:"name"`
	ClassID         int    `json:"class_id"`
	ClassName       string `json:"class_name"`
	GuardianName    string `json:"guardian_name"`
	GuardianPhone   string `json:"guardian_phone"`
}
