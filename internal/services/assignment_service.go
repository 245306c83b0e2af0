package services

import (
	"context"
	"fmt"

	"school-backend/internal/models"
)

// structureGetter, enrolledLister and recordCreator are the slices of the
// repositories the Assignment Engine needs; narrow interfaces keep the
// engine testable without a database.
type structureGetter interface {
	Get(ctx context.Context, id int) (*models.FeeStructure, error)
}

type enrolledLister interface {
	ListEnrolledByClass(ctx context.Context, classID int) ([]*models.Student, error)
}

type recordCreator interface {
	ListStudentIDsForStructure(ctx context.Context, structureID int) (map[int]bool, error)
	BulkCreateForStructure(ctx context.Context, records []*models.FeeRecord) (int, error)
}

// AssignmentService expands a fee structure into one FeeRecord per enrolled
// student of the target class
type AssignmentService struct {
	Structures structureGetter
	Students   enrolledLister
	Records    recordCreator
}

func NewAssignmentService(structures structureGetter, students enrolledLister, records recordCreator) *AssignmentService {
	return &AssignmentService{
		Structures: structures,
		Students:   students,
		Records:    records,
	}
}

// Assign creates the missing records for the structure's class and returns
// how many were created. Re-running is a no-op for students already holding
// a record: the pre-check skips them and the unique index backstops any
// race. An empty class yields created 0, not an error.
func (s *AssignmentService) Assign(ctx context.Context, structureID int) (int, error) {
	structure, err := s.Structures.Get(ctx, structureID)
	if err != nil {
		return 0, fmt.Errorf("fee structure not found: %w", err)
	}
	if !structure.IsActive {
		return 0, fmt.Errorf("fee structure %q is inactive and cannot be assigned", structure.Name)
	}

	students, err := s.Students.ListEnrolledByClass(ctx, structure.ClassID)
	if err != nil {
		return 0, fmt.Errorf("failed to list students for class %d: %w", structure.ClassID, err)
	}
	if len(students) == 0 {
		return 0, nil
	}

	existing, err := s.Records.ListStudentIDsForStructure(ctx, structureID)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing records: %w", err)
	}

	var records []*models.FeeRecord
	for _, student := range students {
		if existing[student.ID] {
			continue
		}
		sid := structureID
		rec := &models.FeeRecord{
			StudentID:      student.ID,
			FeeStructureID: &sid,
			FeeType:        structure.FeeType,
			Description:    structure.Name,
			Amount:         structure.Amount,
			Discount:       0,
			Fine:           0,
			AmountPaid:     0,
			DueDate:        structure.DueDate,
			AcademicYear:   structure.AcademicYear,
		}
		rec.RecomputeTotal()
		records = append(records, rec)
	}
	if len(records) == 0 {
		return 0, nil
	}

	return s.Records.BulkCreateForStructure(ctx, records)
}
