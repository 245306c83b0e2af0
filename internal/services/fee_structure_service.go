package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"school-backend/internal/models"
	"school-backend/internal/repositories"
	"school-backend/internal/timeutil"
)

// FeeStructureService owns the fee template catalog
type FeeStructureService struct {
	Repo *repositories.FeeStructureRepository
}

func NewFeeStructureService(repo *repositories.FeeStructureRepository) *FeeStructureService {
	return &FeeStructureService{Repo: repo}
}

func validateStructureFields(name, feeType, academicYear, frequency string, classID int, amount float64, dueDate string) (time.Time, error) {
	if name == "" {
		return time.Time{}, errors.New("name is required")
	}
	if !models.ValidFeeType(feeType) {
		return time.Time{}, fmt.Errorf("invalid fee type %q", feeType)
	}
	if classID <= 0 {
		return time.Time{}, errors.New("class is required")
	}
	if academicYear == "" {
		return time.Time{}, errors.New("academic year is required")
	}
	if amount < 0 {
		return time.Time{}, errors.New("amount must not be negative")
	}
	if frequency != "" && !models.ValidFrequency(frequency) {
		return time.Time{}, fmt.Errorf("invalid frequency %q", frequency)
	}
	due, err := timeutil.ParseDate(dueDate)
	if err != nil {
		return time.Time{}, errors.New("due date is required (YYYY-MM-DD)")
	}
	return due, nil
}

func (s *FeeStructureService) Create(ctx context.Context, req *models.CreateFeeStructureRequest) (*models.FeeStructure, error) {
	due, err := validateStructureFields(req.Name, req.FeeType, req.AcademicYear, req.Frequency, req.ClassID, req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyOneTime
	}

	structure := &models.FeeStructure{
		Name:         req.Name,
		FeeType:      req.FeeType,
		ClassID:      req.ClassID,
		AcademicYear: req.AcademicYear,
		Amount:       req.Amount,
		DueDate:      due,
		Frequency:    frequency,
	}
	if err := s.Repo.Create(ctx, structure); err != nil {
		return nil, err
	}
	return structure, nil
}

// CreateMulti expands a multi-component submission into one structure per
// non-zero component. A zero component means "not applicable" and is
// skipped; a genuine zero-amount fee goes through Create instead.
func (s *FeeStructureService) CreateMulti(ctx context.Context, req *models.MultiFeeStructureRequest) ([]*models.FeeStructure, error) {
	components := []struct {
		label   string
		feeType string
		amount  float64
	}{
		{"Tuition", models.FeeTypeTuition, req.TuitionAmount},
		{"Exam", models.FeeTypeExam, req.ExamAmount},
		{"Transport", models.FeeTypeTransport, req.TransportAmount},
		{"Fine", models.FeeTypeFine, req.FineAmount},
	}

	hasAny := false
	for _, c := range components {
		if c.amount < 0 {
			return nil, fmt.Errorf("%s amount must not be negative", c.label)
		}
		if c.amount > 0 {
			hasAny = true
		}
	}
	if !hasAny {
		return nil, errors.New("at least one component amount is required")
	}

	var created []*models.FeeStructure
	for _, c := range components {
		if c.amount == 0 {
			continue
		}
		structure, err := s.Create(ctx, &models.CreateFeeStructureRequest{
			Name:         req.BaseName + " - " + c.label,
			FeeType:      c.feeType,
			ClassID:      req.ClassID,
			AcademicYear: req.AcademicYear,
			Amount:       c.amount,
			DueDate:      req.DueDate,
			Frequency:    req.Frequency,
		})
		if err != nil {
			return created, err
		}
		created = append(created, structure)
	}
	return created, nil
}

func (s *FeeStructureService) Get(ctx context.Context, id int) (*models.FeeStructure, error) {
	return s.Repo.Get(ctx, id)
}

func (s *FeeStructureService) List(ctx context.Context) ([]*models.FeeStructure, error) {
	return s.Repo.List(ctx)
}

func (s *FeeStructureService) Update(ctx context.Context, id int, req *models.CreateFeeStructureRequest) (*models.FeeStructure, error) {
	due, err := validateStructureFields(req.Name, req.FeeType, req.AcademicYear, req.Frequency, req.ClassID, req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}

	structure, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	structure.Name = req.Name
	structure.FeeType = req.FeeType
	structure.ClassID = req.ClassID
	structure.AcademicYear = req.AcademicYear
	structure.Amount = req.Amount
	structure.DueDate = due
	if req.Frequency != "" {
		structure.Frequency = req.Frequency
	}

	if err := s.Repo.Update(ctx, structure); err != nil {
		return nil, err
	}
	return structure, nil
}

// ToggleActive flips visibility for future assignment without touching any
// already-generated fee records
func (s *FeeStructureService) ToggleActive(ctx context.Context, id int) (*models.FeeStructure, error) {
	return s.Repo.ToggleActive(ctx, id)
}

func (s *FeeStructureService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
