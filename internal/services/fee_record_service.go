package services

import (
	"errors"
	"fmt"
	"time"

	"context"

	"school-backend/internal/models"
	"school-backend/internal/repositories"
	"school-backend/internal/timeutil"
)

// FeeRecordService owns direct (ad-hoc) record creation and maintenance.
// Bulk expansion from structures lives in AssignmentService.
type FeeRecordService struct {
	Repo *repositories.FeeRecordRepository
}

func NewFeeRecordService(repo *repositories.FeeRecordRepository) *FeeRecordService {
	return &FeeRecordService{Repo: repo}
}

func (s *FeeRecordService) Create(ctx context.Context, req *models.CreateFeeRecordRequest) (*models.FeeRecord, error) {
	if req.StudentID <= 0 {
		return nil, errors.New("student is required")
	}
	if !models.ValidFeeType(req.FeeType) {
		return nil, fmt.Errorf("invalid fee type %q", req.FeeType)
	}
	if req.Amount < 0 || req.Discount < 0 || req.Fine < 0 {
		return nil, errors.New("amount, discount and fine must not be negative")
	}
	if req.AcademicYear == "" {
		return nil, errors.New("academic year is required")
	}
	due, err := timeutil.ParseDate(req.DueDate)
	if err != nil {
		return nil, errors.New("due date is required (YYYY-MM-DD)")
	}

	rec := &models.FeeRecord{
		StudentID:    req.StudentID,
		FeeType:      req.FeeType,
		Description:  req.Description,
		Amount:       req.Amount,
		Discount:     req.Discount,
		Fine:         req.Fine,
		DueDate:      due,
		AcademicYear: req.AcademicYear,
	}
	rec.RecomputeTotal()
	if rec.TotalAmount < 0 {
		return nil, errors.New("discount exceeds amount plus fine")
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CreateBulk creates several ad-hoc records in one submission. Validation is
// all-or-nothing; creation proceeds record by record and reports the first
// failure.
func (s *FeeRecordService) CreateBulk(ctx context.Context, reqs []*models.CreateFeeRecordRequest) ([]*models.FeeRecord, error) {
	var created []*models.FeeRecord
	for i, req := range reqs {
		rec, err := s.Create(ctx, req)
		if err != nil {
			return created, fmt.Errorf("record %d: %w", i+1, err)
		}
		created = append(created, rec)
	}
	return created, nil
}

func (s *FeeRecordService) Get(ctx context.Context, id int) (*models.FeeRecord, error) {
	return s.Repo.Get(ctx, id)
}

// List applies the SQL-side filters, then the derived-status filter in Go so
// the overdue comparison happens in exactly one place.
func (s *FeeRecordService) List(ctx context.Context, filter models.FeeRecordFilter, now time.Time) ([]*models.FeeRecord, error) {
	records, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return filterByStatus(records, filter.PaymentStatus, now), nil
}

// filterByStatus narrows a record set to one derived status; an empty status
// keeps everything
func filterByStatus(records []*models.FeeRecord, status string, now time.Time) []*models.FeeRecord {
	if status == "" {
		return records
	}
	filtered := records[:0:0]
	for _, rec := range records {
		if rec.Status(now) == status {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func (s *FeeRecordService) ListByStudent(ctx context.Context, studentID int) ([]*models.FeeRecord, error) {
	return s.Repo.ListByStudent(ctx, studentID)
}

// Update edits amount/discount/fine/due date and recomputes the total. The
// paid amount is untouched; it only ever moves through the Payment
// Processor.
func (s *FeeRecordService) Update(ctx context.Context, id int, req *models.UpdateFeeRecordRequest) (*models.FeeRecord, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Amount < 0 || req.Discount < 0 || req.Fine < 0 {
		return nil, errors.New("amount, discount and fine must not be negative")
	}

	rec.Description = req.Description
	rec.Amount = req.Amount
	rec.Discount = req.Discount
	rec.Fine = req.Fine
	rec.RecomputeTotal()
	if rec.TotalAmount < rec.AmountPaid {
		return nil, errors.New("total amount cannot drop below the amount already paid")
	}
	if req.DueDate != "" {
		due, err := timeutil.ParseDate(req.DueDate)
		if err != nil {
			return nil, errors.New("invalid due date (YYYY-MM-DD)")
		}
		rec.DueDate = due
	}

	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FeeRecordService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
