package services

import (
	"context"
	"sync"
	"time"

	"school-backend/internal/models"
)

// feeBatchSize bounds concurrent record lookups against the database:
// batches run sequentially, lookups within a batch run concurrently.
const feeBatchSize = 5

type studentFeeLister interface {
	ListByStudent(ctx context.Context, studentID int) ([]*models.FeeRecord, error)
}

// ClassFeeStatusRow is one student's line in a class-wide fee status view.
// A failed lookup degrades to Failed=true with empty records instead of
// aborting the rest of the class.
type ClassFeeStatusRow struct {
	Student    *models.Student     `json:"student"`
	Records    []*models.FeeRecord `json:"records"`
	TotalDue   float64             `json:"total_due"`
	TotalPaid  float64             `json:"total_paid"`
	BalanceDue float64             `json:"balance_due"`
	Status     string              `json:"status"`
	Failed     bool                `json:"failed"`
}

// ClassStatusService assembles the fee standing of every student in a class
type ClassStatusService struct {
	Students enrolledLister
	Records  studentFeeLister
}

func NewClassStatusService(students enrolledLister, records studentFeeLister) *ClassStatusService {
	return &ClassStatusService{Students: students, Records: records}
}

// ClassStatus fetches per-student fee records in bounded batches and derives
// each student's worst-case status at the given instant.
func (s *ClassStatusService) ClassStatus(ctx context.Context, classID int, now time.Time) ([]*ClassFeeStatusRow, error) {
	students, err := s.Students.ListEnrolledByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	rows := make([]*ClassFeeStatusRow, len(students))
	for start := 0; start < len(students); start += feeBatchSize {
		end := start + feeBatchSize
		if end > len(students) {
			end = len(students)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rows[i] = s.studentRow(ctx, students[i], now)
			}(i)
		}
		wg.Wait()
	}

	return rows, nil
}

func (s *ClassStatusService) studentRow(ctx context.Context, student *models.Student, now time.Time) *ClassFeeStatusRow {
	row := &ClassFeeStatusRow{Student: student, Status: models.StatusPaid}

	records, err := s.Records.ListByStudent(ctx, student.ID)
	if err != nil {
		row.Failed = true
		row.Status = ""
		return row
	}

	row.Records = records
	for _, rec := range records {
		row.TotalDue += rec.TotalAmount
		row.TotalPaid += rec.AmountPaid
		row.BalanceDue += rec.BalanceDue()

		// Worst status wins for the row: overdue > unpaid > partial > paid
		switch rec.Status(now) {
		case models.StatusOverdue:
			row.Status = models.StatusOverdue
		case models.StatusUnpaid:
			if row.Status != models.StatusOverdue {
				row.Status = models.StatusUnpaid
			}
		case models.StatusPartial:
			if row.Status == models.StatusPaid {
				row.Status = models.StatusPartial
			}
		}
	}
	return row
}
