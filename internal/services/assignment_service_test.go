package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"school-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStructureGetter struct {
	structure *models.FeeStructure
	err       error
}

func (f *fakeStructureGetter) Get(ctx context.Context, id int) (*models.FeeStructure, error) {
	return f.structure, f.err
}

type fakeEnrolledLister struct {
	students []*models.Student
	err      error
}

func (f *fakeEnrolledLister) ListEnrolledByClass(ctx context.Context, classID int) ([]*models.Student, error) {
	return f.students, f.err
}

type fakeRecordStore struct {
	existing map[int]bool
	created  []*models.FeeRecord
}

func (f *fakeRecordStore) ListStudentIDsForStructure(ctx context.Context, structureID int) (map[int]bool, error) {
	if f.existing == nil {
		return map[int]bool{}, nil
	}
	return f.existing, nil
}

func (f *fakeRecordStore) BulkCreateForStructure(ctx context.Context, records []*models.FeeRecord) (int, error) {
	f.created = append(f.created, records...)
	for _, rec := range records {
		if f.existing == nil {
			f.existing = map[int]bool{}
		}
		f.existing[rec.StudentID] = true
	}
	return len(records), nil
}

func activeStructure() *models.FeeStructure {
	return &models.FeeStructure{
		ID:           1,
		Name:         "Term 1 Tuition",
		FeeType:      models.FeeTypeTuition,
		ClassID:      7,
		AcademicYear: "2025",
		Amount:       5000,
		DueDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Frequency:    models.FrequencyOneTime,
		IsActive:     true,
	}
}

func classOf(n int) []*models.Student {
	students := make([]*models.Student, n)
	for i := range students {
		students[i] = &models.Student{ID: i + 1, Name: "Student", ClassID: 7, IsEnrolled: true}
	}
	return students
}

func TestAssignCreatesOneRecordPerStudent(t *testing.T) {
	store := &fakeRecordStore{}
	svc := NewAssignmentService(
		&fakeStructureGetter{structure: activeStructure()},
		&fakeEnrolledLister{students: classOf(3)},
		store,
	)

	created, err := svc.Assign(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	require.Len(t, store.created, 3)

	for _, rec := range store.created {
		assert.Equal(t, models.FeeTypeTuition, rec.FeeType)
		assert.Equal(t, 5000.0, rec.Amount)
		assert.Equal(t, 5000.0, rec.TotalAmount)
		assert.Equal(t, 0.0, rec.AmountPaid)
		require.NotNil(t, rec.FeeStructureID)
		assert.Equal(t, 1, *rec.FeeStructureID)
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	store := &fakeRecordStore{}
	svc := NewAssignmentService(
		&fakeStructureGetter{structure: activeStructure()},
		&fakeEnrolledLister{students: classOf(3)},
		store,
	)

	created, err := svc.Assign(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	// Re-running creates nothing new
	created, err = svc.Assign(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, store.created, 3)
}

func TestAssignSkipsStudentsAlreadyHoldingRecords(t *testing.T) {
	store := &fakeRecordStore{existing: map[int]bool{1: true, 2: true}}
	svc := NewAssignmentService(
		&fakeStructureGetter{structure: activeStructure()},
		&fakeEnrolledLister{students: classOf(3)},
		store,
	)

	created, err := svc.Assign(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Len(t, store.created, 1)
	assert.Equal(t, 3, store.created[0].StudentID)
}

func TestAssignEmptyClassIsNotAnError(t *testing.T) {
	svc := NewAssignmentService(
		&fakeStructureGetter{structure: activeStructure()},
		&fakeEnrolledLister{students: nil},
		&fakeRecordStore{},
	)

	created, err := svc.Assign(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestAssignRejectsInactiveStructure(t *testing.T) {
	structure := activeStructure()
	structure.IsActive = false

	svc := NewAssignmentService(
		&fakeStructureGetter{structure: structure},
		&fakeEnrolledLister{students: classOf(3)},
		&fakeRecordStore{},
	)

	_, err := svc.Assign(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestAssignUnknownStructure(t *testing.T) {
	svc := NewAssignmentService(
		&fakeStructureGetter{err: errors.New("no rows")},
		&fakeEnrolledLister{},
		&fakeRecordStore{},
	)

	_, err := svc.Assign(context.Background(), 99)
	assert.Error(t, err)
}
