package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"school-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeeLister serves per-student record sets and tracks how many lookups
// run concurrently
type fakeFeeLister struct {
	mu          sync.Mutex
	byStudent   map[int][]*models.FeeRecord
	failFor     map[int]bool
	inFlight    int
	maxInFlight int
}

func (f *fakeFeeLister) ListByStudent(ctx context.Context, studentID int) ([]*models.FeeRecord, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if f.failFor[studentID] {
		return nil, errors.New("lookup failed")
	}
	return f.byStudent[studentID], nil
}

func TestClassStatusBoundedBatches(t *testing.T) {
	lister := &fakeFeeLister{byStudent: map[int][]*models.FeeRecord{}}
	svc := NewClassStatusService(&fakeEnrolledLister{students: classOf(12)}, lister)

	rows, err := svc.ClassStatus(context.Background(), 7, statsNow())
	require.NoError(t, err)
	assert.Len(t, rows, 12)

	// Lookups within a batch run concurrently; batches never overlap
	assert.LessOrEqual(t, lister.maxInFlight, feeBatchSize)
	assert.Greater(t, lister.maxInFlight, 1)
}

func TestClassStatusWorstStatusWins(t *testing.T) {
	now := statsNow()
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	lister := &fakeFeeLister{byStudent: map[int][]*models.FeeRecord{
		1: {rec(1, models.FeeTypeTuition, 5000, 5000, future)},                                            // all paid
		2: {rec(2, models.FeeTypeTuition, 5000, 5000, future), rec(3, models.FeeTypeExam, 1000, 500, future)}, // partial drags it down
		3: {rec(4, models.FeeTypeTuition, 5000, 5000, future), rec(5, models.FeeTypeExam, 1000, 0, past)},     // overdue dominates
	}}
	svc := NewClassStatusService(&fakeEnrolledLister{students: classOf(3)}, lister)

	rows, err := svc.ClassStatus(context.Background(), 7, now)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.StatusPaid, rows[0].Status)
	assert.Equal(t, models.StatusPartial, rows[1].Status)
	assert.Equal(t, models.StatusOverdue, rows[2].Status)

	assert.Equal(t, 6000.0, rows[2].TotalDue)
	assert.Equal(t, 5000.0, rows[2].TotalPaid)
	assert.Equal(t, 1000.0, rows[2].BalanceDue)
}

func TestClassStatusFailureIsolation(t *testing.T) {
	now := statsNow()
	future := now.AddDate(0, 1, 0)

	lister := &fakeFeeLister{
		byStudent: map[int][]*models.FeeRecord{
			1: {rec(1, models.FeeTypeTuition, 5000, 0, future)},
			3: {rec(2, models.FeeTypeTuition, 5000, 5000, future)},
		},
		failFor: map[int]bool{2: true},
	}
	svc := NewClassStatusService(&fakeEnrolledLister{students: classOf(3)}, lister)

	rows, err := svc.ClassStatus(context.Background(), 7, now)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// One failed lookup degrades that row only
	assert.False(t, rows[0].Failed)
	assert.True(t, rows[1].Failed)
	assert.Empty(t, rows[1].Records)
	assert.False(t, rows[2].Failed)
	assert.Equal(t, models.StatusPaid, rows[2].Status)
}

func TestClassStatusStudentsError(t *testing.T) {
	svc := NewClassStatusService(
		&fakeEnrolledLister{err: errors.New("db down")},
		&fakeFeeLister{},
	)

	_, err := svc.ClassStatus(context.Background(), 7, statsNow())
	assert.Error(t, err)
}
