package services

import (
	"testing"
	"time"

	"school-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func rec(id int, feeType string, total, paid float64, due time.Time) *models.FeeRecord {
	return &models.FeeRecord{
		ID:          id,
		FeeType:     feeType,
		Amount:      total,
		TotalAmount: total,
		AmountPaid:  paid,
		DueDate:     due,
	}
}

func TestSummarizeCountsAndTotals(t *testing.T) {
	now := statsNow()
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	records := []*models.FeeRecord{
		// 4 paid (one of them past due - paid wins)
		rec(1, models.FeeTypeTuition, 5000, 5000, future),
		rec(2, models.FeeTypeTuition, 5000, 5000, future),
		rec(3, models.FeeTypeExam, 1000, 1000, past),
		rec(4, models.FeeTypeLab, 800, 800, future),
		// 3 partial
		rec(5, models.FeeTypeTuition, 5000, 2000, future),
		rec(6, models.FeeTypeTransport, 1200, 600, future),
		rec(7, models.FeeTypeExam, 1000, 500, future),
		// 2 unpaid
		rec(8, models.FeeTypeSports, 400, 0, future),
		rec(9, models.FeeTypeLibrary, 300, 0, future),
		// 1 overdue
		rec(10, models.FeeTypeTuition, 5000, 0, past),
	}

	summary := Summarize(records, now, 10)

	assert.Equal(t, 4, summary.Counts.Paid)
	assert.Equal(t, 3, summary.Counts.Partial)
	assert.Equal(t, 2, summary.Counts.Unpaid)
	assert.Equal(t, 1, summary.Counts.Overdue)

	assert.Equal(t, 24700.0, summary.TotalAmount)
	assert.Equal(t, 14900.0, summary.TotalCollected)
	assert.Equal(t, 9800.0, summary.TotalPending)
	// 14900/24700 = 60.3% rounds to 60
	assert.Equal(t, 60, summary.CollectionRate)
}

func TestSummarizeByFeeTypeSumsMatchOverall(t *testing.T) {
	now := statsNow()
	future := now.AddDate(0, 1, 0)

	records := []*models.FeeRecord{
		rec(1, models.FeeTypeTuition, 5000, 2500, future),
		rec(2, models.FeeTypeTuition, 5000, 5000, future),
		rec(3, models.FeeTypeExam, 1000, 0, future),
		rec(4, models.FeeTypeTransport, 1200, 1200, future),
	}

	summary := Summarize(records, now, 10)

	var amount, collected float64
	var count int
	for _, group := range summary.ByFeeType {
		amount += group.TotalAmount
		collected += group.TotalCollected
		count += group.RecordCount
	}
	assert.Equal(t, summary.TotalAmount, amount)
	assert.Equal(t, summary.TotalCollected, collected)
	assert.Equal(t, len(records), count)

	// Stable alphabetical group order
	require.Len(t, summary.ByFeeType, 3)
	assert.Equal(t, models.FeeTypeExam, summary.ByFeeType[0].FeeType)
	assert.Equal(t, models.FeeTypeTransport, summary.ByFeeType[1].FeeType)
	assert.Equal(t, models.FeeTypeTuition, summary.ByFeeType[2].FeeType)
}

func TestSummarizeEmptySet(t *testing.T) {
	summary := Summarize(nil, statsNow(), 10)

	assert.Equal(t, 0.0, summary.TotalAmount)
	assert.Equal(t, 0, summary.CollectionRate) // no divide-by-zero
	assert.Empty(t, summary.Defaulters)
	assert.Empty(t, summary.ByFeeType)
}

func TestSummarizeDefaultersOrderAndTruncation(t *testing.T) {
	now := statsNow()

	records := []*models.FeeRecord{
		rec(1, models.FeeTypeTuition, 5000, 0, now.AddDate(0, 0, -3)),
		rec(2, models.FeeTypeTuition, 5000, 0, now.AddDate(0, 0, -30)),
		rec(3, models.FeeTypeTuition, 5000, 0, now.AddDate(0, 0, -10)),
		rec(4, models.FeeTypeTuition, 5000, 5000, now.AddDate(0, 0, -40)), // paid, not a defaulter
	}

	summary := Summarize(records, now, 2)

	// Oldest due date first, capped at topN
	require.Len(t, summary.Defaulters, 2)
	assert.Equal(t, 2, summary.Defaulters[0].ID)
	assert.Equal(t, 3, summary.Defaulters[1].ID)
	// Truncation is display-only: the overdue count still covers all three
	assert.Equal(t, 3, summary.Counts.Overdue)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	now := statsNow()
	records := []*models.FeeRecord{
		rec(1, models.FeeTypeTuition, 5000, 0, now.AddDate(0, 0, -3)),
		rec(2, models.FeeTypeExam, 1000, 0, now.AddDate(0, 0, -9)),
	}

	Summarize(records, now, 10)

	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, 2, records[1].ID)
	assert.Equal(t, 0.0, records[0].AmountPaid)
}
