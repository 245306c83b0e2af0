package services

import (
	"math"
	"sort"
	"time"

	"school-backend/internal/models"
)

// Summarize computes the aggregate snapshot for a record set. It is a pure
// function of its inputs: no hidden state, safe to call repeatedly and in
// parallel, never mutates the records.
func Summarize(records []*models.FeeRecord, now time.Time, defaultersTopN int) *models.FeeSummary {
	summary := &models.FeeSummary{}
	byType := make(map[string]*models.FeeTypeTotals)
	var defaulters []*models.FeeRecord

	for _, rec := range records {
		summary.TotalAmount += rec.TotalAmount
		summary.TotalCollected += rec.AmountPaid

		// Each record lands in exactly one bucket; paid wins over overdue
		switch rec.Status(now) {
		case models.StatusPaid:
			summary.Counts.Paid++
		case models.StatusPartial:
			summary.Counts.Partial++
		case models.StatusOverdue:
			summary.Counts.Overdue++
			defaulters = append(defaulters, rec)
		default:
			summary.Counts.Unpaid++
		}

		group, ok := byType[rec.FeeType]
		if !ok {
			group = &models.FeeTypeTotals{FeeType: rec.FeeType}
			byType[rec.FeeType] = group
		}
		group.TotalAmount += rec.TotalAmount
		group.TotalCollected += rec.AmountPaid
		group.RecordCount++
	}

	summary.TotalPending = summary.TotalAmount - summary.TotalCollected

	if summary.TotalAmount > 0 {
		summary.CollectionRate = int(math.Round(summary.TotalCollected / summary.TotalAmount * 100))
	}

	// Stable group order for reproducible output
	for _, group := range byType {
		summary.ByFeeType = append(summary.ByFeeType, *group)
	}
	sort.Slice(summary.ByFeeType, func(i, j int) bool {
		return summary.ByFeeType[i].FeeType < summary.ByFeeType[j].FeeType
	})

	// Defaulters: overdue records ascending by due date, truncated for
	// display - the underlying set is untouched
	sort.Slice(defaulters, func(i, j int) bool {
		if defaulters[i].DueDate.Equal(defaulters[j].DueDate) {
			return defaulters[i].ID < defaulters[j].ID
		}
		return defaulters[i].DueDate.Before(defaulters[j].DueDate)
	})
	if defaultersTopN > 0 && len(defaulters) > defaultersTopN {
		defaulters = defaulters[:defaultersTopN]
	}
	summary.Defaulters = defaulters

	return summary
}
