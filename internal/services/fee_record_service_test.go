package services

import (
	"testing"

	"school-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByStatus(t *testing.T) {
	now := statsNow()
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	records := []*models.FeeRecord{
		rec(1, models.FeeTypeTuition, 5000, 5000, future), // paid
		rec(2, models.FeeTypeTuition, 5000, 2000, future), // partial
		rec(3, models.FeeTypeTuition, 5000, 0, past),      // overdue
		rec(4, models.FeeTypeTuition, 5000, 0, future),    // unpaid
	}

	assert.Len(t, filterByStatus(records, "", now), 4)

	overdue := filterByStatus(records, models.StatusOverdue, now)
	require.Len(t, overdue, 1)
	assert.Equal(t, 3, overdue[0].ID)

	paid := filterByStatus(records, models.StatusPaid, now)
	require.Len(t, paid, 1)
	assert.Equal(t, 1, paid[0].ID)

	// A record that was "partial" yesterday is "overdue" today; the filter
	// follows the clock it is given
	assert.Len(t, filterByStatus(records, models.StatusPartial, now), 1)
	later := now.AddDate(0, 2, 0)
	assert.Empty(t, filterByStatus(records, models.StatusUnpaid, later))
}
