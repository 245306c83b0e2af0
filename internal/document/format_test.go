package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoneyIndianGrouping(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rs. 0.00"},
		{5, "Rs. 5.00"},
		{500, "Rs. 500.00"},
		{5000, "Rs. 5,000.00"},
		{50000, "Rs. 50,000.00"},
		{500000, "Rs. 5,00,000.00"},
		{1234567.89, "Rs. 12,34,567.89"},
		{123456789, "Rs. 12,34,56,789.00"},
		{-2500.5, "Rs. -2,500.50"},
		{999.999, "Rs. 1,000.00"}, // rounds at two decimals
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in), "formatMoney(%v)", tt.in)
	}
}

func TestFormatDateIsDayMonthYear(t *testing.T) {
	// 2025-06-05 18:45 UTC is 2025-06-06 00:15 IST
	utc := time.Date(2025, 6, 5, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, "06-06-2025", formatDate(utc))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly", truncate("exactly", 7))
	assert.Equal(t, "a long d...", truncate("a long description", 11))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Paid", titleCase("paid"))
	assert.Equal(t, "", titleCase(""))
}

func TestColorLookupsHaveFallbacks(t *testing.T) {
	assert.Equal(t, feeTypeColors["other"], feeTypeColor("mystery"))
	assert.Equal(t, statusColors["unpaid"], statusColor("mystery"))
}
