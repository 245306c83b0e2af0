package document

import (
	"strconv"
	"strings"
	"time"

	"school-backend/internal/timeutil"
)

// formatMoney renders every money value in generated documents: fixed "Rs."
// symbol, Indian digit grouping (12,34,567.89), two decimals. All renderers
// go through this one function so identical input produces identical bytes.
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	// Indian grouping: last three digits, then pairs
	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append(parts, tail)
		whole = head + "," + strings.Join(parts, ",")
	}

	if neg {
		return "Rs. -" + whole + frac
	}
	return "Rs. " + whole + frac
}

// formatDate renders every date in generated documents as day-month-year
func formatDate(t time.Time) string {
	return timeutil.ToIST(t).Format(timeutil.DisplayDate)
}

// formatTimestamp renders the generation timestamp in document footers
func formatTimestamp(t time.Time) string {
	return timeutil.ToIST(t).Format(timeutil.DisplayLayout)
}

// truncate shortens cell text to fit fixed column widths
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// titleCase uppercases the first letter of a status or fee-type label
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
