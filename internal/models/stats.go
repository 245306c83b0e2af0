package models

// FeeTypeTotals aggregates one feeType group inside a snapshot
type FeeTypeTotals struct {
	FeeType        string  `json:"fee_type"`
	TotalAmount    float64 `json:"total_amount"`
	TotalCollected float64 `json:"total_collected"`
	RecordCount    int     `json:"record_count"`
}

// StatusCounts buckets each record into exactly one status
type StatusCounts struct {
	Paid    int `json:"paid"`
	Partial int `json:"partial"`
	Unpaid  int `json:"unpaid"`
	Overdue int `json:"overdue"`
}

// FeeSummary is the computed aggregate snapshot. It is never persisted -
// callers recompute it from the record set they hold.
type FeeSummary struct {
	TotalAmount    float64         `json:"total_amount"`
	TotalCollected float64         `json:"total_collected"`
	TotalPending   float64         `json:"total_pending"`
	CollectionRate int             `json:"collection_rate"` // rounded percent, 0 when nothing billed
	Counts         StatusCounts    `json:"counts"`
	ByFeeType      []FeeTypeTotals `json:"by_fee_type"`
	RecentPayments []*FeePayment   `json:"recent_payments,omitempty"`
	Defaulters     []*FeeRecord    `json:"defaulters"`
}
