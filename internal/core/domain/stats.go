package domain

import "github.com/shopspring/decimal"

// CategorySummary is the per-category slice of the breakdown.
type CategorySummary struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// BillStats is the derived aggregate view over a user's bills. It is a pure
// function of the bill list and the evaluation time; nothing here is stored.
type BillStats struct {
	TotalPending       decimal.Decimal   `json:"totalPending"`
	TotalPaidThisMonth decimal.Decimal   `json:"totalPaidThisMonth"`
	TotalPaidOverall   decimal.Decimal   `json:"totalPaidOverall"`
	UpcomingCount      int               `json:"upcomingCount"`
	CategoryBreakdown  []CategorySummary `json:"categoryBreakdown"`
}
