package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillReport is the computed content of an exported report for a closed
// due-date interval, before PDF rendering.
type BillReport struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	PaidBills    []Bill `json:"paidBills"`
	PendingBills []Bill `json:"pendingBills"`

	TotalPaid    decimal.Decimal `json:"totalPaid"`
	TotalPending decimal.Decimal `json:"totalPending"`
	PaidCount    int             `json:"paidCount"`
	PendingCount int             `json:"pendingCount"`

	GeneratedAt time.Time `json:"generatedAt"`
}
