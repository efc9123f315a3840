package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the stored lifecycle state of a bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPaid    BillStatus = "PAID"
)

// PaymentMethod is how a paid bill was settled.
type PaymentMethod string

const (
	PaymentMethodPix          PaymentMethod = "PIX"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid reports whether the payment method is one of the known values.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// DueClassification is the derived, display-only urgency of a pending bill.
// It is never persisted; overdue is not a stored status.
type DueClassification string

const (
	DueOverdue DueClassification = "OVERDUE"
	DueSoon    DueClassification = "DUE_SOON"
	DueNormal  DueClassification = "NORMAL"
)

// Bill represents a tracked payable obligation owned by a single user.
//
// Invariant: PaymentMethod and PaidAt are both set iff Status is PAID, and
// both nil iff Status is PENDING.
type Bill struct {
	BillID        string          `json:"billID"`
	UserID        string          `json:"userID"` // owning user; every query is scoped by it
	Beneficiary   string          `json:"beneficiary"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	Status        BillStatus      `json:"status"`
	Category      string          `json:"category,omitempty"`
	PaymentMethod *PaymentMethod  `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	Barcode       string          `json:"barcode,omitempty"` // linha digitável, digits only
	AuditFields
}

// IsPaid reports whether the bill is in the paid state.
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// DaysUntilDue returns ceil((dueDate - now) / 1 day). Negative for overdue bills.
func (b *Bill) DaysUntilDue(now time.Time) int {
	// Compare calendar dates, not instants, so a bill due later today counts as 0.
	due := time.Date(b.DueDate.Year(), b.DueDate.Month(), b.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// Classify returns the display-only urgency classification of the bill.
func (b *Bill) Classify(now time.Time) DueClassification {
	days := b.DaysUntilDue(now)
	switch {
	case days < 0:
		return DueOverdue
	case days <= 3:
		return DueSoon
	default:
		return DueNormal
	}
}

// NormalizeBarcode strips every non-digit rune from a payment slip line, so
// "34191.79001 01043..." and "34191790010 1043" normalize identically.
func NormalizeBarcode(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
