package dto

import (
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for calendar dates (no time component).
const DateFormat = "2006-01-02"

// CreateBillRequest defines the data needed to create a new bill.
// New bills are always created pending.
type CreateBillRequest struct {
	Beneficiary string          `json:"beneficiary" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     string          `json:"dueDate" binding:"required"` // YYYY-MM-DD
	Category    string          `json:"category"`
	Barcode     string          `json:"barcode"` // separators stripped before storage
}

// UpdateBillRequest defines the data allowed for editing a bill.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateBillRequest struct {
	Beneficiary *string          `json:"beneficiary"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"dueDate"` // YYYY-MM-DD
	Category    *string          `json:"category"`
	Barcode     *string          `json:"barcode"`
}

// MarkPaidRequest carries the payment method for the pending -> paid transition.
type MarkPaidRequest struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
}

// ListBillsParams defines query parameters for listing bills.
type ListBillsParams struct {
	Status   string `form:"status"`   // optional: PENDING or PAID
	Category string `form:"category"` // optional: exact category match
	Search   string `form:"search"`   // optional: beneficiary substring, case-insensitive
}

// BillResponse defines the data returned for a bill, including the derived
// display-only due classification.
type BillResponse struct {
	BillID        string            `json:"billID"`
	Beneficiary   string            `json:"beneficiary"`
	Amount        decimal.Decimal   `json:"amount"`
	DueDate       string            `json:"dueDate"`
	Status        domain.BillStatus `json:"status"`
	Category      string            `json:"category,omitempty"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	PaidAt        string            `json:"paidAt,omitempty"`
	Barcode       string            `json:"barcode,omitempty"`
	DaysUntilDue  int               `json:"daysUntilDue"`
	Urgency       string            `json:"urgency"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ListBillsResponse wraps the list of bills.
type ListBillsResponse struct {
	Bills []BillResponse `json:"bills"`
}

// ToBillResponse converts a domain.Bill to a BillResponse DTO, deriving the
// urgency classification against now.
func ToBillResponse(b *domain.Bill, now time.Time) BillResponse {
	resp := BillResponse{
		BillID:        b.BillID,
		Beneficiary:   b.Beneficiary,
		Amount:        b.Amount,
		DueDate:       b.DueDate.Format(DateFormat),
		Status:        b.Status,
		Category:      b.Category,
		Barcode:       b.Barcode,
		DaysUntilDue:  b.DaysUntilDue(now),
		Urgency:       string(b.Classify(now)),
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
	if b.PaymentMethod != nil {
		resp.PaymentMethod = string(*b.PaymentMethod)
	}
	if b.PaidAt != nil {
		resp.PaidAt = b.PaidAt.Format(DateFormat)
	}
	return resp
}

// ToListBillsResponse converts a slice of domain bills to the list DTO.
func ToListBillsResponse(bills []domain.Bill, now time.Time) ListBillsResponse {
	responses := make([]BillResponse, len(bills))
	for i, b := range bills {
		responses[i] = ToBillResponse(&b, now)
	}
	return ListBillsResponse{Bills: responses}
}
