package repositories

import (
	"context"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

// BillReader defines read operations for bill data. Every read is scoped to
// the owning user; a bill is never visible outside its owner.
type BillReader interface {
	// FindBillByID retrieves a specific bill owned by userID.
	FindBillByID(ctx context.Context, userID string, billID string) (*domain.Bill, error)

	// FindBillsByUser retrieves all bills owned by userID ordered by due date
	// ascending. Insertion order is preserved for equal due dates.
	FindBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error)
}

// BillWriter defines write operations for bill data.
type BillWriter interface {
	// SaveBill persists a new bill.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// UpdateBill updates an existing bill owned by userID.
	UpdateBill(ctx context.Context, bill domain.Bill) error

	// DeleteBill permanently removes a bill owned by userID.
	DeleteBill(ctx context.Context, userID string, billID string) error
}

// BillRepositoryFacade combines all bill-related repository interfaces.
type BillRepositoryFacade interface {
	BillReader
	BillWriter
}
