package services

import (
	"context"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
)

// BillReaderSvc defines read operations for bills.
type BillReaderSvc interface {
	// GetBillByID retrieves a bill owned by userID.
	GetBillByID(ctx context.Context, userID string, billID string) (*domain.Bill, error)

	// ListBills retrieves the user's bills with optional status/category/search
	// filters. Pending bills sort ascending by due date, paid bills descending.
	ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, error)
}

// BillWriterSvc defines write operations for bills.
type BillWriterSvc interface {
	// CreateBill creates a new pending bill for userID.
	CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error)

	// UpdateBill edits the fields of an existing bill owned by userID.
	UpdateBill(ctx context.Context, userID string, billID string, req dto.UpdateBillRequest) (*domain.Bill, error)

	// DeleteBill permanently removes a bill owned by userID.
	DeleteBill(ctx context.Context, userID string, billID string) error
}

// BillLifecycleSvc defines the two status transitions.
type BillLifecycleSvc interface {
	// MarkPaid transitions a bill to paid with the given payment method and
	// stamps paidAt with the current date. A missing or unknown payment
	// method fails with apperrors.ErrValidation.
	MarkPaid(ctx context.Context, userID string, billID string, method domain.PaymentMethod) (*domain.Bill, error)

	// MarkPending reverts a bill to pending, clearing paidAt and the payment
	// method. No precondition.
	MarkPending(ctx context.Context, userID string, billID string) (*domain.Bill, error)
}

// BillSvcFacade combines all bill-related service interfaces.
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
	BillLifecycleSvc
}
