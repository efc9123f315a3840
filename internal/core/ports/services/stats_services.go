package services

import (
	"context"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

// StatsSvcFacade recomputes the derived aggregate view over a user's bills.
// The result is a pure function of the current bill list and the evaluation
// time; nothing is cached.
type StatsSvcFacade interface {
	// GetBillStats computes totals, the category breakdown and the
	// upcoming-due count for all bills owned by userID.
	GetBillStats(ctx context.Context, userID string) (*domain.BillStats, error)
}
