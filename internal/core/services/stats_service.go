package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// statsService recomputes the derived aggregate view on every call. No
// caching: the only invariant is "matches current input".
type statsService struct {
	billRepo portsrepo.BillReader
	now      func() time.Time
}

// StatsServiceOption is a functional option for configuring the stats service.
type StatsServiceOption func(*statsService)

// WithStatsClock overrides the clock, used by tests.
func WithStatsClock(now func() time.Time) StatsServiceOption {
	return func(s *statsService) {
		s.now = now
	}
}

// NewStatsService creates a new derived-statistics service.
func NewStatsService(billRepo portsrepo.BillReader, options ...StatsServiceOption) portssvc.StatsSvcFacade {
	svc := &statsService{
		billRepo: billRepo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StatsSvcFacade = (*statsService)(nil)

func (s *statsService) GetBillStats(ctx context.Context, userID string) (*domain.BillStats, error) {
	bills, err := s.billRepo.FindBillsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills for stats: %w", err)
	}
	stats := ComputeStats(bills, s.now())
	return &stats, nil
}

// ComputeStats is the pure derived-statistics function: totals, the category
// breakdown and the upcoming-due count over the given bill list, evaluated at
// now. Paid bills never count as upcoming.
func ComputeStats(bills []domain.Bill, now time.Time) domain.BillStats {
	stats := domain.BillStats{
		TotalPending:       decimal.Zero,
		TotalPaidThisMonth: decimal.Zero,
		TotalPaidOverall:   decimal.Zero,
	}

	type bucket struct {
		count int
		total decimal.Decimal
	}
	byCategory := make(map[string]*bucket)

	for _, b := range bills {
		if b.IsPaid() {
			stats.TotalPaidOverall = stats.TotalPaidOverall.Add(b.Amount)
			if b.PaidAt != nil && b.PaidAt.Year() == now.Year() && b.PaidAt.Month() == now.Month() {
				stats.TotalPaidThisMonth = stats.TotalPaidThisMonth.Add(b.Amount)
			}
		} else {
			stats.TotalPending = stats.TotalPending.Add(b.Amount)
			if days := b.DaysUntilDue(now); days >= 0 && days <= 7 {
				stats.UpcomingCount++
			}
		}

		cat := byCategory[b.Category]
		if cat == nil {
			cat = &bucket{total: decimal.Zero}
			byCategory[b.Category] = cat
		}
		cat.count++
		cat.total = cat.total.Add(b.Amount)
	}

	stats.CategoryBreakdown = make([]domain.CategorySummary, 0, len(byCategory))
	for category, b := range byCategory {
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, domain.CategorySummary{
			Category: category,
			Count:    b.count,
			Total:    b.total,
		})
	}
	sort.Slice(stats.CategoryBreakdown, func(i, j int) bool {
		return stats.CategoryBreakdown[i].Category < stats.CategoryBreakdown[j].Category
	})

	return stats
}
