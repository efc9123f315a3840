package dto

import (
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategorySummaryResponse is one slice of the category breakdown.
type CategorySummaryResponse struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// BillStatsResponse is the derived aggregate view returned by the summary endpoint.
type BillStatsResponse struct {
	TotalPending       decimal.Decimal           `json:"totalPending"`
	TotalPaidThisMonth decimal.Decimal           `json:"totalPaidThisMonth"`
	TotalPaidOverall   decimal.Decimal           `json:"totalPaidOverall"`
	UpcomingCount      int                       `json:"upcomingCount"`
	CategoryBreakdown  []CategorySummaryResponse `json:"categoryBreakdown"`
}

// ToBillStatsResponse converts domain.BillStats to its response DTO.
func ToBillStatsResponse(s *domain.BillStats) BillStatsResponse {
	breakdown := make([]CategorySummaryResponse, len(s.CategoryBreakdown))
	for i, c := range s.CategoryBreakdown {
		breakdown[i] = CategorySummaryResponse{
			Category: c.Category,
			Count:    c.Count,
			Total:    c.Total,
		}
	}
	return BillStatsResponse{
		TotalPending:       s.TotalPending,
		TotalPaidThisMonth: s.TotalPaidThisMonth,
		TotalPaidOverall:   s.TotalPaidOverall,
		UpcomingCount:      s.UpcomingCount,
		CategoryBreakdown:  breakdown,
	}
}
