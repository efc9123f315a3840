package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/meuboleto/meuboleto_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBillRepository
	now      time.Time
	userID   string
}

func (suite *StatsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBillRepository)
	suite.now = time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	suite.userID = "user-1"
}

func (suite *StatsServiceTestSuite) pending(amount float64, category string, dueDate time.Time) domain.Bill {
	return domain.Bill{
		BillID:      "bill-" + category,
		UserID:      suite.userID,
		Beneficiary: "Beneficiary",
		Amount:      decimal.NewFromFloat(amount),
		DueDate:     dueDate,
		Category:    category,
		Status:      domain.BillStatusPending,
	}
}

func (suite *StatsServiceTestSuite) paid(amount float64, category string, paidAt time.Time) domain.Bill {
	method := domain.PaymentMethodPix
	b := suite.pending(amount, category, paidAt)
	b.Status = domain.BillStatusPaid
	b.PaidAt = &paidAt
	b.PaymentMethod = &method
	return b
}

func (suite *StatsServiceTestSuite) TestGetBillStats_Totals() {
	bills := []domain.Bill{
		suite.pending(100, "Energia", suite.now.AddDate(0, 0, 2)),
		suite.pending(50, "Agua", suite.now.AddDate(0, 0, 20)),
		suite.paid(200, "Energia", time.Date(2024, time.July, 3, 0, 0, 0, 0, time.UTC)),
		suite.paid(75, "Internet", time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC)),
	}
	suite.mockRepo.On("FindBillsByUser", context.Background(), suite.userID).Return(bills, nil).Once()

	svc := services.NewStatsService(suite.mockRepo, services.WithStatsClock(func() time.Time { return suite.now }))
	stats, err := svc.GetBillStats(context.Background(), suite.userID)

	suite.Require().NoError(err)
	suite.True(stats.TotalPending.Equal(decimal.NewFromInt(150)), "pending = 100 + 50")
	suite.True(stats.TotalPaidOverall.Equal(decimal.NewFromInt(275)), "paid overall = 200 + 75")
	suite.True(stats.TotalPaidThisMonth.Equal(decimal.NewFromInt(200)), "June payment excluded")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestComputeStats_UpcomingCountsOnlyPendingWithinWeek() {
	paidSoon := suite.paid(10, "Energia", suite.now) // due inside the window but already paid
	bills := []domain.Bill{
		suite.pending(10, "a", suite.now),                   // today, counts
		suite.pending(10, "b", suite.now.AddDate(0, 0, 7)),  // boundary, counts
		suite.pending(10, "c", suite.now.AddDate(0, 0, 8)),  // beyond the window
		suite.pending(10, "d", suite.now.AddDate(0, 0, -1)), // overdue, not upcoming
		paidSoon,
	}

	stats := services.ComputeStats(bills, suite.now)

	suite.Equal(2, stats.UpcomingCount)
}

func (suite *StatsServiceTestSuite) TestComputeStats_CategoryBreakdown() {
	bills := []domain.Bill{
		suite.pending(100, "Energia", suite.now),
		suite.paid(200, "Energia", suite.now),
		suite.pending(30, "", suite.now),
	}

	stats := services.ComputeStats(bills, suite.now)

	suite.Require().Len(stats.CategoryBreakdown, 2)
	suite.Equal("", stats.CategoryBreakdown[0].Category, "uncategorized bucket sorts first")
	suite.Equal(1, stats.CategoryBreakdown[0].Count)
	suite.True(stats.CategoryBreakdown[0].Total.Equal(decimal.NewFromInt(30)))
	suite.Equal("Energia", stats.CategoryBreakdown[1].Category)
	suite.Equal(2, stats.CategoryBreakdown[1].Count)
	suite.True(stats.CategoryBreakdown[1].Total.Equal(decimal.NewFromInt(300)))

	sum := decimal.Zero
	for _, c := range stats.CategoryBreakdown {
		sum = sum.Add(c.Total)
	}
	suite.True(sum.Equal(stats.TotalPending.Add(stats.TotalPaidOverall)), "breakdown conserves the grand total")
}

func (suite *StatsServiceTestSuite) TestComputeStats_EmptyList() {
	stats := services.ComputeStats(nil, suite.now)

	suite.True(stats.TotalPending.IsZero())
	suite.True(stats.TotalPaidOverall.IsZero())
	suite.True(stats.TotalPaidThisMonth.IsZero())
	suite.Zero(stats.UpcomingCount)
	suite.Empty(stats.CategoryBreakdown)
}

func TestStatsService(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}
