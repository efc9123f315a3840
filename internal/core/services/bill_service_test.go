package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/core/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BillServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBillRepository
	now      time.Time
	userID   string
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBillRepository)
	suite.now = time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	suite.userID = "user-1"
}

func (suite *BillServiceTestSuite) newService() portssvc.BillSvcFacade {
	return services.NewBillService(suite.mockRepo, services.WithBillClock(func() time.Time { return suite.now }))
}

func (suite *BillServiceTestSuite) pendingBill(billID string, dueDate time.Time) *domain.Bill {
	return &domain.Bill{
		BillID:      billID,
		UserID:      suite.userID,
		Beneficiary: "Enel",
		Amount:      decimal.NewFromFloat(125.50),
		DueDate:     dueDate,
		Status:      domain.BillStatusPending,
	}
}

func (suite *BillServiceTestSuite) TestCreateBill_Success() {
	svc := suite.newService()

	suite.mockRepo.On("SaveBill", mock.Anything, mock.MatchedBy(func(b domain.Bill) bool {
		return b.Status == domain.BillStatusPending &&
			b.PaymentMethod == nil && b.PaidAt == nil &&
			b.Barcode == "34191790010104351004791020150008691070026000"
	})).Return(nil).Once()

	bill, err := svc.CreateBill(context.Background(), suite.userID, dto.CreateBillRequest{
		Beneficiary: "Enel",
		Amount:      decimal.NewFromFloat(125.50),
		DueDate:     "2024-07-20",
		Category:    "Energia",
		Barcode:     "34191.79001 01043.510047 91020.150008 6 91070026000",
	})

	suite.NoError(err)
	suite.Equal(domain.BillStatusPending, bill.Status)
	suite.Equal(suite.userID, bill.UserID)
	suite.NotEmpty(bill.BillID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestCreateBill_RejectsEmptyBeneficiary() {
	svc := suite.newService()

	_, err := svc.CreateBill(context.Background(), suite.userID, dto.CreateBillRequest{
		Beneficiary: "   ",
		Amount:      decimal.NewFromInt(10),
		DueDate:     "2024-07-20",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBill")
}

func (suite *BillServiceTestSuite) TestCreateBill_RejectsNonPositiveAmount() {
	svc := suite.newService()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := svc.CreateBill(context.Background(), suite.userID, dto.CreateBillRequest{
			Beneficiary: "Enel",
			Amount:      amount,
			DueDate:     "2024-07-20",
		})
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBill")
}

func (suite *BillServiceTestSuite) TestUpdateBill_RejectsZeroAmount() {
	svc := suite.newService()
	bill := suite.pendingBill("bill-1", time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC))
	suite.mockRepo.On("FindBillByID", mock.Anything, suite.userID, "bill-1").Return(bill, nil).Once()

	zero := decimal.Zero
	_, err := svc.UpdateBill(context.Background(), suite.userID, "bill-1", dto.UpdateBillRequest{Amount: &zero})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBill")
}

func (suite *BillServiceTestSuite) TestCreateBill_RejectsBadDueDate() {
	svc := suite.newService()

	_, err := svc.CreateBill(context.Background(), suite.userID, dto.CreateBillRequest{
		Beneficiary: "Enel",
		Amount:      decimal.NewFromInt(10),
		DueDate:     "20/07/2024",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BillServiceTestSuite) TestMarkPaid_SetsMethodAndPaidAt() {
	svc := suite.newService()
	bill := suite.pendingBill("bill-1", time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC))

	suite.mockRepo.On("FindBillByID", mock.Anything, suite.userID, "bill-1").Return(bill, nil).Once()
	suite.mockRepo.On("UpdateBill", mock.Anything, mock.MatchedBy(func(b domain.Bill) bool {
		return b.Status == domain.BillStatusPaid &&
			b.PaymentMethod != nil && *b.PaymentMethod == domain.PaymentMethodPix &&
			b.PaidAt != nil
	})).Return(nil).Once()

	updated, err := svc.MarkPaid(context.Background(), suite.userID, "bill-1", domain.PaymentMethodPix)

	suite.NoError(err)
	suite.True(updated.IsPaid())
	suite.NotNil(updated.PaidAt)
	// paidAt is the calendar date of the clock, not the instant.
	suite.Equal(time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC), *updated.PaidAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestMarkPaid_RequiresKnownMethod() {
	svc := suite.newService()

	_, err := svc.MarkPaid(context.Background(), suite.userID, "bill-1", domain.PaymentMethod(""))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = svc.MarkPaid(context.Background(), suite.userID, "bill-1", domain.PaymentMethod("CASH"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "FindBillByID")
}

func (suite *BillServiceTestSuite) TestMarkPaid_RepayUpdatesPaidAt() {
	svc := suite.newService()
	oldPaidAt := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	card := domain.PaymentMethodCard
	bill := suite.pendingBill("bill-1", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	bill.Status = domain.BillStatusPaid
	bill.PaymentMethod = &card
	bill.PaidAt = &oldPaidAt

	suite.mockRepo.On("FindBillByID", mock.Anything, suite.userID, "bill-1").Return(bill, nil).Once()
	suite.mockRepo.On("UpdateBill", mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := svc.MarkPaid(context.Background(), suite.userID, "bill-1", domain.PaymentMethodPix)

	suite.NoError(err)
	suite.Equal(domain.PaymentMethodPix, *updated.PaymentMethod)
	suite.Equal(time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC), *updated.PaidAt)
}

func (suite *BillServiceTestSuite) TestMarkPending_ClearsPaymentFields() {
	svc := suite.newService()
	paidAt := time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC)
	pix := domain.PaymentMethodPix
	bill := suite.pendingBill("bill-1", time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))
	bill.Status = domain.BillStatusPaid
	bill.PaymentMethod = &pix
	bill.PaidAt = &paidAt

	suite.mockRepo.On("FindBillByID", mock.Anything, suite.userID, "bill-1").Return(bill, nil).Once()
	suite.mockRepo.On("UpdateBill", mock.Anything, mock.MatchedBy(func(b domain.Bill) bool {
		return b.Status == domain.BillStatusPending && b.PaymentMethod == nil && b.PaidAt == nil
	})).Return(nil).Once()

	updated, err := svc.MarkPending(context.Background(), suite.userID, "bill-1")

	suite.NoError(err)
	suite.False(updated.IsPaid())
	suite.Nil(updated.PaymentMethod)
	suite.Nil(updated.PaidAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestListBills_PendingFirstThenPaidDescending() {
	svc := suite.newService()

	paid := func(id string, due time.Time) domain.Bill {
		b := *suite.pendingBill(id, due)
		pix := domain.PaymentMethodPix
		paidAt := due
		b.Status = domain.BillStatusPaid
		b.PaymentMethod = &pix
		b.PaidAt = &paidAt
		return b
	}

	// Repository order: due date ascending.
	bills := []domain.Bill{
		paid("paid-old", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
		*suite.pendingBill("pending-early", time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC)),
		paid("paid-recent", time.Date(2024, time.July, 14, 0, 0, 0, 0, time.UTC)),
		*suite.pendingBill("pending-late", time.Date(2024, time.July, 25, 0, 0, 0, 0, time.UTC)),
	}
	suite.mockRepo.On("FindBillsByUser", mock.Anything, suite.userID).Return(bills, nil).Once()

	got, err := svc.ListBills(context.Background(), suite.userID, dto.ListBillsParams{})

	suite.NoError(err)
	suite.Len(got, 4)
	suite.Equal("pending-early", got[0].BillID)
	suite.Equal("pending-late", got[1].BillID)
	suite.Equal("paid-recent", got[2].BillID)
	suite.Equal("paid-old", got[3].BillID)
}

func (suite *BillServiceTestSuite) TestListBills_Filters() {
	svc := suite.newService()

	b1 := *suite.pendingBill("b1", time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC))
	b1.Beneficiary = "Enel Energia"
	b1.Category = "Energia"
	b2 := *suite.pendingBill("b2", time.Date(2024, time.July, 13, 0, 0, 0, 0, time.UTC))
	b2.Beneficiary = "Sabesp"
	b2.Category = "Agua"

	suite.mockRepo.On("FindBillsByUser", mock.Anything, suite.userID).Return([]domain.Bill{b1, b2}, nil).Times(3)

	got, err := svc.ListBills(context.Background(), suite.userID, dto.ListBillsParams{Category: "Agua"})
	suite.NoError(err)
	suite.Len(got, 1)
	suite.Equal("b2", got[0].BillID)

	got, err = svc.ListBills(context.Background(), suite.userID, dto.ListBillsParams{Search: "enel"})
	suite.NoError(err)
	suite.Len(got, 1)
	suite.Equal("b1", got[0].BillID)

	got, err = svc.ListBills(context.Background(), suite.userID, dto.ListBillsParams{Status: "paid"})
	suite.NoError(err)
	suite.Empty(got)
}

func (suite *BillServiceTestSuite) TestUpdateBill_NormalizesBarcode() {
	svc := suite.newService()
	bill := suite.pendingBill("bill-1", time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC))

	suite.mockRepo.On("FindBillByID", mock.Anything, suite.userID, "bill-1").Return(bill, nil).Once()
	suite.mockRepo.On("UpdateBill", mock.Anything, mock.Anything).Return(nil).Once()

	barcode := "34191.79001 01043"
	updated, err := svc.UpdateBill(context.Background(), suite.userID, "bill-1", dto.UpdateBillRequest{Barcode: &barcode})

	suite.NoError(err)
	suite.Equal("341917900101043", updated.Barcode)
}

func TestBillService(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
