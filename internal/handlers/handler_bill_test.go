package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
	"github.com/meuboleto/meuboleto_backend/internal/handlers"
	"github.com/meuboleto/meuboleto_backend/internal/middleware"
)

// --- Mock BillService ---
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) GetBillByID(ctx context.Context, userID string, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) UpdateBill(ctx context.Context, userID string, billID string, req dto.UpdateBillRequest) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) DeleteBill(ctx context.Context, userID string, billID string) error {
	args := m.Called(ctx, userID, billID)
	return args.Error(0)
}

func (m *MockBillService) MarkPaid(ctx context.Context, userID string, billID string, method domain.PaymentMethod) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) MarkPending(ctx context.Context, userID string, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BillSvcFacade = (*MockBillService)(nil)

// --- Test Suite ---
type BillHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockBillService *MockBillService
	jwtSecret       string
}

// generateTestToken creates a signed JWT for the given user.
func (suite *BillHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "meuboleto-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BillHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockBillService = new(MockBillService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBillRoutes(v1, suite.mockBillService)
}

func (suite *BillHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (suite *BillHandlerTestSuite) pendingBill(userID string) *domain.Bill {
	return &domain.Bill{
		BillID:      uuid.NewString(),
		UserID:      userID,
		Beneficiary: "Enel",
		Amount:      decimal.NewFromFloat(125.50),
		DueDate:     time.Now().AddDate(0, 0, 5),
		Category:    "Energia",
		Status:      domain.BillStatusPending,
	}
}

// --- Test Cases ---

func (suite *BillHandlerTestSuite) TestListBills_Success() {
	userID := uuid.NewString()
	bill := suite.pendingBill(userID)
	suite.mockBillService.On("ListBills",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		dto.ListBillsParams{},
	).Return([]domain.Bill{*bill}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/bills", nil, userID))

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListBillsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Bills, 1)
	suite.Equal(bill.BillID, body.Bills[0].BillID)
	suite.Equal("Enel", body.Bills[0].Beneficiary)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestListBills_PassesFilters() {
	userID := uuid.NewString()
	suite.mockBillService.On("ListBills",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		dto.ListBillsParams{Status: "PENDING", Category: "Energia", Search: "enel"},
	).Return([]domain.Bill{}, nil).Once()

	w := httptest.NewRecorder()
	url := "/api/v1/bills?status=PENDING&category=Energia&search=enel"
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil, userID))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestCreateBill_Success() {
	userID := uuid.NewString()
	bill := suite.pendingBill(userID)
	suite.mockBillService.On("CreateBill",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(req dto.CreateBillRequest) bool {
			return req.Beneficiary == "Enel" && req.DueDate == "2024-07-20"
		}),
	).Return(bill, nil).Once()

	body := []byte(`{"beneficiary": "Enel", "amount": 125.50, "dueDate": "2024-07-20", "category": "Energia"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/bills", body, userID))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BillResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(bill.BillID, resp.BillID)
	suite.Equal(domain.BillStatusPending, resp.Status)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestCreateBill_ValidationError() {
	userID := uuid.NewString()
	suite.mockBillService.On("CreateBill",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.AnythingOfType("dto.CreateBillRequest"),
	).Return(nil, apperrors.ErrValidation).Once()

	body := []byte(`{"beneficiary": "Enel", "amount": 125.50, "dueDate": "not-a-date"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/bills", body, userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestGetBill_NotFound() {
	userID := uuid.NewString()
	billID := uuid.NewString()
	suite.mockBillService.On("GetBillByID",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		billID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/bills/"+billID, nil, userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestMarkPaid_Success() {
	userID := uuid.NewString()
	bill := suite.pendingBill(userID)
	method := domain.PaymentMethodPix
	paidAt := time.Now()
	bill.Status = domain.BillStatusPaid
	bill.PaymentMethod = &method
	bill.PaidAt = &paidAt

	suite.mockBillService.On("MarkPaid",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		bill.BillID,
		domain.PaymentMethodPix,
	).Return(bill, nil).Once()

	body := []byte(`{"paymentMethod": "PIX"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/bills/"+bill.BillID+"/pay", body, userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BillResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.BillStatusPaid, resp.Status)
	suite.Equal("PIX", resp.PaymentMethod)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestMarkPaid_UnknownMethodRejected() {
	userID := uuid.NewString()
	billID := uuid.NewString()
	suite.mockBillService.On("MarkPaid",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		billID,
		domain.PaymentMethod("CASH"),
	).Return(nil, apperrors.ErrValidation).Once()

	body := []byte(`{"paymentMethod": "CASH"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/bills/"+billID+"/pay", body, userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestDeleteBill_Success() {
	userID := uuid.NewString()
	billID := uuid.NewString()
	suite.mockBillService.On("DeleteBill",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		billID,
	).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/bills/"+billID, nil, userID))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockBillService.AssertExpectations(suite.T())
}

func (suite *BillHandlerTestSuite) TestExpiredTokenRejected() {
	claims := jwt.RegisteredClaims{
		Issuer:    "meuboleto-test",
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")
	suite.mockBillService.AssertNotCalled(suite.T(), "ListBills")
}

func (suite *BillHandlerTestSuite) TestTamperedTokenRejected() {
	otherSecret := "a-different-secret-entirely-here"
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(otherSecret))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBillService.AssertNotCalled(suite.T(), "ListBills")
}

func (suite *BillHandlerTestSuite) TestMissingAuthHeader() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBillService.AssertNotCalled(suite.T(), "ListBills")
}

func TestBillHandler(t *testing.T) {
	suite.Run(t, new(BillHandlerTestSuite))
}
