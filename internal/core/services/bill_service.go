package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
)

// billService implements the bill CRUD and lifecycle operations.
type billService struct {
	billRepo portsrepo.BillRepositoryFacade
	now      func() time.Time
}

// BillServiceOption is a functional option for configuring the bill service.
type BillServiceOption func(*billService)

// WithBillClock overrides the clock, used by tests.
func WithBillClock(now func() time.Time) BillServiceOption {
	return func(s *billService) {
		s.now = now
	}
}

// NewBillService creates a new bill service.
func NewBillService(billRepo portsrepo.BillRepositoryFacade, options ...BillServiceOption) portssvc.BillSvcFacade {
	svc := &billService{
		billRepo: billRepo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	if strings.TrimSpace(req.Beneficiary) == "" {
		return nil, fmt.Errorf("%w: beneficiary is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	dueDate, err := time.Parse(dto.DateFormat, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dueDate %q, expected YYYY-MM-DD", apperrors.ErrValidation, req.DueDate)
	}

	now := s.now()
	bill := domain.Bill{
		BillID:      uuid.NewString(),
		UserID:      userID,
		Beneficiary: strings.TrimSpace(req.Beneficiary),
		Amount:      req.Amount,
		DueDate:     dueDate,
		Status:      domain.BillStatusPending,
		Category:    strings.TrimSpace(req.Category),
		Barcode:     domain.NormalizeBarcode(req.Barcode),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}
	return &bill, nil
}

func (s *billService) GetBillByID(ctx context.Context, userID string, billID string) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

func (s *billService) ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, error) {
	bills, err := s.billRepo.FindBillsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	filtered := bills[:0:0]
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, b := range bills {
		if params.Status != "" && string(b.Status) != strings.ToUpper(params.Status) {
			continue
		}
		if params.Category != "" && b.Category != params.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(b.Beneficiary), search) {
			continue
		}
		filtered = append(filtered, b)
	}

	// Pending bills earliest-due first, paid bills most recent first. The
	// sort is stable so insertion order survives equal due dates.
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Status != b.Status {
			return a.Status == domain.BillStatusPending
		}
		if a.Status == domain.BillStatusPending {
			return a.DueDate.Before(b.DueDate)
		}
		return a.DueDate.After(b.DueDate)
	})
	return filtered, nil
}

func (s *billService) UpdateBill(ctx context.Context, userID string, billID string, req dto.UpdateBillRequest) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bill for update: %w", err)
	}

	if req.Beneficiary != nil {
		if strings.TrimSpace(*req.Beneficiary) == "" {
			return nil, fmt.Errorf("%w: beneficiary must not be empty", apperrors.ErrValidation)
		}
		bill.Beneficiary = strings.TrimSpace(*req.Beneficiary)
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		bill.Amount = *req.Amount
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dto.DateFormat, *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid dueDate %q, expected YYYY-MM-DD", apperrors.ErrValidation, *req.DueDate)
		}
		bill.DueDate = dueDate
	}
	if req.Category != nil {
		bill.Category = strings.TrimSpace(*req.Category)
	}
	if req.Barcode != nil {
		bill.Barcode = domain.NormalizeBarcode(*req.Barcode)
	}

	bill.LastUpdatedAt = s.now()
	bill.LastUpdatedBy = userID

	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, nil
}

func (s *billService) DeleteBill(ctx context.Context, userID string, billID string) error {
	if err := s.billRepo.DeleteBill(ctx, userID, billID); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

func (s *billService) MarkPaid(ctx context.Context, userID string, billID string, method domain.PaymentMethod) (*domain.Bill, error) {
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: a payment method is required to mark a bill paid", apperrors.ErrValidation)
	}

	bill, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bill to mark paid: %w", err)
	}

	now := s.now()
	paidAt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	bill.Status = domain.BillStatusPaid
	bill.PaymentMethod = &method
	bill.PaidAt = &paidAt
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		return nil, fmt.Errorf("failed to mark bill paid: %w", err)
	}
	return bill, nil
}

func (s *billService) MarkPending(ctx context.Context, userID string, billID string) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bill to mark pending: %w", err)
	}

	bill.Status = domain.BillStatusPending
	bill.PaymentMethod = nil
	bill.PaidAt = nil
	bill.LastUpdatedAt = s.now()
	bill.LastUpdatedBy = userID

	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		return nil, fmt.Errorf("failed to mark bill pending: %w", err)
	}
	return bill, nil
}
