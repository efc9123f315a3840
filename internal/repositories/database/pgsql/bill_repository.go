package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
	"github.com/meuboleto/meuboleto_backend/internal/models"
	"github.com/meuboleto/meuboleto_backend/internal/utils/mapping"
)

type PgxBillRepository struct {
	db *pgxpool.Pool
}

func newPgxBillRepository(db *pgxpool.Pool) portsrepo.BillRepositoryFacade {
	return &PgxBillRepository{db: db}
}

// Ensure PgxBillRepository implements portsrepo.BillRepositoryFacade
var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

const billColumns = `bill_id, user_id, beneficiary, amount, due_date, status, category, payment_method, paid_at, barcode, created_at, created_by, last_updated_at, last_updated_by`

func scanBill(row pgx.Row) (models.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.UserID,
		&m.Beneficiary,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.Category,
		&m.PaymentMethod,
		&m.PaidAt,
		&m.Barcode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	modelBill := mapping.ToModelBill(bill)
	query := `
        INSERT INTO bills (` + billColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		modelBill.BillID,
		modelBill.UserID,
		modelBill.Beneficiary,
		modelBill.Amount,
		modelBill.DueDate,
		modelBill.Status,
		modelBill.Category,
		modelBill.PaymentMethod,
		modelBill.PaidAt,
		modelBill.Barcode,
		modelBill.CreatedAt,
		modelBill.CreatedBy,
		modelBill.LastUpdatedAt,
		modelBill.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}
	return nil
}

func (r *PgxBillRepository) FindBillByID(ctx context.Context, userID string, billID string) (*domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE bill_id = $1 AND user_id = $2;
	`
	modelBill, err := scanBill(r.db.QueryRow(ctx, query, billID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill by ID %s: %w", billID, err)
	}

	domainBill := mapping.ToDomainBill(modelBill)
	return &domainBill, nil
}

func (r *PgxBillRepository) FindBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	// created_at breaks ties so equal due dates keep insertion order.
	query := `
        SELECT ` + billColumns + `
        FROM bills
        WHERE user_id = $1
        ORDER BY due_date ASC, created_at ASC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	modelBills := []models.Bill{}
	for rows.Next() {
		modelBill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		modelBills = append(modelBills, modelBill)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", rows.Err())
	}

	return mapping.ToDomainBillSlice(modelBills), nil
}

func (r *PgxBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	modelBill := mapping.ToModelBill(bill)
	query := `
        UPDATE bills
        SET beneficiary = $1, amount = $2, due_date = $3, status = $4, category = $5,
            payment_method = $6, paid_at = $7, barcode = $8, last_updated_at = $9, last_updated_by = $10
        WHERE bill_id = $11 AND user_id = $12;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelBill.Beneficiary,
		modelBill.Amount,
		modelBill.DueDate,
		modelBill.Status,
		modelBill.Category,
		modelBill.PaymentMethod,
		modelBill.PaidAt,
		modelBill.Barcode,
		modelBill.LastUpdatedAt,
		modelBill.LastUpdatedBy,
		modelBill.BillID,
		modelBill.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update bill query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("bill not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBillRepository) DeleteBill(ctx context.Context, userID string, billID string) error {
	query := `
        DELETE FROM bills
        WHERE bill_id = $1 AND user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, billID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("bill not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
