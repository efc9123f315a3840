package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the persistence model for the bills table.
type Bill struct {
	BillID        string          `db:"bill_id"`
	UserID        string          `db:"user_id"`
	Beneficiary   string          `db:"beneficiary"`
	Amount        decimal.Decimal `db:"amount"`
	DueDate       time.Time       `db:"due_date"`
	Status        string          `db:"status"`
	Category      sql.NullString  `db:"category"`
	PaymentMethod sql.NullString  `db:"payment_method"`
	PaidAt        sql.NullTime    `db:"paid_at"`
	Barcode       sql.NullString  `db:"barcode"`
	AuditFields
}
