package mapping

import (
	"database/sql"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/meuboleto/meuboleto_backend/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	m := models.Bill{
		BillID:      d.BillID,
		UserID:      d.UserID,
		Beneficiary: d.Beneficiary,
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.Category != "" {
		m.Category = sql.NullString{String: d.Category, Valid: true}
	}
	if d.PaymentMethod != nil {
		m.PaymentMethod = sql.NullString{String: string(*d.PaymentMethod), Valid: true}
	}
	if d.PaidAt != nil {
		m.PaidAt = sql.NullTime{Time: *d.PaidAt, Valid: true}
	}
	if d.Barcode != "" {
		m.Barcode = sql.NullString{String: d.Barcode, Valid: true}
	}
	return m
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	d := domain.Bill{
		BillID:      m.BillID,
		UserID:      m.UserID,
		Beneficiary: m.Beneficiary,
		Amount:      m.Amount,
		DueDate:     m.DueDate,
		Status:      domain.BillStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.Category.Valid {
		d.Category = m.Category.String
	}
	if m.PaymentMethod.Valid {
		method := domain.PaymentMethod(m.PaymentMethod.String)
		d.PaymentMethod = &method
	}
	if m.PaidAt.Valid {
		paidAt := m.PaidAt.Time
		d.PaidAt = &paidAt
	}
	if m.Barcode.Valid {
		d.Barcode = m.Barcode.String
	}
	return d
}

// ToDomainBillSlice converts a slice of model Bills to a slice of domain Bills
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}
