package domain_test

import (
	"testing"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2024, time.July, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate time.Time
		want    int
	}{
		{"due later today counts as zero", date(2024, time.July, 10), 0},
		{"due tomorrow", date(2024, time.July, 11), 1},
		{"due in a week", date(2024, time.July, 17), 7},
		{"overdue yesterday", date(2024, time.July, 9), -1},
		{"overdue last month", date(2024, time.June, 10), -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Bill{DueDate: tt.dueDate}
			assert.Equal(t, tt.want, b.DaysUntilDue(now))
		})
	}
}

func TestClassify(t *testing.T) {
	now := date(2024, time.July, 10)

	tests := []struct {
		name    string
		dueDate time.Time
		want    domain.DueClassification
	}{
		{"past due is overdue", date(2024, time.July, 9), domain.DueOverdue},
		{"due today is due soon", date(2024, time.July, 10), domain.DueSoon},
		{"three days out is due soon", date(2024, time.July, 13), domain.DueSoon},
		{"four days out is normal", date(2024, time.July, 14), domain.DueNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Bill{DueDate: tt.dueDate}
			assert.Equal(t, tt.want, b.Classify(now))
		})
	}
}

func TestNormalizeBarcode(t *testing.T) {
	// Formatted and unformatted versions of the same slip line normalize identically.
	formatted := domain.NormalizeBarcode("34191.79001 01043.510047 91020.150008 6 91070026000")
	bare := domain.NormalizeBarcode("34191790010104351004791020150008691070026000")
	assert.Equal(t, bare, formatted)
	assert.Equal(t, "34191790010104351004791020150008691070026000", formatted)

	assert.Equal(t, "", domain.NormalizeBarcode("no digits here"))
	assert.Equal(t, "", domain.NormalizeBarcode(""))
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, domain.PaymentMethodPix.IsValid())
	assert.True(t, domain.PaymentMethodCard.IsValid())
	assert.True(t, domain.PaymentMethodBankTransfer.IsValid())
	assert.False(t, domain.PaymentMethod("BOLETO").IsValid())
	assert.False(t, domain.PaymentMethod("").IsValid())
}
