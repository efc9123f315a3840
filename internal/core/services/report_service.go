package services

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
)

// reportService filters bills into a closed due-date interval and renders the
// result as a paginated PDF.
type reportService struct {
	billRepo portsrepo.BillReader
	now      func() time.Time
}

// ReportServiceOption is a functional option for configuring the report service.
type ReportServiceOption func(*reportService)

// WithReportClock overrides the clock, used by tests.
func WithReportClock(now func() time.Time) ReportServiceOption {
	return func(s *reportService) {
		s.now = now
	}
}

// NewReportService creates a new report service.
func NewReportService(billRepo portsrepo.BillReader, options ...ReportServiceOption) portssvc.ReportSvcFacade {
	svc := &reportService{
		billRepo: billRepo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) BuildReport(ctx context.Context, userID string, start, end time.Time) (*domain.BillReport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperrors.ErrMissingRange
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}

	bills, err := s.billRepo.FindBillsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills for report: %w", err)
	}

	report := &domain.BillReport{
		Start:        start,
		End:          end,
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
		GeneratedAt:  s.now(),
	}

	for _, b := range bills {
		if b.DueDate.Before(start) || b.DueDate.After(end) {
			continue
		}
		if b.IsPaid() {
			report.PaidBills = append(report.PaidBills, b)
			report.TotalPaid = report.TotalPaid.Add(b.Amount)
		} else {
			report.PendingBills = append(report.PendingBills, b)
			report.TotalPending = report.TotalPending.Add(b.Amount)
		}
	}
	report.PaidCount = len(report.PaidBills)
	report.PendingCount = len(report.PendingBills)

	return report, nil
}

func (s *reportService) RenderPDF(ctx context.Context, report *domain.BillReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Pagina {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "MeuBoleto AI - Relatorio de Contas", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("Periodo: %s a %s    Gerado em: %s",
			report.Start.Format(dto.DateFormat),
			report.End.Format(dto.DateFormat),
			report.GeneratedAt.Format("2006-01-02 15:04")),
			props.Text{Size: 9}),
	)

	// Summary block
	m.AddRow(18,
		col.New(6).Add(
			text.New(fmt.Sprintf("Pagas: %d", report.PaidCount), props.Text{Style: fontstyle.Bold}),
			text.New("Total pago: "+formatAmount(report.TotalPaid), props.Text{Top: 6}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Pendentes: %d", report.PendingCount), props.Text{Style: fontstyle.Bold}),
			text.New("Total pendente: "+formatAmount(report.TotalPending), props.Text{Top: 6}),
		),
	)

	addBillSection(m, "Contas pagas", report.PaidBills)
	addBillSection(m, "Contas pendentes", report.PendingBills)

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}
	return document.GetBytes(), nil
}

// addBillSection appends a titled table of bills, one line per bill with an
// optional barcode line underneath. Maroto paginates when the page fills.
func addBillSection(m core.Maroto, title string, bills []domain.Bill) {
	m.AddRow(10,
		text.NewCol(12, title, props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}),
	)
	m.AddRow(7,
		text.NewCol(5, "Beneficiario", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Valor", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Vencimento", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Categoria", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if len(bills) == 0 {
		m.AddRow(6, text.NewCol(12, "Nenhuma conta no periodo.", props.Text{Size: 9}))
		return
	}

	for _, b := range bills {
		m.AddRow(6,
			text.NewCol(5, b.Beneficiary, props.Text{Size: 9}),
			text.NewCol(2, formatAmount(b.Amount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, b.DueDate.Format(dto.DateFormat), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, b.Category, props.Text{Size: 9, Align: align.Right}),
		)
		if b.Barcode != "" {
			m.AddRow(5,
				text.NewCol(12, "Linha digitavel: "+b.Barcode, props.Text{Size: 8}),
			)
		}
	}
}

func formatAmount(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
