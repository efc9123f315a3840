package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
	"github.com/meuboleto/meuboleto_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reportHandler handles PDF report exports.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{
		reportService: rs,
	}
}

// registerReportRoutes registers the report export routes.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	rg.POST("/reports/bills", h.generateBillReport)
}

// generateBillReport godoc
// @Summary Export a bill report as PDF
// @Description Builds a PDF report over the bills due within the given closed date interval
// @Tags reports
// @Accept  json
// @Produce  application/pdf
// @Param   range body dto.GenerateReportRequest true "Report period (YYYY-MM-DD bounds)"
// @Success 200 {file} binary "PDF document"
// @Failure 400 {object} map[string]string "Missing or invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/bills [post]
func (h *reportHandler) generateBillReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for report request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// Zero bounds pass through so the service reports the period-specific error.
	var start, end time.Time
	var err error
	if req.StartDate != "" {
		if start, err = time.Parse(dto.DateFormat, req.StartDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be formatted as YYYY-MM-DD"})
			return
		}
	}
	if req.EndDate != "" {
		if end, err = time.Parse(dto.DateFormat, req.EndDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be formatted as YYYY-MM-DD"})
			return
		}
	}

	logger.Info("Received request to generate bill report",
		slog.String("start_date", req.StartDate),
		slog.String("end_date", req.EndDate),
	)

	report, err := h.reportService.BuildReport(c.Request.Context(), userID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingRange):
			logger.Warn("Report period missing a bound")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both startDate and endDate are required"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Invalid report period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to build report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	pdfBytes, err := h.reportService.RenderPDF(c.Request.Context(), report)
	if err != nil {
		logger.Error("Failed to render report PDF", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	logger.Info("Bill report generated successfully", slog.Int("pdf_bytes", len(pdfBytes)))

	filename := fmt.Sprintf("relatorio-contas-%s-%s.pdf", req.StartDate, req.EndDate)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
