package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
	"github.com/meuboleto/meuboleto_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// intakeHandler handles document uploads entering the AI analysis pipeline.
type intakeHandler struct {
	intakeService portssvc.IntakeSvcFacade
}

func newIntakeHandler(is portssvc.IntakeSvcFacade) *intakeHandler {
	return &intakeHandler{
		intakeService: is,
	}
}

// registerIntakeRoutes registers the document analysis routes.
func registerIntakeRoutes(rg *gin.RouterGroup, intakeService portssvc.IntakeSvcFacade) {
	h := newIntakeHandler(intakeService)

	rg.POST("/documents/analyze", h.analyzeDocument)
}

// analyzeDocument godoc
// @Summary Analyze an uploaded bill document
// @Description Submits a PDF or image to the configured AI provider and returns an extraction candidate. Nothing is persisted.
// @Tags intake
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Bill document (PDF, JPEG or PNG)"
// @Success 200 {object} dto.AnalyzeDocumentResponse
// @Failure 400 {object} dto.AnalyzeErrorResponse "Unsupported or oversized file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 412 {object} dto.AnalyzeErrorResponse "No AI credential configured"
// @Failure 422 {object} dto.AnalyzeErrorResponse "AI reply unusable"
// @Failure 502 {object} dto.AnalyzeErrorResponse "AI provider unreachable"
// @Security BearerAuth
// @Router /documents/analyze [post]
func (h *intakeHandler) analyzeDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in analyze request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file upload named 'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	logger = logger.With(slog.String("filename", fileHeader.Filename), slog.Int("size_bytes", len(data)))
	logger.Info("Received document for analysis")

	result, err := h.intakeService.AnalyzeDocument(c.Request.Context(), userID, portssvc.DocumentUpload{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		status, code := intakeErrorStatus(err)
		logger.Warn("Document analysis failed", slog.String("error", err.Error()), slog.String("error_code", code))
		c.JSON(status, dto.AnalyzeErrorResponse{
			Error:     err.Error(),
			ErrorCode: code,
			Fallback: dto.AnalyzeFallback{
				Beneficiary: dto.BeneficiaryGuessFromFilename(fileHeader.Filename),
			},
		})
		return
	}

	logger.Info("Document analyzed successfully", slog.String("render_kind", string(result.RenderKind)))
	c.JSON(http.StatusOK, dto.AnalyzeDocumentResponse{
		Candidate:  dto.ToExtractionCandidateResponse(result.Candidate),
		RenderKind: result.RenderKind,
	})
}

// intakeErrorStatus maps the intake failure taxonomy onto HTTP statuses and
// machine-readable error codes.
func intakeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, apperrors.ErrNoCredential):
		return http.StatusPreconditionFailed, "NO_CREDENTIAL"
	case errors.Is(err, apperrors.ErrIncompleteExtraction):
		return http.StatusUnprocessableEntity, "INCOMPLETE_EXTRACTION"
	case errors.Is(err, apperrors.ErrAIParse):
		return http.StatusUnprocessableEntity, "AI_PARSE"
	case errors.Is(err, apperrors.ErrRemoteRequest):
		return http.StatusBadGateway, "REMOTE_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
