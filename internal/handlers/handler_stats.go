package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
	"github.com/meuboleto/meuboleto_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// statsHandler handles HTTP requests for the derived bill summary.
type statsHandler struct {
	statsService portssvc.StatsSvcFacade
}

func newStatsHandler(ss portssvc.StatsSvcFacade) *statsHandler {
	return &statsHandler{
		statsService: ss,
	}
}

// registerStatsRoutes registers the stats routes.
func registerStatsRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvcFacade) {
	h := newStatsHandler(statsService)

	rg.GET("/bills/stats", h.getBillStats)
}

// getBillStats godoc
// @Summary Get bill statistics
// @Description Computes totals, category breakdown and upcoming-due count over the user's bills
// @Tags stats
// @Produce  json
// @Success 200 {object} dto.BillStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Security BearerAuth
// @Router /bills/stats [get]
func (h *statsHandler) getBillStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.statsService.GetBillStats(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute bill stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBillStatsResponse(stats))
}
