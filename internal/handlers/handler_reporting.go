package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to monthly reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to monthly reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	stats := rg.Group("/stats")
	{
		stats.GET("/summary", h.getSummary)
		stats.GET("/by-category", h.getCategoryBreakdown)
		stats.GET("/top-merchants", h.getTopMerchants)
	}
}

// getSummary godoc
// @Summary Monthly summary
// @Description Income, expenses, allocations and net for a month over committed uploads, with the change against the previous month.
// @Tags stats
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /stats/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid summary parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	logger = logger.With(slog.Int("month", params.Month), slog.Int("year", params.Year))

	summary, err := h.reportingService.Summary(c.Request.Context(), params.Period())
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getCategoryBreakdown godoc
// @Summary Spending by category
// @Description Groups a month's committed transactions of one direction by category.
// @Tags stats
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Param type query string false "debit or credit" default(debit)
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /stats/by-category [get]
func (h *reportingHandler) getCategoryBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.CategoryBreakdownParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid category breakdown parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	direction := domain.Direction(params.Direction)

	rows, err := h.reportingService.CategoryBreakdown(c.Request.Context(), params.Period(), direction)
	if err != nil {
		respondError(c, logger, err, "Failed to generate category breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.CategoryBreakdownResponse{
		Period:     params.Period(),
		Direction:  direction,
		Categories: rows,
	})
}

// getTopMerchants godoc
// @Summary Top merchants
// @Description Ranks merchants by debit total for a month.
// @Tags stats
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Param limit query int false "Number of merchants" default(10)
// @Success 200 {object} dto.TopMerchantsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /stats/top-merchants [get]
func (h *reportingHandler) getTopMerchants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TopMerchantsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid top merchants parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	merchants, err := h.reportingService.TopMerchants(c.Request.Context(), params.Period(), params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to generate merchant ranking")
		return
	}
	c.JSON(http.StatusOK, dto.TopMerchantsResponse{
		Period:    params.Period(),
		Merchants: merchants,
	})
}
