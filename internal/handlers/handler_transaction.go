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

type transactionHandler struct {
	ingestionService portssvc.IngestionSvcFacade
	reportingService portssvc.ReportingService
}

func registerTransactionRoutes(rg *gin.RouterGroup, ingestionService portssvc.IngestionSvcFacade, reportingService portssvc.ReportingService) {
	h := &transactionHandler{ingestionService: ingestionService, reportingService: reportingService}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.PATCH("/:transactionID", h.updateTransaction)
	}
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Partially updates a transaction. Date, description, merchant, amount and type can only change while the upload is pending; categoryId and notes can always change and accept null.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 409 {object} ErrorResponse "Upload already committed"
// @Failure 500 {object} ErrorResponse "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind transaction update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.ingestionService.ReviewEdit(c.Request.Context(), transactionID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List committed transactions
// @Description Lists transactions of committed uploads newest first with token-based pagination.
// @Tags transactions
// @Produce json
// @Param month query int false "Statement month"
// @Param year query int false "Statement year"
// @Param categoryId query int false "Category ID"
// @Param type query string false "debit or credit"
// @Param search query string false "Matches description or merchant"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txs, next, err := h.reportingService.ListTransactions(c.Request.Context(), domain.TransactionFilter{
		Month:      params.Month,
		Year:       params.Year,
		CategoryID: params.CategoryID,
		Direction:  domain.Direction(params.Direction),
		Search:     params.Search,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txs),
		NextToken:    next,
	})
}
