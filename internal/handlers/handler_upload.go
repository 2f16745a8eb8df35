package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the form fields around the file part.
const multipartOverhead = 1 << 20

// uploadHandler handles HTTP requests related to statement uploads
type uploadHandler struct {
	ingestionService portssvc.IngestionSvcFacade
	maxUploadBytes   int64
}

// registerUploadRoutes registers routes related to statement uploads
func registerUploadRoutes(rg *gin.RouterGroup, ingestionService portssvc.IngestionSvcFacade, maxUploadBytes int64) {
	h := &uploadHandler{ingestionService: ingestionService, maxUploadBytes: maxUploadBytes}

	uploads := rg.Group("/uploads")
	{
		uploads.POST("", h.createUpload)
		uploads.GET("", h.listUploads)
		uploads.GET("/:uploadID", h.getUpload)
		uploads.POST("/:uploadID/commit", h.commitUpload)
		uploads.DELETE("/:uploadID", h.discardUpload)
	}
}

func toUploadDetailResponse(d *portssvc.UploadDetail) dto.UploadDetailResponse {
	return dto.UploadDetailResponse{
		Upload:         dto.ToUploadResponse(&d.Upload),
		Transactions:   dto.ToListTransactionResponse(d.Transactions),
		Reconciliation: d.Reconciliation,
	}
}

// createUpload godoc
// @Summary Upload a bank statement
// @Description Parses a BCA CSV or PDF statement and stores it as a pending upload for review.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Statement file (.csv or .pdf)"
// @Param year formData int true "Statement year"
// @Param month formData int false "Statement month (1-12); derived from the statement when omitted"
// @Success 201 {object} dto.UploadDetailResponse
// @Failure 400 {object} ErrorResponse "Invalid input or no transactions found"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 500 {object} ErrorResponse "Failed to ingest statement"
// @Security BearerAuth
// @Router /uploads [post]
func (h *uploadHandler) createUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	var form dto.UploadStatementForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("Failed to bind upload form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form: " + err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Statement file missing from upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A statement file is required"})
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		logger.Warn("Statement file too large", slog.Int64("size", fileHeader.Size))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Statement file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read statement file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read statement file"})
		return
	}
	if int64(len(content)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Statement file is too large"})
		return
	}

	logger = logger.With(slog.String("filename", fileHeader.Filename), slog.Int("year", form.Year))
	logger.Info("Received statement upload", slog.Int("bytes", len(content)))

	detail, err := h.ingestionService.Ingest(c.Request.Context(), dto.IngestStatementRequest{
		Filename: fileHeader.Filename,
		Content:  content,
		Year:     form.Year,
		Month:    form.Month,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to ingest statement")
		return
	}

	c.JSON(http.StatusCreated, toUploadDetailResponse(detail))
}

// listUploads godoc
// @Summary List uploads
// @Description Lists statement uploads newest first, optionally filtered by status.
// @Tags uploads
// @Produce json
// @Param status query string false "pending or committed"
// @Success 200 {array} dto.UploadResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list uploads"
// @Security BearerAuth
// @Router /uploads [get]
func (h *uploadHandler) listUploads(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUploadsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var status *domain.UploadStatus
	if params.Status != "" {
		s := domain.UploadStatus(params.Status)
		status = &s
	}

	uploads, err := h.ingestionService.ListUploads(c.Request.Context(), status)
	if err != nil {
		respondError(c, logger, err, "Failed to list uploads")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUploadResponse(uploads))
}

// getUpload godoc
// @Summary Get an upload
// @Description Returns an upload with its transactions and reconciliation report.
// @Tags uploads
// @Produce json
// @Param uploadID path string true "Upload ID"
// @Success 200 {object} dto.UploadDetailResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Upload not found"
// @Failure 500 {object} ErrorResponse "Failed to get upload"
// @Security BearerAuth
// @Router /uploads/{uploadID} [get]
func (h *uploadHandler) getUpload(c *gin.Context) {
	uploadID := c.Param("uploadID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("upload_id", uploadID))

	detail, err := h.ingestionService.GetUpload(c.Request.Context(), uploadID)
	if err != nil {
		respondError(c, logger, err, "Failed to get upload")
		return
	}
	c.JSON(http.StatusOK, toUploadDetailResponse(detail))
}

// commitUpload godoc
// @Summary Commit an upload
// @Description Marks a pending upload as committed. Committed uploads count toward reports and cannot be deleted.
// @Tags uploads
// @Produce json
// @Param uploadID path string true "Upload ID"
// @Success 200 {object} dto.UploadResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Upload not found"
// @Failure 409 {object} ErrorResponse "Upload already committed"
// @Failure 500 {object} ErrorResponse "Failed to commit upload"
// @Security BearerAuth
// @Router /uploads/{uploadID}/commit [post]
func (h *uploadHandler) commitUpload(c *gin.Context) {
	uploadID := c.Param("uploadID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("upload_id", uploadID))

	upload, err := h.ingestionService.Commit(c.Request.Context(), uploadID)
	if err != nil {
		respondError(c, logger, err, "Failed to commit upload")
		return
	}
	c.JSON(http.StatusOK, dto.ToUploadResponse(upload))
}

// discardUpload godoc
// @Summary Discard an upload
// @Description Deletes a pending upload and its transactions.
// @Tags uploads
// @Param uploadID path string true "Upload ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Upload not found"
// @Failure 409 {object} ErrorResponse "Upload already committed"
// @Failure 500 {object} ErrorResponse "Failed to discard upload"
// @Security BearerAuth
// @Router /uploads/{uploadID} [delete]
func (h *uploadHandler) discardUpload(c *gin.Context) {
	uploadID := c.Param("uploadID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("upload_id", uploadID))

	if err := h.ingestionService.Discard(c.Request.Context(), uploadID); err != nil {
		respondError(c, logger, err, "Failed to discard upload")
		return
	}
	c.Status(http.StatusNoContent)
}
