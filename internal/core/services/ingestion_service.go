package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/categorizer"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/jobs"
	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ingestionService implements the IngestionSvcFacade interface
type ingestionService struct {
	BaseService
	uploadRepo      portsrepo.UploadRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	categoryRepo    portsrepo.CategoryReader
	parser          *statement.Parser
	categorizer     *categorizer.Adapter
	dispatcher      jobs.Dispatcher
	archiver        portsrepo.StatementArchiver
	tolerance       decimal.Decimal
	validate        *validator.Validate
}

// IngestionServiceOption is a functional option for configuring the ingestion service
type IngestionServiceOption func(*ingestionService)

// WithParser replaces the default statement parser.
func WithParser(p *statement.Parser) IngestionServiceOption {
	return func(s *ingestionService) {
		s.parser = p
	}
}

// WithCategorizer sets the adapter that produces category suggestions.
func WithCategorizer(a *categorizer.Adapter) IngestionServiceOption {
	return func(s *ingestionService) {
		s.categorizer = a
	}
}

// WithDispatcher sets where categorization jobs go. The caller owns the dispatcher
// and must Start it with ProcessCategorization as the handler.
func WithDispatcher(d jobs.Dispatcher) IngestionServiceOption {
	return func(s *ingestionService) {
		s.dispatcher = d
	}
}

// WithArchiver keeps a copy of every uploaded file.
func WithArchiver(a portsrepo.StatementArchiver) IngestionServiceOption {
	return func(s *ingestionService) {
		s.archiver = a
	}
}

// WithReconcileTolerance sets how far footer totals may drift from the parsed sums.
func WithReconcileTolerance(t decimal.Decimal) IngestionServiceOption {
	return func(s *ingestionService) {
		s.tolerance = t
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) IngestionServiceOption {
	return func(s *ingestionService) {
		s.now = now
	}
}

// NewIngestionService creates a new ingestion service with the provided options.
// Without WithDispatcher, categorization runs inline during Ingest.
func NewIngestionService(
	uploadRepo portsrepo.UploadRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	options ...IngestionServiceOption,
) portssvc.IngestionSvcFacade {
	svc := &ingestionService{
		uploadRepo:      uploadRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		parser:          statement.NewParser(),
		categorizer:     categorizer.NewAdapter(categorizer.NoopOracle{}),
		tolerance:       statement.DefaultTolerance,
		validate:        newValidator(),
	}

	for _, option := range options {
		option(svc)
	}

	if svc.dispatcher == nil {
		inline := jobs.NewInline()
		_ = inline.Start(context.Background(), svc.ProcessCategorization)
		svc.dispatcher = inline
	}

	return svc
}

// Ensure ingestionService implements the IngestionSvcFacade interface
var _ portssvc.IngestionSvcFacade = (*ingestionService)(nil)

const errNoTransactionsMessage = "No transactions found in statement"

func noTransactions(cause error) error {
	err := apperrors.ErrNoTransactions
	if cause != nil {
		err = fmt.Errorf("%w: %w", apperrors.ErrNoTransactions, cause)
	}
	return apperrors.NewAppError(http.StatusBadRequest, errNoTransactionsMessage, err)
}

// Ingest parses the statement and stores it as a pending upload.
func (s *ingestionService) Ingest(ctx context.Context, req dto.IngestStatementRequest) (*portssvc.UploadDetail, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = formatFromFilename(req.Filename)
	}

	var (
		result *statement.ParseResult
		err    error
	)
	switch format {
	case dto.FormatPDF:
		result, err = s.parser.ParsePDF(bytes.NewReader(req.Content), int64(len(req.Content)), req.Year)
	default:
		result, err = s.parser.Parse(string(req.Content), req.Year)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to parse statement",
			slog.String("filename", req.Filename),
			slog.String("format", string(format)))
		var formatErr *statement.FormatError
		if errors.As(err, &formatErr) {
			return nil, noTransactions(err)
		}
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationError(err.Error())
		}
		return nil, noTransactions(err)
	}
	if len(result.Transactions) == 0 {
		s.LogInfo(ctx, "Statement contained no transactions",
			slog.String("filename", req.Filename),
			slog.Bool("header_found", result.HeaderFound))
		return nil, noTransactions(nil)
	}

	now := s.Now()
	month := req.Month
	if month == 0 {
		month = statement.ResolveStatementMonth(result, now)
	}

	upload := domain.Upload{
		UploadID:         uuid.NewString(),
		Filename:         filepath.Base(req.Filename),
		Month:            month,
		Year:             req.Year,
		AccountNumber:    result.AccountNumber,
		AccountName:      result.AccountName,
		Currency:         result.Currency,
		OpeningBalance:   result.OpeningBalance,
		ClosingBalance:   result.ClosingBalance,
		TotalCredit:      result.TotalCredit,
		TotalDebit:       result.TotalDebit,
		TransactionCount: len(result.Transactions),
		Status:           domain.UploadPending,
		UploadedAt:       now,
	}

	transactions := make([]domain.Transaction, len(result.Transactions))
	for i, parsed := range result.Transactions {
		transactions[i] = domain.Transaction{
			TransactionID: uuid.NewString(),
			UploadID:      upload.UploadID,
			Position:      i,
			Date:          parsed.Date,
			Description:   parsed.Description,
			Merchant:      parsed.Merchant,
			Branch:        parsed.Branch,
			Amount:        parsed.Amount,
			Direction:     parsed.Direction,
			Balance:       parsed.Balance,
			Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
	}

	if s.archiver != nil {
		uri, err := s.archiver.Archive(ctx, upload.UploadID, upload.Filename, req.Content)
		if err != nil {
			s.LogWarn(ctx, err, "Failed to archive statement, continuing without archive",
				slog.String("upload_id", upload.UploadID))
		} else {
			upload.ArchiveURI = uri
		}
	}

	if err := s.uploadRepo.CreateUploadWithTransactions(ctx, upload, transactions); err != nil {
		s.LogError(ctx, err, "Failed to persist upload", slog.String("upload_id", upload.UploadID))
		s.deleteArchive(ctx, upload)
		return nil, fmt.Errorf("failed to persist upload: %w", err)
	}

	reconciliation := statement.Reconcile(result.Footer, result.Transactions, month, req.Year, s.tolerance)
	if !reconciliation.OK() {
		s.LogInfo(ctx, "Statement reconciliation raised warnings",
			slog.String("upload_id", upload.UploadID),
			slog.Any("warnings", reconciliation.Warnings))
	}

	s.dispatchCategorization(ctx, upload.UploadID, transactions)

	// Inline categorization has already written categories; re-read to return them.
	if stored, err := s.transactionRepo.FindTransactionsByUploadID(ctx, upload.UploadID); err == nil {
		transactions = stored
	} else {
		s.LogWarn(ctx, err, "Failed to reload transactions after categorization", slog.String("upload_id", upload.UploadID))
	}

	s.LogInfo(ctx, "Statement ingested",
		slog.String("upload_id", upload.UploadID),
		slog.Int("transaction_count", upload.TransactionCount),
		slog.Int("month", upload.Month),
		slog.Int("year", upload.Year))

	return &portssvc.UploadDetail{
		Upload:         upload,
		Transactions:   transactions,
		Reconciliation: reconciliation,
	}, nil
}

func (s *ingestionService) dispatchCategorization(ctx context.Context, uploadID string, transactions []domain.Transaction) {
	job := &jobs.CategorizeJob{
		JobID:          uuid.NewString(),
		UploadID:       uploadID,
		TransactionIDs: make([]string, 0, len(transactions)),
		Items:          make([]categorizer.Item, 0, len(transactions)),
	}
	for i, t := range transactions {
		if t.CategoryID != nil {
			continue
		}
		job.TransactionIDs = append(job.TransactionIDs, t.TransactionID)
		job.Items = append(job.Items, categorizer.Item{
			Index:       i,
			Merchant:    t.Merchant,
			Description: t.Description,
			Direction:   t.Direction,
			Amount:      t.Amount,
		})
	}
	if len(job.Items) == 0 {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, job); err != nil {
		s.LogWarn(ctx, err, "Categorization did not complete, transactions stay uncategorized",
			slog.String("upload_id", uploadID),
			slog.String("job_id", job.JobID))
	}
}

// ProcessCategorization asks the oracle for the job's batch and fills in categories
// on rows that still have none. An empty answer changes nothing.
func (s *ingestionService) ProcessCategorization(ctx context.Context, job *jobs.CategorizeJob) error {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories for categorization", slog.String("job_id", job.JobID))
		return fmt.Errorf("failed to list categories: %w", err)
	}
	refs := make([]domain.CategoryRef, len(categories))
	for i, c := range categories {
		refs[i] = c.Ref()
	}

	byIndex := make(map[int]string, len(job.Items))
	for i, item := range job.Items {
		if i < len(job.TransactionIDs) {
			byIndex[item.Index] = job.TransactionIDs[i]
		}
	}

	suggestions := s.categorizer.Categorize(ctx, job.Items, refs)
	assignments := make(map[string]int64, len(suggestions))
	for idx, categoryID := range suggestions {
		if txID, ok := byIndex[idx]; ok {
			assignments[txID] = categoryID
		}
	}
	if len(assignments) == 0 {
		s.LogInfo(ctx, "No categories suggested",
			slog.String("job_id", job.JobID),
			slog.String("upload_id", job.UploadID),
			slog.Int("batch_size", len(job.Items)))
		return nil
	}

	applied, err := s.transactionRepo.ApplyCategories(ctx, assignments)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply categories", slog.String("job_id", job.JobID))
		return fmt.Errorf("failed to apply categories: %w", err)
	}

	s.LogInfo(ctx, "Categories applied",
		slog.String("job_id", job.JobID),
		slog.String("upload_id", job.UploadID),
		slog.Int("suggested", len(assignments)),
		slog.Int("applied", applied))
	return nil
}

// Commit flips a pending upload to committed.
func (s *ingestionService) Commit(ctx context.Context, uploadID string) (*domain.Upload, error) {
	upload, err := s.uploadRepo.MarkUploadCommitted(ctx, uploadID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrStateConflict) {
			s.LogError(ctx, err, "Failed to commit upload", slog.String("upload_id", uploadID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Upload committed", slog.String("upload_id", uploadID))
	return upload, nil
}

// Discard deletes a pending upload, its transactions and its archived file.
func (s *ingestionService) Discard(ctx context.Context, uploadID string) error {
	upload, err := s.uploadRepo.FindUploadByID(ctx, uploadID)
	if err != nil {
		return err
	}
	if !upload.IsPending() {
		return apperrors.NewConflictError("committed uploads cannot be deleted")
	}

	if err := s.uploadRepo.DeletePendingUpload(ctx, uploadID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrStateConflict) {
			s.LogError(ctx, err, "Failed to discard upload", slog.String("upload_id", uploadID))
		}
		return err
	}
	s.deleteArchive(ctx, *upload)

	s.LogInfo(ctx, "Upload discarded", slog.String("upload_id", uploadID))
	return nil
}

func (s *ingestionService) deleteArchive(ctx context.Context, upload domain.Upload) {
	if s.archiver == nil || upload.ArchiveURI == "" {
		return
	}
	if err := s.archiver.Delete(ctx, upload.ArchiveURI); err != nil {
		s.LogWarn(ctx, err, "Failed to delete archived statement",
			slog.String("upload_id", upload.UploadID),
			slog.String("archive_uri", upload.ArchiveURI))
	}
}

// ReviewEdit applies a partial edit to one transaction.
func (s *ingestionService) ReviewEdit(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	ledgerEdit := req.EditsLedger()
	if ledgerEdit {
		upload, err := s.uploadRepo.FindUploadByID(ctx, txn.UploadID)
		if err != nil {
			return nil, err
		}
		if !upload.IsPending() {
			return nil, apperrors.NewConflictError("only category and notes can be changed after the upload is committed")
		}
	}

	if req.Date != nil {
		date, err := time.Parse(dto.DateLayout, *req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be a date in YYYY-MM-DD format")
		}
		txn.Date = date
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			return nil, apperrors.NewValidationError("description must not be blank")
		}
		txn.Description = desc
	}
	if req.Merchant != nil {
		txn.Merchant = strings.TrimSpace(*req.Merchant)
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Direction != nil {
		txn.Direction = *req.Direction
	}
	if req.CategoryID.Set {
		if req.CategoryID.Value != nil {
			if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID.Value); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, apperrors.NewValidationError(fmt.Sprintf("category %d does not exist", *req.CategoryID.Value))
				}
				return nil, err
			}
		}
		txn.CategoryID = req.CategoryID.Value
	}
	if req.Notes.Set {
		txn.Notes = req.Notes.Value
	}
	txn.UpdatedAt = s.Now()

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn, ledgerEdit); err != nil {
		if !errors.Is(err, apperrors.ErrStateConflict) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction edited",
		slog.String("transaction_id", transactionID),
		slog.Bool("ledger_edit", ledgerEdit))
	return txn, nil
}

// GetUpload returns an upload with its transactions and a fresh reconciliation.
func (s *ingestionService) GetUpload(ctx context.Context, uploadID string) (*portssvc.UploadDetail, error) {
	upload, err := s.uploadRepo.FindUploadByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.FindTransactionsByUploadID(ctx, uploadID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load upload transactions", slog.String("upload_id", uploadID))
		return nil, fmt.Errorf("failed to load upload transactions: %w", err)
	}

	return &portssvc.UploadDetail{
		Upload:         *upload,
		Transactions:   transactions,
		Reconciliation: s.reconcileStored(*upload, transactions),
	}, nil
}

// reconcileStored rebuilds the parser view of stored rows. The footer counts as
// present when any declared total is non-zero.
func (s *ingestionService) reconcileStored(upload domain.Upload, transactions []domain.Transaction) statement.Reconciliation {
	footer := statement.Footer{
		OpeningBalance: upload.OpeningBalance,
		ClosingBalance: upload.ClosingBalance,
		TotalCredit:    upload.TotalCredit,
		TotalDebit:     upload.TotalDebit,
	}
	footer.FooterFound = !(footer.OpeningBalance.IsZero() && footer.ClosingBalance.IsZero() &&
		footer.TotalCredit.IsZero() && footer.TotalDebit.IsZero())

	parsed := make([]statement.ParsedTransaction, len(transactions))
	for i, t := range transactions {
		parsed[i] = statement.ParsedTransaction{
			Date:        t.Date,
			Description: t.Description,
			Merchant:    t.Merchant,
			Branch:      t.Branch,
			Amount:      t.Amount,
			Direction:   t.Direction,
			Balance:     t.Balance,
		}
	}
	return statement.Reconcile(footer, parsed, upload.Month, upload.Year, s.tolerance)
}

// ListUploads returns uploads newest first.
func (s *ingestionService) ListUploads(ctx context.Context, status *domain.UploadStatus) ([]domain.Upload, error) {
	uploads, err := s.uploadRepo.ListUploads(ctx, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list uploads")
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, nil
}

func formatFromFilename(name string) dto.StatementFormat {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return dto.FormatPDF
	}
	return dto.FormatCSV
}
