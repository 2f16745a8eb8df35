package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/handlers"
	"github.com/SscSPs/fintrack/internal/jobs"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock IngestionService ---
type MockIngestionService struct {
	mock.Mock
}

func (m *MockIngestionService) GetUpload(ctx context.Context, uploadID string) (*portssvc.UploadDetail, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.UploadDetail), args.Error(1)
}
func (m *MockIngestionService) ListUploads(ctx context.Context, status *domain.UploadStatus) ([]domain.Upload, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Upload), args.Error(1)
}
func (m *MockIngestionService) Ingest(ctx context.Context, req dto.IngestStatementRequest) (*portssvc.UploadDetail, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.UploadDetail), args.Error(1)
}
func (m *MockIngestionService) Commit(ctx context.Context, uploadID string) (*domain.Upload, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}
func (m *MockIngestionService) Discard(ctx context.Context, uploadID string) error {
	args := m.Called(ctx, uploadID)
	return args.Error(0)
}
func (m *MockIngestionService) ReviewEdit(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockIngestionService) ProcessCategorization(ctx context.Context, job *jobs.CategorizeJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

var _ portssvc.IngestionSvcFacade = (*MockIngestionService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summary(ctx context.Context, period domain.Period) (*domain.Summary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}
func (m *MockReportingService) CategoryBreakdown(ctx context.Context, period domain.Period, direction domain.Direction) ([]domain.CategoryAmount, error) {
	args := m.Called(ctx, period, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAmount), args.Error(1)
}
func (m *MockReportingService) TopMerchants(ctx context.Context, period domain.Period, limit int) ([]domain.MerchantAmount, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MerchantAmount), args.Error(1)
}
func (m *MockReportingService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, password string) (string, time.Time, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	mockIngestion *MockIngestionService
	mockCategory  *MockCategoryService
	mockReporting *MockReportingService
	mockAuth      *MockAuthService
}

func (suite *HandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fintrack-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.cfg.JWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.cfg = &config.Config{
		JWTSecret:      "test-secret-key-that-is-long-enough",
		IsProduction:   true,
		LoginRateLimit: "2-M",
		MaxUploadBytes: 1024,
	}

	suite.mockIngestion = new(MockIngestionService)
	suite.mockCategory = new(MockCategoryService)
	suite.mockReporting = new(MockReportingService)
	suite.mockAuth = new(MockAuthService)

	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Ingestion: suite.mockIngestion,
		Category:  suite.mockCategory,
		Reporting: suite.mockReporting,
		Auth:      suite.mockAuth,
	})
}

func (suite *HandlerTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("owner"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) uploadRequest(filename, content string, fields map[string]string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		suite.Require().NoError(writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		suite.Require().NoError(err)
		_, err = part.Write([]byte(content))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func samplePendingUpload() domain.Upload {
	return domain.Upload{
		UploadID:         uuid.NewString(),
		Filename:         "march.csv",
		Month:            3,
		Year:             2024,
		TransactionCount: 1,
		Status:           domain.UploadPending,
		UploadedAt:       time.Now(),
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRoutesRequireToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/uploads", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockIngestion.AssertNotCalled(suite.T(), "ListUploads", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateUpload_Success() {
	upload := samplePendingUpload()
	detail := &portssvc.UploadDetail{
		Upload: upload,
		Transactions: []domain.Transaction{{
			TransactionID: uuid.NewString(),
			UploadID:      upload.UploadID,
			Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Description:   "KARTU DEBIT INDOMARET",
			Merchant:      "INDOMARET",
			Amount:        decimal.NewFromInt(50000),
			Direction:     domain.Debit,
		}},
		Reconciliation: statement.Reconciliation{Balanced: true},
	}

	suite.mockIngestion.On("Ingest", mock.Anything, mock.MatchedBy(func(r dto.IngestStatementRequest) bool {
		return r.Filename == "march.csv" && r.Year == 2024 && r.Month == 3 && string(r.Content) == "csv-body"
	})).Return(detail, nil).Once()

	w := suite.do(suite.uploadRequest("march.csv", "csv-body", map[string]string{"year": "2024", "month": "3"}))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.UploadDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(upload.UploadID, resp.Upload.UploadID)
	suite.Equal(domain.UploadPending, resp.Upload.Status)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("2024-03-01", resp.Transactions[0].Date)
	suite.Equal("INDOMARET", resp.Transactions[0].Merchant)
	suite.True(resp.Reconciliation.Balanced)
	suite.mockIngestion.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateUpload_NoTransactions() {
	suite.mockIngestion.On("Ingest", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "No transactions found in statement", apperrors.ErrNoTransactions)).Once()

	w := suite.do(suite.uploadRequest("empty.csv", "nothing here", map[string]string{"year": "2024"}))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "No transactions found in statement")
}

func (suite *HandlerTestSuite) TestCreateUpload_MissingFile() {
	w := suite.do(suite.uploadRequest("", "", map[string]string{"year": "2024"}))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockIngestion.AssertNotCalled(suite.T(), "Ingest", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateUpload_MissingYear() {
	w := suite.do(suite.uploadRequest("march.csv", "csv-body", nil))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockIngestion.AssertNotCalled(suite.T(), "Ingest", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateUpload_TooLarge() {
	big := strings.Repeat("x", int(suite.cfg.MaxUploadBytes)+1)
	w := suite.do(suite.uploadRequest("big.csv", big, map[string]string{"year": "2024"}))

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
	suite.mockIngestion.AssertNotCalled(suite.T(), "Ingest", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListUploads_StatusFilter() {
	committed := samplePendingUpload()
	committed.Status = domain.UploadCommitted

	suite.mockIngestion.On("ListUploads", mock.Anything, mock.MatchedBy(func(s *domain.UploadStatus) bool {
		return s != nil && *s == domain.UploadCommitted
	})).Return([]domain.Upload{committed}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/uploads?status=committed", nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.UploadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(domain.UploadCommitted, resp[0].Status)
}

func (suite *HandlerTestSuite) TestListUploads_InvalidStatus() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/uploads?status=deleted", nil)
	w := suite.do(req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetUpload_NotFound() {
	id := uuid.NewString()
	suite.mockIngestion.On("GetUpload", mock.Anything, id).Return(nil, apperrors.NewNotFoundError("upload")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/uploads/"+id, nil)
	w := suite.do(req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "upload not found")
}

func (suite *HandlerTestSuite) TestCommitUpload() {
	upload := samplePendingUpload()
	committed := upload
	committed.Status = domain.UploadCommitted

	suite.mockIngestion.On("Commit", mock.Anything, upload.UploadID).Return(&committed, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/commit", upload.UploadID), nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UploadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.UploadCommitted, resp.Status)
}

func (suite *HandlerTestSuite) TestCommitUpload_AlreadyCommitted() {
	id := uuid.NewString()
	suite.mockIngestion.On("Commit", mock.Anything, id).Return(nil, apperrors.NewConflictError("upload is already committed")).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/commit", id), nil)
	w := suite.do(req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDiscardUpload() {
	id := uuid.NewString()
	suite.mockIngestion.On("Discard", mock.Anything, id).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/uploads/"+id, nil)
	w := suite.do(req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockIngestion.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDiscardUpload_Committed() {
	id := uuid.NewString()
	suite.mockIngestion.On("Discard", mock.Anything, id).Return(apperrors.NewConflictError("committed uploads cannot be deleted")).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/uploads/"+id, nil)
	w := suite.do(req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "committed uploads cannot be deleted")
}

func (suite *HandlerTestSuite) TestUpdateTransaction_ClearsCategory() {
	txID := uuid.NewString()
	updated := &domain.Transaction{TransactionID: txID, Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)}

	suite.mockIngestion.On("ReviewEdit", mock.Anything, txID, mock.MatchedBy(func(r dto.UpdateTransactionRequest) bool {
		return r.CategoryID.Set && r.CategoryID.Value == nil && r.Description == nil
	})).Return(updated, nil).Once()

	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/transactions/"+txID, strings.NewReader(`{"categoryId": null}`))
	req.Header.Set("Content-Type", "application/json")
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockIngestion.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestUpdateTransaction_CommittedLedgerEdit() {
	txID := uuid.NewString()
	suite.mockIngestion.On("ReviewEdit", mock.Anything, txID, mock.Anything).
		Return(nil, apperrors.NewConflictError("transactions of a committed upload are read-only")).Once()

	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/transactions/"+txID, strings.NewReader(`{"description": "new"}`))
	req.Header.Set("Content-Type", "application/json")
	w := suite.do(req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTransaction_InvalidBody() {
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/transactions/"+uuid.NewString(), strings.NewReader(`{"amount": "abc"`))
	req.Header.Set("Content-Type", "application/json")
	w := suite.do(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockIngestion.AssertNotCalled(suite.T(), "ReviewEdit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListTransactions() {
	next := "token-2"
	suite.mockReporting.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Month == 3 && f.Year == 2024 && f.Direction == domain.Debit && f.Limit == 20 && f.Search == "indomaret"
	})).Return([]domain.Transaction{{TransactionID: uuid.NewString()}}, &next, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions?month=3&year=2024&type=debit&limit=20&search=indomaret", nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_DefaultLimit() {
	suite.mockReporting.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Limit == 50
	})).Return([]domain.Transaction{}, nil, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCategories() {
	suite.mockCategory.On("ListCategories", mock.Anything).Return([]domain.Category{
		{CategoryID: 1, Name: "Food", Color: "#FF0000", IsDefault: true},
	}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CategoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Food", resp[0].Name)
}

func (suite *HandlerTestSuite) TestCreateCategory_Duplicate() {
	suite.mockCategory.On("CreateCategory", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("insert category: %w", apperrors.ErrDuplicate)).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name": "Food", "color": "#00FF00"}`))
	req.Header.Set("Content-Type", "application/json")
	w := suite.do(req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteCategory_Default() {
	suite.mockCategory.On("DeleteCategory", mock.Anything, int64(1)).
		Return(apperrors.NewConflictError("default categories cannot be deleted")).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/categories/1", nil)
	w := suite.do(req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteCategory_InvalidID() {
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/categories/abc", nil)
	w := suite.do(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCategory.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestSummary() {
	period := domain.Period{Month: 3, Year: 2024}
	suite.mockReporting.On("Summary", mock.Anything, period).Return(&domain.Summary{
		Period: period,
		Income: decimal.NewFromInt(1000),
	}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/summary?month=3&year=2024", nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestSummary_MissingMonth() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/summary?year=2024", nil)
	w := suite.do(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "Summary", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCategoryBreakdown_DefaultsToDebit() {
	period := domain.Period{Month: 3, Year: 2024}
	suite.mockReporting.On("CategoryBreakdown", mock.Anything, period, domain.Debit).
		Return([]domain.CategoryAmount{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/by-category?month=3&year=2024", nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CategoryBreakdownResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Debit, resp.Direction)
}

func (suite *HandlerTestSuite) TestTopMerchants() {
	period := domain.Period{Month: 3, Year: 2024}
	suite.mockReporting.On("TopMerchants", mock.Anything, period, 5).
		Return([]domain.MerchantAmount{{Merchant: "INDOMARET", Total: decimal.NewFromInt(150000), Count: 3}}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/top-merchants?month=3&year=2024&limit=5", nil)
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TopMerchantsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Merchants, 1)
	suite.Equal("INDOMARET", resp.Merchants[0].Merchant)
}

func (suite *HandlerTestSuite) TestLogin() {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	suite.mockAuth.On("Login", mock.Anything, "hunter2").Return("signed-token", expires, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"password": "hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.Token)
	suite.True(expires.Equal(resp.ExpiresAt))
}

func (suite *HandlerTestSuite) TestLogin_WrongPasswordThenRateLimited() {
	suite.mockAuth.On("Login", mock.Anything, "wrong").
		Return("", time.Time{}, apperrors.NewAppError(http.StatusUnauthorized, "invalid password", apperrors.ErrUnauthorized))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"password": "wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	suite.Equal([]int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
