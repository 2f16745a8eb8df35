package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetPeriodTotals(ctx context.Context, period domain.Period) (domain.PeriodTotals, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(domain.PeriodTotals), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryBreakdown(ctx context.Context, period domain.Period, direction domain.Direction) ([]domain.CategoryAmount, error) {
	args := m.Called(ctx, period, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAmount), args.Error(1)
}

func (m *MockReportingRepository) GetTopMerchants(ctx context.Context, period domain.Period, limit int) ([]domain.MerchantAmount, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MerchantAmount), args.Error(1)
}

// --- Mock TransactionReader ---
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) FindTransactionsByUploadID(ctx context.Context, uploadID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListCommittedTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *MockReportingRepository
	txReader *MockTransactionReader
	service  portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = new(MockReportingRepository)
	suite.txReader = new(MockTransactionReader)
	suite.service = services.NewReportingService(suite.repo, suite.txReader)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *ReportingServiceTestSuite) TestSummary_SeparatesAllocations() {
	march := domain.Period{Month: 3, Year: 2024}
	closing := dec("1425000")
	suite.repo.On("GetPeriodTotals", suite.ctx, march).Return(domain.PeriodTotals{
		Income:           dec("1000000"),
		Debits:           dec("600000"),
		Allocations:      dec("100000"),
		TransactionCount: 12,
		ClosingBalance:   &closing,
	}, nil).Once()
	suite.repo.On("GetPeriodTotals", suite.ctx, domain.Period{Month: 2, Year: 2024}).Return(domain.PeriodTotals{
		Income: dec("800000"),
		Debits: dec("400000"),
	}, nil).Once()

	summary, err := suite.service.Summary(suite.ctx, march)

	suite.Require().NoError(err)
	suite.True(dec("500000").Equal(summary.Expenses))
	suite.True(dec("100000").Equal(summary.Allocations))
	suite.True(dec("400000").Equal(summary.Net))
	suite.Equal(12, summary.TransactionCount)
	suite.Equal(&closing, summary.ClosingBalance)
	suite.Require().NotNil(summary.IncomeChange)
	suite.True(dec("25").Equal(*summary.IncomeChange))
	suite.Require().NotNil(summary.ExpensesChange)
	suite.True(dec("25").Equal(*summary.ExpensesChange))
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSummary_NoPreviousMonth() {
	january := domain.Period{Month: 1, Year: 2024}
	suite.repo.On("GetPeriodTotals", suite.ctx, january).Return(domain.PeriodTotals{Income: dec("10")}, nil).Once()
	suite.repo.On("GetPeriodTotals", suite.ctx, domain.Period{Month: 12, Year: 2023}).Return(domain.PeriodTotals{}, nil).Once()

	summary, err := suite.service.Summary(suite.ctx, january)

	suite.Require().NoError(err)
	suite.Nil(summary.IncomeChange)
	suite.Nil(summary.ExpensesChange)
	suite.Nil(summary.ClosingBalance)
}

func (suite *ReportingServiceTestSuite) TestSummary_RepositoryError() {
	march := domain.Period{Month: 3, Year: 2024}
	suite.repo.On("GetPeriodTotals", suite.ctx, march).Return(domain.PeriodTotals{}, assert.AnError).Once()

	summary, err := suite.service.Summary(suite.ctx, march)

	suite.Nil(summary)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ReportingServiceTestSuite) TestSummary_InvalidPeriod() {
	_, err := suite.service.Summary(suite.ctx, domain.Period{Month: 13, Year: 2024})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "GetPeriodTotals", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestCategoryBreakdown_Percentages() {
	march := domain.Period{Month: 3, Year: 2024}
	food := int64(4)
	suite.repo.On("GetCategoryBreakdown", suite.ctx, march, domain.Debit).Return([]domain.CategoryAmount{
		{CategoryID: &food, Name: "Food", Total: dec("75000"), Count: 3},
		{Total: dec("25000"), Count: 1},
	}, nil).Once()

	rows, err := suite.service.CategoryBreakdown(suite.ctx, march, domain.Debit)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.True(dec("75").Equal(rows[0].Percentage))
	suite.Equal(domain.CategoryUncategorized, rows[1].Name)
	suite.True(dec("25").Equal(rows[1].Percentage))
}

func (suite *ReportingServiceTestSuite) TestCategoryBreakdown_InvalidDirection() {
	_, err := suite.service.CategoryBreakdown(suite.ctx, domain.Period{Month: 3, Year: 2024}, "both")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestTopMerchants_ClampsLimit() {
	march := domain.Period{Month: 3, Year: 2024}
	suite.repo.On("GetTopMerchants", suite.ctx, march, services.MaxTopMerchants).Return([]domain.MerchantAmount{}, nil).Once()
	suite.repo.On("GetTopMerchants", suite.ctx, march, services.DefaultTopMerchants).Return([]domain.MerchantAmount{}, nil).Once()

	_, err := suite.service.TopMerchants(suite.ctx, march, 500)
	suite.Require().NoError(err)
	_, err = suite.service.TopMerchants(suite.ctx, march, 0)
	suite.Require().NoError(err)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestListTransactions_DefaultsLimit() {
	token := "next"
	suite.txReader.On("ListCommittedTransactions", suite.ctx, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Limit == services.DefaultPageSize && f.Month == 3
	})).Return([]domain.Transaction{{TransactionID: "t1"}}, &token, nil).Once()

	txs, next, err := suite.service.ListTransactions(suite.ctx, domain.TransactionFilter{Month: 3})

	suite.Require().NoError(err)
	suite.Len(txs, 1)
	suite.Equal(&token, next)
	suite.txReader.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
