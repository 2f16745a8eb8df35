// Package memory implements the repository ports on in-process maps. It backs the
// CLI dry run and the service tests, and mirrors the Postgres semantics: cascading
// deletes, conditional status transitions and committed-only reporting.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// DefaultCategories mirrors the seed migration.
var DefaultCategories = []domain.Category{
	{CategoryID: 1, Name: "Investing", Color: "#10B981", IsDefault: true},
	{CategoryID: 2, Name: "Tithe", Color: "#8B5CF6", IsDefault: true},
	{CategoryID: 3, Name: "Family", Color: "#F59E0B", IsDefault: true},
	{CategoryID: 4, Name: "Food", Color: "#EF4444", IsDefault: true},
	{CategoryID: 5, Name: "Health", Color: "#EC4899", IsDefault: true},
	{CategoryID: 6, Name: "Personal Items", Color: "#6366F1", IsDefault: true},
	{CategoryID: 7, Name: "Education", Color: "#3B82F6", IsDefault: true},
	{CategoryID: 8, Name: "Salary", Color: "#22C55E", IsDefault: true},
	{CategoryID: 9, Name: "Transfer", Color: "#94A3B8", IsDefault: true},
	{CategoryID: 10, Name: "Fees & Admin", Color: "#78716C", IsDefault: true},
	{CategoryID: 11, Name: "Bills & Utilities", Color: "#0EA5E9", IsDefault: true},
	{CategoryID: 12, Name: "Shopping", Color: "#F97316", IsDefault: true},
	{CategoryID: 13, Name: "Uncategorized", Color: "#D1D5DB", IsDefault: true},
}

// Store holds every table behind one lock.
type Store struct {
	mu           sync.RWMutex
	uploads      map[string]domain.Upload
	transactions map[string]domain.Transaction
	categories   map[int64]domain.Category
	nextCategory int64
	now          func() time.Time
}

// NewStore creates a store seeded with DefaultCategories.
func NewStore() *Store {
	s := &Store{
		uploads:      map[string]domain.Upload{},
		transactions: map[string]domain.Transaction{},
		categories:   map[int64]domain.Category{},
		now:          time.Now,
	}
	for _, c := range DefaultCategories {
		c.CreatedAt = s.now()
		s.categories[c.CategoryID] = c
		if c.CategoryID > s.nextCategory {
			s.nextCategory = c.CategoryID
		}
	}
	return s
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UploadRepo:      s,
		TransactionRepo: s,
		CategoryRepo:    s,
		ReportingRepo:   s,
	}
}

var (
	_ portsrepo.UploadRepositoryFacade      = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.CategoryRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ReportingRepository         = (*Store)(nil)
)

// --- uploads ---

func (s *Store) CreateUploadWithTransactions(_ context.Context, upload domain.Upload, transactions []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.uploads[upload.UploadID]; ok {
		return apperrors.NewAppError(409, "upload "+upload.UploadID+" already exists", apperrors.ErrDuplicate)
	}
	for _, t := range transactions {
		if _, ok := s.transactions[t.TransactionID]; ok {
			return apperrors.NewAppError(409, "transaction "+t.TransactionID+" already exists", apperrors.ErrDuplicate)
		}
	}
	s.uploads[upload.UploadID] = upload
	for _, t := range transactions {
		s.transactions[t.TransactionID] = t
	}
	return nil
}

func (s *Store) FindUploadByID(_ context.Context, uploadID string) (*domain.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.uploads[uploadID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *Store) ListUploads(_ context.Context, status *domain.UploadStatus) ([]domain.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Upload{}
	for _, u := range s.uploads {
		if status != nil && u.Status != *status {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].UploadID < out[j].UploadID
	})
	return out, nil
}

func (s *Store) MarkUploadCommitted(_ context.Context, uploadID string) (*domain.Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[uploadID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !u.IsPending() {
		return nil, apperrors.NewConflictError("upload " + uploadID + " is already committed")
	}
	u.Status = domain.UploadCommitted
	s.uploads[uploadID] = u
	return &u, nil
}

func (s *Store) DeletePendingUpload(_ context.Context, uploadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[uploadID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !u.IsPending() {
		return apperrors.NewConflictError("upload " + uploadID + " is already committed")
	}
	delete(s.uploads, uploadID)
	for id, t := range s.transactions {
		if t.UploadID == uploadID {
			delete(s.transactions, id)
		}
	}
	return nil
}

// --- transactions ---

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *Store) FindTransactionsByUploadID(_ context.Context, uploadID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Transaction{}
	for _, t := range s.transactions {
		if t.UploadID == uploadID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *Store) ListCommittedTransactions(_ context.Context, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	var cursor *domain.TransactionCursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		date, createdAt, id, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		cursor = &domain.TransactionCursor{Date: date, CreatedAt: createdAt, TransactionID: id}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := []domain.Transaction{}
	for _, t := range s.transactions {
		u, ok := s.uploads[t.UploadID]
		if !ok || !u.IsCommitted() {
			continue
		}
		if filter.Month > 0 && u.Month != filter.Month {
			continue
		}
		if filter.Year > 0 && u.Year != filter.Year {
			continue
		}
		if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Direction != "" && t.Direction != filter.Direction {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Merchant), search) {
			continue
		}
		if cursor != nil && !before(t, *cursor) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		return before(matched[j], cursorOf(matched[i]))
	})

	var next *string
	if len(matched) > limit {
		last := matched[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt, last.TransactionID)
		next = &token
		matched = matched[:limit]
	}
	return matched, next, nil
}

func cursorOf(t domain.Transaction) domain.TransactionCursor {
	return domain.TransactionCursor{Date: t.Date, CreatedAt: t.CreatedAt, TransactionID: t.TransactionID}
}

// before reports whether t sorts after c in newest-first order.
func before(t domain.Transaction, c domain.TransactionCursor) bool {
	if !t.Date.Equal(c.Date) {
		return t.Date.Before(c.Date)
	}
	if !t.CreatedAt.Equal(c.CreatedAt) {
		return t.CreatedAt.Before(c.CreatedAt)
	}
	return t.TransactionID < c.TransactionID
}

func (s *Store) UpdateTransaction(_ context.Context, txn domain.Transaction, requirePending bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.transactions[txn.TransactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if requirePending {
		if u, ok := s.uploads[current.UploadID]; !ok || !u.IsPending() {
			return apperrors.NewConflictError("transaction " + txn.TransactionID + " belongs to a committed upload")
		}
	}
	if txn.CategoryID != nil {
		if _, ok := s.categories[*txn.CategoryID]; !ok {
			return apperrors.NewValidationError("category does not exist")
		}
	}
	current.Date = txn.Date
	current.Description = txn.Description
	current.Merchant = txn.Merchant
	current.Amount = txn.Amount
	current.Direction = txn.Direction
	current.CategoryID = txn.CategoryID
	current.Notes = txn.Notes
	current.UpdatedAt = txn.UpdatedAt
	s.transactions[txn.TransactionID] = current
	return nil
}

func (s *Store) ApplyCategories(_ context.Context, assignments map[string]int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for id, categoryID := range assignments {
		t, ok := s.transactions[id]
		if !ok || t.CategoryID != nil {
			continue
		}
		if _, ok := s.categories[categoryID]; !ok {
			continue
		}
		c := categoryID
		t.CategoryID = &c
		t.UpdatedAt = s.now()
		s.transactions[id] = t
		updated++
	}
	return updated, nil
}

// --- categories ---

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}

func (s *Store) FindCategoryByID(_ context.Context, categoryID int64) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(category.Name, 0) {
		return nil, apperrors.NewAppError(409, "category "+category.Name+" already exists", apperrors.ErrDuplicate)
	}
	s.nextCategory++
	category.CategoryID = s.nextCategory
	category.CreatedAt = s.now()
	s.categories[category.CategoryID] = category
	return &category, nil
}

func (s *Store) UpdateCategory(_ context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.categories[category.CategoryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if s.nameTaken(category.Name, category.CategoryID) {
		return apperrors.NewAppError(409, "category "+category.Name+" already exists", apperrors.ErrDuplicate)
	}
	current.Name = category.Name
	current.Color = category.Color
	s.categories[category.CategoryID] = current
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, categoryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.categories, categoryID)
	for id, t := range s.transactions {
		if t.CategoryID != nil && *t.CategoryID == categoryID {
			t.CategoryID = nil
			s.transactions[id] = t
		}
	}
	return nil
}

func (s *Store) nameTaken(name string, exceptID int64) bool {
	for id, c := range s.categories {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

// --- reporting ---

func (s *Store) committedIn(period domain.Period) []domain.Transaction {
	out := []domain.Transaction{}
	for _, t := range s.transactions {
		u, ok := s.uploads[t.UploadID]
		if ok && u.IsCommitted() && u.Month == period.Month && u.Year == period.Year {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) GetPeriodTotals(_ context.Context, period domain.Period) (domain.PeriodTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var totals domain.PeriodTotals
	for _, t := range s.committedIn(period) {
		totals.TransactionCount++
		if t.Direction == domain.Credit {
			totals.Income = totals.Income.Add(t.Amount)
			continue
		}
		totals.Debits = totals.Debits.Add(t.Amount)
		if t.CategoryID != nil && domain.IsAllocation(s.categories[*t.CategoryID].Name) {
			totals.Allocations = totals.Allocations.Add(t.Amount)
		}
	}

	var latest *domain.Upload
	for _, u := range s.uploads {
		if !u.IsCommitted() || u.Month != period.Month || u.Year != period.Year {
			continue
		}
		if latest == nil || u.UploadedAt.After(latest.UploadedAt) {
			u := u
			latest = &u
		}
	}
	if latest != nil {
		closing := latest.ClosingBalance
		totals.ClosingBalance = &closing
	}
	return totals, nil
}

func (s *Store) GetCategoryBreakdown(_ context.Context, period domain.Period, direction domain.Direction) ([]domain.CategoryAmount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	const uncategorized = int64(-1)
	groups := map[int64]*domain.CategoryAmount{}
	for _, t := range s.committedIn(period) {
		if t.Direction != direction {
			continue
		}
		key := uncategorized
		if t.CategoryID != nil {
			key = *t.CategoryID
		}
		g, ok := groups[key]
		if !ok {
			g = &domain.CategoryAmount{}
			if t.CategoryID != nil {
				id := *t.CategoryID
				g.CategoryID = &id
				g.Name = s.categories[id].Name
				g.Color = s.categories[id].Color
			}
			groups[key] = g
		}
		g.Total = g.Total.Add(t.Amount)
		g.Count++
	}
	out := make([]domain.CategoryAmount, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) GetTopMerchants(_ context.Context, period domain.Period, limit int) ([]domain.MerchantAmount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := map[string]*domain.MerchantAmount{}
	for _, t := range s.committedIn(period) {
		if t.Direction != domain.Debit {
			continue
		}
		name := t.Merchant
		if name == "" {
			name = t.Description
		}
		g, ok := groups[name]
		if !ok {
			g = &domain.MerchantAmount{Merchant: name, Total: decimal.Zero}
			groups[name] = g
		}
		g.Total = g.Total.Add(t.Amount)
		g.Count++
	}
	out := make([]domain.MerchantAmount, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Merchant < out[j].Merchant
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
