package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Supported statement years.
const (
	MinYear = 2000
	MaxYear = 2100
)

// ParseResult is a normalized statement.
type ParseResult struct {
	AccountNumber  string              `json:"accountNumber"`
	AccountName    string              `json:"accountName"`
	Currency       string              `json:"currency"`
	StatementMonth int                 `json:"statementMonth"` // 0 when there are no transactions
	Transactions   []ParsedTransaction `json:"transactions"`
	HeaderFound    bool                `json:"headerFound"`
	Footer
}

// Reconcile checks the result against its own footer within tolerance.
func (r *ParseResult) Reconcile(year int, tolerance decimal.Decimal) Reconciliation {
	return Reconcile(r.Footer, r.Transactions, r.StatementMonth, year, tolerance)
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMerchantExtractor replaces the default merchant rule chain.
func WithMerchantExtractor(e *MerchantExtractor) ParserOption {
	return func(p *Parser) {
		p.merchants = e
	}
}

// Parser composes the splitter, tokenizer, merchant extractor and footer reader.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	merchants *MerchantExtractor
}

// NewParser creates a Parser with the default merchant rules unless overridden.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{merchants: defaultExtractor}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse runs the default parser.
func Parse(raw string, year int) (*ParseResult, error) {
	return defaultParser.Parse(raw, year)
}

// ValidateYear rejects years outside MinYear..MaxYear.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d not in %d..%d", ErrYearOutOfRange, year, MinYear, MaxYear)
	}
	return nil
}

// Parse turns raw export text into a ParseResult. Statement year comes from the caller
// because lines carry only day and month. A line that fails tokenization aborts the
// parse with a *FormatError; a missing header yields zero transactions and
// HeaderFound=false. Callers must treat an empty transaction list as "no transactions found".
func (p *Parser) Parse(raw string, year int) (*ParseResult, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	sections := SplitSections(Lines(raw))
	result := &ParseResult{
		AccountNumber: metadataValue(sections.Metadata, 0),
		AccountName:   metadataValue(sections.Metadata, 1),
		Currency:      metadataValue(sections.Metadata, 2),
		HeaderFound:   sections.HeaderFound,
		Transactions:  make([]ParsedTransaction, 0, len(sections.Transactions)),
	}

	for i, line := range sections.Transactions {
		tx, err := TokenizeLine(line, year)
		if err != nil {
			return nil, &FormatError{Line: i + 1, Text: line, Err: err}
		}
		tx.Merchant = p.merchants.Extract(tx.Description)
		result.Transactions = append(result.Transactions, tx)
	}

	footer, err := ParseFooter(sections.Footer)
	if err != nil {
		return nil, err
	}
	result.Footer = footer

	if len(result.Transactions) > 0 {
		result.StatementMonth = int(result.Transactions[0].Date.Month())
	}
	return result, nil
}

// ResolveStatementMonth is the caller-side fallback: the month of the first transaction
// when there is one, otherwise the month of now.
func ResolveStatementMonth(r *ParseResult, now time.Time) int {
	if r != nil && r.StatementMonth > 0 {
		return r.StatementMonth
	}
	return int(now.Month())
}

func metadataValue(lines []string, i int) string {
	if i >= len(lines) {
		return ""
	}
	parts := strings.SplitN(lines[i], labelSeparator, 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[1]), "'"))
}
