package statement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// minLineFields is date, description, branch, amount, direction and balance.
const minLineFields = 6

// CreditMarker is written for credits by FormatLine; the tokenizer accepts any non-debit value.
const CreditMarker = "CR"

// ParsedTransaction is one tokenized statement line.
type ParsedTransaction struct {
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Merchant    string           `json:"merchant"`
	Branch      string           `json:"branch"`
	Amount      decimal.Decimal  `json:"amount"`
	Direction   domain.Direction `json:"direction"`
	Balance     decimal.Decimal  `json:"balance"`
}

// TokenizeLine turns one comma-delimited transaction line into a ParsedTransaction.
// Fields are addressed from the end because the description may itself contain commas.
// Merchant is left empty.
func TokenizeLine(line string, year int) (ParsedTransaction, error) {
	parts := strings.Split(line, ",")
	n := len(parts)
	if n < minLineFields {
		return ParsedTransaction{}, fmt.Errorf("%w: %d fields, want at least %d", ErrMalformedLine, n, minLineFields)
	}

	date, err := parseDayMonth(parts[0], year)
	if err != nil {
		return ParsedTransaction{}, err
	}

	balance, err := parseNumber(parts[n-1])
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("balance: %w", err)
	}
	amount, err := parseNumber(parts[n-3])
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("amount: %w", err)
	}
	if amount.IsNegative() {
		return ParsedTransaction{}, fmt.Errorf("amount %s: %w", amount, ErrNegativeAmount)
	}

	return ParsedTransaction{
		Date:        date,
		Description: strings.TrimSpace(strings.Join(parts[1:n-4], ",")),
		Branch:      strings.TrimSpace(stripQuote(parts[n-4])),
		Amount:      amount,
		Direction:   domain.DirectionFromMarker(strings.TrimSpace(parts[n-2])),
		Balance:     balance,
	}, nil
}

// FormatLine renders tx in the export's line shape. TokenizeLine(FormatLine(tx)) reproduces
// tx for descriptions without embedded commas.
func FormatLine(tx ParsedTransaction) string {
	marker := CreditMarker
	if tx.Direction == domain.Debit {
		marker = domain.DebitMarker
	}
	return strings.Join([]string{
		"'" + tx.Date.Format("02/01"),
		tx.Description,
		"'" + tx.Branch,
		tx.Amount.StringFixed(2),
		marker,
		tx.Balance.StringFixed(2),
	}, ",")
}

func parseDayMonth(field string, year int) (time.Time, error) {
	raw := strings.TrimSpace(stripQuote(field))
	dm := strings.Split(raw, "/")
	if len(dm) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	day, err := strconv.Atoi(strings.TrimSpace(dm[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	month, err := strconv.Atoi(strings.TrimSpace(dm[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31/02 into March; reject instead.
	if date.Day() != day || int(date.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return date, nil
}

func parseNumber(field string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(strings.Trim(strings.TrimSpace(field), `'"`))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return d, nil
}

func stripQuote(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "'")
}
