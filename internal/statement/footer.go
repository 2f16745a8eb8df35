package statement

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// labelSeparator joins a label and its value in metadata and footer lines.
const labelSeparator = ",=,"

// Footer holds the declared totals of a statement. Absent labels stay zero.
type Footer struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	FooterFound    bool            `json:"footerFound"`
}

type footerField int

const (
	fieldOpening footerField = iota
	fieldClosing
	fieldCredit
	fieldDebit
)

// footerLabels are matched as line prefixes in order.
var footerLabels = []struct {
	prefix string
	field  footerField
}{
	{"Saldo Awal", fieldOpening},
	{"Saldo Akhir", fieldClosing},
	{"Mutasi Kredit", fieldCredit},
	{"Kredit", fieldCredit},
	{"Mutasi Debet", fieldDebit},
	{"Debet", fieldDebit},
}

// ParseFooter reads `<label>,=,<value>` lines. Unknown lines are ignored; a known label
// with a non-numeric value is a validation error.
func ParseFooter(lines []string) (Footer, error) {
	f := Footer{}
	for _, line := range lines {
		field, label, ok := matchFooterLabel(line)
		if !ok {
			continue
		}
		parts := strings.SplitN(line, labelSeparator, 2)
		if len(parts) < 2 {
			continue
		}
		value, err := parseGroupedDecimal(parts[1])
		if err != nil {
			return Footer{}, fmt.Errorf("%w: footer %s: %w", apperrors.ErrValidation, label, err)
		}
		f.FooterFound = true
		switch field {
		case fieldOpening:
			f.OpeningBalance = value
		case fieldClosing:
			f.ClosingBalance = value
		case fieldCredit:
			f.TotalCredit = value
		case fieldDebit:
			f.TotalDebit = value
		}
	}
	return f, nil
}

func matchFooterLabel(line string) (footerField, string, bool) {
	for _, l := range footerLabels {
		if strings.HasPrefix(line, l.prefix) {
			return l.field, l.prefix, true
		}
	}
	return 0, "", false
}

var thousandsGroup = regexp.MustCompile(`^\d{3}(\.\d+)?$`)

// parseGroupedDecimal parses "1,150,000.00". Comma-separated groups are joined while
// they look like thousands groups; anything after (such as a trailing count) is dropped.
func parseGroupedDecimal(s string) (decimal.Decimal, error) {
	groups := strings.Split(strings.TrimSpace(s), ",")
	var b strings.Builder
	b.WriteString(strings.TrimSpace(groups[0]))
	for _, g := range groups[1:] {
		g = strings.TrimSpace(g)
		if strings.Contains(b.String(), ".") || !thousandsGroup.MatchString(g) {
			break
		}
		b.WriteString(g)
	}
	raw := b.String()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, strings.TrimSpace(s))
	}
	return d, nil
}

// DefaultTolerance absorbs rounding in declared totals.
var DefaultTolerance = decimal.RequireFromString("0.01")

// Reconciliation compares declared footer totals with the parsed transactions.
// It is informational: a mismatch never blocks ingestion.
type Reconciliation struct {
	Balanced        bool            `json:"balanced"`
	ExpectedClosing decimal.Decimal `json:"expectedClosing"`
	ComputedCredit  decimal.Decimal `json:"computedCredit"`
	ComputedDebit   decimal.Decimal `json:"computedDebit"`
	CreditMatches   bool            `json:"creditMatches"`
	DebitMatches    bool            `json:"debitMatches"`
	BalanceBreaks   int             `json:"balanceBreaks"`
	OutOfPeriod     int             `json:"outOfPeriod"`
	Warnings        []string        `json:"warnings"`
}

// OK reports whether reconciliation raised no warnings.
func (r Reconciliation) OK() bool {
	return len(r.Warnings) == 0
}

// Reconcile checks opening + credit - debit against closing, the per-direction sums
// against the declared totals, running balance continuity, and that every transaction
// falls in the statement period (month 0 skips the period check).
func Reconcile(f Footer, txs []ParsedTransaction, month, year int, tolerance decimal.Decimal) Reconciliation {
	r := Reconciliation{Warnings: []string{}}
	for _, tx := range txs {
		if tx.Direction == domain.Debit {
			r.ComputedDebit = r.ComputedDebit.Add(tx.Amount)
		} else {
			r.ComputedCredit = r.ComputedCredit.Add(tx.Amount)
		}
	}

	if !f.FooterFound {
		r.Warnings = append(r.Warnings, "statement has no footer totals to reconcile against")
	} else {
		r.ExpectedClosing = f.OpeningBalance.Add(f.TotalCredit).Sub(f.TotalDebit)
		r.Balanced = within(r.ExpectedClosing, f.ClosingBalance, tolerance)
		r.CreditMatches = within(r.ComputedCredit, f.TotalCredit, tolerance)
		r.DebitMatches = within(r.ComputedDebit, f.TotalDebit, tolerance)
		if !r.Balanced {
			r.Warnings = append(r.Warnings, fmt.Sprintf("opening %s + credit %s - debit %s = %s, but closing balance is %s",
				f.OpeningBalance.StringFixed(2), f.TotalCredit.StringFixed(2), f.TotalDebit.StringFixed(2),
				r.ExpectedClosing.StringFixed(2), f.ClosingBalance.StringFixed(2)))
		}
		if !r.CreditMatches {
			r.Warnings = append(r.Warnings, fmt.Sprintf("credit transactions sum to %s, footer declares %s",
				r.ComputedCredit.StringFixed(2), f.TotalCredit.StringFixed(2)))
		}
		if !r.DebitMatches {
			r.Warnings = append(r.Warnings, fmt.Sprintf("debit transactions sum to %s, footer declares %s",
				r.ComputedDebit.StringFixed(2), f.TotalDebit.StringFixed(2)))
		}

		running := f.OpeningBalance
		for i, tx := range txs {
			if tx.Direction == domain.Debit {
				running = running.Sub(tx.Amount)
			} else {
				running = running.Add(tx.Amount)
			}
			if !within(running, tx.Balance, tolerance) {
				if r.BalanceBreaks == 0 {
					r.Warnings = append(r.Warnings, fmt.Sprintf("running balance diverges at transaction %d: expected %s, statement shows %s",
						i+1, running.StringFixed(2), tx.Balance.StringFixed(2)))
				}
				r.BalanceBreaks++
				running = tx.Balance
			}
		}
	}

	if month > 0 {
		for _, tx := range txs {
			if int(tx.Date.Month()) != month || tx.Date.Year() != year {
				r.OutOfPeriod++
			}
		}
		if r.OutOfPeriod > 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%d transaction(s) dated outside %s %d",
				r.OutOfPeriod, time.Month(month), year))
		}
	}
	return r
}

func within(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
