package statement

import (
	"regexp"
	"strings"
)

// Rule recognises one transaction-code shape and pulls the counterparty out of it.
type Rule struct {
	Name    string
	Match   func(desc string) bool
	Extract func(desc string) string
}

// MerchantExtractor evaluates rules top to bottom; the first matching rule wins.
type MerchantExtractor struct {
	rules []Rule
}

// NewMerchantExtractor builds an extractor over rules. With no rules it uses DefaultRules.
func NewMerchantExtractor(rules ...Rule) *MerchantExtractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &MerchantExtractor{rules: rules}
}

// Extract returns the display name for desc. When no rule matches, or the matching
// rule captures nothing, it falls back to the whitespace-normalized description.
func (e *MerchantExtractor) Extract(desc string) string {
	name, _ := e.Explain(desc)
	return name
}

// Explain is Extract plus the name of the rule that produced the result ("" for the fallback).
func (e *MerchantExtractor) Explain(desc string) (string, string) {
	normalized := normalizeSpace(desc)
	for _, r := range e.rules {
		if !r.Match(normalized) {
			continue
		}
		if name := cleanMerchant(r.Extract(normalized)); name != "" {
			return name, r.Name
		}
		break
	}
	return normalized, ""
}

// Rules returns a copy of the rule chain, so callers can append bank-specific rules.
func (e *MerchantExtractor) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

var defaultExtractor = NewMerchantExtractor()

// ExtractMerchant runs the default rule chain.
func ExtractMerchant(desc string) string {
	return defaultExtractor.Extract(desc)
}

// RegexRule matches when pattern matches and extracts the given capture group.
func RegexRule(name, pattern string, group int) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name:  name,
		Match: re.MatchString,
		Extract: func(desc string) string {
			m := re.FindStringSubmatch(desc)
			if group >= len(m) {
				return ""
			}
			return m[group]
		},
	}
}

// FixedRule maps every description containing marker (case-insensitive) to label.
func FixedRule(name, marker, label string) Rule {
	upper := strings.ToUpper(marker)
	return Rule{
		Name: name,
		Match: func(desc string) bool {
			return strings.Contains(strings.ToUpper(desc), upper)
		},
		Extract: func(string) string { return label },
	}
}

// LabelRule maps every description matching pattern to label.
func LabelRule(name, pattern, label string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name:    name,
		Match:   re.MatchString,
		Extract: func(string) string { return label },
	}
}

// DefaultRules is the rule chain for BCA transaction codes. Order matters:
// the more specific codes come before the ones they contain.
func DefaultRules() []Rule {
	return []Rule{
		FixedRule("biaya-admin", "BIAYA ADM", "Bank Admin Fee"),
		FixedRule("pajak-bunga", "PAJAK BUNGA", "Interest Tax"),
		LabelRule("bunga", `(?i)^BUNGA\b`, "Interest"),
		RegexRule("qr-payment", `(?i)\bQR\b.*?00000\.00\s*(.+)$`, 1),
		RegexRule("ftfva", `(?i)FTFVA/\S+\s+\d+/(.+)$`, 1),
		RegexRule("ftscy", `(?i)FTSCY/\S+\s+(?:[\d.,]+\s+)?(.+)$`, 1),
		RegexRule("bi-fast", `(?i)BI-FAST\s+(?:DB|CR)\b.*?TRANSFER\s+(?:KE|DR)\s+\d+\s+(.+)$`, 1),
		RegexRule("switching", `(?i)SWITCHING\s+(?:DB|CR)\b.*?TRANSFER\s+(?:KE|DR)\s+\d+\s+(.+)$`, 1),
		RegexRule("kartu-debit", `(?i)KARTU DEBIT\s+(?:\d{2}/\d{2}\s+|\d{4}\s+)?(.+)$`, 1),
		FixedRule("kartu-kredit", "KARTU KREDIT", "BCA Card Payment"),
		RegexRule("db-otomatis", `(?i)DB OTOMATIS\s+(.+)$`, 1),
		RegexRule("kr-otomatis", `(?i)KR OTOMATIS\s+(?:(?:LLG|MIT|RTGS)-?\S*\s+)?(.+)$`, 1),
		FixedRule("tarikan-atm", "TARIKAN ATM", "ATM Withdrawal"),
		FixedRule("setoran-tunai", "SETORAN TUNAI", "Cash Deposit"),
		FixedRule("flazz", "FLAZZ", "Flazz Top Up"),
	}
}

var trailingNoise = regexp.MustCompile(`^(?:-+|[\d./:-]{3,})$`)

// cleanMerchant collapses whitespace and drops trailing reference numbers and dash placeholders.
func cleanMerchant(s string) string {
	fields := strings.Fields(s)
	for len(fields) > 0 && trailingNoise.MatchString(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	for len(fields) > 0 && strings.Trim(fields[0], "-") == "" {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
