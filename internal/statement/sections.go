package statement

import "strings"

const (
	// HeaderToken starts the column header line of the CSV export.
	HeaderToken = "Tanggal"
	// FooterToken starts the totals block of the CSV export.
	FooterToken = "Saldo Awal"

	metadataLineCount = 3
)

// headerPrefixes are the column header spellings seen in exports.
var headerPrefixes = []string{HeaderToken + ",", HeaderToken + " Transaksi,"}

// Sections is a statement split into its three blocks.
type Sections struct {
	Metadata     []string
	Transactions []string
	Footer       []string
	HeaderFound  bool
}

// Lines splits raw text into trimmed, non-blank lines.
func Lines(raw string) []string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// SplitSections divides statement lines into metadata, transaction and footer blocks.
// Without a header line no transaction lines are returned; callers see an empty
// block instead of metadata being misread as transactions.
func SplitSections(lines []string) Sections {
	s := Sections{}
	if len(lines) > metadataLineCount {
		s.Metadata = lines[:metadataLineCount]
	} else {
		s.Metadata = lines
	}

	header := -1
	for i, l := range lines {
		if isHeaderLine(l) {
			header = i
			break
		}
	}

	footer := -1
	for i := header + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], FooterToken) {
			footer = i
			break
		}
	}

	if footer >= 0 {
		s.Footer = lines[footer:]
	}
	if header < 0 {
		return s
	}

	s.HeaderFound = true
	end := len(lines)
	if footer >= 0 {
		end = footer
	}
	s.Transactions = lines[header+1 : end]
	return s
}

func isHeaderLine(l string) bool {
	for _, p := range headerPrefixes {
		if strings.HasPrefix(l, p) {
			return true
		}
	}
	return false
}
