package statement

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
)

// ExtractPDFText returns the embedded text of a PDF, one visual row per line.
// Scanned statements without a text layer yield an empty string.
func ExtractPDFText(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf reader crashed: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, w := range row.Content {
				words = append(words, w.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n"), nil
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

const amountPattern = `\d{1,3}(?:,\d{3})*\.\d{2}`

var (
	layoutTxLine   = regexp.MustCompile(`^(\d{2}/\d{2})\s+(.+?)\s+(` + amountPattern + `)(?:\s+(DB|CR))?(?:\s+(` + amountPattern + `))?$`)
	layoutDateOnly = regexp.MustCompile(`^\d{2}/\d{2}\s`)
	layoutAccount  = regexp.MustCompile(`(?i)NO\.?\s*REKENING\s*:\s*(\S+)`)
	layoutName     = regexp.MustCompile(`(?i)^NAMA\s*:\s*(.+)$`)
	layoutCurrency = regexp.MustCompile(`(?i)MATA\s+UANG\s*:\s*(\S+)`)
	layoutOpening  = regexp.MustCompile(`(?i)^SALDO\s+AWAL\s*:\s*(` + amountPattern + `)`)
	layoutCredit   = regexp.MustCompile(`(?i)^MUTASI\s+(?:CR|KREDIT)\s*:\s*(` + amountPattern + `)`)
	layoutDebit    = regexp.MustCompile(`(?i)^MUTASI\s+(?:DB|DEBET)\s*:\s*(` + amountPattern + `)`)
	layoutClosing  = regexp.MustCompile(`(?i)^SALDO\s+AKHIR\s*:\s*(` + amountPattern + `)`)
	layoutSkip     = regexp.MustCompile(`(?i)^(TANGGAL\s+KETERANGAN|Bersambung|HALAMAN|REKENING\s+TAHAPAN|PERIODE|CATATAN|KCU|KCP)`)
)

type layoutTx struct {
	date        string
	description []string
	amount      string
	marker      string
	balance     string
}

// NormalizeLayoutText rewrites the text layout of a BCA e-statement into the CSV
// export shape so the regular Parse applies. Continuation rows are appended to the
// previous transaction's description; a missing per-row balance is carried forward
// from the opening balance.
func NormalizeLayoutText(text string) string {
	var (
		account, name, currency         string
		opening, credit, debit, closing string
		txs                             []*layoutTx
	)

	for _, line := range Lines(text) {
		line = normalizeSpace(line)
		switch {
		case layoutOpening.MatchString(line):
			opening = layoutOpening.FindStringSubmatch(line)[1]
			continue
		case layoutCredit.MatchString(line):
			credit = layoutCredit.FindStringSubmatch(line)[1]
			continue
		case layoutDebit.MatchString(line):
			debit = layoutDebit.FindStringSubmatch(line)[1]
			continue
		case layoutClosing.MatchString(line):
			closing = layoutClosing.FindStringSubmatch(line)[1]
			continue
		case layoutSkip.MatchString(line):
			continue
		}
		if m := layoutAccount.FindStringSubmatch(line); m != nil {
			account = m[1]
			continue
		}
		if m := layoutName.FindStringSubmatch(line); m != nil {
			name = m[1]
			continue
		}
		if m := layoutCurrency.FindStringSubmatch(line); m != nil {
			currency = m[1]
			continue
		}

		if m := layoutTxLine.FindStringSubmatch(line); m != nil {
			desc := m[2]
			if strings.HasPrefix(strings.ToUpper(desc), "SALDO AWAL") {
				if opening == "" {
					opening = m[3]
				}
				continue
			}
			txs = append(txs, &layoutTx{
				date:        m[1],
				description: []string{desc},
				amount:      m[3],
				marker:      m[4],
				balance:     m[5],
			})
			continue
		}
		if layoutDateOnly.MatchString(line) || len(txs) == 0 {
			continue
		}
		last := txs[len(txs)-1]
		last.description = append(last.description, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "No. rekening,=,'%s\n", account)
	fmt.Fprintf(&b, "Nama,=,%s\n", name)
	fmt.Fprintf(&b, "Kode Mata Uang,=,%s\n", currency)
	b.WriteString("Tanggal,Keterangan,Cabang,Jumlah,,Saldo\n")

	running, _ := decimal.NewFromString(stripGrouping(opening))
	for _, tx := range txs {
		amount, _ := decimal.NewFromString(stripGrouping(tx.amount))
		marker := CreditMarker
		if tx.marker == "DB" {
			marker = "DB"
			running = running.Sub(amount)
		} else {
			running = running.Add(amount)
		}
		if tx.balance != "" {
			running, _ = decimal.NewFromString(stripGrouping(tx.balance))
		}
		fmt.Fprintf(&b, "'%s,%s,'0000,%s,%s,%s\n",
			tx.date, strings.Join(tx.description, " "), amount.StringFixed(2), marker, running.StringFixed(2))
	}

	if opening != "" {
		fmt.Fprintf(&b, "Saldo Awal,=,%s\n", stripGrouping(opening))
	}
	if credit != "" {
		fmt.Fprintf(&b, "Kredit,=,%s\n", stripGrouping(credit))
	}
	if debit != "" {
		fmt.Fprintf(&b, "Debet,=,%s\n", stripGrouping(debit))
	}
	if closing != "" {
		fmt.Fprintf(&b, "Saldo Akhir,=,%s\n", stripGrouping(closing))
	}
	return b.String()
}

// ParsePDF extracts the text layer of a PDF statement and parses it like a CSV export.
func (p *Parser) ParsePDF(r io.ReaderAt, size int64, year int) (*ParseResult, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	text, err := ExtractPDFText(r, size)
	if err != nil {
		return nil, err
	}
	return p.Parse(NormalizeLayoutText(text), year)
}

// ParsePDF runs the default parser over a PDF statement.
func ParsePDF(r io.ReaderAt, size int64, year int) (*ParseResult, error) {
	return defaultParser.ParsePDF(r, size, year)
}

func stripGrouping(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
