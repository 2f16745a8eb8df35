package statement_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/stretchr/testify/assert"
)

func TestMerchantExtractor_DefaultRules(t *testing.T) {
	tests := []struct {
		desc     string
		merchant string
		rule     string
	}{
		{"BIAYA ADM", "Bank Admin Fee", "biaya-admin"},
		{"PAJAK BUNGA", "Interest Tax", "pajak-bunga"},
		{"BUNGA", "Interest", "bunga"},
		{"TRANSAKSI DEBIT TGL: 05/03 QR 014 00000.00KOPI KENANGAN 123456789", "KOPI KENANGAN", "qr-payment"},
		{"TRSF E-BANKING DB 2502/FTFVA/WS95031 80777/TOKOPEDIA - - 1234567890", "TOKOPEDIA", "ftfva"},
		{"TRSF E-BANKING DB 0503/FTSCY/WS95051 50000.00 JANE DOE", "JANE DOE", "ftscy"},
		{"TRSF E-BANKING CR 0503/FTSCY/WS95051 JANE DOE", "JANE DOE", "ftscy"},
		{"BI-FAST DB BIF TRANSFER KE 014 JOHN DOE", "JOHN DOE", "bi-fast"},
		{"BI-FAST CR BIF TRANSFER DR 008 ACME CORP 2024030512", "ACME CORP", "bi-fast"},
		{"SWITCHING CR TRANSFER DR 008 JANE SMITH", "JANE SMITH", "switching"},
		{"KARTU DEBIT 05/03 INDOMARET PUSAT", "INDOMARET PUSAT", "kartu-debit"},
		{"KARTU DEBIT TOKO BUNGA", "TOKO BUNGA", "kartu-debit"},
		{"KARTU KREDIT/PL 4556XXXXXXXX1234", "BCA Card Payment", "kartu-kredit"},
		{"DB OTOMATIS PLN PASCABAYAR 5123456789", "PLN PASCABAYAR", "db-otomatis"},
		{"KR OTOMATIS LLG-MANDIRI PT ACME INDONESIA", "PT ACME INDONESIA", "kr-otomatis"},
		{"TARIKAN ATM 05/03", "ATM Withdrawal", "tarikan-atm"},
		{"SETORAN TUNAI", "Cash Deposit", "setoran-tunai"},
		{"TOPUP FLAZZ BCA", "Flazz Top Up", "flazz"},
	}

	e := statement.NewMerchantExtractor()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			merchant, rule := e.Explain(tt.desc)
			assert.Equal(t, tt.merchant, merchant)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestMerchantExtractor_FallbackNormalizesWhitespace(t *testing.T) {
	merchant, rule := statement.NewMerchantExtractor().Explain("  SOME   UNKNOWN\tTHING ")
	assert.Equal(t, "SOME UNKNOWN THING", merchant)
	assert.Empty(t, rule)
}

func TestMerchantExtractor_EmptyCaptureFallsBack(t *testing.T) {
	desc := "BI-FAST DB BIF TRANSFER KE 014 123456"
	merchant, rule := statement.NewMerchantExtractor().Explain(desc)
	assert.Equal(t, desc, merchant)
	assert.Empty(t, rule)
}

func TestMerchantExtractor_FirstMatchWins(t *testing.T) {
	custom := statement.FixedRule("gojek", "GOPAY", "Gojek")
	rules := append([]statement.Rule{custom}, statement.DefaultRules()...)
	e := statement.NewMerchantExtractor(rules...)

	merchant, rule := e.Explain("TRSF E-BANKING DB 2502/FTFVA/WS95031 39358/GOPAY TOPUP")
	assert.Equal(t, "Gojek", merchant)
	assert.Equal(t, "gojek", rule)

	merchant = statement.ExtractMerchant("TRSF E-BANKING DB 2502/FTFVA/WS95031 39358/GOPAY TOPUP")
	assert.Equal(t, "GOPAY TOPUP", merchant)
}

func TestExtractMerchant_Deterministic(t *testing.T) {
	descs := []string{
		"",
		"BUNGA",
		"QR 014 00000.00KOPI KENANGAN 123",
		"KR OTOMATIS MIT-PAYROLL PT EMPLOYER",
		strings.Repeat("X ", 100),
	}
	for _, d := range descs {
		assert.Equal(t, statement.ExtractMerchant(d), statement.ExtractMerchant(d))
	}
}
