package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/SscSPs/fintrack/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const balancedStatement = `No. rekening,=,'1234567890
Nama,=,JOHN DOE
Kode Mata Uang,=,IDR

Tanggal,Keterangan,Cabang,Jumlah,,Saldo
'05/03,TRSF E-BANKING DB 0503/FTSCY/WS95051 50000.00 JANE DOE,'0000,50000.00,DB,950000.00
'10/03,BI-FAST CR BIF TRANSFER DR 014 ACME CORP,'0000,200000.00,CR,1150000.00

Saldo Awal,=,1,000,000.00
Kredit,=,200,000.00
Debet,=,50,000.00
Saldo Akhir,=,1,150,000.00
`

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParse(t *testing.T) {
	path := writeStatement(t, balancedStatement)

	out, err := run(t, "parse", path, "--year", "2024")
	require.NoError(t, err)

	var result statement.ParseResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "1234567890", result.AccountNumber)
	assert.Equal(t, 3, result.StatementMonth)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "JANE DOE", result.Transactions[0].Merchant)
}

func TestParse_YearOutOfRange(t *testing.T) {
	path := writeStatement(t, balancedStatement)

	_, err := run(t, "parse", path, "--year", "1999")
	require.ErrorIs(t, err, statement.ErrYearOutOfRange)
}

func TestReconcile_Balanced(t *testing.T) {
	path := writeStatement(t, balancedStatement)

	out, err := run(t, "reconcile", path, "--year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "transactions: 2")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "ok"))
}

func TestReconcile_Unbalanced(t *testing.T) {
	path := writeStatement(t, strings.Replace(balancedStatement, "Debet,=,50,000.00", "Debet,=,60,000.00", 1))

	out, err := run(t, "reconcile", path, "--year", "2024")
	require.ErrorIs(t, err, errUnbalanced)
	assert.Contains(t, out, "warning:")
}

func TestReconcile_NoTransactions(t *testing.T) {
	path := writeStatement(t, "just some text\n")

	_, err := run(t, "reconcile", path, "--year", "2024")
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	path := writeStatement(t, balancedStatement)

	out, err := run(t, "render", path, "--year", "2024")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	tx, err := statement.TokenizeLine(lines[1], 2024)
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, tx.Direction)
	assert.Equal(t, "200000.00", tx.Amount.StringFixed(2))
}

func TestMerchant(t *testing.T) {
	out, err := run(t, "merchant", "KARTU", "DEBIT", "INDOMARET", "SUDIRMAN")
	require.NoError(t, err)
	assert.Equal(t, "INDOMARET SUDIRMAN\tkartu-debit\n", out)

	out, err = run(t, "merchant", "SOMETHING", "UNKNOWN")
	require.NoError(t, err)
	assert.Equal(t, "SOMETHING UNKNOWN\t(fallback)\n", out)
}

func TestIngest_DryRunWithCommit(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := writeStatement(t, balancedStatement)

	out, err := run(t, "ingest", path, "--year", "2024", "--commit")
	require.NoError(t, err)

	var report ingestReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, domain.UploadCommitted, report.Upload.Upload.Status)
	assert.Len(t, report.Upload.Transactions, 2)
	assert.True(t, report.Upload.Reconciliation.Balanced)
	require.NotNil(t, report.Summary)
	assert.Equal(t, "200000", report.Summary.Income.String())
	assert.Equal(t, "50000", report.Summary.Expenses.String())
}

func TestIngest_NoTransactions(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := writeStatement(t, "nothing to see\n")

	_, err := run(t, "ingest", path, "--year", "2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No transactions found in statement")
}

func TestHashPassword(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("correct horse\n"))
	cmd.SetArgs([]string{"hash-password"})
	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(out.String())
	assert.True(t, utils.CheckPasswordHash("correct horse", hash))
}

func TestHashPassword_TooShort(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("short\n"))
	cmd.SetArgs([]string{"hash-password"})
	assert.ErrorIs(t, cmd.Execute(), utils.ErrPasswordTooShort)
}
