package statement_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLine(t *testing.T) {
	tx, err := statement.TokenizeLine("'05/03,KARTU DEBIT INDOMARET, JAKARTA,'0038,12500.50,DB,987500.00", 2024)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "KARTU DEBIT INDOMARET, JAKARTA", tx.Description)
	assert.Equal(t, "0038", tx.Branch)
	assert.True(t, decimal.RequireFromString("12500.50").Equal(tx.Amount))
	assert.Equal(t, domain.Debit, tx.Direction)
	assert.True(t, decimal.RequireFromString("987500").Equal(tx.Balance))
	assert.Empty(t, tx.Merchant)
}

func TestTokenizeLine_NonDebitMarkerIsCredit(t *testing.T) {
	for _, marker := range []string{"CR", "", "db", "XX"} {
		tx, err := statement.TokenizeLine("'01/01,DESC,'0000,1.00,"+marker+",1.00", 2024)
		require.NoError(t, err)
		assert.Equal(t, domain.Credit, tx.Direction, "marker %q", marker)
	}
}

func TestTokenizeLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"too few fields", "'05/03,DESC,1.00,DB,2.00", statement.ErrMalformedLine},
		{"bad amount", "'05/03,DESC,'0000,abc,DB,2.00", statement.ErrInvalidNumber},
		{"bad balance", "'05/03,DESC,'0000,1.00,DB,", statement.ErrInvalidNumber},
		{"negative amount", "'05/03,DESC,'0000,-1.00,DB,2.00", statement.ErrNegativeAmount},
		{"impossible date", "'31/02,DESC,'0000,1.00,DB,2.00", statement.ErrInvalidDate},
		{"pending date", "PEND,DESC,'0000,1.00,DB,2.00", statement.ErrInvalidDate},
		{"month out of range", "'05/13,DESC,'0000,1.00,DB,2.00", statement.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := statement.TokenizeLine(tt.line, 2024)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenizeLine_RoundTrip(t *testing.T) {
	cases := []statement.ParsedTransaction{
		{
			Date:        time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			Description: "QR 014 00000.00KOPI KENANGAN 987654",
			Branch:      "0998",
			Amount:      decimal.RequireFromString("45000"),
			Direction:   domain.Debit,
			Balance:     decimal.RequireFromString("1234567.89"),
		},
		{
			Date:        time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			Description: "BUNGA",
			Branch:      "",
			Amount:      decimal.RequireFromString("0.35"),
			Direction:   domain.Credit,
			Balance:     decimal.Zero,
		},
	}
	for _, want := range cases {
		got, err := statement.TokenizeLine(statement.FormatLine(want), want.Date.Year())
		require.NoError(t, err)
		assert.Equal(t, want.Date, got.Date)
		assert.Equal(t, want.Description, got.Description)
		assert.Equal(t, want.Branch, got.Branch)
		assert.Equal(t, want.Direction, got.Direction)
		assert.True(t, want.Amount.Equal(got.Amount), "amount %s != %s", want.Amount, got.Amount)
		assert.True(t, want.Balance.Equal(got.Balance), "balance %s != %s", want.Balance, got.Balance)
	}
}
