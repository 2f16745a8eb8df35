package categorizer

import (
	"testing"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	items := []Item{
		{Index: 0, Merchant: "TOKOPEDIA", Description: "TRSF E-BANKING DB FTFVA/123 80777/TOKOPEDIA", Direction: domain.Debit, Amount: decimal.NewFromInt(150000)},
		{Index: 1, Description: "BUNGA", Direction: domain.Credit, Amount: decimal.RequireFromString("1234.5")},
	}
	categories := []domain.CategoryRef{{ID: 9, Name: "Transfer"}, {ID: 12, Name: "Shopping"}}

	prompt := buildPrompt(items, categories)

	assert.Contains(t, prompt, "9: Transfer, 12: Shopping")
	assert.Contains(t, prompt, `0: [debit] TOKOPEDIA - "TRSF E-BANKING DB FTFVA/123 80777/TOKOPEDIA" - Rp 150000.00`)
	assert.Contains(t, prompt, `1: [credit] unknown - "BUNGA" - Rp 1234.50`)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[int]int64
	}{
		{"plain", `{"results":[{"index":0,"categoryId":12},{"index":3,"categoryId":9}]}`, map[int]int64{0: 12, 3: 9}},
		{"fenced", "```json\n{\"results\":[{\"index\":1,\"categoryId\":4}]}\n```", map[int]int64{1: 4}},
		{"empty results", `{"results":[]}`, map[int]int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResponse_Invalid(t *testing.T) {
	_, err := parseResponse("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestCleanModelJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanModelJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanModelJSON(`  {"a":1}  `))
}
