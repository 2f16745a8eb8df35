package statement_test

import (
	"testing"

	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines_TrimsAndDropsBlanks(t *testing.T) {
	lines := statement.Lines("\ufeff  a  \r\n\n\t\nb\n   ")
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestSplitSections(t *testing.T) {
	s := statement.SplitSections(statement.Lines(sampleStatement))

	require.True(t, s.HeaderFound)
	assert.Len(t, s.Metadata, 3)
	assert.Len(t, s.Transactions, 2)
	assert.Len(t, s.Footer, 4)
	assert.Equal(t, "Saldo Awal,=,1,000,000.00", s.Footer[0])
}

func TestSplitSections_NoFooterRunsToEnd(t *testing.T) {
	lines := []string{"m1", "m2", "m3", "Tanggal,Keterangan", "l1", "l2"}
	s := statement.SplitSections(lines)

	assert.True(t, s.HeaderFound)
	assert.Equal(t, []string{"l1", "l2"}, s.Transactions)
	assert.Empty(t, s.Footer)
}

func TestSplitSections_MissingHeaderYieldsNoTransactions(t *testing.T) {
	lines := []string{"m1", "m2", "m3", "'05/03,KOPI,'0000,1.00,DB,2.00", "Saldo Awal,=,2.00"}
	s := statement.SplitSections(lines)

	assert.False(t, s.HeaderFound)
	assert.Empty(t, s.Transactions)
	assert.Equal(t, []string{"Saldo Awal,=,2.00"}, s.Footer)
}

func TestSplitSections_FooterBeforeHeaderIgnored(t *testing.T) {
	lines := []string{"m1", "Saldo Awal,=,0", "m3", "Tanggal Transaksi,Keterangan", "l1", "Saldo Awal,=,1.00"}
	s := statement.SplitSections(lines)

	require.True(t, s.HeaderFound)
	assert.Equal(t, []string{"l1"}, s.Transactions)
	assert.Equal(t, []string{"Saldo Awal,=,1.00"}, s.Footer)
}

func TestSplitSections_ShortInput(t *testing.T) {
	s := statement.SplitSections([]string{"only"})
	assert.Equal(t, []string{"only"}, s.Metadata)
	assert.False(t, s.HeaderFound)
}
