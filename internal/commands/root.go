// Package commands implements fintrackctl, an offline companion to the API server for
// inspecting statement files without a database.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fintrackctl",
		Short: "Inspect BCA bank statements offline",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newParseCommand(),
		newReconcileCommand(),
		newRenderCommand(),
		newMerchantCommand(),
		newIngestCommand(),
		newHashPasswordCommand(),
	)

	return rootCmd
}

// addYearFlag registers --year, defaulting to the current year.
func addYearFlag(cmd *cobra.Command, year *int) {
	cmd.Flags().IntVar(year, "year", time.Now().Year(), "statement year")
}

// parseFile parses a CSV export or a PDF e-statement, chosen by extension.
func parseFile(path string, year int) (*statement.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return statement.ParsePDF(bytes.NewReader(data), int64(len(data)), year)
	}
	return statement.Parse(string(data), year)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
