package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fintrack/internal/statement"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// errUnbalanced makes reconcile exit non-zero after printing its report.
var errUnbalanced = errors.New("statement does not reconcile")

func newParseCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := parseFile(args[0], year)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	addYearFlag(cmd, &year)

	return cmd
}

func newReconcileCommand() *cobra.Command {
	var year int
	var tolerance string

	cmd := &cobra.Command{
		Use:   "reconcile <file>",
		Short: "Check a statement's transactions against its footer totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tol, err := decimal.NewFromString(tolerance)
			if err != nil {
				return fmt.Errorf("invalid tolerance %q: %w", tolerance, err)
			}
			result, err := parseFile(args[0], year)
			if err != nil {
				return err
			}
			if len(result.Transactions) == 0 {
				return errors.New("no transactions found in statement")
			}

			rec := result.Reconcile(year, tol)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "transactions: %d\n", len(result.Transactions))
			fmt.Fprintf(out, "credit:  %s (footer %s)\n", rec.ComputedCredit.StringFixed(2), result.TotalCredit.StringFixed(2))
			fmt.Fprintf(out, "debit:   %s (footer %s)\n", rec.ComputedDebit.StringFixed(2), result.TotalDebit.StringFixed(2))
			fmt.Fprintf(out, "closing: %s (footer %s)\n", rec.ExpectedClosing.StringFixed(2), result.ClosingBalance.StringFixed(2))
			for _, w := range rec.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if !rec.OK() {
				return errUnbalanced
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	addYearFlag(cmd, &year)
	cmd.Flags().StringVar(&tolerance, "tolerance", "0.01", "allowed difference between computed and footer totals")

	return cmd
}

func newRenderCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the normalized CSV transaction lines of a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := parseFile(args[0], year)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tx := range result.Transactions {
				fmt.Fprintln(out, statement.FormatLine(tx))
			}
			return nil
		},
	}
	addYearFlag(cmd, &year)

	return cmd
}

func newMerchantCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merchant <description...>",
		Short: "Show the merchant extracted from a transaction description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rule := statement.NewMerchantExtractor().Explain(strings.Join(args, " "))
			if rule == "" {
				rule = "(fallback)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, rule)
			return nil
		},
	}
}
