package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SscSPs/fintrack/internal/categorizer"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/SscSPs/fintrack/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ingestReport is what a dry-run ingest prints.
type ingestReport struct {
	Upload  dto.UploadDetailResponse `json:"upload"`
	Summary *domain.Summary          `json:"summary,omitempty"`
}

// newIngestCommand runs the full ingestion workflow against an in-memory store, so the
// categorizer and reconciliation can be tried on a real statement without a database.
func newIngestCommand() *cobra.Command {
	var year, month int
	var commit bool
	var tolerance string

	v := viper.New()
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Dry-run the ingestion workflow in memory and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tol, err := decimal.NewFromString(tolerance)
			if err != nil {
				return fmt.Errorf("invalid tolerance %q: %w", tolerance, err)
			}
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			oracle, err := dryRunOracle(ctx, v.GetString("GEMINI_API_KEY"), v.GetString("GEMINI_MODEL"))
			if err != nil {
				return err
			}

			cfg := &config.Config{ReconcileTolerance: tol}
			container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(memory.NewStore()), services.Infrastructure{
				Categorizer: categorizer.NewAdapter(oracle, categorizer.WithTimeout(v.GetDuration("CATEGORIZER_TIMEOUT"))),
			})

			detail, err := container.Ingestion.Ingest(ctx, dto.IngestStatementRequest{
				Filename: filepath.Base(args[0]),
				Content:  content,
				Year:     year,
				Month:    month,
			})
			if err != nil {
				return err
			}

			report := ingestReport{}
			if commit {
				if _, err := container.Ingestion.Commit(ctx, detail.Upload.UploadID); err != nil {
					return err
				}
				if detail, err = container.Ingestion.GetUpload(ctx, detail.Upload.UploadID); err != nil {
					return err
				}
				period := domain.Period{Month: detail.Upload.Month, Year: detail.Upload.Year}
				if report.Summary, err = container.Reporting.Summary(ctx, period); err != nil {
					return err
				}
			}
			report.Upload = dto.UploadDetailResponse{
				Upload:         dto.ToUploadResponse(&detail.Upload),
				Transactions:   dto.ToListTransactionResponse(detail.Transactions),
				Reconciliation: detail.Reconciliation,
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	addYearFlag(cmd, &year)
	cmd.Flags().IntVar(&month, "month", 0, "statement month (derived from the statement when 0)")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the upload and print the monthly summary")
	cmd.Flags().StringVar(&tolerance, "tolerance", "0.01", "allowed difference between computed and footer totals")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("CATEGORIZER_TIMEOUT", 60*time.Second)

	return cmd
}

// dryRunOracle uses Gemini when an API key is present and leaves everything
// uncategorized otherwise.
func dryRunOracle(ctx context.Context, apiKey, model string) (categorizer.Oracle, error) {
	if apiKey == "" {
		return categorizer.NoopOracle{}, nil
	}
	oracle, err := categorizer.NewGeminiOracle(ctx, apiKey, model)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return oracle, nil
}
