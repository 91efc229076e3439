package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akash-eu-prime/leadgen-cli/internal/filter"
	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter a saved lead batch",
	Long: `Applies the filter pipeline to a saved batch (the latest by default)
and prints the surviving leads.

Examples:
  # Hot leads in Boston from the latest batch
  leadgen filter --min-score 80 --location Boston

  # Verified emails at funded companies, as JSON
  leadgen filter --verified-only --funding "Series B" --format json

  # A specific batch by id
  leadgen filter --batch 6c1a... --search toxicology`,
	RunE: runFilter,
}

func init() {
	f := filterCmd.Flags()
	f.String("batch", "", "batch id (default: latest)")
	f.String("search", "", "case-insensitive substring search across text fields")
	f.Int("min-score", 0, "minimum probability, inclusive")
	f.Int("max-score", 100, "maximum probability, inclusive")
	f.String("location", "", "location substring, matched against person location and company HQ (\"All\" or empty = no filter)")
	f.String("company", "", "company substring (\"All\" or empty = no filter)")
	f.String("funding", "", "exact funding round (\"All\" or empty = no filter)")
	f.Bool("has-paper", false, "match on the recent-paper flag")
	f.Bool("verified-only", false, "keep only verified emails")
	f.String("format", "table", "output format: table, csv, json, or xlsx")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	batchID, _ := cmd.Flags().GetString("batch")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	criteria := criteriaFromFlags(cmd)

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	batch, err := loadBatch(ctx, st, batchID)
	if err != nil {
		return err
	}

	leads := filter.Apply(model.NewCollection(batch.Leads), criteria)
	zap.L().Info("filtered batch",
		zap.String("batch_id", batch.ID),
		zap.Int("in", batch.Count),
		zap.Int("out", leads.Len()),
	)

	return renderLeads(leads, format, output)
}

// criteriaFromFlags builds filter criteria, treating unchanged flags as
// unset so the pipeline skips those stages.
func criteriaFromFlags(cmd *cobra.Command) filter.Criteria {
	var c filter.Criteria
	c.Search, _ = cmd.Flags().GetString("search")
	c.Location, _ = cmd.Flags().GetString("location")
	c.Company, _ = cmd.Flags().GetString("company")
	c.FundingRound, _ = cmd.Flags().GetString("funding")
	c.VerifiedOnly, _ = cmd.Flags().GetBool("verified-only")

	if cmd.Flags().Changed("min-score") {
		v, _ := cmd.Flags().GetInt("min-score")
		c.MinScore = &v
	}
	if cmd.Flags().Changed("max-score") {
		v, _ := cmd.Flags().GetInt("max-score")
		c.MaxScore = &v
	}
	if cmd.Flags().Changed("has-paper") {
		v, _ := cmd.Flags().GetBool("has-paper")
		c.HasPaper = &v
	}
	return c
}
