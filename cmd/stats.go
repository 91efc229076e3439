package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for a saved lead batch",
	RunE:  runStats,
}

func init() {
	f := statsCmd.Flags()
	f.String("batch", "", "batch id (default: latest)")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	batchID, _ := cmd.Flags().GetString("batch")
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	batch, err := loadBatch(ctx, st, batchID)
	if err != nil {
		return err
	}

	stats := model.NewCollection(batch.Leads).Stats()

	switch format {
	case "json":
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return eris.Wrap(err, "stats: marshal")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "table":
		printStats(cmd, batch.ID, stats)
	default:
		return eris.Errorf("stats: --format must be table or json (got %q)", format)
	}
	return nil
}

func printStats(cmd *cobra.Command, batchID string, s model.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Batch %s\n\n", batchID)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total leads\t%d\n", s.TotalLeads)
	fmt.Fprintf(w, "Average score\t%.1f\n", s.AverageScore)
	fmt.Fprintf(w, "High probability (>= 80)\t%d\n", s.HighProbability)
	fmt.Fprintf(w, "With recent papers\t%d\n", s.WithPapers)
	fmt.Fprintf(w, "Verified emails\t%d\n", s.VerifiedEmails)
	fmt.Fprintf(w, "In biotech hubs\t%d\n", s.InHubs)
	w.Flush()

	fmt.Fprintln(out, "\nScore distribution")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  < 30\t%d\n", s.Distribution.Low)
	fmt.Fprintf(w, "  30-59\t%d\n", s.Distribution.Medium)
	fmt.Fprintf(w, "  60-79\t%d\n", s.Distribution.High)
	fmt.Fprintf(w, "  >= 80\t%d\n", s.Distribution.VeryHigh)
	w.Flush()

	if len(s.TopCompanies) > 0 {
		fmt.Fprintln(out, "\nTop companies")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, c := range s.TopCompanies {
			fmt.Fprintf(w, "  %s\t%d\n", c.Company, c.Count)
		}
		w.Flush()
	}
}
