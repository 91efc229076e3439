package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/akash-eu-prime/leadgen-cli/internal/filter"
	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show available filter choices for a saved batch",
	RunE:  runOptions,
}

func init() {
	f := optionsCmd.Flags()
	f.String("batch", "", "batch id (default: latest)")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, _ []string) error {
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

	opts := filter.OptionsFor(model.NewCollection(batch.Leads))

	switch format {
	case "json":
		data, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			return eris.Wrap(err, "options: marshal")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "table":
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Locations:      %s\n", strings.Join(opts.Locations, ", "))
		fmt.Fprintf(out, "Companies:      %s\n", strings.Join(opts.Companies, ", "))
		fmt.Fprintf(out, "Funding rounds: %s\n", strings.Join(opts.FundingRounds, ", "))
		fmt.Fprintf(out, "Score range:    [%d, %d]\n", opts.ScoreMin, opts.ScoreMax)
		fmt.Fprintf(out, "With papers:    %d\n", opts.WithPapers)
		fmt.Fprintf(out, "Verified:       %d\n", opts.Verified)
	default:
		return eris.Errorf("options: --format must be table or json (got %q)", format)
	}
	return nil
}
