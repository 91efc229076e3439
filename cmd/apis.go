package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akash-eu-prime/leadgen-cli/pkg/pubmed"
)

var apisCmd = &cobra.Command{
	Use:   "apis",
	Short: "Check connectivity to external APIs",
	RunE:  runAPIs,
}

func init() {
	rootCmd.AddCommand(apisCmd)
}

func runAPIs(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	status, err := buildHunter().TestConnection(ctx)
	if err != nil {
		return err
	}
	if status.Connected {
		fmt.Fprintf(out, "Hunter.io: OK (%s, %d calls remaining)\n", status.Plan, status.CallsRemaining)
	} else {
		fmt.Fprintf(out, "Hunter.io: unavailable (%s)\n", status.Message)
	}

	pm := pubmed.NewClient(cfg.PubMed.APIKey,
		pubmed.WithBaseURL(cfg.PubMed.BaseURL),
		pubmed.WithRateLimit(cfg.PubMed.RequestsPerSecond),
	)
	articles, err := pm.SearchToxicologyArticles(ctx, 1)
	if err != nil {
		return err
	}
	if len(articles) > 0 && articles[0].Synthetic {
		fmt.Fprintln(out, "PubMed: unreachable (synthetic fallback active)")
	} else {
		fmt.Fprintln(out, "PubMed: OK")
	}
	return nil
}
