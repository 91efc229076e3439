package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akash-eu-prime/leadgen-cli/pkg/pubmed"
)

var publicationsCmd = &cobra.Command{
	Use:   "publications",
	Short: "Search PubMed for recent publications",
	Long: `Searches PubMed for recent publications. Without --query it runs the
built-in toxicology and 3D-model search.

Examples:
  leadgen publications
  leadgen publications --query "hepatic spheroids" --max 5 --days 365`,
	RunE: runPublications,
}

func init() {
	f := publicationsCmd.Flags()
	f.String("query", "", "search query (default: built-in toxicology terms)")
	f.Int("max", 10, "maximum number of results")
	f.Int("days", 730, "restrict to publications within the last N days")

	rootCmd.AddCommand(publicationsCmd)
}

func runPublications(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query, _ := cmd.Flags().GetString("query")
	max, _ := cmd.Flags().GetInt("max")
	days, _ := cmd.Flags().GetInt("days")

	client := pubmed.NewClient(cfg.PubMed.APIKey,
		pubmed.WithBaseURL(cfg.PubMed.BaseURL),
		pubmed.WithRateLimit(cfg.PubMed.RequestsPerSecond),
	)

	var (
		articles []pubmed.Article
		err      error
	)
	if query == "" {
		articles, err = client.SearchToxicologyArticles(ctx, max)
	} else {
		articles, err = client.SearchArticles(ctx, query, max, days)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(articles) == 0 {
		fmt.Fprintln(out, "No publications found.")
		return nil
	}

	for i, a := range articles {
		fmt.Fprintf(out, "%d. %s\n", i+1, a.Title)
		if len(a.Authors) > 0 {
			fmt.Fprintf(out, "   %s\n", strings.Join(a.Authors, ", "))
		}
		fmt.Fprintf(out, "   %s (%s)\n", a.Journal, a.PubDate)
		fmt.Fprintf(out, "   %s\n", a.URL)
		if a.Synthetic {
			fmt.Fprintln(out, "   [offline placeholder]")
		}
		fmt.Fprintln(out)
	}
	return nil
}
