package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/akash-eu-prime/leadgen-cli/internal/generator"
	"github.com/akash-eu-prime/leadgen-cli/internal/model"
	"github.com/akash-eu-prime/leadgen-cli/internal/scoring"
	"github.com/akash-eu-prime/leadgen-cli/internal/store"
	"github.com/akash-eu-prime/leadgen-cli/pkg/hunter"
)

// openStore opens the configured persistence backend with migrations applied.
func openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

// loadBatch loads a batch by id, or the most recent one when id is empty.
func loadBatch(ctx context.Context, st store.Store, id string) (*store.Batch, error) {
	if id == "" {
		return st.LatestBatch(ctx)
	}
	return st.GetBatch(ctx, id)
}

// buildHunter creates a Hunter.io client from config.
func buildHunter() *hunter.Client {
	return hunter.NewClient(cfg.Hunter.APIKey,
		hunter.WithBaseURL(cfg.Hunter.BaseURL),
		hunter.WithRateLimit(cfg.Hunter.RequestsPerSecond),
	)
}

// buildGenerator assembles a generator from config. A non-zero seed pins the
// random source; verify attaches the Hunter.io client.
func buildGenerator(seed int64, verify bool) *generator.Generator {
	tables := generator.Tables{
		FirstNames:      cfg.Generator.FirstNames,
		LastNames:       cfg.Generator.LastNames,
		Roles:           cfg.Generator.TargetRoles,
		Companies:       cfg.Generator.TargetCompanies,
		Hubs:            cfg.Generator.Hubs,
		RemoteLocations: cfg.Generator.RemoteLocations,
		FundingRounds:   cfg.Generator.FundingRounds,
		TechTags:        cfg.Generator.TechTags,
	}

	var opts []generator.Option
	if seed != 0 {
		opts = append(opts,
			generator.WithRand(rand.New(rand.NewSource(seed))),
		)
	}
	if verify {
		opts = append(opts, generator.WithVerifier(buildHunter()))
	}

	var engineRng *rand.Rand
	if seed != 0 {
		engineRng = rand.New(rand.NewSource(seed + 1))
	}
	engine := scoring.NewEngine(cfg.Tables(), engineRng)

	return generator.New(tables, cfg.Scoring.Weights, engine, opts...)
}

// writeOutput writes data to the given path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

// printLeadTable writes a compact human-readable lead listing.
func printLeadTable(out io.Writer, leads []model.Lead) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tTITLE\tCOMPANY\tLOCATION\tSCORE\tVERIFIED")
	for _, l := range leads {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.1f\t%t\n",
			l.Rank, l.Name, l.Title, l.Company, l.PersonLocation, l.TotalScore, l.EmailVerified)
	}
	w.Flush()
}

// renderLeads emits a collection in the requested format. "table" is the
// human default; the rest delegate to the export encoders.
func renderLeads(c model.LeadCollection, format, output string) error {
	if format == "table" {
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return eris.Wrapf(err, "create %s", output)
			}
			defer f.Close()
			printLeadTable(f, c.Leads)
			return nil
		}
		printLeadTable(os.Stdout, c.Leads)
		return nil
	}

	fm, err := model.ParseFormat(format)
	if err != nil {
		return err
	}
	data, err := c.Export(fm)
	if err != nil {
		return err
	}
	return writeOutput(output, data)
}
