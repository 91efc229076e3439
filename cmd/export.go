package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved lead batch",
	Long: `Exports a saved batch (the latest by default) as CSV, JSON, or XLSX.

Examples:
  leadgen export --format csv --output leads.csv
  leadgen export --batch 6c1a... --format xlsx --output leads.xlsx`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("batch", "", "batch id (default: latest)")
	f.String("format", "csv", "export format: csv, json, or xlsx")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	batchID, _ := cmd.Flags().GetString("batch")
	formatStr, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	format, err := model.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	batch, err := loadBatch(ctx, st, batchID)
	if err != nil {
		return err
	}

	data, err := model.NewCollection(batch.Leads).Export(format)
	if err != nil {
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d leads to %s\n", batch.Count, output)
	}
	return nil
}
