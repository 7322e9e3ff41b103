package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/novanode/client-portal/internal/dashboard/export"
	"github.com/novanode/client-portal/internal/finance"
	"github.com/novanode/client-portal/internal/marketing"
)

var (
	seriesSeed   uint64
	seriesLedger bool
)

// seriesCmd prints the synthetic series and its summary as CSV.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print the marketing series for a seed as CSV",
	Long: `Print the 30-day marketing series, its summary and optionally the demo
ledger. A portal started with the same PORTAL_SEED renders the same numbers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeSeries(cmd.OutOrStdout(), seriesSeed, seriesLedger)
	},
}

func init() {
	seriesCmd.Flags().Uint64Var(&seriesSeed, "seed", 42, "series seed (0 draws from the clock)")
	seriesCmd.Flags().BoolVar(&seriesLedger, "ledger", false, "append the demo ledger and its totals")
}

func writeSeries(w io.Writer, seed uint64, ledger bool) error {
	records := marketing.GenerateSeries(marketing.NewRand(seed))
	if err := export.WriteSeriesCSV(w, records); err != nil {
		return fmt.Errorf("write series: %w", err)
	}
	summary, err := marketing.ComputeSummary(records)
	if err != nil {
		return fmt.Errorf("summarise: %w", err)
	}
	fmt.Fprintln(w)
	if err := export.WriteSummaryCSV(w, summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if !ledger {
		return nil
	}
	fmt.Fprintln(w)
	if err := export.WriteLedgerCSV(w, finance.DemoLedger()); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
