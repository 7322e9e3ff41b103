package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/novanode/client-portal/internal/finance"
	"github.com/novanode/client-portal/internal/marketing"
)

// WriteSeriesCSV emits the daily marketing series.
func WriteSeriesCSV(w io.Writer, records []marketing.DailyRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Date", "Website_Visits", "Signups", "Source"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write([]string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.WebsiteVisits),
			strconv.Itoa(r.Signups),
			string(r.Source),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSummaryCSV emits the headline marketing metrics.
func WriteSummaryCSV(w io.Writer, summary marketing.Summary) error {
	writer := csv.NewWriter(w)
	records := [][]string{
		{"Metric", "Value"},
		{"Total Visitors", strconv.Itoa(summary.TotalVisits)},
		{"New Leads", strconv.Itoa(summary.TotalSignups)},
		{"Conversion Rate", marketing.FormatRate(summary.ConversionRate)},
		{"Target Rate", marketing.FormatRate(marketing.TargetRate)},
		{"Top Source", string(summary.TopSource)},
		{"Recommendation", summary.Recommendation},
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return writer.Error()
}

// WriteLedgerCSV emits the ledger followed by its totals.
func WriteLedgerCSV(w io.Writer, entries []finance.LedgerEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Category", "Type", "Amount"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.Category, string(e.Type), formatAmount(e.Amount)}); err != nil {
			return err
		}
	}
	totals := finance.ComputeFinancials(entries)
	for _, row := range [][]string{
		{"Total Income", "", formatAmount(totals.TotalIncome)},
		{"Total Expense", "", formatAmount(totals.TotalExpense)},
		{"Net Profit", "", formatAmount(totals.NetProfit)},
	} {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}
