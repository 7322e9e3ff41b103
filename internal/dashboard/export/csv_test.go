package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/novanode/client-portal/internal/finance"
	"github.com/novanode/client-portal/internal/marketing"
)

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	return records
}

func TestWriteSeriesCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	records := marketing.GenerateSeries(marketing.NewRand(3))
	if err := WriteSeriesCSV(buf, records); err != nil {
		t.Fatalf("series csv error: %v", err)
	}
	rows := readAll(t, buf)
	if len(rows) != marketing.SeriesLength+1 {
		t.Fatalf("expected %d rows, got %d", marketing.SeriesLength+1, len(rows))
	}
	if rows[1][0] != "2026-01-01" {
		t.Fatalf("expected first date 2026-01-01, got %s", rows[1][0])
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	summary := marketing.Summary{TotalVisits: 3000, TotalSignups: 300, ConversionRate: 10, TopSource: marketing.SourceWalkIn}
	if err := WriteSummaryCSV(buf, summary); err != nil {
		t.Fatalf("summary csv error: %v", err)
	}
	rows := readAll(t, buf)
	if rows[3][1] != "10" {
		t.Fatalf("expected conversion rate 10, got %s", rows[3][1])
	}
	if rows[5][1] != "Walk-in" {
		t.Fatalf("expected top source Walk-in, got %s", rows[5][1])
	}
}

func TestWriteLedgerCSVTotals(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteLedgerCSV(buf, finance.DemoLedger()); err != nil {
		t.Fatalf("ledger csv error: %v", err)
	}
	rows := readAll(t, buf)
	last := rows[len(rows)-1]
	if last[0] != "Net Profit" || last[2] != "38000" {
		t.Fatalf("unexpected totals row %v", last)
	}
}
