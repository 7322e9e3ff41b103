package dashboardhttp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/novanode/client-portal/internal/dashboard/svg"
	"github.com/novanode/client-portal/internal/dashboard/ui"
	"github.com/novanode/client-portal/internal/finance"
	"github.com/novanode/client-portal/internal/marketing"
)

// Static card captions carried over from the client mockup. They are not computed.
const (
	visitorsDelta   = "+12%"
	leadsDelta      = "+8%"
	conversionDelta = "4% above target"
	revenueDelta    = "High Season"
)

const noTrafficNotice = "No traffic was recorded for this period, so no conversion rate or recommendation is available."

func (h *Handler) buildMarketingTab(records []marketing.DailyRecord) (ui.MarketingTab, error) {
	if h.line == nil || h.bar == nil {
		return ui.MarketingTab{}, fmt.Errorf("svg renderer missing")
	}
	format := h.templates.Formatter()

	var tab ui.MarketingTab
	summary, err := marketing.ComputeSummary(records)
	switch {
	case errors.Is(err, marketing.ErrNoVisits):
		tab.NoTraffic = true
		tab.Narrative = []string{noTrafficNotice}
	case err != nil:
		return ui.MarketingTab{}, err
	default:
		tab.MeetsTarget = summary.MeetsTarget()
		tab.Narrative = strings.Split(summary.Narrative(), "\n\n")
	}
	tab.Cards = []ui.MetricCard{
		{Label: "Total Visitors", Value: format.Count(int64(summary.TotalVisits)), Delta: visitorsDelta},
		{Label: "New Leads", Value: format.Count(int64(summary.TotalSignups)), Delta: leadsDelta},
		{Label: "Conversion Rate", Value: format.Percent(summary.ConversionRate), Delta: conversionDelta},
	}

	labels := make([]string, 0, len(records))
	visits := make([]float64, 0, len(records))
	signups := make([]float64, 0, len(records))
	for _, record := range records {
		labels = append(labels, record.Date.Format("Jan 02"))
		visits = append(visits, float64(record.WebsiteVisits))
		signups = append(signups, float64(record.Signups))
	}
	if len(labels) == 0 {
		labels = []string{marketing.SeriesStart.Format("Jan 02")}
		visits = []float64{0}
		signups = []float64{0}
	}
	traffic, err := h.line.Lines(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
		{Name: "Website Visits", Values: visits},
		{Name: "Signups", Values: signups},
	}, labels, svg.LineOpts{
		Title:       "Traffic vs Leads",
		Description: "Daily website visits and signups",
		LabelEvery:  7,
	})
	if err != nil {
		return ui.MarketingTab{}, err
	}
	tab.TrafficSVG = traffic

	counts := marketing.SourceCounts(records)
	sourceLabels := make([]string, 0, len(marketing.Sources))
	days := make([]float64, 0, len(marketing.Sources))
	for _, c := range counts {
		sourceLabels = append(sourceLabels, string(c.Source))
		days = append(days, float64(c.Days))
	}
	if len(sourceLabels) == 0 {
		for _, s := range marketing.Sources {
			sourceLabels = append(sourceLabels, string(s))
			days = append(days, 0)
		}
	}
	sources, err := h.bar.Bars(svg.DefaultWidth/2, svg.DefaultHeight, days, sourceLabels, svg.BarOpts{
		Title:       "Traffic Sources",
		Description: "Days attributed to each acquisition channel",
	})
	if err != nil {
		return ui.MarketingTab{}, err
	}
	tab.SourcesSVG = sources
	return tab, nil
}

func (h *Handler) buildFinanceTab(entries []finance.LedgerEntry, rejected *rejectedForm) (ui.FinanceTab, error) {
	if h.bar == nil {
		return ui.FinanceTab{}, fmt.Errorf("svg renderer missing")
	}
	format := h.templates.Formatter()
	totals := finance.ComputeFinancials(entries)

	tab := ui.FinanceTab{
		Cards: []ui.MetricCard{
			{Label: "Total Revenue", Value: format.Money(totals.TotalIncome), Delta: revenueDelta},
			{Label: "Total Expenses", Value: format.Money(totals.TotalExpense)},
			{Label: "Net Profit", Value: format.Money(totals.NetProfit)},
		},
		Ledger:     entries,
		Types:      ui.EntryTypeNames(),
		Categories: finance.FormCategories,
		AmountStep: finance.AmountStep,
	}
	if rejected != nil {
		tab.Form = rejected.form
		tab.Errors = rejected.errors
	} else {
		tab.Form = ui.TransactionFormView{
			Date:     h.now().Format("2006-01-02"),
			Type:     string(finance.Expense),
			Category: finance.FormCategories[0],
		}
	}

	expenses := finance.Breakdown(entries, finance.Expense)
	if len(expenses) > 0 {
		labels := make([]string, 0, len(expenses))
		amounts := make([]float64, 0, len(expenses))
		for _, e := range expenses {
			labels = append(labels, e.Category)
			amounts = append(amounts, float64(e.Amount))
		}
		chart, err := h.bar.Bars(svg.DefaultWidth/2, svg.DefaultHeight, amounts, labels, svg.BarOpts{
			Title:       "Expense Breakdown",
			Description: "Expenses by category",
			Color:       "#f97316",
		})
		if err != nil {
			return ui.FinanceTab{}, err
		}
		tab.ExpensesSVG = chart
	}
	return tab, nil
}
