package ui

import (
	"html/template"

	"github.com/novanode/client-portal/internal/dashboard/svg"
	"github.com/novanode/client-portal/internal/finance"
)

// Tab selects the dashboard panel.
type Tab string

// Dashboard panels.
const (
	TabMarketing Tab = "marketing"
	TabFinance   Tab = "finance"
)

// ParseTab maps a query value onto a Tab, defaulting to marketing.
func ParseTab(value string) Tab {
	if Tab(value) == TabFinance {
		return TabFinance
	}
	return TabMarketing
}

// MetricCard is one headline figure. Delta is a static caption, not a computed change.
type MetricCard struct {
	Label string
	Value string
	Delta string
}

// MarketingTab holds everything the Marketing Intelligence panel shows.
type MarketingTab struct {
	Cards       []MetricCard
	TrafficSVG  template.HTML
	SourcesSVG  template.HTML
	Narrative   []string
	MeetsTarget bool
	NoTraffic   bool
}

// TransactionFormView echoes submitted form values back into the form.
type TransactionFormView struct {
	Date     string
	Type     string
	Category string
	Amount   int64
	Note     string
}

// FinanceTab holds everything the Financial HQ panel shows.
type FinanceTab struct {
	Cards       []MetricCard
	Ledger      []finance.LedgerEntry
	ExpensesSVG template.HTML
	Form        TransactionFormView
	Errors      map[string]string
	Types       []string
	Categories  []string
	AmountStep  int
}

// DashboardViewModel combines both panels for rendering.
type DashboardViewModel struct {
	ActiveTab      Tab
	FinanceEnabled bool
	Marketing      MarketingTab
	Finance        *FinanceTab
}

// LineRenderer abstracts SVG line chart rendering for the dashboard.
type LineRenderer interface {
	Lines(width, height int, series []svg.Series, labels []string, opts svg.LineOpts) (template.HTML, error)
}

// BarRenderer abstracts SVG bar chart rendering for the dashboard.
type BarRenderer interface {
	Bars(width, height int, values []float64, labels []string, opts svg.BarOpts) (template.HTML, error)
}

// TransactionFormFrom converts a form submission into its echo view.
func TransactionFormFrom(form finance.TransactionForm) TransactionFormView {
	return TransactionFormView{
		Date:     form.Date,
		Type:     form.Type,
		Category: form.Category,
		Amount:   form.Amount,
		Note:     form.Note,
	}
}

// EntryTypeNames lists the transaction form types as strings.
func EntryTypeNames() []string {
	names := make([]string, 0, len(finance.EntryTypes))
	for _, t := range finance.EntryTypes {
		names = append(names, string(t))
	}
	return names
}
