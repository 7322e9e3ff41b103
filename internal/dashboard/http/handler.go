package dashboardhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/novanode/client-portal/internal/dashboard/export"
	"github.com/novanode/client-portal/internal/dashboard/ui"
	"github.com/novanode/client-portal/internal/finance"
	"github.com/novanode/client-portal/internal/marketing"
	"github.com/novanode/client-portal/internal/shared"
	"github.com/novanode/client-portal/internal/view"
)

const requestTimeout = 2 * time.Second

// TransactionService acknowledges transactions submitted from the finance tab.
type TransactionService interface {
	Submit(ctx context.Context, form finance.TransactionForm) (finance.Acknowledgement, error)
}

// RenderRecorder counts rendered summaries by outcome.
type RenderRecorder interface {
	ObserveSummary(meetsTarget bool, noTraffic bool)
}

// Options carries the per-deployment presentation settings.
type Options struct {
	FinanceEnabled bool

	// Subtitle is the client label under the portal header.
	Subtitle string

	// Seed fixes the synthetic series. Zero draws a new series per request.
	Seed uint64
}

// Handler serves the client dashboard.
type Handler struct {
	logger       *slog.Logger
	templates    *view.Engine
	line         ui.LineRenderer
	bar          ui.BarRenderer
	transactions TransactionService
	csrf         *shared.CSRFManager
	metrics      RenderRecorder
	opts         Options
	newRand      func() marketing.RandSource
	now          func() time.Time
	csvPool      sync.Pool
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, templates *view.Engine, line ui.LineRenderer, bar ui.BarRenderer, transactions TransactionService, csrf *shared.CSRFManager, metrics RenderRecorder, opts Options) *Handler {
	h := &Handler{
		logger:       logger,
		templates:    templates,
		line:         line,
		bar:          bar,
		transactions: transactions,
		csrf:         csrf,
		metrics:      metrics,
		opts:         opts,
	}
	h.newRand = func() marketing.RandSource { return marketing.NewRand(opts.Seed) }
	h.now = time.Now
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the clock used for form defaults.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// WithRand overrides the random source factory for testing.
func (h *Handler) WithRand(fn func() marketing.RandSource) {
	if fn != nil {
		h.newRand = fn
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tab := ui.ParseTab(r.URL.Query().Get("tab"))
	if tab == ui.TabFinance && !h.opts.FinanceEnabled {
		http.NotFound(w, r)
		return
	}
	h.renderDashboard(w, r, tab, nil, http.StatusOK)
}

func (h *Handler) handleTransaction(w http.ResponseWriter, r *http.Request) {
	if !h.opts.FinanceEnabled || h.transactions == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := finance.TransactionForm{
		Date:     r.PostFormValue("date"),
		Type:     r.PostFormValue("type"),
		Category: r.PostFormValue("category"),
		Note:     r.PostFormValue("note"),
	}
	if raw := strings.TrimSpace(r.PostFormValue("amount")); raw != "" {
		amount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			rejected := &rejectedForm{form: ui.TransactionFormFrom(form), errors: map[string]string{"Amount": "enter a whole amount"}}
			h.renderDashboard(w, r, ui.TabFinance, rejected, http.StatusBadRequest)
			return
		}
		form.Amount = amount
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ack, err := h.transactions.Submit(ctx, form)
	var vErr *finance.ValidationError
	switch {
	case errors.As(err, &vErr):
		rejected := &rejectedForm{form: ui.TransactionFormFrom(form), errors: vErr.Fields}
		h.renderDashboard(w, r, ui.TabFinance, rejected, http.StatusBadRequest)
		return
	case err != nil:
		h.handleServerError(w, "submit transaction", err)
		return
	}

	if h.logger != nil {
		h.logger.Info("transaction acknowledged",
			slog.String("id", ack.ID.String()),
			slog.String("type", string(ack.Type)),
			slog.String("category", ack.Category),
			slog.Int64("amount", ack.Amount))
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashSuccess, Message: ack.Message})
	}
	http.Redirect(w, r, "/dashboard?tab=finance", http.StatusSeeOther)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	records := marketing.GenerateSeries(h.newRand())

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteSeriesCSV(buf, records); err != nil {
		h.handleServerError(w, "write series csv", err)
		return
	}
	summary, err := marketing.ComputeSummary(records)
	switch {
	case errors.Is(err, marketing.ErrNoVisits):
	case err != nil:
		h.handleServerError(w, "compute summary", err)
		return
	default:
		buf.WriteString("\n")
		if err := export.WriteSummaryCSV(buf, summary); err != nil {
			h.handleServerError(w, "write summary csv", err)
			return
		}
	}
	if h.opts.FinanceEnabled {
		buf.WriteString("\n")
		if err := export.WriteLedgerCSV(buf, finance.DemoLedger()); err != nil {
			h.handleServerError(w, "write ledger csv", err)
			return
		}
	}

	filename := fmt.Sprintf("novanode-dashboard-%s.csv", marketing.SeriesStart.Format("2006-01"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

type rejectedForm struct {
	form   ui.TransactionFormView
	errors map[string]string
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, tab ui.Tab, rejected *rejectedForm, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken := ""
	var flash *shared.FlashMessage
	if sess != nil {
		token, err := h.csrf.EnsureToken(sess)
		if err != nil {
			h.handleServerError(w, "csrf token", err)
			return
		}
		csrfToken = token
		flash = sess.PopFlash()
	}

	vm, err := h.buildViewModel(r.Context(), tab, rejected)
	if err != nil {
		h.handleServerError(w, "build dashboard", err)
		return
	}

	viewData := view.TemplateData{
		Title:       "Client Dashboard",
		Subtitle:    h.opts.Subtitle,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Unlocked:    sess.HasAccess(),
		Data:        vm,
	}
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.logError("render template", err)
	}
}

func (h *Handler) buildViewModel(ctx context.Context, tab ui.Tab, rejected *rejectedForm) (ui.DashboardViewModel, error) {
	vm := ui.DashboardViewModel{ActiveTab: tab, FinanceEnabled: h.opts.FinanceEnabled}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		panel, err := h.buildMarketingTab(marketing.GenerateSeries(h.newRand()))
		if err != nil {
			return err
		}
		vm.Marketing = panel
		return nil
	})

	if h.opts.FinanceEnabled {
		g.Go(func() error {
			panel, err := h.buildFinanceTab(finance.DemoLedger(), rejected)
			if err != nil {
				return err
			}
			vm.Finance = &panel
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ui.DashboardViewModel{}, err
	}
	if h.metrics != nil {
		h.metrics.ObserveSummary(vm.Marketing.MeetsTarget, vm.Marketing.NoTraffic)
	}
	return vm, nil
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
