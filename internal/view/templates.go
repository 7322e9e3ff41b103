package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/novanode/client-portal/internal/shared"
	"github.com/novanode/client-portal/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	format    Formatter
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	Subtitle    string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Unlocked    bool
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine(format Formatter) (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"formatCount": func(n int64) string { return format.Count(n) },
		"formatMoney": func(n int64) string { return format.Money(n) },
		"currency":    format.Currency,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl, format: format}, nil
}

// Formatter returns the number formatter the templates use.
func (e *Engine) Formatter() Formatter {
	return e.format
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
