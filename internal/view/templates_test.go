package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(NewFormatter("₹"))
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderAccessPage(t *testing.T) {
	engine, err := NewEngine(NewFormatter("₹"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, "pages/access.html", TemplateData{Title: "Unlock", CSRFToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `name="csrf_token" value="tok"`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := NewEngine(NewFormatter("₹"))
	require.NoError(t, err)
	assert.Error(t, engine.Render(httptest.NewRecorder(), "pages/missing.html", TemplateData{}))

	var nilEngine *Engine
	assert.Error(t, nilEngine.Render(httptest.NewRecorder(), "pages/access.html", TemplateData{}))
}

func TestFormatter(t *testing.T) {
	f := NewFormatter("₹")
	assert.Equal(t, "3,000", f.Count(3000))
	assert.Equal(t, "₹85,000", f.Money(85000))
	assert.Equal(t, "-₹2,000", f.Money(-2000))
	assert.Equal(t, "10%", f.Percent(10))
	assert.Equal(t, "2.5%", f.Percent(2.5))
	assert.Equal(t, "₹", f.Currency())
}
