// Package site serves the server-rendered calculator page.
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	service "github.com/okian/fitcheck/internal/app"
	"github.com/okian/fitcheck/internal/domain/bmi"
	"github.com/okian/fitcheck/internal/domain/history"
	"github.com/okian/fitcheck/internal/domain/model"
	"github.com/okian/fitcheck/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("page render failed")
)

// confirmNeeded is shown when a clear request arrives without confirmation.
const confirmNeeded = "Confirm to clear the history."

//go:embed static/index.html.tmpl
var staticFS embed.FS

var pageTemplate = template.Must(template.New("index.html.tmpl").
	Funcs(template.FuncMap{"formatNumber": history.FormatNumber}).
	ParseFS(staticFS, "static/index.html.tmpl"))

// Dependencies the page handlers need.
type Dependencies interface {
	Units(unit model.MeasurementUnit) model.UnitLabels
	Submit(ctx context.Context, unit model.MeasurementUnit, weight, height string) (service.Outcome, error)
	Rows(ctx context.Context) []history.Row
	Clear(ctx context.Context, confirmed bool) error
}

// page is the template view model.
type page struct {
	Unit   string
	Labels model.UnitLabels
	Weight string
	Height string
	Result *bmi.Result
	Error  string
	Rows   []history.Row
}

// Register attaches the page routes to mux.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewRootHandler(deps)
	mux.HandleFunc("GET /{$}", h.HandleRoot)
	mux.HandleFunc("POST /calculate", h.HandleCalculate)
	mux.HandleFunc("POST /history/clear", h.HandleClear)
}

// RootHandler renders the calculator page.
type RootHandler struct {
	deps Dependencies
}

// NewRootHandler creates a new root handler
func NewRootHandler(deps Dependencies) *RootHandler {
	return &RootHandler{deps: deps}
}

// HandleRoot handles GET / requests. ?unit= switches labels and placeholders.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	p, err := h.newPage(r, r.URL.Query().Get("unit"))
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadRequest
	}
	h.render(w, r, status, p)
}

// HandleCalculate handles POST /calculate form submissions.
func (h *RootHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.newPage(r, r.PostForm.Get("unit"))
	if err != nil {
		h.render(w, r, http.StatusBadRequest, p)
		return
	}
	p.Weight = r.PostForm.Get("weight")
	p.Height = r.PostForm.Get("height")

	unit, _ := bmi.ParseUnit(p.Unit)
	out, err := h.deps.Submit(r.Context(), unit, p.Weight, p.Height)
	switch {
	case err == nil:
		p.Result = &out.Result
		p.Rows = h.deps.Rows(r.Context())
		h.render(w, r, http.StatusOK, p)
	case bmi.IsValidation(err):
		p.Error = err.Error()
		h.render(w, r, http.StatusUnprocessableEntity, p)
	default:
		logger.Get().Error(r.Context(), "calculation not recorded", logger.Error(err))
		p.Error = "Could not save the result, try again."
		h.render(w, r, http.StatusInternalServerError, p)
	}
}

// HandleClear handles POST /history/clear. The form must carry confirm=yes.
func (h *RootHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	unit := r.PostForm.Get("unit")
	err := h.deps.Clear(r.Context(), r.PostForm.Get("confirm") == "yes")
	if err == nil {
		http.Redirect(w, r, "/?"+url.Values{"unit": {unitOrDefault(unit)}}.Encode(), http.StatusSeeOther)
		return
	}

	p, _ := h.newPage(r, unit)
	if errors.Is(err, service.ErrNotConfirmed) {
		p.Error = confirmNeeded
		h.render(w, r, http.StatusConflict, p)
		return
	}
	logger.Get().Error(r.Context(), "history not cleared", logger.Error(err))
	p.Error = "Could not clear the history, try again."
	h.render(w, r, http.StatusInternalServerError, p)
}

// newPage builds the view model for raw unit. An unknown unit falls back to
// metric and sets the page error.
func (h *RootHandler) newPage(r *http.Request, raw string) (page, error) {
	unit, err := bmi.ParseUnit(unitOrDefault(raw))
	if err != nil {
		unit = model.Metric
	}
	p := page{
		Unit:   unit.String(),
		Labels: h.deps.Units(unit),
		Rows:   h.deps.Rows(r.Context()),
	}
	if err != nil {
		p.Error = err.Error()
	}
	return p, err
}

func (h *RootHandler) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		logger.Get().Error(r.Context(), "failed to render page", logger.Error(errors.Join(ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func unitOrDefault(raw string) string {
	if raw == "" {
		return model.Metric.String()
	}
	return raw
}
