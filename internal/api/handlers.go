package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/sambat-api/internal/calendar"
	"github.com/zapponejosh/sambat-api/internal/config"
	"github.com/zapponejosh/sambat-api/internal/database"
	"github.com/zapponejosh/sambat-api/internal/logger"
	"github.com/zapponejosh/sambat-api/internal/numeral"
	"github.com/zapponejosh/sambat-api/internal/picker"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	table  atomic.Pointer[calendar.Table]
	cfg    *config.Config
	logger *slog.Logger
	clock  func() time.Time // passed to tables rebuilt after an admin write
}

// NewHandlers creates a new Handlers instance serving conversions from table.
func NewHandlers(db *database.DB, table *calendar.Table, cfg *config.Config, logger *slog.Logger) *Handlers {
	h := &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
	h.table.Store(table)
	return h
}

// Table returns the calendar table currently in use.
func (h *Handlers) Table() *calendar.Table {
	return h.table.Load()
}

func (h *Handlers) engine(tmpl picker.Template) *picker.Engine {
	return picker.NewEngine(h.table.Load(), tmpl, h.logger)
}

// DayView is a single day as returned by the API.
type DayView struct {
	BS        string           `json:"bs"` // YYYY-MM-DD
	AD        string           `json:"ad"` // YYYY-MM-DD
	Weekday   string           `json:"weekday"`
	Formatted picker.Formatted `json:"formatted"`
}

func newDayView(dd calendar.DualDate, tmpl picker.Template) DayView {
	wd := time.Date(dd.AD.Year, time.Month(dd.AD.Month+1), dd.AD.Day, 0, 0, 0, 0, time.UTC).Weekday()
	return DayView{
		BS:      dd.BS.String(),
		AD:      dd.AD.String(),
		Weekday: calendar.DayName(wd),
		Formatted: picker.Formatted{
			English: picker.Format(dd, picker.English, tmpl),
			Nepali:  picker.Format(dd, picker.Nepali, tmpl),
		},
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		logger.Warn(ctx, h.logger, "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	table := h.table.Load()
	first, last := table.ADRange()
	WriteSuccess(w, map[string]any{
		"status":     "healthy",
		"first_year": table.FirstYear(),
		"last_year":  table.LastYear(),
		"first_ad":   first.String(),
		"last_ad":    last.String(),
	})
}

// GetToday handles GET /api/v1/today?lang=&template=
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r.URL.Query().Get("lang"))
	if !ok {
		return
	}
	tmpl := h.template(r.URL.Query().Get("template"))

	now, err := h.table.Load().Now()
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"language": lang,
		"today":    newDayView(now, tmpl),
	})
}

// Convert handles GET /api/v1/convert/{system}/{date}
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	sys, err := calendar.ParseSystem(chi.URLParam(r, "system"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	dateStr := chi.URLParam(r, "date")
	d, err := calendar.ParseDateString(numeral.Delocalize(dateStr))
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	dd, err := calendar.Convert(h.table.Load(), sys, d)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"system": sys.String(),
		"input":  dateStr,
		"date":   newDayView(dd, h.template(r.URL.Query().Get("template"))),
	})
}

// FormatDate handles GET /api/v1/format?date=&lang=&template=
//
// date is read in the primary calendar of lang. Unknown templates fall back
// to the default and are reported with "fallback": true.
func (h *Handlers) FormatDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang, ok := h.language(w, q.Get("lang"))
	if !ok {
		return
	}

	tmpl, known := picker.ParseTemplate(q.Get("template"))
	if q.Get("template") == "" {
		tmpl, known = h.cfg.DefaultTemplate, true
	}

	e := h.engine(tmpl)
	c, err := e.Init(q.Get("date"), lang)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"formatted": e.Format(*c.Selected, lang, tmpl),
		"template":  tmpl,
		"fallback":  !known,
		"date":      newDayView(*c.Selected, tmpl),
	})
}

// ListTemplates handles GET /api/v1/templates
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]any{
		"templates": picker.Templates(),
		"default":   h.cfg.DefaultTemplate,
	})
}

// MonthView is a displayed month with its header and grid.
type MonthView struct {
	Cursor picker.Cursor    `json:"cursor"`
	Header picker.Header    `json:"header"`
	Grid   picker.MonthGrid `json:"grid"`
}

func (h *Handlers) monthView(e *picker.Engine, c picker.Cursor) (*MonthView, error) {
	header, err := e.HeaderLabels(c, c.Language)
	if err != nil {
		return nil, err
	}
	grid, err := e.Grid(c)
	if err != nil {
		return nil, err
	}
	return &MonthView{Cursor: c, Header: header, Grid: grid}, nil
}

// GetMonth handles GET /api/v1/month?value=&lang=&delta=
//
// The cursor is rebuilt from value (today when empty) and moved by delta
// months before the header and grid are computed.
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang, ok := h.language(w, q.Get("lang"))
	if !ok {
		return
	}

	delta := 0
	if s := q.Get("delta"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid delta: %s", s))
			return
		}
		delta = n
	}

	e := h.engine(h.cfg.DefaultTemplate)
	c, err := h.cursor(e, q.Get("value"), lang, delta)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	view, err := h.monthView(e, c)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	WriteSuccess(w, view)
}

// SelectDay handles POST /api/v1/month/select
func (h *Handlers) SelectDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value    string `json:"value"`
		Lang     string `json:"lang"`
		Delta    int    `json:"delta"`
		Day      int    `json:"day"`
		Template string `json:"template"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	lang, ok := h.language(w, req.Lang)
	if !ok {
		return
	}

	e := h.engine(h.template(req.Template))
	c, err := h.cursor(e, req.Value, lang, req.Delta)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	sel, err := e.SelectDay(c, req.Day)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	view, err := h.monthView(e, sel.Cursor)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"selection": sel,
		"template":  e.Template(),
		"month":     view,
	})
}

// ListYears handles GET /api/v1/admin/years
func (h *Handlers) ListYears(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	years, err := h.db.ListYears(ctx)
	if err != nil {
		logger.Error(ctx, h.logger, "failed to list years", err)
		WriteInternalError(w, "Failed to retrieve years")
		return
	}
	stats, err := h.db.Stats(ctx)
	if err != nil {
		logger.Error(ctx, h.logger, "failed to get table stats", err)
		WriteInternalError(w, "Failed to retrieve years")
		return
	}

	WriteSuccess(w, map[string]any{
		"years": years,
		"stats": stats,
	})
}

// PutYear handles PUT /api/v1/admin/years/{year}
//
// The stored table is rebuilt in the same transaction as the write. Writes
// that would leave a gap or a broken chain of start dates are rejected and
// the table in use is left unchanged.
func (h *Handlers) PutYear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}

	var req struct {
		ADStart string `json:"ad_start"`
		Months  []int  `json:"months"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if len(req.Months) != 12 {
		WriteBadRequest(w, "months must contain 12 values")
		return
	}

	rec := &database.YearRecord{Year: year, ADStart: req.ADStart}
	copy(rec.Months[:], req.Months)
	if err := rec.Validate(); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	table, err := h.db.UpsertYearChecked(ctx, rec, h.clock)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidTable) {
			WriteError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_TABLE")
			return
		}
		logger.Error(ctx, h.logger, "failed to upsert year", err, slog.Int("year", year))
		WriteInternalError(w, "Failed to store year")
		return
	}
	h.table.Store(table)

	logger.FromContext(ctx, h.logger).Info("calendar table updated",
		slog.Int("year", year),
		slog.Int("first_year", table.FirstYear()),
		slog.Int("last_year", table.LastYear()),
	)

	stored, err := h.db.GetYear(ctx, year)
	if err != nil {
		logger.Error(ctx, h.logger, "failed to read back year", err, slog.Int("year", year))
		WriteInternalError(w, "Failed to retrieve year")
		return
	}
	WriteSuccess(w, stored)
}

// cursor rebuilds a cursor from a value string and a month delta.
func (h *Handlers) cursor(e *picker.Engine, value string, lang picker.Language, delta int) (picker.Cursor, error) {
	c, err := e.Init(value, lang)
	if err != nil {
		return picker.Cursor{}, err
	}
	if delta == 0 {
		return c, nil
	}
	return e.Advance(c, delta)
}

// language parses a lang parameter, writing a 400 response if it is unknown.
// An empty value selects the configured default.
func (h *Handlers) language(w http.ResponseWriter, val string) (picker.Language, bool) {
	if strings.TrimSpace(val) == "" {
		return h.cfg.DefaultLanguage, true
	}
	lang, err := picker.ParseLanguage(val)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return "", false
	}
	return lang, true
}

func (h *Handlers) template(val string) picker.Template {
	if val == "" {
		return h.cfg.DefaultTemplate
	}
	tmpl, _ := picker.ParseTemplate(val)
	return tmpl
}

// writeEngineError maps calendar errors to HTTP responses.
func (h *Handlers) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidDateString), errors.Is(err, calendar.ErrInvalidDate):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidDate)
	case errors.Is(err, calendar.ErrDayOutOfRange):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeDayOutOfRange)
	case errors.Is(err, calendar.ErrUnsupportedEra):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), CodeUnsupportedEra)
	case errors.Is(err, picker.ErrUnknownLanguage):
		WriteBadRequest(w, err.Error())
	default:
		logger.Error(r.Context(), h.logger, "calendar operation failed", err,
			slog.String("path", r.URL.Path))
		WriteInternalError(w, "Internal server error")
	}
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}
