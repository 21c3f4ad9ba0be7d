package picker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zapponejosh/sambat-api/internal/calendar"
	"github.com/zapponejosh/sambat-api/internal/numeral"
)

// Cursor is the displayed month and optional selected day of one picker.
// Cursors are values: every operation returns a new Cursor.
//
// Anchor holds the displayed month in both calendars with both days set to 1.
// The primary half (per Language) drives the grid and header; the secondary
// half is advanced on its own month arithmetic and is never derived from a
// conversion.
type Cursor struct {
	Language Language           `json:"language"`
	Anchor   calendar.DualDate  `json:"anchor"`
	Selected *calendar.DualDate `json:"selected,omitempty"`
}

// Formatted holds a selection rendered in both languages.
type Formatted struct {
	English string `json:"english"`
	Nepali  string `json:"nepali"`
}

// Selection is the result of selecting a day of the displayed month.
type Selection struct {
	Cursor    Cursor            `json:"cursor"`
	Selected  calendar.DualDate `json:"selected"`
	Formatted Formatted         `json:"formatted"`
}

// Engine runs cursor operations against a calendar oracle. It holds no
// per-cursor state and is safe for concurrent use if the oracle is.
type Engine struct {
	oracle   calendar.Oracle
	template Template
	logger   *slog.Logger
}

// NewEngine creates an engine. Selections are formatted with tmpl, which
// falls back to DefaultTemplate when unrecognized. A nil logger uses
// slog.Default().
func NewEngine(oracle calendar.Oracle, tmpl Template, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if !tmpl.Valid() {
		tmpl = DefaultTemplate
	}
	return &Engine{oracle: oracle, template: tmpl, logger: logger}
}

// Oracle returns the engine's calendar oracle.
func (e *Engine) Oracle() calendar.Oracle {
	return e.oracle
}

// Template returns the template used for selections.
func (e *Engine) Template() Template {
	return e.template
}

// Init creates a cursor from a YYYY-MM-DD value in the primary calendar of
// lang, or from the oracle's current date when value is empty. Devanagari
// digits are accepted. The parsed day becomes the selection and its month
// the anchor.
func (e *Engine) Init(value string, lang Language) (Cursor, error) {
	if !lang.Valid() {
		return Cursor{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	var selected calendar.DualDate
	if strings.TrimSpace(value) == "" {
		now, err := e.oracle.Now()
		if err != nil {
			return Cursor{}, fmt.Errorf("current date: %w", err)
		}
		selected = now
	} else {
		d, err := calendar.ParseDateString(numeral.Delocalize(value))
		if err != nil {
			return Cursor{}, err
		}
		selected, err = calendar.Convert(e.oracle, lang.Primary(), d)
		if errors.Is(err, calendar.ErrInvalidDate) {
			return Cursor{}, fmt.Errorf("%w: %q: %w", calendar.ErrInvalidDateString, value, err)
		}
		if err != nil {
			return Cursor{}, fmt.Errorf("convert %s %s: %w", lang.Primary(), d, err)
		}
	}

	e.logger.Debug("cursor initialized",
		slog.String("language", string(lang)),
		slog.String("bs", selected.BS.String()),
		slog.String("ad", selected.AD.String()),
	)

	return Cursor{
		Language: lang,
		Anchor:   selected.Anchor(),
		Selected: &selected,
	}, nil
}

// Advance moves the cursor by delta months, which may be any integer.
//
// Both anchor halves are advanced independently with the same carry rule.
// The selected day (or 1 when nothing is selected) is clamped to the length
// of the new primary month and the secondary half of the selection is
// obtained by converting that concrete primary day.
func (e *Engine) Advance(c Cursor, delta int) (Cursor, error) {
	primary := c.Language.Primary()

	bsYear, bsMonth := calendar.NormalizeMonth(c.Anchor.BS.Year, c.Anchor.BS.Month, delta)
	adYear, adMonth := calendar.NormalizeMonth(c.Anchor.AD.Year, c.Anchor.AD.Month, delta)
	anchor := calendar.DualDate{
		BS: calendar.Date{Year: bsYear, Month: bsMonth, Day: 1},
		AD: calendar.Date{Year: adYear, Month: adMonth, Day: 1},
	}

	day := 1
	if c.Selected != nil {
		day = c.Selected.In(primary).Day
	}

	target := anchor.In(primary)
	n, err := calendar.DaysInMonth(e.oracle, primary, target.Year, target.Month)
	if err != nil {
		return Cursor{}, fmt.Errorf("advance %d months: %w", delta, err)
	}
	target.Day = min(day, n)

	selected, err := calendar.Convert(e.oracle, primary, target)
	if err != nil {
		return Cursor{}, fmt.Errorf("advance %d months: %w", delta, err)
	}

	e.logger.Debug("cursor advanced",
		slog.Int("delta", delta),
		slog.String("primary", target.String()),
		slog.Int("requested_day", day),
	)

	return Cursor{
		Language: c.Language,
		Anchor:   anchor,
		Selected: &selected,
	}, nil
}

// SelectDay selects day d of the displayed primary month. d must lie within
// the month; otherwise ErrDayOutOfRange is returned and c is unchanged.
func (e *Engine) SelectDay(c Cursor, d int) (Selection, error) {
	primary := c.Language.Primary()
	a := c.Anchor.In(primary)

	n, err := calendar.DaysInMonth(e.oracle, primary, a.Year, a.Month)
	if err != nil {
		return Selection{}, err
	}
	if d < 1 || d > n {
		return Selection{}, fmt.Errorf("%w: day %d not in 1-%d for %s %04d-%02d",
			calendar.ErrDayOutOfRange, d, n, primary, a.Year, a.Month+1)
	}

	selected, err := calendar.Convert(e.oracle, primary, calendar.Date{Year: a.Year, Month: a.Month, Day: d})
	if err != nil {
		return Selection{}, err
	}

	next := c
	next.Selected = &selected
	return Selection{
		Cursor:   next,
		Selected: selected,
		Formatted: Formatted{
			English: Format(selected, English, e.template),
			Nepali:  Format(selected, Nepali, e.template),
		},
	}, nil
}

// Format renders date per Format.
func (e *Engine) Format(date calendar.DualDate, lang Language, tmpl Template) string {
	return Format(date, lang, tmpl)
}
