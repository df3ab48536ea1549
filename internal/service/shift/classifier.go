// Package shift derives the shift an admission is booked under from its date and the
// weekend opt-in. Classification is a pure reducer: callers re-run it whenever the
// admission date or the opt-in changes and never feed back earlier derived output
// other than the currently selected shift.
package shift

import (
	"strings"
	"time"

	"github.com/jwalitptl/ward-api/internal/model"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

// DateLayout is the calendar-date form admission dates are submitted in.
const DateLayout = "2006-01-02"

// DefaultWeekendDays are the admission days that may use the weekend shift set.
var DefaultWeekendDays = []time.Weekday{time.Friday, time.Saturday}

// Input is the current state of the admission draft.
type Input struct {
	AdmissionDate   time.Time
	UseWeekendShift bool
	Current         model.ShiftType
}

// Result is the derived shift state.
type Result struct {
	ShiftType       model.ShiftType `json:"shift_type"`
	IsWeekend       bool            `json:"is_weekend"`
	UseWeekendShift bool            `json:"use_weekend_shift"`
	Label           string          `json:"label"`
	DayMessage      string          `json:"day_message,omitempty"`
	Window          Window          `json:"window"`
}

type Classifier struct {
	weekendDays map[time.Weekday]bool
}

// NewClassifier builds a classifier for the given weekend-eligible days.
// With no days it uses DefaultWeekendDays.
func NewClassifier(days ...time.Weekday) *Classifier {
	if len(days) == 0 {
		days = DefaultWeekendDays
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return &Classifier{weekendDays: set}
}

var defaultClassifier = NewClassifier()

// Classify runs the default classifier.
func Classify(in Input) (Result, error) {
	return defaultClassifier.Classify(in)
}

// IsWeekendEligible reports whether date falls on a weekend-eligible day. The
// weekday is taken from the calendar date in date's own location.
func (c *Classifier) IsWeekendEligible(date time.Time) bool {
	return c.weekendDays[date.Weekday()]
}

func (c *Classifier) Classify(in Input) (Result, error) {
	if in.AdmissionDate.IsZero() {
		return Result{}, apperrors.Validation("admission date is required")
	}

	isWeekend := c.IsWeekendEligible(in.AdmissionDate)
	res := Result{
		IsWeekend:  isWeekend,
		DayMessage: dayMessage(in.AdmissionDate, isWeekend),
	}

	if isWeekend && in.UseWeekendShift {
		res.UseWeekendShift = true
		res.ShiftType = model.ShiftWeekendMorning
		if in.Current.IsWeekendVariant() {
			res.ShiftType = in.Current
		}
		res.Label = res.ShiftType.Label()
		res.Window, _ = WindowOf(res.ShiftType)
		return res, nil
	}

	// Weekday shift set. On weekend-eligible days without the opt-in, IsWeekend
	// stays true for display.
	switch {
	case in.Current == "" || in.Current.IsWeekendVariant():
		res.ShiftType = model.ShiftMorning
	case in.Current.IsWeekday():
		res.ShiftType = in.Current
	default:
		return Result{}, apperrors.Validation("unknown shift type %q", in.Current)
	}
	res.Label = res.ShiftType.Label()
	res.Window, _ = WindowOf(res.ShiftType)
	return res, nil
}

// ClassifyDate parses a submitted admission date and classifies it.
func (c *Classifier) ClassifyDate(raw string, useWeekendShift bool, current model.ShiftType) (Result, error) {
	date, err := ParseDate(raw)
	if err != nil {
		return Result{}, err
	}
	return c.Classify(Input{AdmissionDate: date, UseWeekendShift: useWeekendShift, Current: current})
}

// CalendarDate returns the calendar date t carries, as midnight UTC. A timestamp
// with an offset keeps the day it was written on.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperrors.Validation("admission date is required")
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.Validation("invalid admission date %q", raw)
}

func dayMessage(date time.Time, isWeekend bool) string {
	if !isWeekend {
		return ""
	}
	return date.Weekday().String() + " admission"
}

// Window is the clock range a shift covers, in hours of the day. End is
// exclusive and wraps past midnight when it is not after Start.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

var windows = map[model.ShiftType]Window{
	model.ShiftMorning:        {Start: 7, End: 15},
	model.ShiftEvening:        {Start: 15, End: 23},
	model.ShiftNight:          {Start: 23, End: 7},
	model.ShiftWeekendMorning: {Start: 7, End: 19},
	model.ShiftWeekendNight:   {Start: 19, End: 7},
}

// WindowOf returns the hours covered by s.
func WindowOf(s model.ShiftType) (Window, bool) {
	w, ok := windows[s]
	return w, ok
}
