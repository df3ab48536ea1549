// Package stay computes how long an admission has lasted and whether it counts as a
// long stay. The functions are status-agnostic; callers pass active admissions only.
package stay

import (
	"time"
)

// DefaultThresholdDays is the stay length, in days, from which a stay is long.
const DefaultThresholdDays = 6

// DurationDays returns the whole calendar days from admitted to ref. admitted
// counts from the calendar date it carries, whatever its location; ref counts
// from its calendar date in its own location. The same day is 0 and an
// admission dated after ref is negative.
func DurationDays(admitted, ref time.Time) int {
	y, m, d := admitted.Date()
	a := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	r := calendarDay(ref)
	// Hours/24 is exact between midnights only away from DST shifts, so round.
	return int(r.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}

// IsLongStay reports whether the stay has reached thresholdDays.
func IsLongStay(admitted, ref time.Time, thresholdDays int) bool {
	return DurationDays(admitted, ref) >= thresholdDays
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Clock supplies the evaluation instant.
type Clock func() time.Time

// Engine binds a threshold and a clock so callers can ask about "now".
type Engine struct {
	threshold int
	now       Clock
}

// NewEngine returns an engine. A non-positive threshold falls back to
// DefaultThresholdDays and a nil clock to time.Now.
func NewEngine(thresholdDays int, now Clock) *Engine {
	if thresholdDays <= 0 {
		thresholdDays = DefaultThresholdDays
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{threshold: thresholdDays, now: now}
}

func (e *Engine) Threshold() int {
	return e.threshold
}

func (e *Engine) Now() time.Time {
	return e.now()
}

// DurationDays measures from admitted to the engine's current instant.
func (e *Engine) DurationDays(admitted time.Time) int {
	return DurationDays(admitted, e.now())
}

func (e *Engine) IsLongStay(admitted time.Time) bool {
	return IsLongStay(admitted, e.now(), e.threshold)
}

// At returns an engine frozen at ref, used to evaluate a whole snapshot against
// one instant.
func (e *Engine) At(ref time.Time) *Engine {
	return &Engine{threshold: e.threshold, now: func() time.Time { return ref }}
}
