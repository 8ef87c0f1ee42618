// Package picker models the scroll-backed duration picker that seeds the timer.
//
// Each column is a Wheel: a continuous scroll offset snapped to a discrete index
// by round(offset / ItemHeight). The mapping runs both ways so a programmatic
// index change moves the offset and a scroll moves the index.
package picker

import (
	"math"
	"strings"

	"github.com/longhd1308/ClockApp/internal/domain"
)

// ItemHeight is the height of one row in a wheel.
const ItemHeight = 40.0

// Field names a picker column.
type Field string

const (
	FieldHours   Field = "hours"
	FieldMinutes Field = "minutes"
	FieldSeconds Field = "seconds"
)

// ParseField accepts the full name or its first letter.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hours", "hour", "h":
		return FieldHours, nil
	case "minutes", "minute", "min", "m":
		return FieldMinutes, nil
	case "seconds", "second", "sec", "s":
		return FieldSeconds, nil
	default:
		return "", domain.ErrUnknownField
	}
}

// Wheel is one scroll-backed selector over [0, Max].
type Wheel struct {
	max    int
	index  int
	offset float64
}

// NewWheel creates a wheel positioned at index 0.
func NewWheel(max int) *Wheel {
	return &Wheel{max: max}
}

// Max returns the largest selectable index.
func (w *Wheel) Max() int { return w.max }

// Index returns the selected index.
func (w *Wheel) Index() int { return w.index }

// Offset returns the recorded scroll offset.
func (w *Wheel) Offset() float64 { return w.offset }

// Scroll records a scroll offset and snaps the index to the nearest row.
// Offsets past either end select the first or last row.
func (w *Wheel) Scroll(offset float64) int {
	if math.IsNaN(offset) {
		offset = 0
	}
	w.offset = offset
	row := math.Round(offset / ItemHeight)
	switch {
	case row <= 0:
		w.index = 0
	case row >= float64(w.max):
		w.index = w.max
	default:
		w.index = int(row)
	}
	return w.index
}

// SetIndex selects index i, clamped to the wheel range, and moves the offset
// onto that row.
func (w *Wheel) SetIndex(i int) float64 {
	w.index = w.clamp(i)
	w.offset = float64(w.index) * ItemHeight
	return w.offset
}

func (w *Wheel) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > w.max {
		return w.max
	}
	return i
}

// Picker groups the hours, minutes and seconds wheels.
type Picker struct {
	Hours   *Wheel
	Minutes *Wheel
	Seconds *Wheel
}

// New creates a picker with every wheel at zero.
func New() *Picker {
	return &Picker{
		Hours:   NewWheel(domain.MaxHours),
		Minutes: NewWheel(domain.MaxMinutes),
		Seconds: NewWheel(domain.MaxSeconds),
	}
}

// Wheel returns the wheel for f.
func (p *Picker) Wheel(f Field) (*Wheel, error) {
	switch f {
	case FieldHours:
		return p.Hours, nil
	case FieldMinutes:
		return p.Minutes, nil
	case FieldSeconds:
		return p.Seconds, nil
	default:
		return nil, domain.ErrUnknownField
	}
}

// Selection returns the current triple.
func (p *Picker) Selection() domain.DurationSelection {
	return domain.DurationSelection{
		Hours:   p.Hours.Index(),
		Minutes: p.Minutes.Index(),
		Seconds: p.Seconds.Index(),
	}
}

// SetSelection positions all wheels on sel, clamping each field.
func (p *Picker) SetSelection(sel domain.DurationSelection) {
	p.Hours.SetIndex(sel.Hours)
	p.Minutes.SetIndex(sel.Minutes)
	p.Seconds.SetIndex(sel.Seconds)
}

// TotalSeconds returns the configured duration in seconds.
func (p *Picker) TotalSeconds() int {
	return p.Selection().TotalSeconds()
}
