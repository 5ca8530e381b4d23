package engine

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTargetLabel is shown when no label has been saved.
const DefaultTargetLabel = "MISSION TARGET"

type CountdownState int

const (
	CountdownUnset CountdownState = iota
	CountdownCounting
	CountdownReached
)

func (s CountdownState) String() string {
	switch s {
	case CountdownCounting:
		return "counting"
	case CountdownReached:
		return "reached"
	default:
		return "unset"
	}
}

// Breakdown is a positive remaining duration split into calendar-free parts.
type Breakdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

func (b Breakdown) String() string {
	return fmt.Sprintf("%dd %dh %dm %ds", b.Days, b.Hours, b.Minutes, b.Seconds)
}

// BreakdownMillis splits a positive millisecond difference into days, hours, minutes
// and seconds. Non-positive input yields the zero Breakdown.
func BreakdownMillis(d int64) Breakdown {
	if d <= 0 {
		return Breakdown{}
	}
	return Breakdown{
		Days:    d / 86_400_000,
		Hours:   (d / 3_600_000) % 24,
		Minutes: (d / 60_000) % 60,
		Seconds: (d / 1000) % 60,
	}
}

// Timestamp layouts accepted for a target. Layouts without a zone are read in the
// caller's location.
var targetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTarget parses a target timestamp.
func ParseTarget(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}

// Countdown is the target panel: a raw timestamp, its label and the last evaluation.
type Countdown struct {
	Timestamp string
	Label     string

	State     CountdownState
	Remaining Breakdown

	// SettingsOpen is a view flag: open until the first non-empty timestamp is set,
	// then toggled freely.
	SettingsOpen  bool
	autoCollapsed bool

	loc *time.Location
}

func NewCountdown(timestamp, label string, loc *time.Location) *Countdown {
	if loc == nil {
		loc = time.Local
	}
	c := &Countdown{Timestamp: strings.TrimSpace(timestamp), Label: label, SettingsOpen: true, loc: loc}
	if c.Timestamp != "" {
		c.SettingsOpen = false
		c.autoCollapsed = true
	}
	return c
}

// SetTarget replaces the target. An empty string clears it; an unparseable one is
// rejected and leaves the previous target in place.
func (c *Countdown) SetTarget(raw string, now time.Time) error {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if _, err := ParseTarget(raw, c.loc); err != nil {
			return err
		}
	}
	c.Timestamp = raw
	if raw != "" && !c.autoCollapsed {
		c.SettingsOpen = false
		c.autoCollapsed = true
	}
	c.Tick(now)
	return nil
}

func (c *Countdown) SetLabel(label string) {
	c.Label = label
}

func (c *Countdown) ToggleSettings() {
	c.SettingsOpen = !c.SettingsOpen
}

// Tick re-evaluates the state from the raw difference between target and now.
func (c *Countdown) Tick(now time.Time) CountdownState {
	c.State, c.Remaining = EvaluateCountdown(c.Timestamp, now, c.loc)
	return c.State
}

// EvaluateCountdown computes the state for a raw timestamp. Unparseable or empty
// timestamps are Unset; a target at or before now is Reached.
func EvaluateCountdown(raw string, now time.Time, loc *time.Location) (CountdownState, Breakdown) {
	if strings.TrimSpace(raw) == "" {
		return CountdownUnset, Breakdown{}
	}
	target, err := ParseTarget(raw, loc)
	if err != nil {
		return CountdownUnset, Breakdown{}
	}
	d := target.Sub(now).Milliseconds()
	if d <= 0 {
		return CountdownReached, Breakdown{}
	}
	return CountdownCounting, BreakdownMillis(d)
}
