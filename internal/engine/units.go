package engine

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Unit string

const (
	UnitMilliseconds Unit = "milliseconds"
	UnitSeconds      Unit = "seconds"
	UnitMinutes      Unit = "minutes"
	UnitHours        Unit = "hours"
	UnitDays         Unit = "days"
	UnitMonths       Unit = "months"
	UnitYears        Unit = "years"
)

// DefaultUnit is the unit shown before any selection is made.
const DefaultUnit Unit = UnitSeconds

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	// Months and years are fixed 30 and 365 day spans, not calendar spans.
	secondsPerMonth = 30 * secondsPerDay
	secondsPerYear  = 365 * secondsPerDay
)

// AllUnits lists every unit the conversion table knows, in display order.
var AllUnits = []Unit{
	UnitMilliseconds,
	UnitSeconds,
	UnitMinutes,
	UnitHours,
	UnitDays,
	UnitMonths,
	UnitYears,
}

// SelectableUnits is the ring offered by the unit picker. Milliseconds is left out;
// it can only be chosen explicitly.
var SelectableUnits = AllUnits[1:]

func (u Unit) IsValid() bool {
	for _, known := range AllUnits {
		if u == known {
			return true
		}
	}
	return false
}

// ParseUnit maps user input (including short forms) to a Unit.
// Empty or unrecognized input returns DefaultUnit and false.
func ParseUnit(input string) (Unit, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "ms", "millis", "millisecond", "milliseconds":
		return UnitMilliseconds, true
	case "s", "sec", "second", "seconds":
		return UnitSeconds, true
	case "m", "min", "minute", "minutes":
		return UnitMinutes, true
	case "h", "hr", "hour", "hours":
		return UnitHours, true
	case "d", "day", "days":
		return UnitDays, true
	case "mo", "month", "months":
		return UnitMonths, true
	case "y", "yr", "year", "years":
		return UnitYears, true
	default:
		return DefaultUnit, false
	}
}

// Formatter renders counts with locale-aware digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter builds a Formatter for a BCP 47 locale tag. Unknown tags fall back to English.
func NewFormatter(locale string) Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return Formatter{p: message.NewPrinter(tag)}
}

var defaultFormatter = NewFormatter("en")

// Int renders n with grouping separators, e.g. 1,234,567.
func (f Formatter) Int(n int64) string {
	if f.p == nil {
		return defaultFormatter.Int(n)
	}
	return f.p.Sprintf("%d", n)
}

// Amount renders a money value with grouping and at most two decimals.
func (f Formatter) Amount(v float64) string {
	if f.p == nil {
		return defaultFormatter.Amount(v)
	}
	if v == math.Trunc(v) {
		return f.p.Sprintf("%.0f", v)
	}
	return f.p.Sprintf("%.2f", v)
}

// ConvertSeconds renders a second count in the given unit using English grouping.
func ConvertSeconds(seconds int64, unit Unit) string {
	return defaultFormatter.Convert(seconds, unit)
}

// Convert renders a second count in the given unit. Seconds and milliseconds are
// grouped integers; the other units use exactly two decimals. An unknown unit yields
// the raw count.
func (f Formatter) Convert(seconds int64, unit Unit) string {
	switch unit {
	case UnitMilliseconds:
		return f.Int(seconds * 1000)
	case UnitSeconds:
		return f.Int(seconds)
	case UnitMinutes:
		return fixed2(seconds, secondsPerMinute)
	case UnitHours:
		return fixed2(seconds, secondsPerHour)
	case UnitDays:
		return fixed2(seconds, secondsPerDay)
	case UnitMonths:
		return fixed2(seconds, secondsPerMonth)
	case UnitYears:
		return fixed2(seconds, secondsPerYear)
	default:
		return strconv.FormatInt(seconds, 10)
	}
}

func fixed2(seconds int64, divisor int64) string {
	return strconv.FormatFloat(float64(seconds)/float64(divisor), 'f', 2, 64)
}

// UnitAnchor is the layout span of one unit label in the picker.
type UnitAnchor struct {
	Unit   Unit
	Offset float64
	Width  float64
}

func (a UnitAnchor) center() float64 {
	return a.Offset + a.Width/2
}

// NearestUnit returns the unit whose anchor centre is closest to position. Ties go to
// the anchor seen first. ok is false when anchors is empty.
func NearestUnit(anchors []UnitAnchor, position float64) (Unit, bool) {
	var (
		best     Unit
		bestDist = math.Inf(1)
		found    bool
	)
	for _, a := range anchors {
		d := math.Abs(position - a.center())
		if d < bestDist {
			best = a.Unit
			bestDist = d
			found = true
		}
	}
	return best, found
}

// EvenAnchors lays units out side by side, each width wide with gap between them.
func EvenAnchors(units []Unit, width, gap float64) []UnitAnchor {
	out := make([]UnitAnchor, 0, len(units))
	offset := 0.0
	for _, u := range units {
		out = append(out, UnitAnchor{Unit: u, Offset: offset, Width: width})
		offset += width + gap
	}
	return out
}
