package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityCore     Priority = "CORE"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// IsKnown reports whether p is one of the named levels. Other strings are still
// accepted and shown verbatim.
func (p Priority) IsKnown() bool {
	switch Priority(strings.ToUpper(string(p))) {
	case PriorityLow, PriorityCore, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

const (
	MinProgress = 0
	MaxProgress = 100
	MaxStars    = 5
)

type Resolution struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Stars       int      `json:"stars" validate:"min=0,max=5"`
	Progress    int      `json:"progress" validate:"min=0,max=100"`
}

// DefaultResolutions is the first-run list.
func DefaultResolutions() []Resolution {
	return []Resolution{
		{ID: uuid.NewString(), Title: "ELITE PHYSIQUE", Description: "Train daily. No excuses.", Priority: PriorityHigh, Stars: 5, Progress: 60},
		{ID: uuid.NewString(), Title: "MASTER CODING", Description: "Deep focus. Build systems.", Priority: PriorityCritical, Stars: 5, Progress: 45},
		{ID: uuid.NewString(), Title: "MENTAL DISCIPLINE", Description: "Zero distraction mode.", Priority: PriorityCore, Stars: 4, Progress: 70},
	}
}

// Resolutions is the ordered goal list; order is display order.
type Resolutions struct {
	items []Resolution
}

// NewResolutions takes ownership of items, assigning ids to records stored without one
// and clamping out-of-range fields.
func NewResolutions(items []Resolution) *Resolutions {
	out := make([]Resolution, len(items))
	copy(out, items)
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = uuid.NewString()
		}
		out[i].Progress = clamp(out[i].Progress, MinProgress, MaxProgress)
		out[i].Stars = clamp(out[i].Stars, 0, MaxStars)
	}
	return &Resolutions{items: out}
}

// Items returns a copy of the list.
func (r *Resolutions) Items() []Resolution {
	out := make([]Resolution, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Resolutions) Len() int { return len(r.items) }

func (r *Resolutions) checkIndex(index int) error {
	if index < 0 || index >= len(r.items) {
		return IndexError{Index: index, Len: len(r.items)}
	}
	return nil
}

func (r *Resolutions) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

// SetProgress replaces the progress of the record at index. The value is clamped to
// [0,100]; an index outside the list returns an IndexError and changes nothing.
func (r *Resolutions) SetProgress(index, value int) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}
	r.items[index].Progress = clamp(value, MinProgress, MaxProgress)
	return nil
}

// SetProgressByID is the identifier-keyed form of SetProgress.
func (r *Resolutions) SetProgressByID(id string, value int) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("resolution %s: %w", id, ErrNotFound)
	}
	return r.SetProgress(i, value)
}

func (r *Resolutions) SetStars(index, stars int) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}
	r.items[index].Stars = clamp(stars, 0, MaxStars)
	return nil
}

// Add appends a new record and returns it.
func (r *Resolutions) Add(in Resolution) (Resolution, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Priority = Priority(strings.ToUpper(strings.TrimSpace(string(in.Priority))))
	if in.Priority == "" {
		in.Priority = PriorityCore
	}
	if err := validate.Struct(in); err != nil {
		return Resolution{}, validationError(err)
	}
	in.ID = uuid.NewString()
	r.items = append(r.items, in)
	return in, nil
}

// Remove deletes the record with id.
func (r *Resolutions) Remove(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("resolution %s: %w", id, ErrNotFound)
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// Resolve maps a CLI reference (1-based position or id) to a list index.
func (r *Resolutions) Resolve(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if pos, err := strconv.Atoi(ref); err == nil {
		if err := r.checkIndex(pos - 1); err != nil {
			return 0, err
		}
		return pos - 1, nil
	}
	if i := r.indexOf(ref); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("resolution %s: %w", ref, ErrNotFound)
}

// AggregateProgress is the unweighted mean of all progress values, 0 for an empty list.
func (r *Resolutions) AggregateProgress() float64 {
	if len(r.items) == 0 {
		return 0
	}
	sum := 0
	for _, it := range r.items {
		sum += it.Progress
	}
	return float64(sum) / float64(len(r.items))
}

// YearElapsedPercent is the share of the current year that has passed, measured from
// Jan 1 00:00:00 to Dec 31 23:59:59 in now's location.
func YearElapsedPercent(now time.Time) float64 {
	loc := now.Location()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, loc)

	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	return float64(now.Sub(start)) / float64(total) * 100
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
