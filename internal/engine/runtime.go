package engine

import "time"

// DefaultEpoch is the instant runtime is measured from.
var DefaultEpoch = time.Date(2006, time.December, 2, 7, 51, 36, 0, time.UTC)

// Runtime tracks elapsed seconds since a fixed epoch and the unit they are shown in.
type Runtime struct {
	Epoch   time.Time
	Unit    Unit
	Elapsed int64
}

func NewRuntime(epoch time.Time) *Runtime {
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	return &Runtime{Epoch: epoch, Unit: DefaultUnit}
}

// ElapsedSeconds returns whole seconds between epoch and now, floored, never negative.
func ElapsedSeconds(epoch, now time.Time) int64 {
	ms := now.Sub(epoch).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return ms / 1000
}

// Tick recomputes the elapsed count. It is called once per second.
func (r *Runtime) Tick(now time.Time) int64 {
	r.Elapsed = ElapsedSeconds(r.Epoch, now)
	return r.Elapsed
}

// SetUnit selects a display unit. Unknown units are ignored.
func (r *Runtime) SetUnit(u Unit) bool {
	if !u.IsValid() {
		return false
	}
	r.Unit = u
	return true
}

// Display renders the current elapsed count in the selected unit.
func (r *Runtime) Display(f Formatter) string {
	return f.Convert(r.Elapsed, r.Unit)
}
