// Package ticker runs the dashboard's periodic jobs. Every job is registered under a
// name and has a matching cancel; Stop cancels everything still registered.
package ticker

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var ErrStopped = errors.New("scheduler stopped")

// Scheduler wraps a cron runner with named @every jobs.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID
	stopped bool
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		// A slow tick is skipped rather than queued behind itself.
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins running registered jobs. Calling it again is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cron.Start()
}

// Every registers fn to run every d under name, replacing any job already registered
// under that name. Intervals below one second run once per second. The returned
// cancel removes the job and is safe to call more than once.
func (s *Scheduler) Every(name string, d time.Duration, fn func()) (func(), error) {
	if fn == nil {
		return nil, fmt.Errorf("ticker %q: nil job", name)
	}
	if d <= 0 {
		return nil, fmt.Errorf("ticker %q: interval must be positive, got %s", name, d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, ErrStopped
	}
	if old, ok := s.entries[name]; ok {
		s.cron.Remove(old)
		s.log.Debug("ticker replaced", slog.String("name", name))
	}
	id := s.cron.Schedule(cron.Every(d), cron.FuncJob(fn))
	s.entries[name] = id
	s.log.Debug("ticker registered", slog.String("name", name), slog.Duration("every", d))

	var once sync.Once
	cancel := func() {
		once.Do(func() { s.cancelEntry(name, id) })
	}
	return cancel, nil
}

// cancelEntry removes name only if it still refers to id, so a stale cancel from a
// replaced registration does not remove its successor.
func (s *Scheduler) cancelEntry(name string, id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[name]; ok && cur == id {
		s.cron.Remove(id)
		delete(s.entries, name)
		s.log.Debug("ticker cancelled", slog.String("name", name))
	}
}

// Cancel removes the job registered under name, if any.
func (s *Scheduler) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
}

// Names lists the registered job names in order.
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for name := range s.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Stop cancels every job and waits for running ones to return. Later calls to Every
// fail with ErrStopped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for name, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.log.Debug("ticker scheduler stopped")
}
