package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifedash/internal/engine"
	"lifedash/internal/ticker"
)

// Options carries display settings the board needs from config.
type Options struct {
	Formatter engine.Formatter
	Money     engine.Formatter
	Currency  string
}

// Tick periods for the background jobs.
const (
	runtimeEvery   = time.Second
	countdownEvery = time.Second
	yearEvery      = time.Minute
)

type runtimeTickMsg struct{ now time.Time }
type countdownTickMsg struct{ now time.Time }
type yearTickMsg struct{ now time.Time }

// clock owns the board's periodic jobs. Jobs only post messages; the model mutates.
type clock struct {
	sched *ticker.Scheduler
	now   func() time.Time
	send  func(tea.Msg)
}

func (c *clock) start() error {
	if c == nil || c.sched == nil {
		return nil
	}
	c.sched.Start()
	if _, err := c.sched.Every("runtime", runtimeEvery, func() { c.post(runtimeTickMsg{now: c.now()}) }); err != nil {
		return err
	}
	if err := c.restartCountdown(); err != nil {
		return err
	}
	_, err := c.sched.Every("year", yearEvery, func() { c.post(yearTickMsg{now: c.now()}) })
	return err
}

// restartCountdown re-registers the countdown job so it fires a full period after a
// target change.
func (c *clock) restartCountdown() error {
	if c == nil || c.sched == nil {
		return nil
	}
	_, err := c.sched.Every("countdown", countdownEvery, func() { c.post(countdownTickMsg{now: c.now()}) })
	return err
}

func (c *clock) post(msg tea.Msg) {
	if c.send != nil {
		c.send(msg)
	}
}

func (c *clock) stop() {
	if c == nil || c.sched == nil {
		return
	}
	c.sched.Stop()
}

func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer, opts Options) error {
	clk := &clock{sched: ticker.New(svc.Logger()), now: svc.Now}
	m := newBoardModel(ctx, svc, clk, opts)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	clk.send = p.Send

	if err := clk.start(); err != nil {
		clk.stop()
		return err
	}
	defer clk.stop()

	_, err := p.Run()
	return err
}
