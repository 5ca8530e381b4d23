package tui

import (
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifedash/internal/ticker"
)

func TestClockRegistersBoardJobs(t *testing.T) {
	sched := ticker.New(nil)
	c := &clock{sched: sched, now: time.Now, send: func(tea.Msg) {}}
	if err := c.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.stop()

	want := []string{"countdown", "runtime", "year"}
	if got := sched.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("jobs=%v want %v", got, want)
	}

	if err := c.restartCountdown(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if got := sched.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("jobs after restart=%v want %v", got, want)
	}
}

func TestNilClockIsInert(t *testing.T) {
	var c *clock
	if err := c.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.restartCountdown(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	c.stop()
}
