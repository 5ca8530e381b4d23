package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// lifedash theme (CLI + board): reusable styles and a few glyphs.

const (
	IconClock   = "⏱"
	IconTarget  = "🎯"
	IconGoal    = "🏁"
	IconWallet  = "💰"
	IconBody    = "🫀"
	IconSparkle = "✨"
	IconStar    = "★"
	IconNoStar  = "☆"
	IconGear    = "⚙"
	IconOK      = "✅"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cCyan   = lipgloss.Color("51")
	cPurple = lipgloss.Color("141")
	cOrange = lipgloss.Color("214")
	cGood   = lipgloss.Color("42")
	cBad    = lipgloss.Color("196")
	cMuted  = lipgloss.Color("244")
	cWhite  = lipgloss.Color("255")
)

var (
	Title  = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	H2     = lipgloss.NewStyle().Bold(true).Foreground(cPurple)
	Big    = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	Muted  = lipgloss.NewStyle().Foreground(cMuted)
	Key    = lipgloss.NewStyle().Bold(true).Foreground(cPurple)
	Good   = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn   = lipgloss.NewStyle().Bold(true).Foreground(cOrange)
	Bad    = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Strong = lipgloss.NewStyle().Bold(true).Foreground(cWhite)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cPurple).Padding(1, 3)
	Tab         = lipgloss.NewStyle().Foreground(cMuted).Padding(0, 2)
	ActiveTab   = lipgloss.NewStyle().Bold(true).Foreground(cCyan).Underline(true).Padding(0, 2)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cWhite).Background(cPurple)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Bar renders a percentage as a fixed-width bar.
func Bar(percent float64, width int) string {
	if width < 3 {
		width = 3
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return H2.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// Stars renders n of max stars.
func Stars(n, max int) string {
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	return Warn.Render(strings.Repeat(IconStar, n)) + Muted.Render(strings.Repeat(IconNoStar, max-n))
}

// Signed colours a money string by sign.
func Signed(s string, negative bool) string {
	if negative {
		return Bad.Render(s)
	}
	return Good.Render(s)
}
