package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"lifedash/internal/engine"
	"lifedash/internal/ui"
)

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.dash == nil {
		return ui.Muted.Render("lifedash — loading…") + "\n"
	}

	var body string
	switch m.active {
	case panelRuntime:
		body = m.renderRuntime()
	case panelResolutions:
		body = m.renderResolutions()
	case panelTarget:
		body = m.renderTarget()
	case panelOperator:
		body = m.renderOperator()
	}

	panelStyle := ui.Panel
	if m.width > 4 {
		panelStyle = panelStyle.Width(m.width - 4)
	}

	parts := []string{m.renderTabs(), panelStyle.Render(body)}
	if m.editing != fieldNone {
		parts = append(parts, m.input.View())
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m boardModel) renderTabs() string {
	tabs := make([]string, 0, len(panelNames))
	for i, name := range panelNames {
		if panel(i) == m.active {
			tabs = append(tabs, ui.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, ui.Tab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m boardModel) renderFooter() string {
	var keys string
	switch m.active {
	case panelRuntime:
		keys = "←/→ unit"
	case panelResolutions:
		keys = "↑/↓ select · +/- progress · [/] stars"
	case panelTarget:
		keys = "s settings · e edit target · L edit label"
	case panelOperator:
		switch m.mode {
		case modeBody:
			keys = "m mode · ↑/↓ field · +/- adjust · n name · d desc · i image"
		case modeLooks:
			keys = "m mode · ↑/↓ score · +/- adjust · i image"
		case modeFinance:
			keys = "m mode · a amount · t type · c category · i image"
		}
	}
	if m.editing != fieldNone {
		keys = "enter save · esc cancel"
	}
	return ui.Muted.Render(keys+" · tab panel · r reload · q quit") + "\n" + m.lastLog
}

func (m boardModel) renderRuntime() string {
	rt := m.dash.Runtime
	var units []string
	for _, a := range m.anchors {
		label := fmt.Sprintf("%-*s", int(anchorWidth), strings.ToUpper(string(a.Unit)))
		if a.Unit == rt.Unit {
			units = append(units, ui.SelectedRow.Render(label))
		} else {
			units = append(units, ui.Muted.Render(label))
		}
	}
	return strings.Join([]string{
		ui.Heading(ui.IconClock, "SYSTEM RUNTIME"),
		"",
		ui.Big.Render(rt.Display(m.opts.Formatter)),
		ui.Muted.Render(strings.ToUpper(string(rt.Unit)) + " since " + rt.Epoch.UTC().Format("2006-01-02 15:04:05Z")),
		"",
		strings.Join(units, strings.Repeat(" ", int(anchorGap))),
	}, "\n")
}

func (m boardModel) renderResolutions() string {
	res := m.dash.Resolutions
	lines := []string{
		ui.Heading(ui.IconGoal, "RESOLUTIONS"),
		ui.LabelValue("Aggregate", fmt.Sprintf("%.0f%%", res.AggregateProgress())) + "   " +
			ui.LabelValue("Year elapsed", fmt.Sprintf("%.1f%%", m.yearPct)),
		ui.Bar(m.yearPct, 30),
		"",
	}
	for i, r := range res.Items() {
		cursor := "  "
		title := ui.Strong.Render(r.Title)
		if i == m.selRes {
			cursor = "> "
			title = ui.SelectedRow.Render(r.Title)
		}
		lines = append(lines,
			fmt.Sprintf("%s%s %s %s", cursor, title, ui.Muted.Render(string(r.Priority)), ui.Stars(r.Stars, engine.MaxStars)),
			fmt.Sprintf("    %s %3d%%  %s", ui.Bar(float64(r.Progress), 24), r.Progress, ui.Muted.Render(r.Description)),
		)
	}
	if res.Len() == 0 {
		lines = append(lines, ui.Muted.Render("(no resolutions)"))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderTarget() string {
	c := m.dash.Countdown
	lines := []string{ui.Heading(ui.IconTarget, c.Label), ""}
	switch c.State {
	case engine.CountdownUnset:
		lines = append(lines, ui.Muted.Render("No target set."))
	case engine.CountdownReached:
		lines = append(lines, ui.Good.Render(ui.IconOK+" TARGET REACHED"))
	case engine.CountdownCounting:
		b := c.Remaining
		lines = append(lines, ui.Big.Render(fmt.Sprintf("%02d DAYS  %02d HRS  %02d MIN  %02d SEC", b.Days, b.Hours, b.Minutes, b.Seconds)))
	}
	if c.SettingsOpen {
		ts := c.Timestamp
		if ts == "" {
			ts = "(unset)"
		}
		lines = append(lines, "",
			ui.H2.Render(ui.IconGear+" SETTINGS"),
			ui.LabelValue("Target", ts),
			ui.LabelValue("Label", c.Label),
		)
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderOperator() string {
	p := m.dash.Profile
	lines := []string{
		ui.Heading(ui.IconBody, p.Name),
		ui.Muted.Render(p.Description),
		ui.LabelValue("Age", m.svc.Age()) + "   " + ui.LabelValue("Mode", modeNames[m.mode]),
	}
	if p.Image != "" {
		lines = append(lines, ui.Muted.Render(fmt.Sprintf("image: %d bytes", len(p.Image))))
	}
	lines = append(lines, "")

	switch m.mode {
	case modeBody:
		metrics := []string{
			ui.LabelValue("Weight", engine.FormatMetric(p.WeightKg)+" kg"),
			ui.LabelValue("Height", engine.FormatMetric(p.HeightCm)+" cm"),
		}
		for i, s := range metrics {
			if i == m.selBody {
				metrics[i] = "> " + s
			} else {
				metrics[i] = "  " + s
			}
		}
		lines = append(lines, metrics...)
		lines = append(lines, "  "+ui.LabelValue("BMI", fmt.Sprintf("%.1f", p.BMI())))
	case modeLooks:
		a := m.dash.Appearance
		lines = append(lines, ui.LabelValue("Average", a.Average()), "")
		for i, key := range engine.AppearanceKeys {
			v, _ := a.Score(key)
			cursor := "  "
			if i == m.selLook {
				cursor = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%-8s %s %3d", cursor, strings.ToUpper(key), ui.Bar(float64(v), 20), v))
		}
	case modeFinance:
		lines = append(lines, m.renderFinance()...)
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderFinance() []string {
	l := m.dash.Ledger
	bal := l.Balance()
	income, expense := l.Totals()
	lines := []string{
		ui.Heading(ui.IconWallet, "BALANCE ") + ui.Signed(m.money(bal), bal.IsNegative()),
		ui.LabelValue("Income", m.money(income)) + "   " + ui.LabelValue("Expense", m.money(expense)) +
			"   " + ui.LabelValue("Est. tax", m.money(engine.EstimateTax(income))),
		ui.LabelValue("Next", fmt.Sprintf("%s / %s", m.txType, engine.Categories[m.category])),
		"",
	}
	txs := l.Transactions()
	if len(txs) == 0 {
		return append(lines, ui.Muted.Render("(no transactions)"))
	}
	start := max(0, len(txs)-8)
	for i := len(txs) - 1; i >= start; i-- {
		tx := txs[i]
		lines = append(lines, fmt.Sprintf("%s  %-10s %s",
			ui.Muted.Render(tx.Date.In(m.svc.Location()).Format("2006-01-02 15:04")),
			tx.Category,
			ui.Signed(m.money(tx.Signed()), tx.Type == engine.TxExpense),
		))
	}
	return lines
}

func (m boardModel) money(d decimal.Decimal) string {
	return m.opts.Money.Money(m.opts.Currency, d)
}
