package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lifedash/internal/engine"
)

type panel int

const (
	panelRuntime panel = iota
	panelResolutions
	panelTarget
	panelOperator
	panelCount
)

var panelNames = [...]string{"RUNTIME", "RESOLUTIONS", "TARGET", "OPERATOR"}

type opMode int

const (
	modeBody opMode = iota
	modeLooks
	modeFinance
	modeCount
)

var modeNames = [...]string{"body", "looks", "finance"}

// field is what the text input is currently editing.
type field int

const (
	fieldNone field = iota
	fieldTarget
	fieldLabel
	fieldAmount
	fieldImage
	fieldName
	fieldDesc
)

const (
	anchorWidth  = 10.0
	anchorGap    = 2.0
	progressStep = 5
	scoreStep    = 5
	metricStep   = 1.0
)

type boardModel struct {
	ctx   context.Context
	svc   *engine.Service
	clock *clock
	opts  Options

	width  int
	height int

	dash    *engine.Dashboard
	yearPct float64

	active panel
	mode   opMode

	anchors []engine.UnitAnchor
	gesture float64

	selRes   int
	selBody  int
	selLook  int
	txType   engine.TxType
	category int

	editing field
	input   textinput.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	dash *engine.Dashboard
	err  error
}

type savedMsg struct {
	panel string
	err   error
}

type imageLoadedMsg struct {
	uri string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, clk *clock, opts Options) boardModel {
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 256

	anchors := engine.EvenAnchors(engine.SelectableUnits, anchorWidth, anchorGap)
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		clock:   clk,
		opts:    opts,
		anchors: anchors,
		gesture: anchorCenter(anchors, engine.DefaultUnit),
		txType:  engine.TxIncome,
		input:   in,
		loading: true,
		lastLog: "Loading…",
	}
}

func anchorCenter(anchors []engine.UnitAnchor, u engine.Unit) float64 {
	for _, a := range anchors {
		if a.Unit == u {
			return a.Offset + a.Width/2
		}
	}
	return 0
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		d, err := m.svc.OpenDashboard(m.ctx)
		return loadedMsg{dash: d, err: err}
	}
}

// saveCmd writes immediately, on the update loop, so stores land in edit order; only
// the result is delivered as a message.
func (m boardModel) saveCmd(name string, fn func(context.Context) error) tea.Cmd {
	err := fn(m.ctx)
	return func() tea.Msg {
		return savedMsg{panel: name, err: err}
	}
}

func (m boardModel) saveResolutions() tea.Cmd {
	return m.saveCmd("resolutions", func(ctx context.Context) error { return m.svc.SaveResolutions(ctx, m.dash.Resolutions) })
}

func (m boardModel) saveTarget() tea.Cmd {
	return m.saveCmd("target", func(ctx context.Context) error { return m.svc.SaveTarget(ctx, m.dash.Countdown) })
}

func (m boardModel) saveLedger() tea.Cmd {
	return m.saveCmd("ledger", func(ctx context.Context) error { return m.svc.SaveLedger(ctx, m.dash.Ledger) })
}

func (m boardModel) saveProfile() tea.Cmd {
	return m.saveCmd("profile", func(ctx context.Context) error { return m.svc.SaveProfile(ctx, m.dash.Profile) })
}

func (m boardModel) saveAppearance() tea.Cmd {
	return m.saveCmd("appearance", func(ctx context.Context) error { return m.svc.SaveAppearance(ctx, m.dash.Appearance) })
}

func loadImageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		uri, err := engine.LoadImageDataURI(path)
		return imageLoadedMsg{uri: uri, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.dash = msg.dash
		m.yearPct = engine.YearElapsedPercent(m.svc.Now())
		m.lastLog = "Loaded."
		return m, nil
	case runtimeTickMsg:
		if m.dash != nil {
			m.dash.Runtime.Tick(msg.now)
		}
		return m, nil
	case countdownTickMsg:
		if m.dash != nil {
			m.dash.Countdown.Tick(msg.now)
		}
		return m, nil
	case yearTickMsg:
		m.yearPct = engine.YearElapsedPercent(msg.now)
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.lastLog = "Save failed: " + msg.err.Error()
			m.svc.Logger().Error("board save failed", slog.String("panel", msg.panel), slog.String("error", msg.err.Error()))
			return m, nil
		}
		m.lastLog = "Saved " + msg.panel + "."
		return m, nil
	case imageLoadedMsg:
		if msg.err != nil {
			m.lastLog = "Image failed: " + msg.err.Error()
			return m, nil
		}
		if m.dash == nil {
			return m, nil
		}
		m.dash.Profile.Image = msg.uri
		m.lastLog = "Image loaded."
		return m, m.saveProfile()
	case tea.KeyMsg:
		if m.editing != fieldNone {
			return m.updateEditing(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m boardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.active = (m.active + 1) % panelCount
		return m, nil
	case "shift+tab":
		m.active = (m.active + panelCount - 1) % panelCount
		return m, nil
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	}
	if m.dash == nil {
		return m, nil
	}
	switch m.active {
	case panelRuntime:
		return m.updateRuntime(msg)
	case panelResolutions:
		return m.updateResolutions(msg)
	case panelTarget:
		return m.updateTarget(msg)
	case panelOperator:
		return m.updateOperator(msg)
	}
	return m, nil
}

// updateRuntime moves the picker position one slot at a time; the unit under the
// position is the nearest anchor.
func (m boardModel) updateRuntime(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := anchorWidth + anchorGap
	switch msg.String() {
	case "left", "h":
		m.gesture -= step
	case "right", "l":
		m.gesture += step
	default:
		return m, nil
	}
	if len(m.anchors) > 0 {
		lo := anchorCenter(m.anchors, m.anchors[0].Unit)
		hi := anchorCenter(m.anchors, m.anchors[len(m.anchors)-1].Unit)
		m.gesture = min(max(m.gesture, lo), hi)
	}
	if u, ok := engine.NearestUnit(m.anchors, m.gesture); ok {
		m.dash.Runtime.SetUnit(u)
	}
	return m, nil
}

func (m boardModel) updateResolutions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res := m.dash.Resolutions
	items := res.Items()
	switch msg.String() {
	case "up", "k":
		if m.selRes > 0 {
			m.selRes--
		}
		return m, nil
	case "down", "j":
		if m.selRes < len(items)-1 {
			m.selRes++
		}
		return m, nil
	case "+", "=", "right":
		return m.applyResolution(res.SetProgress(m.selRes, progressOf(items, m.selRes)+progressStep))
	case "-", "left":
		return m.applyResolution(res.SetProgress(m.selRes, progressOf(items, m.selRes)-progressStep))
	case "]":
		return m.applyResolution(res.SetStars(m.selRes, starsOf(items, m.selRes)+1))
	case "[":
		return m.applyResolution(res.SetStars(m.selRes, starsOf(items, m.selRes)-1))
	}
	return m, nil
}

func progressOf(items []engine.Resolution, i int) int {
	if i < 0 || i >= len(items) {
		return 0
	}
	return items[i].Progress
}

func starsOf(items []engine.Resolution, i int) int {
	if i < 0 || i >= len(items) {
		return 0
	}
	return items[i].Stars
}

func (m boardModel) applyResolution(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.lastLog = err.Error()
		return m, nil
	}
	return m, m.saveResolutions()
}

func (m boardModel) updateTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.dash.Countdown
	switch msg.String() {
	case "s":
		c.ToggleSettings()
		return m, nil
	case "e", "enter":
		if !c.SettingsOpen {
			return m, nil
		}
		return m.startEditing(fieldTarget, c.Timestamp, "2006-01-02T15:04")
	case "L":
		if !c.SettingsOpen {
			return m, nil
		}
		return m.startEditing(fieldLabel, c.Label, engine.DefaultTargetLabel)
	}
	return m, nil
}

func (m boardModel) updateOperator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "m":
		m.mode = (m.mode + 1) % modeCount
		return m, nil
	case "i":
		return m.startEditing(fieldImage, "", "/path/to/photo.png")
	}
	switch m.mode {
	case modeBody:
		return m.updateBody(msg)
	case modeLooks:
		return m.updateLooks(msg)
	case modeFinance:
		return m.updateFinance(msg)
	}
	return m, nil
}

func (m boardModel) updateBody(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.dash.Profile
	var err error
	switch msg.String() {
	case "up", "k":
		m.selBody = 0
		return m, nil
	case "down", "j":
		m.selBody = 1
		return m, nil
	case "n":
		return m.startEditing(fieldName, p.Name, engine.DefaultOperatorName)
	case "d":
		return m.startEditing(fieldDesc, p.Description, engine.DefaultOperatorDesc)
	case "+", "=", "right":
		err = m.adjustBody(p, metricStep)
	case "-", "left":
		err = m.adjustBody(p, -metricStep)
	default:
		return m, nil
	}
	if err != nil {
		m.lastLog = err.Error()
		return m, nil
	}
	return m, m.saveProfile()
}

func (m boardModel) adjustBody(p *engine.Profile, delta float64) error {
	if m.selBody == 0 {
		return p.AdjustWeight(delta)
	}
	return p.AdjustHeight(delta)
}

func (m boardModel) updateLooks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := engine.AppearanceKeys
	switch msg.String() {
	case "up", "k":
		if m.selLook > 0 {
			m.selLook--
		}
		return m, nil
	case "down", "j":
		if m.selLook < len(keys)-1 {
			m.selLook++
		}
		return m, nil
	case "+", "=", "right", "-", "left":
		delta := scoreStep
		if s := msg.String(); s == "-" || s == "left" {
			delta = -scoreStep
		}
		a := &m.dash.Appearance
		key := keys[m.selLook]
		cur, err := a.Score(key)
		if err == nil {
			err = a.SetScore(key, cur+delta)
		}
		if err != nil {
			m.lastLog = err.Error()
			return m, nil
		}
		return m, m.saveAppearance()
	}
	return m, nil
}

func (m boardModel) updateFinance(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a", "enter":
		return m.startEditing(fieldAmount, "", "0.00")
	case "t":
		if m.txType == engine.TxIncome {
			m.txType = engine.TxExpense
		} else {
			m.txType = engine.TxIncome
		}
		return m, nil
	case "c":
		m.category = (m.category + 1) % len(engine.Categories)
		return m, nil
	}
	return m, nil
}

func (m boardModel) startEditing(f field, value, placeholder string) (tea.Model, tea.Cmd) {
	m.editing = f
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m boardModel) stopEditing() boardModel {
	m.editing = fieldNone
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m boardModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.stopEditing(), nil
	case "enter":
		return m.commit(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commit applies the input buffer to the field being edited. A rejected amount keeps
// the buffer so it can be corrected.
func (m boardModel) commit(value string) (tea.Model, tea.Cmd) {
	if m.dash == nil {
		return m.stopEditing(), nil
	}
	now := m.svc.Now()
	switch m.editing {
	case fieldTarget:
		if err := m.dash.Countdown.SetTarget(value, now); err != nil {
			m.lastLog = err.Error()
			return m, nil
		}
		if err := m.clock.restartCountdown(); err != nil {
			m.lastLog = "Countdown restart failed: " + err.Error()
		}
		m = m.stopEditing()
		return m, m.saveTarget()
	case fieldLabel:
		m.dash.Countdown.SetLabel(value)
		m = m.stopEditing()
		return m, m.saveTarget()
	case fieldAmount:
		cat := engine.Categories[m.category]
		tx, err := m.dash.Ledger.Add(value, m.txType, cat, now)
		if err != nil {
			if errors.Is(err, engine.ErrInvalidAmount) {
				m.lastLog = fmt.Sprintf("Invalid amount %q.", value)
			} else {
				m.lastLog = err.Error()
			}
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Logged %s %s (%s).", tx.Type, tx.Amount.String(), tx.Category)
		m = m.stopEditing()
		return m, m.saveLedger()
	case fieldImage:
		path := strings.TrimSpace(value)
		m = m.stopEditing()
		if path == "" {
			return m, nil
		}
		m.lastLog = "Loading image…"
		return m, loadImageCmd(path)
	case fieldName:
		m.dash.Profile.SetName(value)
		m = m.stopEditing()
		return m, m.saveProfile()
	case fieldDesc:
		m.dash.Profile.SetDescription(value)
		m = m.stopEditing()
		return m, m.saveProfile()
	}
	return m.stopEditing(), nil
}
