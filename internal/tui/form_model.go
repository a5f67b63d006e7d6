package tui

import (
	"context"
	"strings"
	"time"

	"github.com/codecrafters/effzins/internal/form"
	"github.com/codecrafters/effzins/internal/model"
	"github.com/codecrafters/effzins/internal/notify"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// focusTarget indexes the focusable controls: the numeric fields first,
// then the rhythm selector and the submit button.
type focusTarget int

const (
	focusRhythm focusTarget = focusTarget(4) + iota
	focusButton
	focusCount
)

// calculatedMsg carries the outcome of one submission.
type calculatedMsg struct {
	seq  uint64
	resp model.RateResponse
	err  error
}

// FormOptions configures a FormModel.
type FormOptions struct {
	NotificationTTL time.Duration
	Logger          *zap.Logger
}

// FormModel is the savings form: inputs, result and notifications.
type FormModel struct {
	calc   model.RateCalculator
	logger *zap.Logger

	input  form.Input
	inputs []textinput.Model
	focus  focusTarget

	keys KeyMap
	help help.Model

	notes *notify.Queue
	chart OverviewChart

	result  model.RateResponse
	pending bool
	seq     uint64
	cancel  context.CancelFunc
	closed  bool

	width  int
	height int
}

// NewFormModel creates the form with its initial state: every number 0, a
// yearly rhythm and a result factor of 1.
func NewFormModel(calc model.RateCalculator, opts FormOptions) *FormModel {
	ttl := opts.NotificationTTL
	if ttl <= 0 {
		ttl = model.DefaultNotificationTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &FormModel{
		calc:   calc,
		logger: logger,
		input:  form.New(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		notes:  notify.NewQueue(ttl),
		result: model.RateResponse{Zinssatz: 1},
	}

	m.inputs = make([]textinput.Model, len(form.Fields))
	for i, f := range form.Fields {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.CharLimit = 16
		ti.Width = 20
		ti.SetValue(m.input.Get(f).String())
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	m.refreshChart()
	return m
}

// Input returns a copy of the current form state.
func (m *FormModel) Input() form.Input { return m.input }

// Notifications returns the active error popups.
func (m *FormModel) Notifications() []notify.Notification { return m.notes.Items() }

// Result returns the last accepted response, if any.
func (m *FormModel) Result() model.RateResponse { return m.result }

// Pending reports whether a submission is in flight.
func (m *FormModel) Pending() bool { return m.pending }

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. The returned nav is non-nil when the user asks
// for another page.
func (m *FormModel) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return nil, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case calculatedMsg:
		return m.handleCalculated(msg), nil

	case notify.ExpiredMsg:
		m.notes.Expire(msg.ID)
		return nil, nil
	}

	if m.focus < focusRhythm {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return cmd, nil
	}
	return nil, nil
}

func (m *FormModel) handleKeyPress(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit(), nil
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.Down):
		return m.setFocus(m.focus + 1), nil
	case key.Matches(msg, m.keys.PrevField), key.Matches(msg, m.keys.Up):
		return m.setFocus(m.focus - 1), nil
	}

	if m.focus < focusRhythm {
		if cmd, handled := m.handleFieldKey(msg); handled {
			return cmd, nil
		}
	}

	switch {
	case m.focus == focusRhythm && key.Matches(msg, m.keys.Right):
		m.input.SelectRhythm(m.input.Rhythm.Next())
		m.refreshChart()
		return nil, nil
	case m.focus == focusRhythm && key.Matches(msg, m.keys.Left):
		m.input.SelectRhythm(m.input.Rhythm.Prev())
		m.refreshChart()
		return nil, nil
	case key.Matches(msg, m.keys.Enter):
		if m.focus == focusButton {
			return m.submit(), nil
		}
		return m.setFocus(m.focus + 1), nil
	case key.Matches(msg, m.keys.Help):
		return nil, &PageNav{PageID: PageHelp}
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Escape):
		return requestQuit, nil
	}
	return nil, nil
}

// handleFieldKey feeds editing keys to the focused input. Letters are not
// accepted so that command keys keep working while a field has focus.
func (m *FormModel) handleFieldKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	f := form.Fields[m.focus]
	switch {
	case key.Matches(msg, m.keys.StepUp):
		m.nudge(f, f.Step())
		return nil, true
	case key.Matches(msg, m.keys.StepDown):
		m.nudge(f, -f.Step())
		return nil, true
	}

	switch msg.Type {
	case tea.KeyRunes:
		if !numericRunes(msg.Runes) {
			return nil, false
		}
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyCtrlU, tea.KeyCtrlK, tea.KeyCtrlW:
	default:
		return nil, false
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.input.UpdateField(f, m.inputs[m.focus].Value())
	m.refreshChart()
	return cmd, true
}

func numericRunes(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if !strings.ContainsRune("0123456789.,-", r) {
			return false
		}
	}
	return true
}

// nudge moves a field by delta, treating an empty field as 0.
func (m *FormModel) nudge(f form.Field, delta float64) {
	v := m.input.Get(f).Value + delta
	m.setField(f, form.Value(v).String())
}

// setField writes raw text into a field as if the user had typed it.
func (m *FormModel) setField(f form.Field, raw string) {
	for i, ff := range form.Fields {
		if ff == f {
			m.inputs[i].SetValue(raw)
			m.inputs[i].CursorEnd()
		}
	}
	m.input.UpdateField(f, raw)
	m.refreshChart()
}

func (m *FormModel) setFocus(t focusTarget) tea.Cmd {
	t = (t%focusCount + focusCount) % focusCount
	if m.focus < focusRhythm {
		m.inputs[m.focus].Blur()
	}
	m.focus = t
	if t < focusRhythm {
		return m.inputs[t].Focus()
	}
	return nil
}

func (m *FormModel) refreshChart() {
	m.chart.SetData(m.input.DepositTotal(), m.input.EndBetrag.Value)
}

// submit validates the form and starts a request. A newer submission
// cancels the previous one; its late answer is discarded by sequence.
func (m *FormModel) submit() tea.Cmd {
	if m.closed {
		return nil
	}
	req, err := m.input.Request()
	if err != nil {
		return m.notify(err.Error())
	}

	if m.cancel != nil {
		m.cancel()
	}
	m.seq++
	seq := m.seq
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.pending = true

	m.logger.Debug("submitting rate request",
		zap.String("op", "form.submit"),
		zap.Uint64("seq", seq),
		zap.Any("request", req))

	calc := m.calc
	return func() tea.Msg {
		resp, err := calc.Calculate(ctx, req)
		return calculatedMsg{seq: seq, resp: resp, err: err}
	}
}

func (m *FormModel) handleCalculated(msg calculatedMsg) tea.Cmd {
	if m.closed || msg.seq != m.seq {
		return nil
	}
	m.pending = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.err != nil {
		m.logger.Error("rate request failed",
			zap.String("op", "form.submit"),
			zap.Uint64("seq", msg.seq),
			zap.Error(msg.err))
		return m.notify(form.NetworkErrorMessage)
	}

	m.result = msg.resp
	return nil
}

// notify shows an error popup below the submit button.
func (m *FormModel) notify(text string) tea.Cmd {
	_, cmd := m.notes.Add(text, m.buttonAnchor())
	return cmd
}

// Close cancels any in-flight request and disables notifications.
func (m *FormModel) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.notes.Close()
}
