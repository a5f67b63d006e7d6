package tui

import (
	"testing"
	"time"

	"github.com/codecrafters/effzins/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(calc model.RateCalculator) (*App, *FormModel) {
	m := NewFormModel(calc, FormOptions{NotificationTTL: time.Hour})
	return NewApp(NewFormPage(m), NewHelpPage()), m
}

func TestApp_HelpNavigation(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(&fakeCalculator{})
	if app.ActivePage() != PageForm {
		t.Fatalf("active = %s, want form", app.ActivePage())
	}

	app.Update(keyRunes("?"))
	if app.ActivePage() != PageHelp {
		t.Fatalf("active = %s, want help", app.ActivePage())
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.ActivePage() != PageForm {
		t.Fatalf("active = %s, want form after esc", app.ActivePage())
	}
}

func TestApp_ResultReachesFormWhileHelpIsShown(t *testing.T) {
	t.Parallel()

	calc := &fakeCalculator{resp: model.RateResponse{Zinssatz: 1.05}}
	app, m := newTestApp(calc)
	fillValid(m)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	msg := m.submitMsgForTest(t)

	app.Update(keyRunes("?"))
	app.Update(msg)

	if resp := m.Result(); resp.Zinssatz != 1.05 {
		t.Errorf("result = %+v; want delivered while on help page", resp)
	}
}

func TestApp_QuitClosesPages(t *testing.T) {
	t.Parallel()

	app, m := newTestApp(&fakeCalculator{})

	_, cmd := app.Update(quitMsg{})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not produce tea.QuitMsg")
	}
	if !m.closed {
		t.Error("form not closed on quit")
	}

	app.Close()
}

func TestApp_ForceQuit(t *testing.T) {
	t.Parallel()

	app, m := newTestApp(&fakeCalculator{})
	app.Update(keyRunes("?"))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if !m.closed {
		t.Error("form not closed on ctrl+c")
	}
}

func TestApp_ViewWithoutPages(t *testing.T) {
	t.Parallel()

	app := NewApp()
	if got := app.View(); got != "No active page" {
		t.Errorf("view = %q", got)
	}
}

// submitMsgForTest runs a fresh submission directly and returns its result
// message without touching the Bubble Tea runtime.
func (m *FormModel) submitMsgForTest(t *testing.T) tea.Msg {
	t.Helper()
	cmd := m.submit()
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	return cmd()
}
