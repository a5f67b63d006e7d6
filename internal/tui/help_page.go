package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpPage shows the keyboard reference and how the rate is computed.
type HelpPage struct {
	keys KeyMap
	vp   viewport.Model
}

// NewHelpPage creates the help page.
func NewHelpPage() *HelpPage {
	return &HelpPage{
		keys: DefaultKeyMap(),
		vp:   viewport.New(0, 0),
	}
}

func (p *HelpPage) ID() string { return PageHelp }

func (p *HelpPage) Init() tea.Cmd {
	p.vp.GotoTop()
	return nil
}

func (p *HelpPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(keyMsg, p.keys.Escape), key.Matches(keyMsg, p.keys.Help):
		return nil, &PageNav{PageID: PageForm}
	case key.Matches(keyMsg, p.keys.Quit):
		return requestQuit, nil
	}
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd, nil
}

// View renders the help content in a bordered, scrollable box.
func (p *HelpPage) View(width, height int) string {
	modalWidth := width - 8
	modalHeight := height - 4
	if modalWidth < 20 || modalHeight < 6 {
		return helpContent
	}

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	p.vp.Width = contentWidth
	p.vp.Height = contentHeight
	p.vp.SetContent(lipgloss.NewStyle().Width(contentWidth).Render(helpContent))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(p.vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render("Hilfe")

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("↑/↓: Scrollen | ?/ESC: Zurück | q: Beenden")

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

const helpContent = `Effektivzinssatz Rechner

Berechnet aus Laufzeit, Einzahlungsdauer, Rhythmus, Einzahlungshöhe und
gewünschtem Endbetrag den effektiven Jahreszins eines Sparplans.

NAVIGATION:
  Tab/Shift+Tab  - Nächstes/vorheriges Feld
  ↑/↓            - Nächstes/vorheriges Feld
  ←/→            - Zahlungsrhythmus wechseln (Rhythmus-Feld)
  PgUp/PgDn      - Wert im Feld erhöhen/verringern
  Enter          - Weiter zum nächsten Feld, auf "Effektivzinssatz berechnen" absenden

AKTIONEN:
  Ctrl+s         - Berechnen (überall)
  ?              - Diese Hilfe ein/aus
  q/ESC          - Beenden
  Ctrl+c         - Sofort beenden

PRÜFUNGEN VOR DEM ABSENDEN:
  1. Alle vier Werte müssen gesetzt sein.
  2. Kein Wert darf kleiner 0 sein.
  3. Die Summe der Einzahlungen darf den Endbetrag nicht übersteigen.
  4. Die Sparlaufzeit darf nicht kürzer als die Einzahlungsdauer sein.

Fehlermeldungen erscheinen unter dem Button und verschwinden nach
einigen Sekunden von selbst.

ERGEBNIS:
  Der Effektivzinssatz wird als Prozentwert mit zwei Nachkommastellen
  angezeigt. Die Übersicht vergleicht die Summe der Einzahlungen mit dem
  gewünschten Endbetrag.`
