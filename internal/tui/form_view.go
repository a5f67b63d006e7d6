package tui

import (
	"strings"

	"github.com/codecrafters/effzins/internal/form"
	"github.com/codecrafters/effzins/internal/model"
	"github.com/codecrafters/effzins/internal/notify"

	"github.com/charmbracelet/lipgloss"
)

// Layout of the form block. buttonAnchor depends on these staying in sync
// with renderForm.
const (
	formPadTop    = 1
	formPadLeft   = 2
	headerLines   = 2 // title + blank
	linesPerField = 2 // label + input
	rhythmLines   = 3 // label + selector + blank
)

const (
	appTitle    = "Effektivzinssatz Rechner"
	submitLabel = "Effektivzinssatz berechnen"
)

// buttonRow is the zero-based screen row of the submit button.
func buttonRow() int {
	return formPadTop + headerLines + len(form.Fields)*linesPerField + rhythmLines
}

// buttonAnchor is where notifications are drawn: the row right below the
// submit button, aligned with its left edge.
func (m *FormModel) buttonAnchor() notify.Anchor {
	return notify.Anchor{Row: buttonRow() + 1, Col: formPadLeft}
}

// View renders the whole form page.
func (m *FormModel) View(width, height int) string {
	if width > 0 {
		m.width = width
		m.help.Width = width
	}
	if height > 0 {
		m.height = height
	}

	pad := strings.Repeat("\n", formPadTop)
	indent := strings.Repeat(" ", formPadLeft)

	var lines []string
	for _, l := range strings.Split(m.renderForm(), "\n") {
		lines = append(lines, indent+l)
	}
	lines = append(lines, m.renderNotifications()...)
	body := pad + strings.Join(lines, "\n")

	results := m.renderResults()
	overview := m.renderOverview()
	footer := indent + m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		"",
		indentBlock(results, indent),
		indentBlock(overview, indent),
		footer,
	)
}

func (m *FormModel) renderForm() string {
	var lines []string
	lines = append(lines, titleStyle.Render(appTitle), "")

	for i, f := range form.Fields {
		ls := labelStyle
		if m.focus == focusTarget(i) {
			ls = activeLabelStyle
		}
		lines = append(lines, ls.Render(f.Label()), m.inputs[i].View())
	}

	ls := labelStyle
	if m.focus == focusRhythm {
		ls = activeLabelStyle
	}
	lines = append(lines, ls.Render("Zahlungsrhythmus"), m.renderRhythm(), "")

	bs := buttonStyle
	if m.focus == focusButton {
		bs = activeButtonStyle
	}
	lines = append(lines, bs.Render(submitLabel))
	return strings.Join(lines, "\n")
}

func (m *FormModel) renderRhythm() string {
	parts := make([]string, 0, len(model.Rhythms))
	for _, r := range model.Rhythms {
		if r == m.input.Rhythm {
			if m.focus == focusRhythm {
				parts = append(parts, activeLabelStyle.Render("‹ "+string(r)+" ›"))
			} else {
				parts = append(parts, resultStyle.Render("["+string(r)+"]"))
			}
			continue
		}
		parts = append(parts, mutedStyle.Render(string(r)))
	}
	return strings.Join(parts, "  ")
}

func (m *FormModel) renderNotifications() []string {
	items := m.notes.Items()
	lines := make([]string, 0, len(items))
	for _, n := range items {
		lines = append(lines, strings.Repeat(" ", n.Anchor.Col)+notificationStyle.Render("⚠ "+n.Text))
	}
	return lines
}

func (m *FormModel) renderResults() string {
	value := resultStyle.Render(form.FormatRate(m.result.Zinssatz))
	if m.pending {
		value += " " + mutedStyle.Render("(wird berechnet…)")
	}
	content := titleStyle.Render("Ergebnisse") + "\n" +
		labelStyle.Render("Effektivzinssatz: ") + value
	return sectionStyle.Render(content)
}

func (m *FormModel) renderOverview() string {
	width := m.width - 2*formPadLeft - 4
	if width > 80 {
		width = 80
	}
	content := titleStyle.Render("Übersicht") + "\n" + m.chart.Render(width, 6)
	return sectionStyle.Render(content)
}

func indentBlock(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}
