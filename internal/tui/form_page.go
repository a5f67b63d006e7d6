package tui

import tea "github.com/charmbracelet/bubbletea"

// FormPage wraps FormModel as a Page.
type FormPage struct {
	model *FormModel
}

// NewFormPage creates the form page.
func NewFormPage(m *FormModel) *FormPage {
	return &FormPage{model: m}
}

func (p *FormPage) ID() string { return PageForm }

func (p *FormPage) Init() tea.Cmd { return p.model.Init() }

func (p *FormPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	return p.model.Update(msg)
}

func (p *FormPage) View(width, height int) string {
	return p.model.View(width, height)
}

// Close releases the form's in-flight request and notifications.
func (p *FormPage) Close() { p.model.Close() }
