package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (form, help).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
}

// Closer is implemented by pages that hold resources past the program run.
type Closer interface {
	Close()
}

// Page identifiers.
const (
	PageForm = "form"
	PageHelp = "help"
)
