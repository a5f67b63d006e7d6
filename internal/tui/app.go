package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// quitMsg asks the App to release page resources and stop the program.
type quitMsg struct{}

func requestQuit() tea.Msg { return quitMsg{} }

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
	keys       KeyMap
	closed     bool
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	order := make([]string, 0, len(pages))
	var firstID string
	for i, p := range pages {
		pageMap[p.ID()] = p
		order = append(order, p.ID())
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:      pageMap,
		order:      order,
		activePage: firstID,
		keys:       DefaultKeyMap(),
	}
}

// ActivePage returns the id of the page currently shown.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case quitMsg:
		a.Close()
		return a, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.Close()
			return a, tea.Quit
		}
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	// Input goes to the visible page only. Everything else (async results,
	// timers, resizes) reaches every page so background work is not lost
	// while another page is shown.
	var cmds []tea.Cmd
	var nav *PageNav
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		cmd, nav = p.Update(msg)
		cmds = append(cmds, cmd)
	default:
		for _, id := range a.order {
			cmd, n := a.pages[id].Update(msg)
			cmds = append(cmds, cmd)
			if id == a.activePage && n != nil {
				nav = n
			}
		}
	}

	if nav != nil {
		if _, exists := a.pages[nav.PageID]; exists {
			a.activePage = nav.PageID
			cmds = append(cmds, a.pages[a.activePage].Init())
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

// Close releases every page that holds resources. It is safe to call twice.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	for _, id := range a.order {
		if c, ok := a.pages[id].(Closer); ok {
			c.Close()
		}
	}
}
