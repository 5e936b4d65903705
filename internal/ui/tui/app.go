package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/report"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

type runItem struct {
	ref domain.RunRef
}

func (r runItem) Title() string { return r.ref.ID }
func (r runItem) Description() string {
	return fmt.Sprintf("%s • %s", clampString(r.ref.Model, 40), r.ref.StartedAt.UTC().Format(time.RFC3339))
}
func (r runItem) FilterValue() string { return r.ref.ID + " " + r.ref.Model }

type model struct {
	theme Theme
	deps  Deps

	scr      screen
	runs     list.Model
	detail   viewport.Model
	activeID string

	loading bool
	toast   string

	width  int
	height int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Saved runs"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:   DefaultTheme(),
		deps:    deps,
		scr:     screenList,
		runs:    l,
		detail:  viewport.New(0, 0),
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return cmdLoadRuns(m.deps)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.runs.SetSize(msg.Width-4, msg.Height-8)
		m.detail.Width = msg.Width - 6
		m.detail.Height = msg.Height - 8
		return m, nil

	case runsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, ref := range msg.refs {
			items = append(items, runItem{ref: ref})
		}
		m.toast = ""
		return m, m.runs.SetItems(items)

	case runLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.activeID = msg.id
		m.toast = ""
		m.detail.SetContent(report.CountSummary(msg.run))
		m.detail.GotoTop()
		m.scr = screenDetail
		return m, nil

	case tea.KeyMsg:
		// Filtering owns the keyboard while active.
		if m.scr == screenList && m.runs.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenList {
				return m, tea.Quit
			}
			m.scr = screenList
			m.activeID = ""
			return m, nil

		case "esc", "b":
			if m.scr == screenDetail {
				m.scr = screenList
				m.activeID = ""
				return m, nil
			}

		case "r":
			if m.scr == screenList {
				m.loading = true
				m.toast = ""
				return m, cmdLoadRuns(m.deps)
			}

		case "enter":
			if m.scr == screenList {
				it, ok := m.runs.SelectedItem().(runItem)
				if !ok {
					return m, nil
				}
				m.loading = true
				return m, cmdLoadRun(m.deps, it.ref.ID)
			}
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenList:
		m.runs, cmd = m.runs.Update(msg)
	case screenDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("tokenbench") + "\n" +
		m.theme.Subtitle.Render("Saved count runs") + "\n"

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Card.Render("⚠ "+m.toast)
	}

	switch m.scr {
	case screenList:
		body := m.runs.View()
		if m.loading {
			body = "Loading runs…"
		} else if len(m.runs.Items()) == 0 {
			body = "No saved runs yet.\n\nRun `tokenbench count` to create one."
		}
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • r reload • q quit")
		return wrap.Render(header + toast + "\n" + m.theme.Card.Render(body) + "\n" + help)

	case screenDetail:
		title := m.theme.Title.Render(m.activeID)
		help := m.theme.Help.Render("↑/↓ scroll • esc/b back • q list")
		return wrap.Render(header + toast + "\n" + m.theme.Card.Render(title+"\n\n"+m.detail.View()) + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
