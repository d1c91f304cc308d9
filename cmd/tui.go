package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/purrie/adventure-book-sub000/internal/savegame"
	"github.com/purrie/adventure-book-sub000/internal/story"
	"github.com/purrie/adventure-book-sub000/internal/transcript"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	storyBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	selectedChoiceStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#04B575"))

	disabledChoiceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Strikethrough(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))
)

const (
	modePlaying = iota
	modeSaving
	modeOver
)

type playerModel struct {
	session   *story.Session
	saves     *savegame.Store
	log       *transcript.Store
	seed      int64
	viewport  viewport.Model
	saveInput textinput.Model
	mode      int
	cursor    int
	title     string
	choices   []story.ChoiceView
	status    string
	width     int
	height    int
}

func newPlayerModel(session *story.Session, saves *savegame.Store, log *transcript.Store, seed int64) playerModel {
	vp := viewport.New(0, 0)

	ti := textinput.New()
	ti.Placeholder = "save name"
	ti.CharLimit = 64
	ti.Width = 30

	m := playerModel{
		session:   session,
		saves:     saves,
		log:       log,
		seed:      seed,
		viewport:  vp,
		saveInput: ti,
	}
	m.refresh()
	return m
}

// refresh pulls the current page out of the session: substituted title and
// story into the viewport, rendered choices with availability. Keyword and
// evaluation errors land in the status line instead of crashing the player.
func (m *playerModel) refresh() {
	m.cursor = 0
	m.status = ""

	if m.session.Over || m.session.Page == nil {
		m.mode = modeOver
		return
	}

	title, err := m.session.Title()
	if err != nil {
		m.status = err.Error()
		title = m.session.Page.Title
	}
	m.title = title

	text, err := m.session.StoryText()
	if err != nil {
		m.status = err.Error()
		text = m.session.Page.Story
	}
	m.viewport.SetContent(text)
	m.viewport.GotoTop()

	choices, err := m.session.Choices()
	if err != nil {
		m.status = err.Error()
		choices = nil
	}
	m.choices = choices

	// Start the cursor on something selectable.
	for i, c := range m.choices {
		if c.Enabled {
			m.cursor = i
			break
		}
	}
}

func (m *playerModel) Init() tea.Cmd {
	return nil
}

func (m *playerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var vpCmd, tiCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeSaving {
			switch msg.Type {
			case tea.KeyEsc:
				m.mode = modePlaying
				m.saveInput.Blur()
			case tea.KeyEnter:
				name := strings.TrimSpace(m.saveInput.Value())
				if name != "" {
					if err := m.saves.Save(name, m.snapshot()); err != nil {
						m.status = err.Error()
					} else {
						m.status = fmt.Sprintf("Saved as %q", name)
					}
				}
				m.mode = modePlaying
				m.saveInput.Blur()
				m.saveInput.SetValue("")
			default:
				m.saveInput, tiCmd = m.saveInput.Update(msg)
			}
			return m, tiCmd
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			m.moveCursor(-1)

		case tea.KeyDown:
			m.moveCursor(1)

		case tea.KeyCtrlS:
			if m.mode == modePlaying {
				m.mode = modeSaving
				m.saveInput.Focus()
			}

		case tea.KeyEnter:
			if m.mode == modeOver {
				return m, tea.Quit
			}
			m.selectChoice()

		default:
			if msg.String() == "q" {
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - len(m.choices) - 12
		if m.viewport.Height < 4 {
			m.viewport.Height = 4
		}
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

// moveCursor steps over disabled choices in the given direction.
func (m *playerModel) moveCursor(dir int) {
	if len(m.choices) == 0 {
		return
	}
	next := m.cursor
	for {
		next += dir
		if next < 0 || next >= len(m.choices) {
			return
		}
		if m.choices[next].Enabled {
			m.cursor = next
			return
		}
	}
}

func (m *playerModel) selectChoice() {
	if m.cursor >= len(m.choices) || !m.choices[m.cursor].Enabled {
		return
	}

	m.logEntry(transcript.Entry{
		Type:   transcript.EntryChoiceTaken,
		Page:   m.session.PageName,
		Choice: m.choices[m.cursor].Text,
	})

	if err := m.session.Select(m.cursor); err != nil {
		m.status = err.Error()
		return
	}

	if m.session.Over {
		m.mode = modeOver
		m.logEntry(transcript.Entry{Type: transcript.EntryGameOver, Page: m.session.PageName})
		return
	}

	m.logEntry(transcript.Entry{Type: transcript.EntryPageVisited, Page: m.session.PageName})
	m.refresh()
}

func (m *playerModel) logEntry(entry transcript.Entry) {
	if m.log == nil {
		return
	}
	if err := m.log.Append(entry); err != nil {
		m.status = err.Error()
	}
}

// snapshot captures the session for the save store.
func (m *playerModel) snapshot() *savegame.Snapshot {
	records := make(map[string]int, len(m.session.Records))
	for name, rec := range m.session.Records {
		records[name] = rec.Value
	}
	names := make(map[string]string, len(m.session.Names))
	for keyword, n := range m.session.Names {
		names[keyword] = n.Value
	}
	return &savegame.Snapshot{
		Adventure: filepath.Base(m.session.Adventure.Path),
		Page:      m.session.PageName,
		Seed:      m.seed,
		Records:   records,
		Names:     names,
	}
}

func (m *playerModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(fmt.Sprintf(" %s | %s ", m.session.Adventure.Title, m.title))
	storyBox := storyBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var body string
	if m.mode == modeOver {
		body = "\n" + selectedChoiceStyle.Render("THE END") + "\n\n" + infoStyle.Render("(enter or esc to leave)")
	} else {
		var choices []string
		for i, c := range m.choices {
			line := "  " + c.Text
			switch {
			case !c.Enabled:
				line = disabledChoiceStyle.Render(line)
			case i == m.cursor:
				line = selectedChoiceStyle.Render("> " + c.Text)
			default:
				line = choiceStyle.Render(line)
			}
			choices = append(choices, line)
		}
		body = strings.Join(choices, "\n")
	}

	footer := infoStyle.Render("(up/down choose, enter select, ctrl+s save, esc quit)")
	if m.mode == modeSaving {
		footer = "Save as: " + m.saveInput.View()
	}
	if m.status != "" {
		footer = errorStyle.Render(m.status) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, storyBox, "", body, "", footer)
}

// RunTUI starts the interactive player over an established session.
func RunTUI(session *story.Session, saves *savegame.Store, log *transcript.Store, seed int64) error {
	m := newPlayerModel(session, saves, log, seed)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
