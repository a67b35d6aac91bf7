// SPDX-License-Identifier: EPL-2.0

// Package tui renders the board as a focusable list. Moving focus and
// pressing keys fire the same DOM style events a browser would, so the
// bindings from the config file can be tried out from a terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ik5/soundbind/internal/board"
)

const refreshInterval = 250 * time.Millisecond

// Board is the part of *board.Board the view drives.
type Board interface {
	Items() []board.Item
	Dispatch(id, event string) (int, error)
	Play(id string) error
	Stop(id string) error
}

// ReloadedMsg tells the model the board was re-applied from config.
type ReloadedMsg struct {
	Changes board.Changes
	Err     error
}

type refreshMsg struct{}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#54A0FF")).MarginBottom(1)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#73F59F"))
	itemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FECA57"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
)

type Model struct {
	board  Board
	keys   keyMap
	help   help.Model
	items  []board.Item
	cursor int // -1 until the first focus move
	status string
	err    error
	width  int
}

func New(b Board) Model {
	return Model{
		board:  b,
		keys:   defaultKeys(),
		help:   help.New(),
		items:  b.Items(),
		cursor: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return refresh()
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case refreshMsg:
		m.items = m.board.Items()
		return m, refresh()

	case ReloadedMsg:
		m.items = m.board.Items()
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		m.err = msg.Err
		m.status = describeChanges(msg.Changes)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m = m.moveFocus(-1)
		case key.Matches(msg, m.keys.Down):
			m = m.moveFocus(1)
		case key.Matches(msg, m.keys.Click):
			m = m.fire("click")
		case key.Matches(msg, m.keys.Play):
			m = m.imperative("play", m.board.Play)
		case key.Matches(msg, m.keys.Stop):
			m = m.imperative("stop", m.board.Stop)
		}
	}
	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	if len(m.items) == 0 {
		return m
	}

	next := m.cursor + delta
	switch {
	case m.cursor < 0:
		next = 0
	case next < 0:
		next = len(m.items) - 1
	case next >= len(m.items):
		next = 0
	}
	if next == m.cursor {
		return m
	}

	if m.cursor >= 0 {
		m = m.fire("mouseleave", "blur")
	}
	m.cursor = next
	return m.fire("mouseenter", "focus")
}

func (m Model) focused() (board.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return board.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) fire(events ...string) Model {
	item, ok := m.focused()
	if !ok {
		return m
	}

	var fired []string
	for _, ev := range events {
		n, err := m.board.Dispatch(item.ID, ev)
		if err != nil {
			m.err = err
			return m
		}
		if n > 0 {
			fired = append(fired, ev)
		}
	}

	m.err = nil
	if len(fired) > 0 {
		m.status = fmt.Sprintf("%s: %s", item.Label, strings.Join(fired, ", "))
	}
	return m
}

func (m Model) imperative(verb string, fn func(string) error) Model {
	item, ok := m.focused()
	if !ok {
		return m
	}
	if m.err = fn(item.ID); m.err == nil {
		m.status = fmt.Sprintf("%s: %s", item.Label, verb)
	}
	return m
}

func describeChanges(c board.Changes) string {
	if c.Empty() {
		return "config reloaded, nothing changed"
	}
	return fmt.Sprintf("config reloaded: %d added, %d updated, %d removed",
		len(c.Added), len(c.Updated), len(c.Removed))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("soundbind"))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(mutedStyle.Render("no elements configured"))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor, style := "  ", itemStyle
		if i == m.cursor {
			cursor, style = "> ", focusStyle
		}

		state := loadingStyle.Render("loading")
		if item.Loaded {
			state = mutedStyle.Render("ready")
		}

		fmt.Fprintf(&b, "%s%s  %s  %s\n",
			cursor,
			style.Render(item.Label),
			mutedStyle.Render("["+strings.Join(item.Events, " ")+"]"),
			state)
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(m.status)
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Cursor returns the focused index, or -1.
func (m Model) Cursor() int { return m.cursor }

func (m Model) Status() string { return m.status }

func (m Model) Err() error { return m.err }
