// Package tui implements an interactive hand-history browser built on
// Bubble Tea. One reconstructed game file is loaded at a time; the arrow
// keys move between hands and the viewport scrolls the event log.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/handscan/handscan/internal/event"
	"github.com/handscan/handscan/internal/game"
	"github.com/handscan/handscan/internal/hand"
)

// Model is the Bubble Tea model for the hand browser.
type Model struct {
	game   *game.Game
	logger *log.Logger

	logViewport viewport.Model

	index    int // current hand
	width    int
	height   int
	quitting bool

	initialized bool // viewport sized from the first WindowSizeMsg
}

// NewModel creates a browser over the hands of one game.
func NewModel(g *game.Game, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		game:        g,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
	}
}

// Run starts the browser and blocks until the user quits.
func Run(g *game.Game, logger *log.Logger) error {
	if g.HandCount() == 0 {
		return fmt.Errorf("no hands to browse in %s", g.ID)
	}
	_, err := tea.NewProgram(NewModel(g, logger), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("resized", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "left", "h", "p":
			if m.index > 0 {
				m.index--
				m.logViewport.GotoTop()
			}
		case "right", "l", "n":
			if m.index < m.game.HandCount()-1 {
				m.index++
				m.logViewport.GotoTop()
			}
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "pgup", "b":
			m.logViewport.HalfPageUp()
		case "pgdown", "f":
			m.logViewport.HalfPageDown()
		case "home", "g":
			m.logViewport.GotoTop()
		case "end", "G":
			m.logViewport.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	h := m.game.Hands[m.index]

	header := HeaderStyle.Render(fmt.Sprintf(" %s  hand #%d (%d of %d) ",
		m.game.ID, h.Num, m.index+1, m.game.HandCount()))
	footer := InfoStyle.Render("←/→ hands • ↑↓ scroll • g/G top/bottom • q to quit")

	sidebarContent := m.renderSidebar(h)
	sidebarWidth := lipgloss.Width(sidebarContent)
	if sidebarWidth < 28 {
		sidebarWidth = 28
	}

	chromeHeight := lipgloss.Height(header) + lipgloss.Height(footer)
	logWidth := m.width - sidebarWidth - 4
	logHeight := m.height - chromeHeight - 2
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}

	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(RenderHand(h))
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(logWidth).
		Height(logHeight).
		Render(m.logViewport.View())

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(logHeight).
		Render(sidebarContent)

	body := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, header, body, footer)
}

func (m *Model) renderSidebar(h *hand.Hand) string {
	var b strings.Builder

	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Pot: %d", h.FinalPot())))
	b.WriteString("\n")
	if board := h.Board(); len(board) > 0 {
		b.WriteString("Board: ")
		b.WriteString(FormatCards(board))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(h.Winners) > 0 {
		b.WriteString(SuccessStyle.Render("Winners"))
		b.WriteString("\n")
		for _, w := range h.Winners {
			b.WriteString(fmt.Sprintf("  %s +%d", w.Name, w.Collected))
			if w.HandLabel != "" {
				b.WriteString(" (" + w.HandLabel + ")")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("Starting stacks"))
	b.WriteString("\n")
	ids := make([]string, 0, len(h.StartingNames))
	for id := range h.StartingNames {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.WriteString(fmt.Sprintf("  %s: %d\n", h.StartingNames[id], h.StartingChips[id]))
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Chips in play: %d", h.TotalChips)))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Gini: %.3f", h.Gini)))

	return b.String()
}

// RenderHand formats the full event log of one hand for display.
func RenderHand(h *hand.Hand) string {
	lines := make([]string, 0, len(h.Events))
	for i := range h.Events {
		lines = append(lines, renderEvent(&h.Events[i]))
	}
	return strings.Join(lines, "\n")
}

func renderEvent(ev *event.Event) string {
	line := ev.Raw
	for _, card := range ev.Cards {
		line = strings.Replace(line, card, FormatCard(card), 1)
	}

	switch {
	case ev.IsBoard():
		line = StreetStyle.Render("*** ") + line
	case ev.Kind == event.KindWins:
		line = SuccessStyle.Render(line)
	case ev.Kind == event.KindFolds, ev.Kind == event.KindChecks:
		line = InfoStyle.Render(line)
	case ev.Kind == event.KindQuits, ev.Kind == event.KindStandsUp:
		line = ErrorStyle.Render(line)
	}

	if ev.IsMonetary() {
		line += InfoStyle.Render(fmt.Sprintf("  [pot %d]", ev.PotAfter))
	}
	return line
}

// FormatCards renders a run of cards separated by spaces.
func FormatCards(cards []string) string {
	out := make([]string, len(cards))
	for i, card := range cards {
		out[i] = FormatCard(card)
	}
	return strings.Join(out, " ")
}

var suitGlyphs = map[string]string{
	"Clubs":    "♣",
	"Diamonds": "♦",
	"Hearts":   "♥",
	"Spades":   "♠",
}

// FormatCard renders a card like "ADiamonds" as a colored glyph form "A♦".
// Unrecognized input is returned unchanged.
func FormatCard(card string) string {
	for suit, glyph := range suitGlyphs {
		rank, ok := strings.CutSuffix(card, suit)
		if !ok {
			continue
		}
		style := BlackCardStyle
		if suit == "Diamonds" || suit == "Hearts" {
			style = RedCardStyle
		}
		return style.Render(rank + glyph)
	}
	return card
}
