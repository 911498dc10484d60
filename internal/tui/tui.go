// Package tui is a terminal front end for a push/fold session.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/game"
)

// Model is the Bubble Tea model driving one session.
type Model struct {
	session *game.Session
	logger  *log.Logger

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	status   string
	width    int
	height   int
	quitting bool
}

// New creates a model over session.
func New(session *game.Session, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	m := &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: viewport.New(60, game.MaxMessages),
		status:      "Press d to deal.",
	}
	m.refreshLog()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = max(20, msg.Width-4)
		m.logViewport.Height = max(3, min(game.MaxMessages, msg.Height-18))
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Deal):
			m.deal()
		case key.Matches(msg, m.keys.AllIn):
			m.decide(game.AllIn)
		case key.Matches(msg, m.keys.Fold):
			m.decide(game.Fold)
		case key.Matches(msg, m.keys.Restart):
			m.session.Restart()
			m.status = SuccessStyle.Render("Game restarted!")
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		default:
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		m.refreshLog()
	}
	return m, nil
}

func (m *Model) deal() {
	err := m.session.NewHand()
	switch {
	case errors.Is(err, game.ErrHandInProgress):
		m.status = WarningStyle.Render("Hand in progress.")
	case err != nil:
		m.logger.Error("Deal failed", "error", err)
		m.status = ErrorStyle.Render(err.Error())
	default:
		m.status = "Your move: a to go all in, f to fold."
	}
}

func (m *Model) decide(d game.Decision) {
	err := m.session.UserDecide(d)
	switch {
	case errors.Is(err, game.ErrNotAwaitingDecision):
		m.status = WarningStyle.Render("Not time for decision.")
	case err != nil:
		m.logger.Error("Decision failed", "decision", d, "error", err)
		m.status = ErrorStyle.Render(err.Error())
	default:
		m.status = "Press d to deal the next hand."
	}
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(strings.Join(m.session.Messages(), "\n"))
	m.logViewport.GotoBottom()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.session.State()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("PokerBots: four-handed push/fold"))
	b.WriteString("\n")
	b.WriteString(PanelStyle.Render(renderTable(v)))
	b.WriteString("\n")
	b.WriteString(renderBankroll(v.Bankroll))
	b.WriteString("\n")
	b.WriteString(PanelStyle.Render(m.logViewport.View()))
	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderTable(v game.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hand #%d  Pot: %.2f BB  Blinds: %.2f/%.2f\n",
		v.HandsPlayed, v.Pot, v.SmallBlind, v.BigBlind)

	for _, s := range v.Seats {
		name := fmt.Sprintf("%-3s", s.Seat)
		if s.IsUser {
			name = UserSeatStyle.Render(fmt.Sprintf("%-3s", s.Seat) + "*")
		} else {
			name += " "
		}
		line := fmt.Sprintf("%s  stack %5.2f  bet %5.2f  %-6s  %s",
			name, s.Stack, s.Bet, decisionLabel(s.Decision), renderCards(s.Cards, 2))
		if s.IsWinner {
			line += "  " + WinnerStyle.Render("WINNER")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Board: %s", renderCards(v.Community, game.CommunitySize))
	if v.Winner != nil {
		fmt.Fprintf(&b, "\nResult: %s (%s)", v.Winner.Name, v.Winner.HandType)
	}
	return b.String()
}

func decisionLabel(d game.Decision) string {
	if !d.Decided() {
		return "-"
	}
	return d.String()
}

// renderCards colours visible cards by suit and shows hidden ones as "??".
func renderCards(tokens []string, hidden int) string {
	if len(tokens) == 0 {
		return HiddenCardStyle.Render(strings.TrimSpace(strings.Repeat("?? ", hidden)))
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		c, err := deck.ParseCard(tok)
		switch {
		case err != nil:
			out = append(out, tok)
		case c.IsRed():
			out = append(out, RedCardStyle.Render(c.Pretty()))
		default:
			out = append(out, BlackCardStyle.Render(c.Pretty()))
		}
	}
	return strings.Join(out, " ")
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// renderBankroll draws the cumulative result as a sparkline of the last 40 hands.
func renderBankroll(points []float64) string {
	if len(points) == 0 {
		return ""
	}
	total := points[len(points)-1]
	label := fmt.Sprintf("Bankroll: %+.2f BB ", total)
	if total < 0 {
		label = ErrorStyle.Render(label)
	} else {
		label = SuccessStyle.Render(label)
	}
	if len(points) < 2 {
		return label
	}

	points = points[max(0, len(points)-40):]
	lo, hi := points[0], points[0]
	for _, p := range points {
		lo, hi = min(lo, p), max(hi, p)
	}
	spark := make([]rune, len(points))
	for i, p := range points {
		idx := 0
		if hi > lo {
			idx = int((p - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		spark[i] = sparkBlocks[idx]
	}
	return label + lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Render(string(spark))
}
