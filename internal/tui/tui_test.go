package tui

import (
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/game"
	"github.com/nier2kirito/PokerBots/internal/randutil"
	"github.com/nier2kirito/PokerBots/internal/strategy"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type foldAll struct{}

func (foldAll) Lookup(string, string) (strategy.Probabilities, bool) {
	return strategy.Probabilities{Fold: 1}, true
}

func newModel(t *testing.T) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	cards := deck.MustParseCards("Ac Kd 9s 2s 7h 7d 3c 4c Qh Jh 4s 5s 6h")
	s := game.NewSession(randutil.New(1), foldAll{},
		game.WithLogger(logger), game.WithDeck(deck.NewStackedDeck(cards)))
	m := New(s, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(m *Model, k string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return cmd
}

func TestInitialView(t *testing.T) {
	m := newModel(t)
	view := m.View()

	assert.Contains(t, view, "Hand #0")
	assert.Contains(t, view, "Press d to deal.")
	assert.Contains(t, view, "Bankroll: +0.00 BB")
	assert.Contains(t, view, "CO *", "user marker on CO")
	assert.Contains(t, view, "deal")
	assert.Nil(t, m.Init())
}

func TestDealShowsOnlyUserCards(t *testing.T) {
	m := newModel(t)
	press(m, "d")
	view := m.View()

	assert.Contains(t, view, "A♣ K♦")
	assert.NotContains(t, view, "9♠", "opponent cards stay hidden")
	assert.Contains(t, view, "Board: ?? ?? ?? ?? ??")
	assert.Contains(t, view, "Your hand: Ac Kd")

	press(m, "d")
	assert.Contains(t, m.View(), "Hand in progress.")
}

func TestDecisionSettlesHand(t *testing.T) {
	m := newModel(t)
	press(m, "d")
	press(m, "a")
	view := m.View()

	assert.Contains(t, view, "Result: CO (Opponents Folded)")
	assert.Contains(t, view, "WINNER")
	assert.Contains(t, view, "9♠ 2♠", "every seat shows at showdown")
	assert.Contains(t, view, "Board: Q♥ J♥ 4♠ 5♠ 6♥")
	assert.Contains(t, view, "Bankroll: +1.40 BB")

	press(m, "f")
	assert.Contains(t, m.View(), "Not time for decision.")
}

func TestRestart(t *testing.T) {
	m := newModel(t)
	press(m, "d")
	press(m, "f")
	press(m, "r")
	view := m.View()

	assert.Contains(t, view, "Game restarted!")
	assert.Contains(t, view, "Hand #0")
	assert.Equal(t, game.CO, m.session.UserSeat())
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())

	m = newModel(t)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t)
	assert.NotContains(t, m.View(), "scroll up")
	press(m, "?")
	assert.Contains(t, m.View(), "scroll up")
}

func TestRenderBankroll(t *testing.T) {
	assert.Empty(t, renderBankroll(nil))
	assert.Equal(t, "Bankroll: +0.00 BB ", renderBankroll([]float64{0}))

	line := renderBankroll([]float64{0, -1, 1})
	assert.True(t, strings.HasPrefix(line, "Bankroll: +1.00 BB "))
	assert.True(t, strings.HasSuffix(line, "▄▁█"), line)

	long := make([]float64, 100)
	line = renderBankroll(long)
	assert.Equal(t, 40, strings.Count(line, "▁"))
}
