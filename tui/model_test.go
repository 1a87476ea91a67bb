package tui

import (
	"othello/engine"
	"othello/game"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

// finishSearch runs the search command returned by the model and feeds its result back.
func finishSearch(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch of spinner and search")
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(aiMoveMsg); ok {
			m.Update(msg)
			return
		}
	}
	t.Fatal("no computer move in batch")
}

func sessionFrom(t *testing.T, toMove game.Stone, rows ...string) *engine.Session {
	t.Helper()
	for len(rows) < game.Size {
		rows = append(rows, "........")
	}
	b, err := game.ParseBoard(rows, toMove)
	require.NoError(t, err)
	return engine.NewSessionFromBoard(b)
}

func TestCursor(t *testing.T) {
	m := NewModel(game.Black, game.White)
	require.Equal(t, 4, m.cursorX, "Cursor should start on the first legal move")
	require.Equal(t, 2, m.cursorY)

	press(m, "up", "up", "up", "k")
	require.Equal(t, 0, m.cursorY)

	press(m, "right", "right", "right", "l", "l")
	require.Equal(t, 7, m.cursorX)

	press(m, "left", "h", "down", "j")
	require.Equal(t, 5, m.cursorX)
	require.Equal(t, 2, m.cursorY)
}

func TestVersus(t *testing.T) {
	t.Run("placing a legal move", func(t *testing.T) {
		m := NewModel(game.Black, game.White)

		cmd := press(m, "enter")

		require.Nil(t, cmd, "Nobody to search for in versus mode")
		require.Equal(t, []game.Move{{X: 4, Y: 2}}, m.session.History())
		require.Equal(t, game.Black, m.snap.ToMove)
		require.Equal(t, 4, m.snap.Whites)
		require.Equal(t, 1, m.snap.Blacks)
	})

	t.Run("illegal move leaves the board alone", func(t *testing.T) {
		m := NewModel(game.Black, game.White)

		press(m, "up", "up", "enter")

		require.Empty(t, m.session.History())
		require.Contains(t, m.status, "not a legal move")
	})

	t.Run("pass is refused while moves exist", func(t *testing.T) {
		m := NewModel(game.Black, game.White)

		press(m, "p")

		require.Empty(t, m.session.History())
		require.Equal(t, game.White, m.snap.ToMove)
	})

	t.Run("forced pass then winning move", func(t *testing.T) {
		m := NewModelFromSession(sessionFrom(t, game.Black, "WB......"), game.Black, game.White)
		require.Contains(t, m.View(), "press p to pass")

		press(m, "p")
		require.Equal(t, game.White, m.snap.ToMove)

		press(m, "right", "right", "enter")
		require.False(t, m.result.IsOver(), "Black still has to pass before the game ends")

		press(m, "p")

		require.Equal(t, []game.Move{game.Pass, {X: 2, Y: 0}, game.Pass}, m.session.History())
		require.True(t, m.result.IsOver())
		require.Equal(t, game.White, m.result.Winner)
		require.Contains(t, m.View(), "WHITE WINS")

		press(m, "p", "enter")
		require.Len(t, m.session.History(), 3, "No input after the game ends")
	})
}

func TestPlayAgainstComputer(t *testing.T) {
	t.Run("computer opens when it moves first", func(t *testing.T) {
		m := NewModel(game.Black)

		cmd := m.Init()
		require.True(t, m.thinking)
		require.Contains(t, m.View(), "(computer)")

		// Input is ignored during the search
		press(m, "enter")
		require.Empty(t, m.session.History())

		finishSearch(t, m, cmd)

		require.False(t, m.thinking)
		require.Len(t, m.session.History(), 1)
		require.Equal(t, game.Black, m.snap.ToMove)
		require.True(t, strings.HasPrefix(m.status, "computer played"))
	})

	t.Run("computer replies to a human move", func(t *testing.T) {
		m := NewModel(game.White)
		require.Nil(t, m.Init())

		cmd := press(m, "enter")
		require.True(t, m.thinking)

		finishSearch(t, m, cmd)

		require.Len(t, m.session.History(), 2)
		require.Equal(t, game.White, m.snap.ToMove)
	})

	t.Run("quit", func(t *testing.T) {
		m := NewModel(game.White)

		cmd := press(m, "q")

		require.NotNil(t, cmd)
		require.Equal(t, tea.Quit(), cmd())
	})
}
