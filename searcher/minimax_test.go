package searcher

import (
	"othello/game"
	"othello/meta"
	"testing"

	"github.com/stretchr/testify/require"
)

func play(t *testing.T, b *game.Board, move game.Move) {
	t.Helper()
	if !move.IsPass() {
		require.True(t, b.Place(move.X, move.Y), "move %s should be legal", move)
	}
	b.SwitchStone()
}

func TestMinimaxFindMove(t *testing.T) {
	t.Run("first search builds the tree from the live board", func(t *testing.T) {
		board := game.NewStandardBoard()
		before := *board
		m := NewMinimax(WithMetrics())

		move, metric := m.FindMove(board, game.White)

		require.Contains(t, append(board.LegalMoves(), game.Pass), move)
		require.True(t, metric.IsTreeReset, "No tree to reuse on the first search")
		require.Equal(t, m.Root().Size(), metric.NodesBuilt)
		require.Equal(t, metric.NodesBuilt, metric.TreeSize)
		require.Equal(t, meta.MaxDepth, metric.Depth)
		require.Equal(t, before, *board, "Search should never mutate the live board")
	})

	t.Run("retained subtree is reused and regrown", func(t *testing.T) {
		board := game.NewStandardBoard()
		m := NewMinimax(WithMetrics())

		// AI opens as White
		move, _ := m.FindMove(board, game.White)
		play(t, board, move)
		m.Commit(move)
		require.Equal(t, meta.MaxDepth-1, m.Root().Height())

		// Opponent replies with its first legal move
		reply := game.Pass
		if moves := board.LegalMoves(); len(moves) > 0 {
			reply = moves[0]
		}
		play(t, board, reply)
		m.Update(reply, board)
		require.NotNil(t, m.Root())
		require.Equal(t, meta.MaxDepth-2, m.Root().Height())

		_, metric := m.FindMove(board, game.White)

		require.False(t, metric.IsTreeReset, "Tree should be reused")
		require.Positive(t, metric.NodesBuilt)
		require.Equal(t, meta.MaxDepth, m.Root().Height(), "Full depth should be restored")
		require.Equal(t, board.Hash(), m.Root().State().Hash())
	})

	t.Run("diverged tree is rebuilt", func(t *testing.T) {
		board := game.NewStandardBoard()
		m := NewMinimax(WithMetrics())
		m.FindMove(board, game.White)

		other := game.NewStandardBoard()
		play(t, other, game.Move{X: 2, Y: 4})
		_, metric := m.FindMove(other, game.Black)

		require.True(t, metric.IsTreeReset)
		require.Equal(t, other.Hash(), m.Root().State().Hash())
	})
}

func TestMinimaxUpdate(t *testing.T) {
	t.Run("no tree yet", func(t *testing.T) {
		m := NewMinimax()
		board := game.NewStandardBoard()
		play(t, board, game.Move{X: 2, Y: 4})

		m.Update(game.Move{X: 2, Y: 4}, board)

		require.Nil(t, m.Root())
	})

	t.Run("unexpanded move drops the tree", func(t *testing.T) {
		m := NewMinimax()
		board := game.NewStandardBoard()
		m.FindMove(board, game.White)

		m.Update(game.Move{X: 0, Y: 0}, board)

		require.Nil(t, m.Root())
	})

	t.Run("hash mismatch drops the tree", func(t *testing.T) {
		m := NewMinimax()
		board := game.NewStandardBoard()
		m.FindMove(board, game.White)

		m.Update(game.Pass, board)

		require.Nil(t, m.Root(), "Pass child has Black to move, the live board still has White")
	})
}

func TestMinimaxCommit(t *testing.T) {
	t.Run("move outside the tree panics", func(t *testing.T) {
		m := NewMinimax()
		m.FindMove(game.NewStandardBoard(), game.White)

		require.Panics(t, func() { m.Commit(game.Move{X: 0, Y: 0}) })
	})

	t.Run("commit before any search panics", func(t *testing.T) {
		require.Panics(t, func() { NewMinimax().Commit(game.Pass) })
	})
}
