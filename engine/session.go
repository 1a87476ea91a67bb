package engine

import (
	"errors"
	"fmt"
	"io"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrNotAITurn   = errors.New("it is not the computer's turn")
	ErrIllegalMove = errors.New("illegal move")
)

// Session owns the live board and the decision tree retained between turns.
// It is not safe for concurrent use: callers must not start a game action
// while another one is in flight.
type Session struct {
	board      *game.Board
	minimax    *searcher.Minimax // Built on the first computer move
	history    []game.Move
	lastSearch metrics.SearchMetric
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	Grid       [game.Size][game.Size]game.Tile // Indexed [y][x]
	ToMove     game.Stone
	Blacks     int
	Whites     int
	LegalMoves []game.Move
	LastMove   *game.Move
}

// NewSession starts a game from the standard opening position.
func NewSession() *Session {
	return NewSessionFromBoard(game.NewStandardBoard())
}

// NewSessionFromBoard starts a game from board, which the session takes ownership of.
func NewSessionFromBoard(board *game.Board) *Session {
	return &Session{board: board}
}

// AttemptMove plays the side to move at (x, y). It returns false without changing
// anything when the move is not legal.
func (s *Session) AttemptMove(x, y int) bool {
	if !s.board.Place(x, y) {
		return false
	}
	s.board.SwitchStone()
	s.played(game.Move{X: x, Y: y})
	return true
}

// ApplyPass hands the turn over without placing a stone.
// Deciding that passing is appropriate is the caller's job.
func (s *Session) ApplyPass() {
	s.board.SwitchStone()
	s.played(game.Pass)
}

func (s *Session) played(move game.Move) {
	s.history = append(s.history, move)
	if s.minimax != nil {
		s.minimax.Update(move, s.board)
	}
}

// RequestAIMove searches for the best move for ai, applies it and returns it.
func (s *Session) RequestAIMove(ai game.Stone) (game.Move, error) {
	if s.Result().IsOver() {
		return game.Pass, ErrGameOver
	}
	if s.board.ToMove() != ai {
		return game.Pass, ErrNotAITurn
	}
	if s.minimax == nil {
		s.minimax = searcher.NewMinimax(searcher.WithMetrics())
	}

	move, metric := s.minimax.FindMove(s.board, ai)
	if !move.IsPass() && !s.board.Place(move.X, move.Y) {
		panic(fmt.Sprintf("search chose illegal move %s", move))
	}
	s.board.SwitchStone()
	s.minimax.Commit(move)

	s.history = append(s.history, move)
	s.lastSearch = metric
	return move, nil
}

// State returns a snapshot of the live board.
func (s *Session) State() Snapshot {
	snap := Snapshot{
		ToMove:     s.board.ToMove(),
		Blacks:     s.board.Count(game.Black),
		Whites:     s.board.Count(game.White),
		LegalMoves: s.board.LegalMoves(),
	}
	for sq := range s.board.Tiles() {
		snap.Grid[sq.Y][sq.X] = sq.Tile
	}
	if n := len(s.history); n > 0 {
		last := s.history[n-1]
		snap.LastMove = &last
	}
	return snap
}

func (s *Session) Result() game.Result {
	return s.board.IsGameFinished()
}

// MustPass reports whether the side to move has no legal tile move.
func (s *Session) MustPass() bool {
	return !s.board.HasLegalMoves()
}

// Board returns a copy of the live board.
func (s *Session) Board() *game.Board {
	return s.board.Copy()
}

// History returns the moves played so far, passes included.
func (s *Session) History() []game.Move {
	return append([]game.Move(nil), s.history...)
}

// LastSearch returns the metrics of the most recent computer move.
func (s *Session) LastSearch() metrics.SearchMetric {
	return s.lastSearch
}

// DumpTree writes the retained decision tree, or a fresh one rooted at the live board
// when the computer has not searched yet.
func (s *Session) DumpTree(w io.Writer) error {
	var tree *searcher.DecisionTree
	if s.minimax != nil {
		tree = s.minimax.Root()
	}
	if tree == nil {
		tree = searcher.Build(s.board.Copy(), 0)
	}
	return tree.Dump(w)
}
