package engine

import (
	"othello/experiments/metrics"
	"othello/game"

	"golang.org/x/exp/rand"
)

type Agent interface {
	// Play chooses a move for the side to move and applies it to the session
	Play(s *Session) (game.Move, metrics.SearchMetric, error)
}

type minimaxAgent struct{}

// NewMinimaxAgent returns an agent that plays the decision tree's minimax choice.
func NewMinimaxAgent() Agent {
	return minimaxAgent{}
}

func (minimaxAgent) Play(s *Session) (game.Move, metrics.SearchMetric, error) {
	move, err := s.RequestAIMove(s.board.ToMove())
	if err != nil {
		return move, metrics.SearchMetric{}, err
	}
	return move, s.LastSearch(), nil
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) Play(s *Session) (game.Move, metrics.SearchMetric, error) {
	if s.Result().IsOver() {
		return game.Pass, metrics.SearchMetric{}, ErrGameOver
	}

	moves := s.board.LegalMoves()
	if len(moves) == 0 {
		s.ApplyPass()
		return game.Pass, metrics.SearchMetric{}, nil
	}

	move := moves[a.rng.Intn(len(moves))]
	if !s.AttemptMove(move.X, move.Y) {
		return move, metrics.SearchMetric{}, ErrIllegalMove
	}
	return move, metrics.SearchMetric{}, nil
}
