package searcher

import (
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// WithMetrics collects search metrics for every FindMove call.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

// Minimax keeps the decision tree aligned with the live game so the subtree
// reached by each played move is reused instead of rebuilt.
type Minimax struct {
	root    *DecisionTree
	metrics metrics.Collector
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Root returns the retained tree, nil before the first search.
func (m *Minimax) Root() *DecisionTree {
	return m.root
}

// FindMove restores full depth below the retained tree, runs minimax for stone and
// returns the move to play from state. The live board is never mutated.
func (m *Minimax) FindMove(state *game.Board, stone game.Stone) (game.Move, metrics.SearchMetric) {
	m.metrics.Start(meta.MaxDepth)

	m.findRoot(state)
	m.metrics.AddNodesBuilt(m.root.Recalculate(0))

	value, path := m.root.Minimax(stone)
	m.metrics.SetTreeSize(m.root.Size())
	m.metrics.SetValue(value)
	if len(path) == 0 {
		panic("minimax returned no move from an expanded root")
	}
	move := path[len(path)-1]

	metric := m.metrics.Complete()
	log.Debug().
		Str("stone", stone.String()).
		Str("move", move.String()).
		Int("value", value).
		Int("nodes_built", metric.NodesBuilt).
		Int("tree_size", metric.TreeSize).
		Dur("duration", metric.Duration).
		Msg("minimax search complete")
	return move, metric
}

// findRoot reuses the retained tree when it matches state, otherwise rebuilds it.
func (m *Minimax) findRoot(state *game.Board) {
	if m.root != nil && m.root.state.Hash() == state.Hash() {
		m.metrics.SetTreeReset(false)
		return
	}
	if m.root != nil {
		log.Warn().Msg("retained tree does not match the live board, rebuilding")
	}
	root, built := build(state.Copy(), 0)
	m.root = root
	m.metrics.SetTreeReset(true)
	m.metrics.AddNodesBuilt(built + 1)
}

// Update follows a move played by the opponent. state is the live board after the move.
// A move the tree never expanded drops the tree; the next FindMove rebuilds it.
func (m *Minimax) Update(move game.Move, state *game.Board) {
	if m.root == nil {
		return
	}
	child, ok := m.root.Child(move)
	if !ok {
		log.Warn().Msgf("decision tree has not expanded move %s", move)
		m.root = nil
		return
	}
	if child.state.Hash() != state.Hash() {
		log.Warn().Msgf("node's state hash %d does not match live state hash %d", child.state.Hash(), state.Hash())
		m.root = nil
		return
	}
	m.root = child
}

// Commit follows the move just chosen by FindMove. The tree always holds that move,
// so a miss means the tree and the live game have diverged.
func (m *Minimax) Commit(move game.Move) {
	if m.root == nil {
		panic("no decision tree to commit a move to")
	}
	child, ok := m.root.Child(move)
	if !ok {
		panic(fmt.Sprintf("decision tree has no child for move %s", move))
	}
	m.root = child
}
