package searcher

import (
	"math"
	"othello/game"
	"othello/meta"
	"slices"
)

// DecisionTree is one reachable future board state. Each node owns its children
// and its board snapshot exclusively; there is no parent pointer.
type DecisionTree struct {
	state    *game.Board
	expanded bool
	moves    []game.Move // Row-major tile moves, then Pass
	children []*DecisionTree
}

// Build creates the tree of states reachable from state, expanding nodes above meta.MaxDepth.
// The tree takes ownership of state.
func Build(state *game.Board, depth int) *DecisionTree {
	tree, _ := build(state, depth)
	return tree
}

func build(state *game.Board, depth int) (*DecisionTree, int) {
	d := &DecisionTree{state: state}
	built := d.expand(depth)
	return d, built
}

// expand adds one child per legal tile move and one Pass child, and returns the number of nodes created.
// A node at or beyond meta.MaxDepth stays a leaf.
func (d *DecisionTree) expand(depth int) int {
	if depth >= meta.MaxDepth {
		d.expanded = false
		return 0
	}

	// Place rejects anything outside the legal set, so only legal tiles can yield a child
	legal := d.state.LegalMoves()
	d.moves = make([]game.Move, 0, len(legal)+1)
	d.children = make([]*DecisionTree, 0, len(legal)+1)

	built := 0
	for _, move := range legal {
		board := d.state.Copy()
		if !board.Place(move.X, move.Y) {
			continue
		}
		board.SwitchStone()
		child, n := build(board, depth+1)
		d.addChild(move, child)
		built += n + 1
	}

	// Pass is always a candidate, even when tile moves exist
	board := d.state.Copy()
	board.SwitchStone()
	child, n := build(board, depth+1)
	d.addChild(game.Pass, child)
	built += n + 1

	d.expanded = true
	return built
}

func (d *DecisionTree) addChild(move game.Move, child *DecisionTree) {
	d.moves = append(d.moves, move)
	d.children = append(d.children, child)
}

// Recalculate grows every leaf below d by expanding it at its depth relative to d,
// leaving already expanded nodes untouched. It returns the number of nodes created.
func (d *DecisionTree) Recalculate(depth int) int {
	if !d.expanded {
		return d.expand(depth)
	}

	built := 0
	for _, child := range d.children {
		built += child.Recalculate(depth + 1)
	}
	return built
}

// Minimax returns the value of d for maximizing and the move path reaching it, leaf first:
// the last element is the move to play from d. Ties keep the first enumerated child.
func (d *DecisionTree) Minimax(maximizing game.Stone) (int, []game.Move) {
	if !d.expanded {
		return d.state.Count(maximizing), nil
	}

	isMax := d.state.ToMove() == maximizing
	value := math.MaxInt
	if isMax {
		value = math.MinInt
	}
	valueMove := game.Pass
	var next []game.Move

	for i, child := range d.children {
		v, path := child.Minimax(maximizing)
		if (isMax && value < v) || (!isMax && value > v) {
			value = v
			valueMove = d.moves[i]
			next = path
		}
	}

	return value, append(next, valueMove)
}

// Child returns the subtree reached by move.
func (d *DecisionTree) Child(move game.Move) (*DecisionTree, bool) {
	i := slices.Index(d.moves, move)
	if i < 0 {
		return nil, false
	}
	return d.children[i], true
}

// State returns the node's board snapshot. Callers must not mutate it.
func (d *DecisionTree) State() *game.Board {
	return d.state
}

// Moves returns the keys of the node's children in enumeration order.
func (d *DecisionTree) Moves() []game.Move {
	return append([]game.Move(nil), d.moves...)
}

func (d *DecisionTree) IsLeaf() bool {
	return !d.expanded
}

// Size counts the nodes of the tree, d included.
func (d *DecisionTree) Size() int {
	n := 1
	for _, child := range d.children {
		n += child.Size()
	}
	return n
}

// Height is the number of plies from d down to its deepest leaf.
func (d *DecisionTree) Height() int {
	h := 0
	for _, child := range d.children {
		h = max(h, child.Height()+1)
	}
	return h
}
