package searcher

import (
	"bufio"
	"fmt"
	"io"
	"othello/game"
	"strings"
)

// Dump writes a human readable trace of the tree below d, one block per node:
// the move leading to it, the stone counts and the grid, indented four spaces per ply.
// Empty tiles are "`", black "#", white "o", and the tile just played "b" or "w".
func (d *DecisionTree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := d.dump(bw, 0); err != nil {
		return fmt.Errorf("failed to dump decision tree: %w", err)
	}
	return bw.Flush()
}

func (d *DecisionTree) dump(w *bufio.Writer, depth int) error {
	space := strings.Repeat("    ", depth)
	for i, child := range d.children {
		move := d.moves[i]
		state := child.state

		var sb strings.Builder
		fmt.Fprintf(&sb, "%sMove: (%d, %d), Blacks: %d, Whites: %d, State:\n",
			space, move.X, move.Y, state.Count(game.Black), state.Count(game.White))
		for y := 0; y < game.Size; y++ {
			sb.WriteString(space)
			for x := 0; x < game.Size; x++ {
				sb.WriteString(marker(state.Get(x, y), x == move.X && y == move.Y))
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')

		if _, err := w.WriteString(sb.String()); err != nil {
			return err
		}
		if err := child.dump(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func marker(t game.Tile, played bool) string {
	s, ok := t.Stone()
	switch {
	case !ok:
		return "` "
	case s == game.Black && played:
		return "b "
	case s == game.Black:
		return "# "
	case played:
		return "w "
	default:
		return "o "
	}
}
