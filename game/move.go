package game

import "fmt"

// Move is a tile coordinate, or Pass when the side to move forfeits its turn.
type Move struct {
	X int
	Y int
}

// Pass forfeits the turn without placing a stone.
var Pass = Move{X: -1, Y: -1}

func (m Move) IsPass() bool {
	return m == Pass
}

func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("(%d, %d)", m.X, m.Y)
}
