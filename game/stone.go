package game

// Stone is the color token a player places.
type Stone int8

const (
	Black Stone = iota
	White
)

// Inverse returns the opponent's stone.
func (s Stone) Inverse() Stone {
	if s == White {
		return Black
	}
	return White
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "unknown"
	}
}

// ParseStone accepts "black"/"b" and "white"/"w".
func ParseStone(s string) (Stone, bool) {
	switch s {
	case "black", "b", "B":
		return Black, true
	case "white", "w", "W":
		return White, true
	default:
		return Black, false
	}
}
