package game

// Tile is one board cell: either empty or occupied by a stone.
type Tile struct {
	stone    Stone
	occupied bool
}

// Empty is the unoccupied tile.
var Empty = Tile{}

// Occupied returns a tile holding the given stone.
func Occupied(s Stone) Tile {
	return Tile{stone: s, occupied: true}
}

func (t Tile) IsEmpty() bool {
	return !t.occupied
}

// Stone returns the occupant, ok is false for an empty tile.
func (t Tile) Stone() (s Stone, ok bool) {
	return t.stone, t.occupied
}

// Is reports whether the tile holds the given stone.
func (t Tile) Is(s Stone) bool {
	return t.occupied && t.stone == s
}

func (t Tile) String() string {
	if !t.occupied {
		return "empty"
	}
	return t.stone.String()
}
