package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"iter"
	"strings"
)

// Size is the number of tiles along each side of the board.
const Size = 8

type StateHash uint64

// Eight compass directions scanned for captures.
var directions = [8]struct{ dx, dy int }{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Board holds the grid, the side to move and its legal moves.
// All storage is in fixed arrays so a value copy never aliases the source board.
type Board struct {
	grid     [Size][Size]Tile // indexed [y][x]
	counts   [2]int           // indexed by Stone
	toMove   Stone
	legal    [Size][Size]bool // indexed [y][x]
	numLegal int
	// Did the other side have any legal move before this turn began?
	previousSideHadMoves bool
}

// NewBoard returns an empty board with starting to move. Legal moves are not generated.
func NewBoard(starting Stone) *Board {
	return &Board{
		toMove:               starting,
		previousSideHadMoves: true,
	}
}

// NewStandardBoard returns the opening position with White to move.
func NewStandardBoard() *Board {
	b := NewBoard(White)
	b.Set(White, 3, 3)
	b.Set(White, 4, 4)
	b.Set(Black, 3, 4)
	b.Set(Black, 4, 3)
	b.GenerateLegalMoves()
	return b
}

// InBounds reports whether (x, y) is a tile on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

func mustBeInBounds(x, y int) {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("tile (%d, %d) is out of bounds", x, y))
	}
}

// Set places stone at (x, y), overwriting any previous occupant while keeping the counts in sync.
func (b *Board) Set(stone Stone, x, y int) {
	mustBeInBounds(x, y)
	if present, ok := b.grid[y][x].Stone(); ok {
		b.counts[present]--
	}
	b.counts[stone]++
	b.grid[y][x] = Occupied(stone)
}

func (b *Board) Get(x, y int) Tile {
	mustBeInBounds(x, y)
	return b.grid[y][x]
}

func (b *Board) Count(stone Stone) int {
	return b.counts[stone]
}

func (b *Board) ToMove() Stone {
	return b.toMove
}

// PreviousSideHadMoves reports whether the side that moved last had a legal tile move.
func (b *Board) PreviousSideHadMoves() bool {
	return b.previousSideHadMoves
}

// peek scans from (x, y) in direction (dx, dy). It returns the first tile of stone found
// after a non-empty run of opponent stones, or ok=false when the direction captures nothing.
func (b *Board) peek(stone Stone, x, y, dx, dy int) (px, py int, ok bool) {
	px, py = x+dx, y+dy
	if !InBounds(px, py) || !b.grid[py][px].Is(stone.Inverse()) {
		return 0, 0, false
	}
	for InBounds(px, py) {
		occupant, occupied := b.grid[py][px].Stone()
		switch {
		case !occupied:
			return 0, 0, false
		case occupant == stone:
			return px, py, true
		}
		px += dx
		py += dy
	}
	return 0, 0, false
}

// IsLegal reports whether stone may be placed at (x, y).
func (b *Board) IsLegal(stone Stone, x, y int) bool {
	if !b.Get(x, y).IsEmpty() {
		return false
	}
	for _, d := range directions {
		if _, _, ok := b.peek(stone, x, y, d.dx, d.dy); ok {
			return true
		}
	}
	return false
}

// GenerateLegalMoves recomputes the legal moves of the side to move.
func (b *Board) GenerateLegalMoves() {
	b.numLegal = 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			legal := b.IsLegal(b.toMove, x, y)
			b.legal[y][x] = legal
			if legal {
				b.numLegal++
			}
		}
	}
}

// LegalMoves returns the legal tile moves of the side to move in row-major order. Pass is never included.
func (b *Board) LegalMoves() []Move {
	moves := make([]Move, 0, b.numLegal)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.legal[y][x] {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

func (b *Board) HasLegalMoves() bool {
	return b.numLegal != 0
}

// IsLegalMove reports whether m is in the current legal move set.
func (b *Board) IsLegalMove(m Move) bool {
	return InBounds(m.X, m.Y) && b.legal[m.Y][m.X]
}

// Place plays the side to move at (x, y) and flips every captured run.
// It returns false and leaves the board untouched when the move is not legal.
// The turn is not switched.
func (b *Board) Place(x, y int) bool {
	if !b.IsLegalMove(Move{X: x, Y: y}) {
		return false
	}

	stone := b.toMove
	for _, d := range directions {
		px, py, ok := b.peek(stone, x, y, d.dx, d.dy)
		if !ok {
			continue
		}
		for fx, fy := x+d.dx, y+d.dy; fx != px || fy != py; fx, fy = fx+d.dx, fy+d.dy {
			b.Set(stone, fx, fy)
		}
	}
	b.Set(stone, x, y)
	return true
}

// SwitchStone hands the turn to the opponent and regenerates the legal moves for it.
func (b *Board) SwitchStone() {
	b.previousSideHadMoves = b.numLegal != 0
	b.toMove = b.toMove.Inverse()
	b.GenerateLegalMoves()
}

// IsGameFinished ends the game only when both sides in succession had no legal move.
func (b *Board) IsGameFinished() Result {
	if b.previousSideHadMoves || b.numLegal != 0 {
		return Result{Status: Ongoing}
	}

	switch black, white := b.counts[Black], b.counts[White]; {
	case black > white:
		return Result{Status: Won, Winner: Black}
	case white > black:
		return Result{Status: Won, Winner: White}
	default:
		return Result{Status: Tie}
	}
}

// Copy returns an independent board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Square is one tile together with its coordinates.
type Square struct {
	Tile Tile
	X    int
	Y    int
}

// Tiles iterates over all tiles in row-major order.
func (b *Board) Tiles() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				if !yield(Square{Tile: b.grid[y][x], X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Hash identifies the grid and side to move.
func (b *Board) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int8(b.toMove))
	for sq := range b.Tiles() {
		var v int8 = -1
		if s, ok := sq.Tile.Stone(); ok {
			v = int8(s)
		}
		binary.Write(hasher, binary.LittleEndian, v)
	}

	return StateHash(hasher.Sum64())
}

// String renders the grid with '.' for empty, 'B' for black and 'W' for white.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Rows() {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rows renders each row of the grid, top first.
func (b *Board) Rows() []string {
	rows := make([]string, Size)
	for y := 0; y < Size; y++ {
		row := make([]byte, Size)
		for x := 0; x < Size; x++ {
			row[x] = tileRune(b.grid[y][x])
		}
		rows[y] = string(row)
	}
	return rows
}

func tileRune(t Tile) byte {
	s, ok := t.Stone()
	switch {
	case !ok:
		return '.'
	case s == Black:
		return 'B'
	default:
		return 'W'
	}
}

// ParseBoard builds a board from rows produced by Rows. Legal moves are generated for toMove.
func ParseBoard(rows []string, toMove Stone) (*Board, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("expected %d rows, got %d", Size, len(rows))
	}
	b := NewBoard(toMove)
	for y, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("row %d: expected %d tiles, got %d", y, Size, len(row))
		}
		for x := 0; x < Size; x++ {
			switch row[x] {
			case '.':
			case 'B':
				b.Set(Black, x, y)
			case 'W':
				b.Set(White, x, y)
			default:
				return nil, fmt.Errorf("row %d: unexpected tile %q", y, row[x])
			}
		}
	}
	b.GenerateLegalMoves()
	return b, nil
}
