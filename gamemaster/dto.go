package gamemaster

import (
	"othello/game"
)

type NewGameRequest struct {
	AI string `json:"ai"` // "black", "white" or empty for two humans
}

type MoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MoveDTO struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Pass bool `json:"pass,omitempty"`
}

type GameResponse struct {
	ID         string    `json:"id"`
	AI         string    `json:"ai,omitempty"`
	Grid       []string  `json:"grid"` // Rows top first: '.' empty, 'B' black, 'W' white
	ToMove     string    `json:"toMove"`
	Blacks     int       `json:"blacks"`
	Whites     int       `json:"whites"`
	LegalMoves []MoveDTO `json:"legalMoves"`
	MustPass   bool      `json:"mustPass"`
	Result     string    `json:"result"` // "ongoing", "black", "white" or "tie"
	History    []MoveDTO `json:"history"`
}

type AIMoveResponse struct {
	Move MoveDTO      `json:"move"`
	Game GameResponse `json:"game"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func moveToDTO(m game.Move) MoveDTO {
	return MoveDTO{X: m.X, Y: m.Y, Pass: m.IsPass()}
}

func movesToDTO(moves []game.Move) []MoveDTO {
	out := make([]MoveDTO, len(moves))
	for i, m := range moves {
		out[i] = moveToDTO(m)
	}
	return out
}

func resultToString(r game.Result) string {
	switch r.Status {
	case game.Won:
		return r.Winner.String()
	case game.Tie:
		return "tie"
	default:
		return "ongoing"
	}
}

// newGameResponse must be called with g.mu held.
func newGameResponse(g *Game) GameResponse {
	board := g.session.Board()
	snap := g.session.State()

	resp := GameResponse{
		ID:         g.ID,
		Grid:       board.Rows(),
		ToMove:     snap.ToMove.String(),
		Blacks:     snap.Blacks,
		Whites:     snap.Whites,
		LegalMoves: movesToDTO(snap.LegalMoves),
		MustPass:   g.session.MustPass(),
		Result:     resultToString(g.session.Result()),
		History:    movesToDTO(g.session.History()),
	}
	if g.AI != nil {
		resp.AI = g.AI.String()
	}
	return resp
}
