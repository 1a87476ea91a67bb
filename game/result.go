package game

// Status describes whether a game is still running.
type Status int

const (
	Ongoing Status = iota
	Won
	Tie
)

// Result is the outcome of IsGameFinished. Winner is only meaningful when Status is Won.
type Result struct {
	Status Status
	Winner Stone
}

func (r Result) IsOver() bool {
	return r.Status != Ongoing
}

func (r Result) String() string {
	switch r.Status {
	case Won:
		return r.Winner.String() + " wins"
	case Tie:
		return "tie"
	default:
		return "ongoing"
	}
}
