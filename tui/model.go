package tui

import (
	"fmt"
	"othello/engine"
	"othello/game"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

var (
	blackStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1aff", Dark: "#f2f2f2ff"}).Render
	whiteStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0003adff", Dark: "#5f61fcff"}).Render
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50ff", Dark: "#6afd76ff"}).Render
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#960000ff", Dark: "#fc7e7eff"}).Render
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141ff", Dark: "#8f8f8fff"}).Render
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#bb0000ff", Dark: "#df1010ff"}).Render
)

type aiMoveMsg struct {
	move game.Move
	err  error
}

// Model is the interactive board. Sides listed in humans take keyboard input,
// the other side (if any) is played by the computer.
type Model struct {
	session *engine.Session
	humans  map[game.Stone]bool

	// Rendering reads only the cached snapshot, so the board can be drawn
	// while a search mutates the session
	snap   engine.Snapshot
	result game.Result

	cursorX, cursorY int
	thinking         bool
	spinner          spinner.Model
	status           string
}

// NewModel starts a session from the opening position.
func NewModel(humans ...game.Stone) *Model {
	return NewModelFromSession(engine.NewSession(), humans...)
}

func NewModelFromSession(session *engine.Session, humans ...game.Stone) *Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		session: session,
		humans:  map[game.Stone]bool{},
		spinner: s,
	}
	for _, h := range humans {
		m.humans[h] = true
	}
	m.refresh()
	if len(m.snap.LegalMoves) > 0 {
		m.cursorX, m.cursorY = m.snap.LegalMoves[0].X, m.snap.LegalMoves[0].Y
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.startAI()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case aiMoveMsg:
		m.thinking = false
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("computer move failed")
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = "computer played " + msg.move.String()
		search := m.session.LastSearch()
		log.Debug().
			Str("move", msg.move.String()).
			Int("nodes_built", search.NodesBuilt).
			Int("tree_size", search.TreeSize).
			Dur("duration", search.Duration).
			Msg("computer moved")
		m.refresh()
		return m, m.startAI()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.cursorY = max(m.cursorY-1, 0)
		case "down", "j":
			m.cursorY = min(m.cursorY+1, game.Size-1)
		case "left", "h":
			m.cursorX = max(m.cursorX-1, 0)
		case "right", "l":
			m.cursorX = min(m.cursorX+1, game.Size-1)
		case "enter", " ":
			return m, m.place()
		case "p":
			return m, m.pass()
		}

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) humanTurn() bool {
	return !m.thinking && !m.result.IsOver() && m.humans[m.snap.ToMove]
}

func (m *Model) place() tea.Cmd {
	if !m.humanTurn() {
		return nil
	}
	if !m.session.AttemptMove(m.cursorX, m.cursorY) {
		m.status = fmt.Sprintf("%s is not a legal move", game.Move{X: m.cursorX, Y: m.cursorY})
		return nil
	}
	m.status = ""
	m.refresh()
	return m.startAI()
}

func (m *Model) pass() tea.Cmd {
	if !m.humanTurn() {
		return nil
	}
	if !m.session.MustPass() {
		m.status = "you can only pass when no move is available"
		return nil
	}
	m.session.ApplyPass()
	m.status = m.snap.ToMove.String() + " passed"
	m.refresh()
	return m.startAI()
}

// startAI kicks off the computer's search when it is the computer's turn.
func (m *Model) startAI() tea.Cmd {
	if m.result.IsOver() || m.humans[m.snap.ToMove] || m.thinking {
		return nil
	}
	m.thinking = true
	session, ai := m.session, m.snap.ToMove
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		move, err := session.RequestAIMove(ai)
		return aiMoveMsg{move: move, err: err}
	})
}

func (m *Model) refresh() {
	m.snap = m.session.State()
	m.result = m.session.Result()
	if m.result.IsOver() {
		log.Info().Msgf("game over: %s (%d-%d)", m.result, m.snap.Blacks, m.snap.Whites)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(bannerStyle("--- Othello ---") + "\n\n")
	b.WriteString("   ")
	for x := 0; x < game.Size; x++ {
		b.WriteString(dimStyle(fmt.Sprintf(" %d ", x)))
	}
	b.WriteString("\n")

	legal := map[game.Move]bool{}
	if m.humanTurn() {
		for _, mv := range m.snap.LegalMoves {
			legal[mv] = true
		}
	}

	for y := 0; y < game.Size; y++ {
		b.WriteString(dimStyle(fmt.Sprintf(" %d ", y)))
		for x := 0; x < game.Size; x++ {
			mark := dimStyle(".")
			if stone, ok := m.snap.Grid[y][x].Stone(); ok {
				mark = stoneMark(stone)
			} else if legal[game.Move{X: x, Y: y}] {
				mark = hintStyle("+")
			}

			left, right := " ", " "
			if m.humanTurn() && x == m.cursorX && y == m.cursorY {
				left, right = cursorStyle("["), cursorStyle("]")
			} else if last := m.snap.LastMove; last != nil && last.X == x && last.Y == y {
				left, right = dimStyle("("), dimStyle(")")
			}
			b.WriteString(left + mark + right)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n%s %d   %s %d\n", stoneMark(game.Black), m.snap.Blacks, stoneMark(game.White), m.snap.Whites))

	switch {
	case m.result.IsOver():
		if m.result.Status == game.Tie {
			b.WriteString(bannerStyle("GAME OVER: TIE") + "\n")
		} else {
			b.WriteString(bannerStyle("GAME OVER: "+strings.ToUpper(m.result.Winner.String())+" WINS") + "\n")
		}
	case m.thinking:
		b.WriteString(fmt.Sprintf("%s to move (computer) %s\n", m.snap.ToMove, m.spinner.View()))
	default:
		b.WriteString(fmt.Sprintf("%s to move\n", m.snap.ToMove))
		if len(m.snap.LegalMoves) == 0 {
			b.WriteString(hintStyle("no legal moves, press p to pass") + "\n")
		}
	}

	if m.status != "" {
		b.WriteString(dimStyle(m.status) + "\n")
	}
	b.WriteString(dimStyle("\narrows/hjkl move  enter place  p pass  q quit") + "\n")
	return b.String()
}

func stoneMark(s game.Stone) string {
	if s == game.Black {
		return blackStyle("B")
	}
	return whiteStyle("W")
}
