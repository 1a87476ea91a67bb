package gamemaster

import (
	"errors"
	"othello/engine"
	"othello/game"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("it is the computer's turn")
	ErrCannotPass   = errors.New("cannot pass while tile moves exist")
)

// Game is one hosted session. Its mutex serializes every action on the session.
type Game struct {
	mu        sync.Mutex
	ID        string
	AI        *game.Stone // nil when two humans play
	session   *engine.Session
	hub       *Hub
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Manager keeps the hosted games in memory.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Game)}
}

// NewGame starts a game from the opening position. When the computer plays the
// first side it moves immediately.
func (m *Manager) NewGame(ai *game.Stone) (*Game, error) {
	g := &Game{
		ID:        uuid.NewString(),
		AI:        ai,
		session:   engine.NewSession(),
		hub:       NewHub(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := g.replyAI(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	log.Info().Str("game", g.ID).Msgf("new game, computer plays %s", aiName(ai))
	return g, nil
}

func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Delete tears a game down.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	g.hub.Close()
	log.Info().Str("game", id).Msg("game deleted")
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Play applies a human move at (x, y) followed by the computer's reply, if any.
func (g *Game) Play(x, y int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkHumanTurn(); err != nil {
		return err
	}
	if !g.session.AttemptMove(x, y) {
		return engine.ErrIllegalMove
	}
	g.changed()
	return g.replyAI()
}

// Pass hands the turn over when the human has no tile move, followed by the computer's reply.
func (g *Game) Pass() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkHumanTurn(); err != nil {
		return err
	}
	if !g.session.MustPass() {
		return ErrCannotPass
	}
	g.session.ApplyPass()
	g.changed()
	return g.replyAI()
}

// AIMove lets the computer play one move for the side to move.
func (g *Game) AIMove() (game.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	move, err := g.session.RequestAIMove(g.session.State().ToMove)
	if err != nil {
		return move, err
	}
	g.changed()
	return move, nil
}

func (g *Game) checkHumanTurn() error {
	if g.session.Result().IsOver() {
		return engine.ErrGameOver
	}
	if g.AI != nil && g.session.State().ToMove == *g.AI {
		return ErrNotYourTurn
	}
	return nil
}

// replyAI plays the computer's move when it is the computer's turn. Must hold g.mu.
func (g *Game) replyAI() error {
	if g.AI == nil || g.session.Result().IsOver() || g.session.State().ToMove != *g.AI {
		return nil
	}
	move, err := g.session.RequestAIMove(*g.AI)
	if err != nil {
		return err
	}
	search := g.session.LastSearch()
	log.Debug().Str("game", g.ID).
		Str("move", move.String()).
		Int("tree_size", search.TreeSize).
		Dur("duration", search.Duration).
		Msg("computer moved")
	g.changed()
	return nil
}

// changed stamps the game and pushes its state to watchers. Must hold g.mu.
func (g *Game) changed() {
	g.UpdatedAt = time.Now()
	g.hub.Publish("state", newGameResponse(g))
}

// View renders the game for the API.
func (g *Game) View() GameResponse {
	g.mu.Lock()
	defer g.mu.Unlock()
	return newGameResponse(g)
}

func aiName(ai *game.Stone) string {
	if ai == nil {
		return "nobody"
	}
	return ai.String()
}
