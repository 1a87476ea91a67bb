package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// FindMoveRequest asks a game server to search a position.
type FindMoveRequest struct {
	Grid   []string `json:"grid"` // Rows as produced by game.Board.Rows
	ToMove string   `json:"toMove"`
}

type FindMoveResponse struct {
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Pass       bool  `json:"pass,omitempty"`
	Value      int   `json:"value"`
	NodesBuilt int   `json:"nodesBuilt"`
	TreeSize   int   `json:"treeSize"`
	DurationMs int64 `json:"durationMs"`
}

func (r FindMoveResponse) Move() game.Move {
	if r.Pass {
		return game.Pass
	}
	return game.Move{X: r.X, Y: r.Y}
}

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that lets the game server at baseURL choose its moves.
func NewRemoteAgent(baseURL string) Agent {
	return &remoteAgent{
		url:    strings.TrimSuffix(baseURL, "/") + "/api/findmove",
		client: &http.Client{Timeout: meta.RemoteTimeout},
	}
}

func (a *remoteAgent) Play(s *Session) (game.Move, metrics.SearchMetric, error) {
	if s.Result().IsOver() {
		return game.Pass, metrics.SearchMetric{}, ErrGameOver
	}

	resp, err := a.requestMove(FindMoveRequest{
		Grid:   s.board.Rows(),
		ToMove: s.board.ToMove().String(),
	})
	if err != nil {
		return game.Pass, metrics.SearchMetric{}, err
	}

	// The server may pass even with tile moves available, like a local search
	move := resp.Move()
	if move.IsPass() {
		s.ApplyPass()
	} else if !s.AttemptMove(move.X, move.Y) {
		return move, metrics.SearchMetric{}, fmt.Errorf("server chose %s: %w", move, ErrIllegalMove)
	}

	return move, metrics.SearchMetric{
		Depth:      meta.MaxDepth,
		Duration:   time.Duration(resp.DurationMs) * time.Millisecond,
		NodesBuilt: resp.NodesBuilt,
		TreeSize:   resp.TreeSize,
		Value:      resp.Value,
	}, nil
}

func (a *remoteAgent) requestMove(req FindMoveRequest) (FindMoveResponse, error) {
	var out FindMoveResponse

	body, err := json.Marshal(req)
	if err != nil {
		return out, err
	}
	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("failed to reach game server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return out, fmt.Errorf("game server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode move: %w", err)
	}

	log.Debug().Str("url", a.url).Str("move", out.Move().String()).Msg("remote move received")
	return out, nil
}
