package gamemaster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"othello/engine"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindMove(t *testing.T) {
	t.Run("searches the posted position", func(t *testing.T) {
		h := NewRouter(NewManager())
		b := game.NewStandardBoard()

		body, err := json.Marshal(engine.FindMoveRequest{Grid: b.Rows(), ToMove: "white"})
		require.NoError(t, err)
		rec := do(t, h, http.MethodPost, "/api/findmove", string(body))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp engine.FindMoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		local, metric := searcher.NewMinimax(searcher.WithMetrics()).FindMove(b, game.White)
		require.Equal(t, local, resp.Move(), "Server should agree with a local search")
		require.Equal(t, metric.Value, resp.Value)
		require.Equal(t, metric.TreeSize, resp.TreeSize)
	})

	t.Run("passes when no move exists", func(t *testing.T) {
		h := NewRouter(NewManager())

		rec := do(t, h, http.MethodPost, "/api/findmove",
			`{"grid":["WB......","........","........","........","........","........","........","........"],"toMove":"black"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp engine.FindMoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, game.Pass, resp.Move())
	})

	t.Run("rejects malformed boards", func(t *testing.T) {
		h := NewRouter(NewManager())

		rec := do(t, h, http.MethodPost, "/api/findmove", `{"grid":["WB"],"toMove":"black"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(t, h, http.MethodPost, "/api/findmove", `{"grid":[],"toMove":"red"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRemoteAgent(t *testing.T) {
	if testing.Short() {
		t.Skip("full game against the server")
	}
	srv := httptest.NewServer(NewRouter(NewManager()))
	defer srv.Close()

	e := engine.LocalEngine(engine.NewRemoteAgent(srv.URL), engine.NewRandomAgent(7))
	result, gameMetric, moveMetrics := e.Run()

	require.Equal(t, result, e.Session.Result())
	require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
	require.LessOrEqual(t, gameMetric.TotalMoves, meta.MaxTurns)
	for _, mm := range moveMetrics {
		if mm.Player == game.Black {
			require.Positive(t, mm.TreeSize, "step %d should carry the server's search metrics", mm.Step)
		}
	}
}

func TestRemoteAgentServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	s := engine.NewSession()
	_, _, err := engine.NewRemoteAgent(srv.URL).Play(s)

	require.Error(t, err)
	require.Empty(t, s.History(), "A failed request must not touch the session")
}
