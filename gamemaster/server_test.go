package gamemaster

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) GameResponse {
	t.Helper()
	var resp GameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func newGame(t *testing.T, h http.Handler, body string) GameResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/games", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeGame(t, rec)
}

func TestPing(t *testing.T) {
	h := NewRouter(NewManager())

	rec := do(t, h, http.MethodGet, "/api/ping", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNewGame(t *testing.T) {
	t.Run("two humans", func(t *testing.T) {
		h := NewRouter(NewManager())

		g := newGame(t, h, "")

		require.NotEmpty(t, g.ID)
		require.Empty(t, g.AI)
		require.Equal(t, "white", g.ToMove)
		require.Equal(t, "ongoing", g.Result)
		require.Equal(t, []string{"........", "........", "........", "...WB...", "...BW...", "........", "........", "........"}, g.Grid)
		require.Len(t, g.LegalMoves, 4)
		require.Empty(t, g.History)
	})

	t.Run("computer opening as white moves immediately", func(t *testing.T) {
		h := NewRouter(NewManager())

		g := newGame(t, h, `{"ai":"white"}`)

		require.Equal(t, "white", g.AI)
		require.Len(t, g.History, 1, "Computer should have played the opening move")
		require.Equal(t, "black", g.ToMove)
	})

	t.Run("unknown stone is rejected", func(t *testing.T) {
		h := NewRouter(NewManager())

		rec := do(t, h, http.MethodPost, "/api/games", `{"ai":"red"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPlay(t *testing.T) {
	t.Run("legal move then computer reply", func(t *testing.T) {
		h := NewRouter(NewManager())
		g := newGame(t, h, `{"ai":"black"}`)

		rec := do(t, h, http.MethodPost, "/api/games/"+g.ID+"/moves", `{"x":2,"y":4}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decodeGame(t, rec)
		require.Len(t, got.History, 2)
		require.Equal(t, MoveDTO{X: 2, Y: 4}, got.History[0])
		require.Equal(t, "white", got.ToMove)
	})

	t.Run("illegal move conflicts", func(t *testing.T) {
		h := NewRouter(NewManager())
		g := newGame(t, h, "")

		rec := do(t, h, http.MethodPost, "/api/games/"+g.ID+"/moves", `{"x":0,"y":0}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), "illegal move")
	})

	t.Run("out of bounds is a bad request", func(t *testing.T) {
		h := NewRouter(NewManager())
		g := newGame(t, h, "")

		rec := do(t, h, http.MethodPost, "/api/games/"+g.ID+"/moves", `{"x":8,"y":0}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad json", func(t *testing.T) {
		h := NewRouter(NewManager())
		g := newGame(t, h, "")

		rec := do(t, h, http.MethodPost, "/api/games/"+g.ID+"/moves", `{"x":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown game", func(t *testing.T) {
		h := NewRouter(NewManager())

		rec := do(t, h, http.MethodPost, "/api/games/nope/moves", `{"x":2,"y":4}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPassAndAIMove(t *testing.T) {
	t.Run("pass is refused while tile moves exist", func(t *testing.T) {
		h := NewRouter(NewManager())
		g := newGame(t, h, "")

		rec := do(t, h, http.MethodPost, "/api/games/"+g.ID+"/pass", "")

		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), ErrCannotPass.Error())
	})

	t.Run("computer plays for the side to move", func(t *testing.T) {
		h := NewRouter(NewManager())
		g := newGame(t, h, "")

		rec := do(t, h, http.MethodPost, "/api/games/"+g.ID+"/ai", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp AIMoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, []MoveDTO{resp.Move}, resp.Game.History)
		require.Equal(t, "black", resp.Game.ToMove)
	})
}

func TestDeleteGame(t *testing.T) {
	m := NewManager()
	h := NewRouter(m)
	g := newGame(t, h, "")
	require.Equal(t, 1, m.Len())

	rec := do(t, h, http.MethodDelete, "/api/games/"+g.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 0, m.Len())

	rec = do(t, h, http.MethodGet, "/api/games/"+g.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), ErrGameNotFound.Error()))
}
