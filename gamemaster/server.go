package gamemaster

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"othello/engine"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type handler struct {
	manager *Manager
}

// NewRouter exposes the manager's games over a JSON API.
func NewRouter(m *Manager) http.Handler {
	h := &handler{manager: m}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/findmove", h.handleFindMove)

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", h.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetGame)
			r.Delete("/", h.handleDeleteGame)
			r.Post("/moves", h.handlePlay)
			r.Post("/pass", h.handlePass)
			r.Post("/ai", h.handleAIMove)
			r.Get("/ws", h.handleWatch)
		})
	})

	return r
}

// Serve runs the API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, m *Manager) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("game server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down game server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), meta.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (h *handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	var ai *game.Stone
	if req.AI != "" {
		stone, ok := game.ParseStone(req.AI)
		if !ok {
			writeError(w, http.StatusBadRequest, "ai must be black or white")
			return
		}
		ai = &stone
	}

	g, err := h.manager.NewGame(ai)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g.View())
}

func (h *handler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (h *handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(chi.URLParam(r, "id")); err != nil {
		writeGameError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	g, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if !game.InBounds(req.X, req.Y) {
		writeError(w, http.StatusBadRequest, "coordinates out of bounds")
		return
	}

	if err := g.Play(req.X, req.Y); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (h *handler) handlePass(w http.ResponseWriter, r *http.Request) {
	g, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := g.Pass(); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (h *handler) handleAIMove(w http.ResponseWriter, r *http.Request) {
	g, ok := h.lookup(w, r)
	if !ok {
		return
	}
	move, err := g.AIMove()
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AIMoveResponse{Move: moveToDTO(move), Game: g.View()})
}

// handleFindMove searches a posted position without creating a game.
func (h *handler) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req engine.FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	toMove, ok := game.ParseStone(req.ToMove)
	if !ok {
		writeError(w, http.StatusBadRequest, "toMove must be black or white")
		return
	}
	board, err := game.ParseBoard(req.Grid, toMove)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	move, metric := searcher.NewMinimax(searcher.WithMetrics()).FindMove(board, toMove)
	writeJSON(w, http.StatusOK, engine.FindMoveResponse{
		X:          move.X,
		Y:          move.Y,
		Pass:       move.IsPass(),
		Value:      metric.Value,
		NodesBuilt: metric.NodesBuilt,
		TreeSize:   metric.TreeSize,
		DurationMs: metric.Duration.Milliseconds(),
	})
}

func (h *handler) handleWatch(w http.ResponseWriter, r *http.Request) {
	g, ok := h.lookup(w, r)
	if !ok {
		return
	}
	serveWS(g, w, r)
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) (*Game, bool) {
	g, err := h.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return nil, false
	}
	return g, true
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrIllegalMove),
		errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrNotAITurn),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrCannotPass):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("unexpected game error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
