package engine

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"time"

	"github.com/rs/zerolog/log"
)

type Engine struct {
	Session *Session
	Agents  map[game.Stone]Agent
}

// LocalEngine sets up a game between two agents from the standard opening.
func LocalEngine(black, white Agent) *Engine {
	if black == nil || white == nil {
		panic("need an agent for each stone")
	}

	return &Engine{
		Session: NewSession(),
		Agents: map[game.Stone]Agent{
			game.Black: black,
			game.White: white,
		},
	}
}

// Run plays until the game is over or meta.MaxTurns moves were made.
func (e *Engine) Run() (game.Result, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Session.board.ToMove(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", gameMetric.StartingPlayer)

	turnCount := 1
	for !e.Session.Result().IsOver() && turnCount <= meta.MaxTurns {
		player := e.Session.board.ToMove()

		move, search, err := e.Agents[player].Play(e.Session)
		if err != nil {
			log.Error().Err(err).Msgf("%s failed to move on turn %d", player, turnCount)
			break
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Player:       player,
			Move:         move,
			SearchMetric: search,
		})

		log.Debug().Msgf("turn %d: %s played %s", turnCount, player, move)
		turnCount++
	}

	result := e.Session.Result()
	if result.IsOver() {
		log.Info().Msgf("game ended after %d moves: %s", turnCount-1, result)
	} else {
		log.Warn().Msgf("stopped after %d turns (no winner yet)", meta.MaxTurns)
	}

	gameMetric.Result = result
	gameMetric.Blacks = e.Session.board.Count(game.Black)
	gameMetric.Whites = e.Session.board.Count(game.White)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turnCount - 1

	return result, gameMetric, moveMetrics
}
