package engine

import (
	"othello/experiments/metrics"
	"othello/game"
)

type Runner interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (result game.Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

var _ Runner = (*Engine)(nil)
