package experiments

import (
	"fmt"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
)

// RunMinimaxVsRandom plays numGames games between the minimax agent and a random baseline,
// alternating colors, and stores the records under root. It returns the output directory.
func RunMinimaxVsRandom(numGames int, root string) (string, error) {
	return runVsRandom("minimax_vs_random", metrics.AgentConfig{ID: 1, Kind: "minimax"}, numGames, root)
}

// RunRemoteVsRandom is RunMinimaxVsRandom with the searching side played by the game server at url.
func RunRemoteVsRandom(url string, numGames int, root string) (string, error) {
	return runVsRandom("remote_vs_random", metrics.AgentConfig{ID: 1, Kind: "remote", URL: url}, numGames, root)
}

func runVsRandom(name string, searching metrics.AgentConfig, numGames int, root string) (string, error) {
	configs := []metrics.AgentConfig{searching}

	// Each matchup pairs the searching agent against a freshly seeded random agent,
	// swapping colors every game
	matchUps := [][]metrics.AgentConfig{}
	for i := 0; i < numGames; i++ {
		random := metrics.AgentConfig{ID: i + 2, Kind: "random", Seed: uint64(i + 1)}
		configs = append(configs, random)
		if i%2 == 0 {
			matchUps = append(matchUps, []metrics.AgentConfig{searching, random})
		} else {
			matchUps = append(matchUps, []metrics.AgentConfig{random, searching})
		}
	}

	return runExperiment(name, root, configs, matchUps)
}

func runExperiment(name, root string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	wins := map[int]int{}

	log.Info().Msgf("starting %s experiment...", name)

	for i, matchup := range matchUps {
		black, white := matchup[0], matchup[1]
		log.Info().Msgf("starting game %d of %d between black=%+v and white=%+v...", i+1, len(matchUps), black, white)

		result, gameMetric, moveMetrics := runGame(black, white)
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Agent1:     black.ID,
			Agent2:     white.ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}
		if result.Status == game.Won {
			if result.Winner == game.Black {
				wins[black.ID]++
			} else {
				wins[white.ID]++
			}
		}

		log.Info().Msgf("completed game %d of %d: %s (%d-%d)", i+1, len(matchUps), result, gameMetric.Blacks, gameMetric.Whites)
	}

	log.Info().Msgf("completed %s experiment: agent 1 won %d of %d games", name, wins[1], len(matchUps))

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents
func runGame(black, white metrics.AgentConfig) (game.Result, metrics.GameMetric, []metrics.MoveMetric) {
	var e engine.Runner = engine.LocalEngine(createAgent(black), createAgent(white))
	return e.Run()
}

func createAgent(config metrics.AgentConfig) engine.Agent {
	switch config.Kind {
	case "minimax":
		return engine.NewMinimaxAgent()
	case "remote":
		return engine.NewRemoteAgent(config.URL)
	case "random":
		return engine.NewRandomAgent(config.Seed)
	default:
		panic(fmt.Sprintf("unknown agent kind %q", config.Kind))
	}
}
