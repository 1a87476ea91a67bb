package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"othello/engine"
	"othello/experiments"
	"othello/game"
	"othello/gamemaster"
	"othello/meta"
	"othello/tui"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	mode     string
	human    string
	addr     string
	numGames int
	remote   string
	out      string
	logFile  string
	debug    bool
}

func main() {
	cfg := parseFlags()

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msgf("%s failed", cfg.mode)
		closeLog()
		os.Exit(1)
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "play", "play, versus, serve, experiment or dump")
	flag.StringVar(&cfg.human, "human", "white", "Side the human plays in play mode (black or white)")
	flag.StringVar(&cfg.addr, "addr", meta.DefaultAddr, "Listen address in serve mode")
	flag.IntVar(&cfg.numGames, "games", meta.NumGames, "Number of games in experiment mode")
	flag.StringVar(&cfg.remote, "remote", "", "Game server URL searching for the non-random side in experiment mode")
	flag.StringVar(&cfg.out, "out", "", "Output file in dump mode (default stdout), output root in experiment mode")
	flag.StringVar(&cfg.logFile, "log", "", "Log file for the interactive modes (default: discard)")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")
	flag.Parse()
	return cfg
}

// setupLogging routes logs to stderr, except in the interactive modes where they
// would corrupt the board and go to a file or nowhere.
func setupLogging(cfg config) (func(), error) {
	level := zerolog.InfoLevel
	if cfg.debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.mode != "play" && cfg.mode != "versus" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
		return func() {}, nil
	}
	if cfg.logFile == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

func run(cfg config) error {
	switch cfg.mode {
	case "play":
		human, ok := game.ParseStone(cfg.human)
		if !ok {
			return fmt.Errorf("unknown side %q", cfg.human)
		}
		return tui.Play(human)
	case "versus":
		return tui.Versus()
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return gamemaster.Serve(ctx, cfg.addr, gamemaster.NewManager())
	case "experiment":
		root := cfg.out
		if root == "" {
			root = "results"
		}
		var dir string
		var err error
		if cfg.remote != "" {
			dir, err = experiments.RunRemoteVsRandom(cfg.remote, cfg.numGames, root)
		} else {
			dir, err = experiments.RunMinimaxVsRandom(cfg.numGames, root)
		}
		if err != nil {
			return err
		}
		log.Info().Msgf("results stored in %s", dir)
		return nil
	case "dump":
		return dump(cfg.out)
	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}
}

// dump writes the decision tree of the opening position.
func dump(path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create dump file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := engine.NewSession().DumpTree(w); err != nil {
		return fmt.Errorf("failed to dump tree: %w", err)
	}
	log.Info().Msg("dumped opening decision tree")
	return nil
}
