package tui

import (
	"fmt"
	"othello/game"

	tea "github.com/charmbracelet/bubbletea"
)

// Play runs a game of human (playing human) against the computer.
func Play(human game.Stone) error {
	return run(NewModel(human))
}

// Versus runs a game between two humans sharing the keyboard.
func Versus() error {
	return run(NewModel(game.Black, game.White))
}

func run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run board: %w", err)
	}
	// The alt screen is gone once the program exits; leave the final board behind
	fmt.Println(final.View())
	return nil
}
