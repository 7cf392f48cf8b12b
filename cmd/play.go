package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/apmusic/apmusic/internal/audio"
	"github.com/apmusic/apmusic/internal/player"
	"github.com/apmusic/apmusic/internal/shared"
	"github.com/apmusic/apmusic/internal/ui"
)

// Play launches the interactive terminal player.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	songs, playlists, err := r.repos()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/apmusic-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	interval := time.Duration(r.config.Player.ProgressIntervalMS) * time.Millisecond
	prim := audio.NewPlayer(interval)
	engine := player.NewEngine(prim, player.StoreSource{Songs: songs}, fileLogger)
	defer engine.Close()

	model := ui.New(songs, playlists, engine, fileLogger)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "play",
		Usage:  "Open the interactive player",
		Action: r.Play,
	}
}
