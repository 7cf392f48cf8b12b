package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/apmusic/apmusic/internal/audio"
	"github.com/apmusic/apmusic/internal/player"
	"github.com/apmusic/apmusic/internal/remote"
)

// Serve runs the remote transport-control server. Playback happens in this
// process; remote clients only steer it.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	songs, _, err := r.repos()
	if err != nil {
		return err
	}

	interval := time.Duration(r.config.Player.ProgressIntervalMS) * time.Millisecond
	prim := audio.NewPlayer(interval)
	engine := player.NewEngine(prim, player.StoreSource{Songs: songs}, r.logger)
	defer engine.Close()

	server := remote.NewServer(r.config.Remote, engine, r.logger)
	return server.ListenAndServe(ctx)
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the remote transport-control server",
		Action: r.Serve,
	}
}
