package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/apmusic/apmusic/internal/shared"
)

// PlaylistList prints every playlist with its member count.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	_, playlists, err := r.repos()
	if err != nil {
		return err
	}

	all, err := playlists.List()
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(all, true)
	}

	if len(all) == 0 {
		return r.writePlainln("no playlists")
	}
	for _, playlist := range all {
		r.writePlainln("%d\t%s\t%d songs", playlist.PlaylistID, playlist.Name, len(playlist.SongIDs))
	}
	return nil
}

// PlaylistAdd adds a song to a named playlist, creating the playlist on
// first use.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	songID, err := parseID(cmd.String("song"), "song")
	if err != nil {
		return err
	}

	songs, playlists, err := r.repos()
	if err != nil {
		return err
	}

	// Adding a missing song would create a dangling entry straight away.
	if _, err := songs.Get(songID); err != nil {
		return fmt.Errorf("failed to resolve song %d: %w", songID, err)
	}

	playlistID, err := playlists.AddSong(name, songID)
	if err != nil {
		return fmt.Errorf("failed to add song to playlist: %w", err)
	}

	r.logger.Info("song added to playlist", "playlist", name, "song", songID)
	return r.writePlainln("✓ added song %d to %q (playlist %d)", songID, name, playlistID)
}

// PlaylistRemove removes a song from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	songID, err := parseID(cmd.String("song"), "song")
	if err != nil {
		return err
	}

	_, playlists, err := r.repos()
	if err != nil {
		return err
	}

	playlist, err := playlists.GetByName(name)
	if err != nil {
		return fmt.Errorf("failed to resolve playlist %q: %w", name, err)
	}

	if err := playlists.RemoveSong(playlist.PlaylistID, songID); err != nil {
		return fmt.Errorf("failed to remove song from playlist: %w", err)
	}

	return r.writePlainln("✓ removed song %d from %q", songID, name)
}

// PlaylistSongs prints the songs of one playlist in membership order.
func (r *Runner) PlaylistSongs(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")

	_, playlists, err := r.repos()
	if err != nil {
		return err
	}

	playlist, err := playlists.GetByName(name)
	if err != nil {
		return fmt.Errorf("failed to resolve playlist %q: %w", name, err)
	}

	songs, err := playlists.Songs(playlist.PlaylistID)
	if err != nil {
		return fmt.Errorf("failed to list playlist songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	if len(songs) == 0 {
		return r.writePlainln("playlist %q is empty", name)
	}
	for _, song := range songs {
		r.writePlainln("%d\t%s\t%s", song.SongID, song.Title, song.MimeType)
	}
	return nil
}

func parseID(raw, label string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s id is required", shared.ErrMissingArgument, label)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s id %q", shared.ErrInvalidArgument, label, raw)
	}
	return id, nil
}

func playlistCommand(r *Runner) *cli.Command {
	nameFlag := &cli.StringFlag{
		Name:     "name",
		Aliases:  []string{"n"},
		Usage:    "Playlist name",
		Required: true,
	}
	songFlag := &cli.StringFlag{
		Name:     "song",
		Aliases:  []string{"s"},
		Usage:    "Song ID",
		Required: true,
	}

	return &cli.Command{
		Name:  "playlist",
		Usage: "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: r.PlaylistList,
			},
			{
				Name:   "add",
				Usage:  "Add a song to a playlist (created on first use)",
				Flags:  []cli.Flag{nameFlag, songFlag},
				Action: r.PlaylistAdd,
			},
			{
				Name:   "remove",
				Usage:  "Remove a song from a playlist",
				Flags:  []cli.Flag{nameFlag, songFlag},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "songs",
				Usage: "List the songs in a playlist",
				Flags: []cli.Flag{
					nameFlag,
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: r.PlaylistSongs,
			},
		},
	}
}
