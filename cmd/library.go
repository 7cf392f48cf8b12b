package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/apmusic/apmusic/internal/formatter"
	"github.com/apmusic/apmusic/internal/library"
	"github.com/apmusic/apmusic/internal/shared"
)

// ImportSongs imports the audio files given as arguments into the library.
//
// Non-audio files are skipped and individual failures do not abort the
// batch; the command reports the outcome per category.
func (r *Runner) ImportSongs(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one file path is required", shared.ErrMissingArgument)
	}

	songs, _, err := r.repos()
	if err != nil {
		return err
	}

	importer := library.NewImporter(songs, r.logger)
	result, importErr := importer.ImportFiles(paths)

	for _, song := range result.Imported {
		r.writePlainln("✓ imported %q (id %d)", song.Title, song.SongID)
	}
	for _, path := range result.Skipped {
		r.writePlainln("- skipped %s (not an audio file)", path)
	}
	for _, failure := range result.Failures {
		r.writePlainln("✗ failed %s: %v", failure.Path, failure.Err)
	}
	r.writePlainln("imported %d, skipped %d, failed %d",
		len(result.Imported), len(result.Skipped), len(result.Failures))

	return importErr
}

// SongsList prints every song in the library.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	songs, _, err := r.repos()
	if err != nil {
		return err
	}

	all, err := songs.List()
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(all, true)
	}
	if cmd.Bool("csv") {
		out, err := formatter.SongsToCSV(all)
		if err != nil {
			return fmt.Errorf("failed to export songs: %w", err)
		}
		return r.writePlain("%s", out)
	}

	if len(all) == 0 {
		return r.writePlainln("library is empty")
	}
	for _, song := range all {
		r.writePlainln("%d\t%s\t%s\t%s", song.SongID, song.Title, song.MimeType,
			song.DateAdded.Format("2006-01-02"))
	}
	return nil
}

// SongsDelete removes a song from the library. Playlist entries pointing at
// the song become dangling and are filtered out on read.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := songIDArg(cmd)
	if err != nil {
		return err
	}

	songs, _, err := r.repos()
	if err != nil {
		return err
	}

	if err := songs.Delete(id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	r.logger.Info("song deleted", "id", id)
	return r.writePlainln("✓ deleted song %d", id)
}

func songIDArg(cmd *cli.Command) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid song id %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import audio files into the library",
		ArgsUsage: "<file> [<file> ...]",
		Action:    r.ImportSongs,
	}
}

func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Inspect and manage library songs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all songs",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "csv", Usage: "Output as CSV"},
				},
				Action: r.SongsList,
			},
			{
				Name:      "delete",
				Usage:     "Delete a song by id",
				ArgsUsage: "<song-id>",
				Action:    r.SongsDelete,
			},
		},
	}
}
