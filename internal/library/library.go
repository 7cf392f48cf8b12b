package library

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/shared"
)

// SongStore is the slice of the store the importer writes through.
type SongStore interface {
	Create(song *models.Song, content []byte) error
}

// FileFailure records one file that could not be imported.
type FileFailure struct {
	Path string
	Err  error
}

// ImportResult summarizes an import batch.
type ImportResult struct {
	Imported []models.Song
	Skipped  []string
	Failures []FileFailure
}

// Importer loads audio files into the store.
type Importer struct {
	store  SongStore
	logger *log.Logger
}

// NewImporter creates an Importer writing through the given store.
func NewImporter(store SongStore, logger *log.Logger) *Importer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Importer{store: store, logger: logger}
}

// ImportFiles imports the given paths, keeping only audio files.
//
// Non-audio files are silently skipped. A file that fails to read or
// persist is recorded and the batch continues; songs imported earlier in
// the batch are never rolled back. When any file failed, the result is
// returned together with a single error summarizing the failures.
func (i *Importer) ImportFiles(paths []string) (*ImportResult, error) {
	result := &ImportResult{}

	for _, path := range paths {
		declared := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))

		if !IsAudio(path, declared) {
			i.logger.Debug("skipping non-audio file", "path", path)
			result.Skipped = append(result.Skipped, path)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			i.logger.Warn("failed to read file", "path", path, "error", err)
			result.Failures = append(result.Failures, FileFailure{Path: path, Err: err})
			continue
		}

		song := models.NewSong(path, MimeFor(path, declared))
		if err := i.store.Create(&song, content); err != nil {
			i.logger.Warn("failed to store song", "path", path, "error", err)
			result.Failures = append(result.Failures, FileFailure{Path: path, Err: err})
			continue
		}

		i.logger.Info("imported song", "id", song.SongID, "title", song.Title)
		result.Imported = append(result.Imported, song)
	}

	if len(result.Failures) > 0 {
		return result, fmt.Errorf("%w: %d of %d files failed (first: %s: %v)",
			shared.ErrImportFailed,
			len(result.Failures),
			len(paths),
			result.Failures[0].Path,
			result.Failures[0].Err,
		)
	}

	return result, nil
}
