package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Song represents a stored audio track.
//
// The binary payload lives in the store; Song carries only metadata. The
// playback engine borrows a transient handle to the payload when the song
// becomes the active track and never persists that handle.
type Song struct {
	SongID    int64
	Title     string
	MimeType  string
	DateAdded time.Time
}

var _ Model = Song{}

// NewSong builds a Song for the given filename and declared MIME type.
// The title is the filename with its extension stripped; DateAdded is set
// once here and never changes.
func NewSong(filename, mimeType string) Song {
	base := filepath.Base(filename)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	return Song{
		Title:     title,
		MimeType:  mimeType,
		DateAdded: time.Now(),
	}
}

func (s Song) ID() int64            { return s.SongID }
func (s Song) CreatedAt() time.Time { return s.DateAdded }

// Validate checks the song's metadata.
func (s Song) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("song title must not be empty")
	}
	if s.MimeType == "" {
		return fmt.Errorf("song mime type must not be empty")
	}
	return nil
}
