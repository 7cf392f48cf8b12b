package repositories

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/shared"
)

// SongRepository handles song persistence and payload access.
//
// The audio payload is stored as a BLOB next to the metadata; callers that
// need a playback source borrow a transient [Handle] instead of reading the
// payload directly.
type SongRepository struct {
	db        *sql.DB
	handleDir string
}

var _ models.Repository[models.Song] = (*SongRepository)(nil)

// NewSongRepository creates a SongRepository. handleDir is where transient
// handles are materialized; empty means the system temp directory.
func NewSongRepository(db *sql.DB, handleDir string) *SongRepository {
	if handleDir == "" {
		handleDir = os.TempDir()
	}
	return &SongRepository{db: db, handleDir: handleDir}
}

// Create persists a new song together with its payload, assigning the next
// monotonic id inside the same transaction as the insert.
func (r *SongRepository) Create(song *models.Song, content []byte) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStorage, err)
	}
	defer tx.Rollback()

	id, err := nextSequenceTx(tx, "songs")
	if err != nil {
		return fmt.Errorf("%w: failed to generate id: %v", shared.ErrStorage, err)
	}

	query := `
		INSERT INTO songs (id, title, mime_type, content, date_added)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query, id, song.Title, song.MimeType, content, song.DateAdded)
	if err != nil {
		return fmt.Errorf("%w: failed to insert song: %v", shared.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", shared.ErrStorage, err)
	}

	song.SongID = id
	return nil
}

// Get retrieves a song's metadata by id.
func (r *SongRepository) Get(id int64) (models.Song, error) {
	query := `
		SELECT id, title, mime_type, date_added
		FROM songs
		WHERE id = ?
	`

	var song models.Song
	err := r.db.QueryRow(query, id).Scan(&song.SongID, &song.Title, &song.MimeType, &song.DateAdded)
	if err == sql.ErrNoRows {
		return models.Song{}, fmt.Errorf("%w: id %d", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("%w: failed to scan song: %v", shared.ErrStorage, err)
	}

	return song, nil
}

// List retrieves all songs. The store makes no ordering promise; callers
// sort for presentation.
func (r *SongRepository) List() ([]models.Song, error) {
	query := `
		SELECT id, title, mime_type, date_added
		FROM songs
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query songs: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.SongID, &song.Title, &song.MimeType, &song.DateAdded); err != nil {
			return nil, fmt.Errorf("%w: failed to scan song: %v", shared.ErrStorage, err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStorage, err)
	}

	return songs, nil
}

// Delete removes a song by id. Deleting an id that does not exist succeeds;
// playlist membership is not cascaded (dangling ids are filtered when
// membership is read).
func (r *SongRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete song: %v", shared.ErrStorage, err)
	}
	return nil
}

// OpenContent materializes a transient handle for the song's payload.
//
// The handle is a temp file usable as a playback source; the caller owns it
// and must call [Handle.Release] when the payload is no longer the active
// source. The handle is never persisted.
func (r *SongRepository) OpenContent(id int64) (*Handle, error) {
	var mimeType string
	var content []byte
	err := r.db.QueryRow("SELECT mime_type, content FROM songs WHERE id = ?", id).Scan(&mimeType, &content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read content: %v", shared.ErrStorage, err)
	}

	name := shared.GenerateToken() + extensionFor(mimeType)
	path := filepath.Join(r.handleDir, name)

	if err := os.WriteFile(path, content, 0600); err != nil {
		return nil, fmt.Errorf("%w: failed to materialize handle: %v", shared.ErrStorage, err)
	}

	return &Handle{songID: id, mimeType: mimeType, path: path, opened: time.Now()}, nil
}

// extensionFor maps a mime type to a file extension for handle naming.
func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mp4", "audio/x-m4a":
		return ".m4a"
	case "audio/aac":
		return ".aac"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".bin"
	}
}

// Handle is a transient, revocable reference to a song's payload,
// materialized as a temp file the media primitive can use as a source.
type Handle struct {
	songID   int64
	mimeType string
	path     string
	opened   time.Time
	released bool
}

// SongID returns the id of the song this handle belongs to.
func (h *Handle) SongID() int64 { return h.songID }

// MimeType returns the payload's declared mime type.
func (h *Handle) MimeType() string { return h.mimeType }

// Path returns the filesystem path usable as a playback source.
func (h *Handle) Path() string { return h.path }

// Released reports whether Release has been called.
func (h *Handle) Released() bool { return h.released }

// Release revokes the handle, removing the backing temp file. Releasing
// twice is a no-op; the file is removed exactly once.
func (h *Handle) Release() error {
	if h.released {
		return nil
	}
	h.released = true

	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release handle: %w", err)
	}
	return nil
}
