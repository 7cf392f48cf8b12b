package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/shared"
)

// PlaylistRepository handles playlist persistence and membership.
//
// Playlists are keyed by name for the add path: adding a song to a name
// that does not exist yet creates the playlist and adds the song in one
// transaction, so interleaved callers can never produce two playlists with
// the same name (a UNIQUE index on name backs this up).
type PlaylistRepository struct {
	db *sql.DB
}

var _ models.Repository[models.Playlist] = (*PlaylistRepository)(nil)

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// AddSong adds songID to the playlist with the given name, creating the
// playlist first if it does not exist. Adding a song that is already a
// member is a no-op. Returns the playlist id.
//
// The lookup-then-create/append sequence runs in a single transaction; an
// interruption leaves either the full effect or none.
func (r *PlaylistRepository) AddSong(name string, songID int64) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, shared.ErrEmptyName
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStorage, err)
	}
	defer tx.Rollback()

	var playlistID int64
	err = tx.QueryRow("SELECT id FROM playlists WHERE name = ?", name).Scan(&playlistID)
	switch {
	case err == sql.ErrNoRows:
		playlistID, err = nextSequenceTx(tx, "playlists")
		if err != nil {
			return 0, fmt.Errorf("%w: failed to generate id: %v", shared.ErrStorage, err)
		}
		_, err = tx.Exec(
			"INSERT INTO playlists (id, name, created_at) VALUES (?, ?, ?)",
			playlistID, name, time.Now(),
		)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to create playlist: %v", shared.ErrStorage, err)
		}
	case err != nil:
		return 0, fmt.Errorf("%w: failed to look up playlist: %v", shared.ErrStorage, err)
	}

	_, err = tx.Exec(
		"INSERT OR IGNORE INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)",
		playlistID, songID,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to add song to playlist: %v", shared.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: failed to commit: %v", shared.ErrStorage, err)
	}

	return playlistID, nil
}

// RemoveSong removes songID from the playlist's membership. Removing a
// song that is not a member succeeds.
func (r *PlaylistRepository) RemoveSong(playlistID, songID int64) error {
	_, err := r.db.Exec(
		"DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?",
		playlistID, songID,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to remove song from playlist: %v", shared.ErrStorage, err)
	}
	return nil
}

// Get retrieves a playlist by id, including its membership.
func (r *PlaylistRepository) Get(id int64) (models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.QueryRow(
		"SELECT id, name, created_at FROM playlists WHERE id = ?", id,
	).Scan(&playlist.PlaylistID, &playlist.Name, &playlist.Created)
	if err == sql.ErrNoRows {
		return models.Playlist{}, fmt.Errorf("%w: id %d", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return models.Playlist{}, fmt.Errorf("%w: failed to scan playlist: %v", shared.ErrStorage, err)
	}

	songIDs, err := r.songIDs(id)
	if err != nil {
		return models.Playlist{}, err
	}
	playlist.SongIDs = songIDs

	return playlist, nil
}

// GetByName retrieves a playlist by its unique name.
func (r *PlaylistRepository) GetByName(name string) (models.Playlist, error) {
	var id int64
	err := r.db.QueryRow("SELECT id FROM playlists WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return models.Playlist{}, fmt.Errorf("%w: name %q", shared.ErrPlaylistNotFound, name)
	}
	if err != nil {
		return models.Playlist{}, fmt.Errorf("%w: failed to look up playlist: %v", shared.ErrStorage, err)
	}
	return r.Get(id)
}

// List retrieves all playlists with their membership.
func (r *PlaylistRepository) List() ([]models.Playlist, error) {
	rows, err := r.db.Query("SELECT id, name, created_at FROM playlists ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query playlists: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.PlaylistID, &playlist.Name, &playlist.Created); err != nil {
			return nil, fmt.Errorf("%w: failed to scan playlist: %v", shared.ErrStorage, err)
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStorage, err)
	}

	for i := range playlists {
		songIDs, err := r.songIDs(playlists[i].PlaylistID)
		if err != nil {
			return nil, err
		}
		playlists[i].SongIDs = songIDs
	}

	return playlists, nil
}

// Delete removes a playlist and its membership rows. Idempotent.
//
// Not reachable from the transport surface; kept for library maintenance
// from the CLI.
func (r *PlaylistRepository) Delete(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM playlist_songs WHERE playlist_id = ?", id); err != nil {
		return fmt.Errorf("%w: failed to delete membership: %v", shared.ErrStorage, err)
	}
	if _, err := tx.Exec("DELETE FROM playlists WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: failed to delete playlist: %v", shared.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", shared.ErrStorage, err)
	}
	return nil
}

// Songs resolves the playlist's membership against the song set. Ids whose
// song has been deleted are silently dropped rather than surfaced as
// errors or holes.
func (r *PlaylistRepository) Songs(playlistID int64) ([]models.Song, error) {
	query := `
		SELECT s.id, s.title, s.mime_type, s.date_added
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = ?
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query playlist songs: %v", shared.ErrStorage, err)
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

// songIDs returns the raw membership for a playlist, dangling ids included.
func (r *PlaylistRepository) songIDs(playlistID int64) ([]int64, error) {
	rows, err := r.db.Query("SELECT song_id FROM playlist_songs WHERE playlist_id = ?", playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query membership: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: failed to scan song id: %v", shared.ErrStorage, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStorage, err)
	}

	return ids, nil
}
