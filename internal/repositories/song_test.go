package repositories

import (
	"errors"
	"os"
	"testing"

	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/shared"
)

func addTestSong(t *testing.T, repo *SongRepository, filename string, content []byte) models.Song {
	t.Helper()

	song := models.NewSong(filename, "audio/mpeg")
	if err := repo.Create(&song, content); err != nil {
		t.Fatalf("failed to create song %s: %v", filename, err)
	}
	return song
}

func TestSongRepository(t *testing.T) {
	t.Run("Create assigns unique monotonic ids", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongRepository(db, t.TempDir())

		a := addTestSong(t, repo, "a.mp3", []byte{0x01})
		b := addTestSong(t, repo, "b.mp3", []byte{0x02})

		if a.SongID == 0 || b.SongID == 0 {
			t.Error("expected ids to be assigned at creation")
		}
		if b.SongID <= a.SongID {
			t.Errorf("expected monotonic ids, got %d then %d", a.SongID, b.SongID)
		}
	})

	t.Run("List returns exactly the non-deleted songs", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongRepository(db, t.TempDir())

		a := addTestSong(t, repo, "a.mp3", []byte{0x01})
		b := addTestSong(t, repo, "b.mp3", []byte{0x02})
		c := addTestSong(t, repo, "c.mp3", []byte{0x03})

		if err := repo.Delete(b.SongID); err != nil {
			t.Fatalf("failed to delete song: %v", err)
		}

		songs, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}

		ids := map[int64]bool{}
		for _, s := range songs {
			if ids[s.SongID] {
				t.Errorf("duplicate id in list: %d", s.SongID)
			}
			ids[s.SongID] = true
		}

		if len(songs) != 2 || !ids[a.SongID] || !ids[c.SongID] || ids[b.SongID] {
			t.Errorf("expected exactly songs %d and %d, got %v", a.SongID, c.SongID, ids)
		}
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongRepository(db, t.TempDir())

		song := addTestSong(t, repo, "a.mp3", []byte{0x01})

		if err := repo.Delete(song.SongID); err != nil {
			t.Fatalf("first delete failed: %v", err)
		}
		if err := repo.Delete(song.SongID); err != nil {
			t.Errorf("second delete should succeed, got %v", err)
		}
		if err := repo.Delete(9999); err != nil {
			t.Errorf("deleting unknown id should succeed, got %v", err)
		}
	})

	t.Run("Get returns not found for unknown id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongRepository(db, t.TempDir())

		_, err := repo.Get(42)
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("OpenContent materializes the payload", func(t *testing.T) {
		db := setupTestDB(t)
		dir := t.TempDir()
		repo := NewSongRepository(db, dir)

		payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		song := addTestSong(t, repo, "a.mp3", payload)

		handle, err := repo.OpenContent(song.SongID)
		if err != nil {
			t.Fatalf("failed to open content: %v", err)
		}

		data, err := os.ReadFile(handle.Path())
		if err != nil {
			t.Fatalf("failed to read handle file: %v", err)
		}
		if string(data) != string(payload) {
			t.Errorf("handle content mismatch: got %v, want %v", data, payload)
		}
		if handle.SongID() != song.SongID {
			t.Errorf("expected handle song id %d, got %d", song.SongID, handle.SongID())
		}
	})

	t.Run("Release removes the temp file exactly once", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongRepository(db, t.TempDir())

		song := addTestSong(t, repo, "a.mp3", []byte{0x01})

		handle, err := repo.OpenContent(song.SongID)
		if err != nil {
			t.Fatalf("failed to open content: %v", err)
		}

		if err := handle.Release(); err != nil {
			t.Fatalf("release failed: %v", err)
		}
		if _, err := os.Stat(handle.Path()); !os.IsNotExist(err) {
			t.Error("expected handle file to be removed")
		}
		if !handle.Released() {
			t.Error("expected handle to report released")
		}

		if err := handle.Release(); err != nil {
			t.Errorf("second release should be a no-op, got %v", err)
		}
	})

	t.Run("OpenContent unknown id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongRepository(db, t.TempDir())

		_, err := repo.OpenContent(77)
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})
}
