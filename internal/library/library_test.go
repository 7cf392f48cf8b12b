package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apmusic/apmusic/internal/models"
)

type fakeStore struct {
	songs   []models.Song
	nextID  int64
	failOn  string
	failErr error
}

func (f *fakeStore) Create(song *models.Song, content []byte) error {
	if f.failOn != "" && song.Title == f.failOn {
		return f.failErr
	}
	f.nextID++
	song.SongID = f.nextID
	f.songs = append(f.songs, *song)
	return nil
}

func writeTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestImportFiles(t *testing.T) {
	t.Run("filters to audio only", func(t *testing.T) {
		dir := t.TempDir()
		song := writeTestFile(t, dir, "song1.mp3", []byte{0x01})
		photo := writeTestFile(t, dir, "photo.png", []byte{0x02})

		store := &fakeStore{}
		importer := NewImporter(store, nil)

		result, err := importer.ImportFiles([]string{song, photo})
		if err != nil {
			t.Fatalf("import failed: %v", err)
		}

		if len(result.Imported) != 1 {
			t.Fatalf("expected one imported song, got %d", len(result.Imported))
		}
		if result.Imported[0].Title != "song1" {
			t.Errorf("expected title 'song1', got %q", result.Imported[0].Title)
		}
		if len(result.Skipped) != 1 || result.Skipped[0] != photo {
			t.Errorf("expected photo.png to be skipped, got %v", result.Skipped)
		}
	})

	t.Run("keeps earlier imports when a later file fails", func(t *testing.T) {
		dir := t.TempDir()
		first := writeTestFile(t, dir, "first.mp3", []byte{0x01})
		missing := filepath.Join(dir, "missing.mp3")

		store := &fakeStore{}
		importer := NewImporter(store, nil)

		result, err := importer.ImportFiles([]string{first, missing})
		if err == nil {
			t.Fatal("expected a summarizing error")
		}

		if len(result.Imported) != 1 || result.Imported[0].Title != "first" {
			t.Errorf("expected first.mp3 to stay imported, got %v", result.Imported)
		}
		if len(result.Failures) != 1 {
			t.Errorf("expected one failure, got %v", result.Failures)
		}
	})

	t.Run("store failure recorded and batch continues", func(t *testing.T) {
		dir := t.TempDir()
		bad := writeTestFile(t, dir, "bad.mp3", []byte{0x01})
		good := writeTestFile(t, dir, "good.mp3", []byte{0x02})

		storeErr := errors.New("write rejected")
		store := &fakeStore{failOn: "bad", failErr: storeErr}
		importer := NewImporter(store, nil)

		result, err := importer.ImportFiles([]string{bad, good})
		if err == nil {
			t.Fatal("expected a summarizing error")
		}
		if !errors.Is(result.Failures[0].Err, storeErr) {
			t.Errorf("expected failure to carry the store error, got %v", result.Failures[0].Err)
		}
		if len(result.Imported) != 1 || result.Imported[0].Title != "good" {
			t.Errorf("expected good.mp3 imported despite earlier failure, got %v", result.Imported)
		}
	})
}
