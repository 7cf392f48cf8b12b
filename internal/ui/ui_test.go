package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/player"
)

func TestSongItem(t *testing.T) {
	item := songItem{song: models.Song{
		SongID:    4,
		Title:     "song4",
		MimeType:  "audio/mpeg",
		DateAdded: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}}

	if item.Title() != "song4" {
		t.Errorf("unexpected title %q", item.Title())
	}
	if item.FilterValue() != "song4" {
		t.Errorf("unexpected filter value %q", item.FilterValue())
	}
	if !strings.Contains(item.Description(), "audio/mpeg") {
		t.Errorf("description missing mime type: %q", item.Description())
	}
	if !strings.Contains(item.Description(), "2025-06-01") {
		t.Errorf("description missing date: %q", item.Description())
	}
}

func TestPlaylistItem(t *testing.T) {
	t.Run("singular", func(t *testing.T) {
		item := playlistItem{playlist: models.Playlist{Name: "focus", SongIDs: []int64{1}}}
		if item.Description() != "1 song" {
			t.Errorf("unexpected description %q", item.Description())
		}
	})

	t.Run("plural", func(t *testing.T) {
		item := playlistItem{playlist: models.Playlist{Name: "focus", SongIDs: []int64{1, 2, 3}}}
		if item.Description() != "3 songs" {
			t.Errorf("unexpected description %q", item.Description())
		}
		if item.FilterValue() != "focus" {
			t.Errorf("unexpected filter value %q", item.FilterValue())
		}
	})
}

func TestPlayerBar(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		bar := playerBar(player.Status{Duration: math.NaN()}, 0)
		if !strings.Contains(bar, "nothing playing") {
			t.Errorf("expected idle bar, got %q", bar)
		}
	})

	t.Run("playing", func(t *testing.T) {
		song := models.Song{SongID: 1, Title: "song1"}
		bar := playerBar(player.Status{Song: &song, Playing: true, Progress: 67, Duration: 187}, 0)
		if !strings.Contains(bar, "song1") {
			t.Errorf("bar missing title: %q", bar)
		}
		if !strings.Contains(bar, "1:07 / 3:07") {
			t.Errorf("bar missing progress: %q", bar)
		}
	})

	t.Run("paused with unknown duration", func(t *testing.T) {
		song := models.Song{SongID: 2, Title: "song2"}
		bar := playerBar(player.Status{Song: &song, Progress: 3, Duration: math.NaN()}, 0)
		if !strings.Contains(bar, "0:03 / --:--") {
			t.Errorf("bar missing placeholder duration: %q", bar)
		}
	})
}
