package formatter

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/apmusic/apmusic/internal/models"
)

func TestDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 7.8, want: "0:07"},
		{name: "minutes", seconds: 187, want: "3:07"},
		{name: "over an hour", seconds: 3723, want: "62:03"},
		{name: "unknown", seconds: math.NaN(), want: "--:--"},
		{name: "negative", seconds: -5, want: "--:--"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.seconds); got != tt.want {
				t.Errorf("Duration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSongsToCSV(t *testing.T) {
	songs := []models.Song{
		{SongID: 1, Title: "song1", MimeType: "audio/mpeg", DateAdded: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{SongID: 2, Title: "song, with comma", MimeType: "audio/wav", DateAdded: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)},
	}

	out, err := SongsToCSV(songs)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ID,Title,MimeType,DateAdded" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], `"song, with comma"`) {
		t.Errorf("expected quoted title, got %q", lines[2])
	}
}
