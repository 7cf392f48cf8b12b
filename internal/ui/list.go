package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/apmusic/apmusic/internal/formatter"
	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/player"
)

// songItem adapts a [models.Song] to the [list.Item] interface.
type songItem struct {
	song models.Song
}

func (i songItem) Title() string { return i.song.Title }

func (i songItem) Description() string {
	return fmt.Sprintf("%s · added %s", i.song.MimeType, i.song.DateAdded.Format("2006-01-02"))
}

func (i songItem) FilterValue() string { return i.song.Title }

// playlistItem adapts a [models.Playlist] to the [list.Item] interface.
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) Title() string { return i.playlist.Name }

func (i playlistItem) Description() string {
	n := len(i.playlist.SongIDs)
	if n == 1 {
		return "1 song"
	}
	return fmt.Sprintf("%d songs", n)
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }

func newListModel(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#7D56F4")).
		BorderLeftForeground(lipgloss.Color("#7D56F4"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("#9A7FF5")).
		BorderLeftForeground(lipgloss.Color("#7D56F4"))

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.Styles.Title = styles.title
	return l
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, 0, len(songs))
	for _, song := range songs {
		items = append(items, songItem{song: song})
	}
	return items
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, 0, len(playlists))
	for _, playlist := range playlists {
		items = append(items, playlistItem{playlist: playlist})
	}
	return items
}

// playerBar renders the persistent status line: track title, transport
// state glyph and progress over duration.
func playerBar(status player.Status, width int) string {
	var line string
	switch {
	case status.Song == nil:
		line = "nothing playing"
	case status.Playing:
		line = fmt.Sprintf("▶ %s  %s / %s", status.Song.Title,
			formatter.Duration(status.Progress), formatter.Duration(status.Duration))
	default:
		line = fmt.Sprintf("⏸ %s  %s / %s", status.Song.Title,
			formatter.Duration(status.Progress), formatter.Duration(status.Duration))
	}

	bar := styles.bar
	if width > 0 {
		bar = bar.Width(width)
	}
	return bar.Render(line)
}
