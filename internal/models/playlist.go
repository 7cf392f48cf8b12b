package models

import (
	"fmt"
	"strings"
	"time"
)

// Playlist is a named collection of song ids. Names are unique across the
// library; membership is a set, so adding a song twice is a no-op.
type Playlist struct {
	PlaylistID int64
	Name       string
	SongIDs    []int64
	Created    time.Time
}

var _ Model = Playlist{}

// NewPlaylist builds a Playlist with the given name.
func NewPlaylist(name string) Playlist {
	return Playlist{
		Name:    name,
		Created: time.Now(),
	}
}

func (p Playlist) ID() int64            { return p.PlaylistID }
func (p Playlist) CreatedAt() time.Time { return p.Created }

// Validate rejects blank playlist names.
func (p Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist name must not be blank")
	}
	return nil
}

// HasSong reports whether the song id is a member of this playlist.
func (p Playlist) HasSong(songID int64) bool {
	for _, id := range p.SongIDs {
		if id == songID {
			return true
		}
	}
	return false
}
