// Package ui implements the interactive terminal transport surface: a song
// list, playlist browsing, and a player bar driven by engine events.
//
// The UI is a consumer of the store and the playback engine; it never
// touches the media primitive directly.
package ui
