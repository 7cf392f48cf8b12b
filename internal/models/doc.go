// Package models defines the data model for the music library.
//
// Entities:
//   - [Song] : an imported audio track (metadata + binary payload owned by the store)
//   - [Playlist] : a named, duplicate-free collection of song ids
//
// Both carry store-assigned monotonic integer ids. The [Repository]
// interface describes the persistence contract implemented in the
// repositories package.
package models
