// Package repositories provides the persistence layer for songs and
// playlists on SQLite.
//
// Repositories:
//   - [SongRepository] : song CRUD, payload storage, and transient content handles
//   - [PlaylistRepository] : playlist lookup and membership operations
//
// Ids are monotonic integers drawn from per-table sequence tables inside
// the same transaction as the insert, so assignment is atomic. Operations
// that remove things (song delete, membership removal) are idempotent:
// removing something that is not there succeeds.
package repositories
