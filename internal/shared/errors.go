package shared

import "fmt"

var (
	// Storage errors
	ErrStorage        = fmt.Errorf("storage failure")
	ErrStorageClosed  = fmt.Errorf("storage unavailable")
	ErrMigrationError = fmt.Errorf("schema upgrade failed")

	// Lookup errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrEmptyName       = fmt.Errorf("playlist name must not be blank")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Playback errors
	ErrNoSource = fmt.Errorf("no playback source assigned")

	// Import errors
	ErrImportFailed = fmt.Errorf("import failed")
)
