package player

// Signals are the typed handlers registered on a [Primitive]. Each signal
// carries the source it was observed for, so a consumer can discard signals
// that arrive after the source has been replaced.
type Signals struct {
	// Progress reports the playback position in seconds, periodically while
	// playing.
	Progress func(source string, position float64)
	// Metadata reports the track duration in seconds once it is known.
	Metadata func(source string, duration float64)
	// Ended fires when playback reaches the end of the source.
	Ended func(source string)
}

// Primitive is the host platform's media playback object. Exactly one
// instance backs an [Engine] and is reused across tracks, never recreated
// per track.
//
// Implementations must deliver signals asynchronously, never from inside a
// control call on the caller's stack.
type Primitive interface {
	// Subscribe registers the signal handlers. Called once at engine
	// construction; Unsubscribe detaches them at teardown.
	Subscribe(signals Signals)
	Unsubscribe()

	// Load assigns a new playback source, resetting position and duration.
	Load(source string) error
	Play() error
	Pause() error
	// Seek moves the playback position to the given time in seconds.
	Seek(position float64) error
	Close() error
}

// Handle is a transient, revocable reference to a track's payload, usable
// as a primitive source. The store's content handles satisfy this.
type Handle interface {
	SongID() int64
	Path() string
	Release() error
}

// ContentSource lends playable handles for stored songs.
type ContentSource interface {
	OpenContent(id int64) (Handle, error)
}
