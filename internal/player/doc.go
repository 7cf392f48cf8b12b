// Package player implements the playback engine: the state machine that
// owns the current track, the play queue, and the single media primitive.
//
// The engine is the only writer to the primitive's source, position, and
// playback state. It borrows transient content handles from the store for
// the active track and releases each one exactly once, never while it is
// still the assigned source.
package player
