// Package audio provides the file-backed media primitive the playback
// engine drives.
//
// The primitive does not decode audio for output; it tracks the playback
// position against the wall clock and probes MP3 payloads for their
// duration, emitting the progress, metadata, and ended signals the engine
// subscribes to.
package audio
