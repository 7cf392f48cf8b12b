// Package remote exposes the playback engine's transport operations as
// remote-invocable HTTP commands, the way OS lock-screen controls bind to
// a player.
//
// Each command maps 1:1 onto an engine operation: play, pause, next, prev,
// and seek to an absolute time. Relative skip-forward/skip-back commands
// are deliberately not exposed.
package remote
