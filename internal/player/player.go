package player

import (
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/repositories"
	"github.com/apmusic/apmusic/internal/shared"
)

// Engine coordinates the media primitive, the current track, and the play
// queue. One instance lives for the application's run; the presentation
// layer receives it explicitly and never mutates the primitive directly.
type Engine struct {
	mu     sync.Mutex
	prim   Primitive
	source ContentSource
	logger *log.Logger

	current  *models.Song
	handle   Handle
	playing  bool
	queue    []models.Song
	progress float64
	duration float64

	subs   map[*Subscription]struct{}
	closed bool
}

// NewEngine creates an Engine around the given primitive and content
// source. Signal handlers are registered here, once, as stable method
// references; they stay valid for the engine's whole life.
func NewEngine(prim Primitive, source ContentSource, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	e := &Engine{
		prim:     prim,
		source:   source,
		logger:   logger,
		duration: math.NaN(),
		subs:     map[*Subscription]struct{}{},
	}

	prim.Subscribe(Signals{
		Progress: e.handleProgress,
		Metadata: e.handleMetadata,
		Ended:    e.handleEnded,
	})

	return e
}

// Status is a point-in-time snapshot of the engine state.
type Status struct {
	Song     *models.Song
	Playing  bool
	Progress float64
	Duration float64
	Queue    []models.Song
}

// Status returns a snapshot of the current state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	queue := make([]models.Song, len(e.queue))
	copy(queue, e.queue)

	var song *models.Song
	if e.current != nil {
		s := *e.current
		song = &s
	}

	return Status{
		Song:     song,
		Playing:  e.playing,
		Progress: e.progress,
		Duration: e.duration,
		Queue:    queue,
	}
}

// Play starts playback of song. A non-empty list replaces the queue; with
// an empty list, a song that is not already a queue member becomes the
// queue's only element so playback never runs outside any queue.
//
// Requesting the song that is already current toggles playback in place —
// pause if playing, resume if paused — without reloading the payload.
func (e *Engine) Play(song models.Song, list []models.Song) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	if len(list) > 0 {
		e.queue = make([]models.Song, len(list))
		copy(e.queue, list)
		e.publishLocked(EventQueue)
	} else if !e.inQueueLocked(song.SongID) {
		e.queue = []models.Song{song}
		e.publishLocked(EventQueue)
	}

	if e.current != nil && e.current.SongID == song.SongID {
		if e.playing {
			return e.pauseLocked()
		}
		return e.resumeLocked()
	}

	return e.switchTrackLocked(song)
}

// Pause pauses playback. No-op when already paused or idle.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pauseLocked()
}

// Resume restarts paused playback. No-op when there is no current song.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resumeLocked()
}

// Next advances to the next queue entry, wrapping to the first entry past
// the end. No-op when idle or the queue is empty.
func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stepLocked(1)
}

// Prev steps back to the previous queue entry, wrapping to the last entry
// from the front. No-op when idle or the queue is empty.
func (e *Engine) Prev() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stepLocked(-1)
}

// Seek moves the playback position to the given time in seconds. The
// progress value updates immediately rather than waiting for the
// primitive's next progress signal. No-op when there is no current song.
func (e *Engine) Seek(position float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || e.closed {
		return nil
	}

	if err := e.prim.Seek(position); err != nil {
		return fmt.Errorf("seek failed: %w", err)
	}

	e.progress = position
	e.publishLocked(EventProgress)
	return nil
}

// Close tears the engine down: detaches signal handlers, stops the
// primitive, releases the active handle, and closes all subscriptions.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	e.prim.Unsubscribe()
	err := e.prim.Close()

	if e.handle != nil {
		if rerr := e.handle.Release(); rerr != nil {
			e.logger.Warn("failed to release handle", "error", rerr)
		}
		e.handle = nil
	}

	for sub := range e.subs {
		sub.closed = true
		close(sub.ch)
		delete(e.subs, sub)
	}

	return err
}

func (e *Engine) pauseLocked() error {
	if e.current == nil || !e.playing || e.closed {
		return nil
	}

	if err := e.prim.Pause(); err != nil {
		return fmt.Errorf("pause failed: %w", err)
	}

	e.playing = false
	e.publishLocked(EventState)
	return nil
}

func (e *Engine) resumeLocked() error {
	if e.current == nil || e.playing || e.closed {
		return nil
	}

	if err := e.prim.Play(); err != nil {
		return fmt.Errorf("resume failed: %w", err)
	}

	e.playing = true
	e.publishLocked(EventState)
	return nil
}

// stepLocked moves through the queue by delta, wrapping on both ends.
func (e *Engine) stepLocked(delta int) error {
	if e.current == nil || len(e.queue) == 0 || e.closed {
		return nil
	}

	index := -1
	for i, s := range e.queue {
		if s.SongID == e.current.SongID {
			index = i
			break
		}
	}
	if index < 0 {
		index = 0
	}

	next := (index + delta + len(e.queue)) % len(e.queue)
	return e.switchTrackLocked(e.queue[next])
}

// switchTrackLocked loads a different track. Handle order matters: the new
// handle is acquired and assigned before the old one is released, so the
// primitive always has a valid source.
func (e *Engine) switchTrackLocked(song models.Song) error {
	handle, err := e.source.OpenContent(song.SongID)
	if err != nil {
		return fmt.Errorf("failed to acquire content handle: %w", err)
	}

	if err := e.prim.Load(handle.Path()); err != nil {
		handle.Release()
		return fmt.Errorf("failed to load source: %w", err)
	}

	if err := e.prim.Play(); err != nil {
		handle.Release()
		return fmt.Errorf("failed to start playback: %w", err)
	}

	old := e.handle
	e.handle = handle
	if old != nil {
		if err := old.Release(); err != nil {
			e.logger.Warn("failed to release previous handle", "error", err)
		}
	}

	s := song
	e.current = &s
	e.playing = true
	e.progress = 0
	e.duration = math.NaN()

	e.logger.Debug("track switched", "id", song.SongID, "title", song.Title)
	e.publishLocked(EventTrack)
	return nil
}

func (e *Engine) inQueueLocked(songID int64) bool {
	for _, s := range e.queue {
		if s.SongID == songID {
			return true
		}
	}
	return false
}

// handleProgress receives periodic position signals from the primitive.
// Signals for a source that is no longer active are stale and discarded.
func (e *Engine) handleProgress(source string, position float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activeSourceLocked(source) {
		return
	}

	e.progress = position
	e.publishLocked(EventProgress)
}

// handleMetadata receives the duration once the primitive knows it.
func (e *Engine) handleMetadata(source string, duration float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activeSourceLocked(source) {
		return
	}

	e.duration = duration
	e.publishLocked(EventDuration)
}

// handleEnded advances to the next track, exactly as Next does.
func (e *Engine) handleEnded(source string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activeSourceLocked(source) {
		return
	}

	if err := e.stepLocked(1); err != nil {
		e.logger.Warn("failed to advance after track ended", "error", err)
	}
}

func (e *Engine) activeSourceLocked(source string) bool {
	return !e.closed && e.handle != nil && e.handle.Path() == source
}

// StoreSource adapts the song repository to [ContentSource].
type StoreSource struct {
	Songs *repositories.SongRepository
}

func (s StoreSource) OpenContent(id int64) (Handle, error) {
	return s.Songs.OpenContent(id)
}
