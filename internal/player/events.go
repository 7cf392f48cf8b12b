package player

import "github.com/apmusic/apmusic/internal/models"

// EventKind enumerates engine state-change notifications.
type EventKind int

const (
	// EventTrack fires when the current song changes.
	EventTrack EventKind = iota
	// EventState fires when playback starts or pauses.
	EventState
	// EventProgress fires as the playback position advances.
	EventProgress
	// EventDuration fires when the current track's duration becomes known.
	EventDuration
	// EventQueue fires when the queue is replaced.
	EventQueue
)

// Event is a snapshot of the engine state at the moment of a change.
type Event struct {
	Kind     EventKind
	Song     *models.Song
	Playing  bool
	Progress float64
	Duration float64
}

// Subscription receives engine events on a buffered channel. Events are
// dropped rather than blocking the engine when a consumer falls behind.
type Subscription struct {
	engine *Engine
	ch     chan Event
	closed bool
}

// Events returns the channel events are delivered on.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Close detaches the subscription from the engine and closes the channel.
func (s *Subscription) Close() {
	s.engine.unsubscribe(s)
}

// Subscribe registers a new consumer of engine events.
func (e *Engine) Subscribe() *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := &Subscription{engine: e, ch: make(chan Event, 64)}
	e.subs[sub] = struct{}{}
	return sub
}

func (e *Engine) unsubscribe(sub *Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sub.closed {
		return
	}
	sub.closed = true
	delete(e.subs, sub)
	close(sub.ch)
}

// publishLocked delivers an event snapshot to all subscribers. Callers hold
// the engine lock.
func (e *Engine) publishLocked(kind EventKind) {
	event := Event{
		Kind:     kind,
		Song:     e.current,
		Playing:  e.playing,
		Progress: e.progress,
		Duration: e.duration,
	}

	for sub := range e.subs {
		select {
		case sub.ch <- event:
		default:
		}
	}
}
