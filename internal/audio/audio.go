package audio

import (
	"math"
	"sync"
	"time"

	"github.com/apmusic/apmusic/internal/player"
)

// Player is a file-backed media primitive. One instance is created for the
// application and reused across tracks.
//
// Signals are always emitted from the ticker or probe goroutines, never
// from inside a control call, so subscribers may call back into the player
// freely.
type Player struct {
	mu       sync.Mutex
	signals  player.Signals
	source   string
	duration float64
	playing  bool
	playhead float64
	started  time.Time
	interval time.Duration
	stop     chan struct{}
	closed   bool
}

var _ player.Primitive = (*Player)(nil)

// NewPlayer creates a Player emitting progress signals every interval.
// A non-positive interval defaults to 500ms.
func NewPlayer(interval time.Duration) *Player {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	p := &Player{
		duration: math.NaN(),
		interval: interval,
		stop:     make(chan struct{}),
	}

	go p.run()
	return p
}

// Subscribe registers the signal handlers.
func (p *Player) Subscribe(signals player.Signals) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signals = signals
}

// Unsubscribe detaches the signal handlers.
func (p *Player) Unsubscribe() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signals = player.Signals{}
}

// Load assigns a new source, resetting position and duration. The duration
// probe runs in the background and emits the metadata signal when it
// resolves, unless the source has been replaced in the meantime.
func (p *Player) Load(source string) error {
	p.mu.Lock()
	p.source = source
	p.playing = false
	p.playhead = 0
	p.duration = math.NaN()
	p.mu.Unlock()

	go p.probe(source)
	return nil
}

// Play starts or resumes playback of the assigned source.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == "" || p.playing || p.closed {
		return nil
	}

	p.playing = true
	p.started = time.Now()
	return nil
}

// Pause freezes the playback position.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return nil
	}

	p.playhead += time.Since(p.started).Seconds()
	p.playing = false
	return nil
}

// Seek moves the playback position to the given time in seconds.
func (p *Player) Seek(position float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if position < 0 {
		position = 0
	}
	p.playhead = position
	p.started = time.Now()
	return nil
}

// Close stops the ticker goroutine. The player cannot be reused after.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	close(p.stop)
	return nil
}

// Position returns the current playback position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() float64 {
	if p.playing {
		return p.playhead + time.Since(p.started).Seconds()
	}
	return p.playhead
}

// run drives the periodic progress signal and end-of-track detection.
func (p *Player) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick snapshots state under the lock, then emits outside it so a signal
// handler can call back into the player without deadlocking.
func (p *Player) tick() {
	p.mu.Lock()

	if !p.playing || p.source == "" {
		p.mu.Unlock()
		return
	}

	source := p.source
	signals := p.signals
	position := p.positionLocked()

	ended := !math.IsNaN(p.duration) && position >= p.duration
	if ended {
		position = p.duration
		p.playhead = p.duration
		p.playing = false
	}

	p.mu.Unlock()

	if signals.Progress != nil {
		signals.Progress(source, position)
	}
	if ended && signals.Ended != nil {
		signals.Ended(source)
	}
}

// probe resolves the source's duration and emits the metadata signal.
func (p *Player) probe(source string) {
	duration, err := ProbeFunc(source)
	if err != nil {
		// Duration stays unknown; the engine treats NaN as "not loaded yet".
		return
	}

	p.mu.Lock()
	if p.source != source || p.closed {
		p.mu.Unlock()
		return
	}
	p.duration = duration
	signals := p.signals
	p.mu.Unlock()

	if signals.Metadata != nil {
		signals.Metadata(source, duration)
	}
}
