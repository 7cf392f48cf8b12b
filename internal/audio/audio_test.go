package audio

import (
	"fmt"
	"testing"
	"time"

	"github.com/apmusic/apmusic/internal/player"
)

type signalRecorder struct {
	progress chan float64
	metadata chan float64
	ended    chan string
	sources  chan string
}

func newRecorder() *signalRecorder {
	return &signalRecorder{
		progress: make(chan float64, 100),
		metadata: make(chan float64, 10),
		ended:    make(chan string, 10),
		sources:  make(chan string, 100),
	}
}

func (r *signalRecorder) signals() player.Signals {
	return player.Signals{
		Progress: func(source string, position float64) {
			r.sources <- source
			r.progress <- position
		},
		Metadata: func(source string, duration float64) {
			r.metadata <- duration
		},
		Ended: func(source string) {
			r.ended <- source
		},
	}
}

func TestPlayerProgress(t *testing.T) {
	ProbeFunc = func(string) (float64, error) { return 0, fmt.Errorf("no duration") }
	defer func() { ProbeFunc = ProbeDuration }()

	p := NewPlayer(10 * time.Millisecond)
	defer p.Close()

	rec := newRecorder()
	p.Subscribe(rec.signals())

	if err := p.Load("track-a"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	var first, second float64
	select {
	case first = <-rec.progress:
	case <-time.After(time.Second):
		t.Fatal("no progress signal received")
	}
	select {
	case second = <-rec.progress:
	case <-time.After(time.Second):
		t.Fatal("no second progress signal received")
	}

	if second < first {
		t.Errorf("expected position to advance, got %v then %v", first, second)
	}

	if source := <-rec.sources; source != "track-a" {
		t.Errorf("expected signals tagged with 'track-a', got %q", source)
	}
}

func TestPlayerPauseFreezesPosition(t *testing.T) {
	ProbeFunc = func(string) (float64, error) { return 0, fmt.Errorf("no duration") }
	defer func() { ProbeFunc = ProbeDuration }()

	p := NewPlayer(10 * time.Millisecond)
	defer p.Close()

	if err := p.Load("track-a"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if err := p.Pause(); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	frozen := p.Position()
	time.Sleep(30 * time.Millisecond)
	if got := p.Position(); got != frozen {
		t.Errorf("expected position frozen at %v, got %v", frozen, got)
	}
}

func TestPlayerSeek(t *testing.T) {
	p := NewPlayer(time.Hour)
	defer p.Close()

	if err := p.Load("track-a"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := p.Seek(42); err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	if got := p.Position(); got != 42 {
		t.Errorf("expected position 42, got %v", got)
	}

	if err := p.Seek(-5); err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	if got := p.Position(); got != 0 {
		t.Errorf("expected negative seek clamped to 0, got %v", got)
	}
}

func TestPlayerMetadataAndEnded(t *testing.T) {
	ProbeFunc = func(string) (float64, error) { return 0.05, nil }
	defer func() { ProbeFunc = ProbeDuration }()

	p := NewPlayer(10 * time.Millisecond)
	defer p.Close()

	rec := newRecorder()
	p.Subscribe(rec.signals())

	if err := p.Load("track-a"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	select {
	case duration := <-rec.metadata:
		if duration != 0.05 {
			t.Errorf("expected duration 0.05, got %v", duration)
		}
	case <-time.After(time.Second):
		t.Fatal("no metadata signal received")
	}

	if err := p.Play(); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	select {
	case source := <-rec.ended:
		if source != "track-a" {
			t.Errorf("expected ended for 'track-a', got %q", source)
		}
	case <-time.After(time.Second):
		t.Fatal("no ended signal received")
	}
}

func TestProbeDuration(t *testing.T) {
	t.Run("rejects non-mp3", func(t *testing.T) {
		if _, err := ProbeDuration("/tmp/whatever.ogg"); err == nil {
			t.Error("expected error for non-mp3 source")
		}
	})

	t.Run("rejects missing file", func(t *testing.T) {
		if _, err := ProbeDuration("/tmp/does-not-exist.mp3"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
