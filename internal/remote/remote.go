package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/apmusic/apmusic/internal/player"
	"github.com/apmusic/apmusic/internal/shared"
)

// Transport is the slice of the engine the remote surface drives. The
// inbound "play" command maps to Resume, matching lock-screen semantics.
type Transport interface {
	Resume() error
	Pause() error
	Next() error
	Prev() error
	Seek(position float64) error
	Status() player.Status
}

// Server serves remote transport commands over HTTP.
type Server struct {
	transport Transport
	logger    *log.Logger
	limiter   *rate.Limiter
	server    *http.Server
}

// NewServer creates a Server for the given transport. rateLimit caps
// commands per second; non-positive disables throttling.
func NewServer(cfg shared.RemoteConfig, transport Transport, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	s := &Server{
		transport: transport,
		logger:    logger,
		limiter:   limiter,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Routes builds the command router.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/transport/status", s.handleStatus).Methods(http.MethodGet)

	commands := r.PathPrefix("/transport").Subrouter()
	commands.Use(s.throttle)
	commands.HandleFunc("/play", s.command("play", func() error { return s.transport.Resume() })).Methods(http.MethodPost)
	commands.HandleFunc("/pause", s.command("pause", func() error { return s.transport.Pause() })).Methods(http.MethodPost)
	commands.HandleFunc("/next", s.command("next", func() error { return s.transport.Next() })).Methods(http.MethodPost)
	commands.HandleFunc("/prev", s.command("prev", func() error { return s.transport.Prev() })).Methods(http.MethodPost)
	commands.HandleFunc("/seek", s.handleSeek).Methods(http.MethodPost)

	// No /transport/seek-forward or /transport/seek-backward: relative
	// skip commands stay unbound.

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errs := make(chan error, 1)

	go func() {
		s.logger.Info("remote transport server listening", "addr", s.server.Addr)
		errs <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errs:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// throttle applies the command rate limit.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			commandsThrottled.Inc()
			http.Error(w, "too many commands", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// command wraps a transport operation in logging and metrics.
func (s *Server) command(name string, op func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op(); err != nil {
			s.logger.Warn("remote command failed", "command", name, "error", err)
			commandsTotal.WithLabelValues(name, "error").Inc()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		commandsTotal.WithLabelValues(name, "ok").Inc()
		s.writeStatus(w)
	}
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("position")
	if raw == "" {
		var body struct {
			Position *float64 `json:"position"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Position == nil {
			commandsTotal.WithLabelValues("seek", "error").Inc()
			http.Error(w, "position required", http.StatusBadRequest)
			return
		}
		raw = strconv.FormatFloat(*body.Position, 'f', -1, 64)
	}

	position, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(position) || position < 0 {
		commandsTotal.WithLabelValues("seek", "error").Inc()
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	if err := s.transport.Seek(position); err != nil {
		s.logger.Warn("remote command failed", "command", "seek", "error", err)
		commandsTotal.WithLabelValues("seek", "error").Inc()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	commandsTotal.WithLabelValues("seek", "ok").Inc()
	s.writeStatus(w)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeStatus(w)
}

// statusDoc is the wire form of the engine status. Duration is null until
// the track's metadata has loaded.
type statusDoc struct {
	SongID   *int64   `json:"song_id"`
	Title    string   `json:"title,omitempty"`
	Playing  bool     `json:"playing"`
	Progress float64  `json:"progress"`
	Duration *float64 `json:"duration"`
	Queue    int      `json:"queue_length"`
}

func (s *Server) writeStatus(w http.ResponseWriter) {
	status := s.transport.Status()

	doc := statusDoc{
		Playing:  status.Playing,
		Progress: status.Progress,
		Queue:    len(status.Queue),
	}
	if status.Song != nil {
		doc.SongID = &status.Song.SongID
		doc.Title = status.Song.Title
	}
	if !math.IsNaN(status.Duration) {
		doc.Duration = &status.Duration
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		s.logger.Warn("failed to write status", "error", err)
	}
}
