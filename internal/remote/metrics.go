package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apmusic_remote_commands_total",
			Help: "Total number of remote transport commands received",
		},
		[]string{"command", "status"},
	)

	commandsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apmusic_remote_commands_throttled_total",
			Help: "Remote transport commands rejected by the rate limiter",
		},
	)
)
