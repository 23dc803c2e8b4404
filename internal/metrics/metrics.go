package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ttt"

// Metrics groups the collectors of the service. A nil *Metrics records nothing.
type Metrics struct {
	moves          *prometheus.CounterVec
	gamesFinished  *prometheus.CounterVec
	matchmaking    *prometheus.CounterVec
	leaderboardWin prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New - creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	that := &Metrics{
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "moves_total", Help: "Move attempts by result"},
			[]string{"result"},
		),
		gamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "games_finished_total", Help: "Finished rounds by outcome"},
			[]string{"outcome"},
		),
		matchmaking: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "matchmaking_total", Help: "Pairing requests by outcome"},
			[]string{"outcome"},
		),
		leaderboardWin: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "leaderboard_wins_total", Help: "Recorded leaderboard wins"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
			[]string{"method", "route", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(
		that.moves,
		that.gamesFinished,
		that.matchmaking,
		that.leaderboardWin,
		that.httpRequests,
		that.httpDuration,
	)

	return that
}

// Move - result is "accepted" or the rejection reason.
func (that *Metrics) Move(result string) {
	if that == nil {
		return
	}
	that.moves.WithLabelValues(result).Inc()
}

func (that *Metrics) GameFinished(outcome string) {
	if that == nil {
		return
	}
	that.gamesFinished.WithLabelValues(outcome).Inc()
}

func (that *Metrics) Matchmaking(outcome string) {
	if that == nil {
		return
	}
	that.matchmaking.WithLabelValues(outcome).Inc()
}

func (that *Metrics) LeaderboardWin() {
	if that == nil {
		return
	}
	that.leaderboardWin.Inc()
}

func (that *Metrics) HTTPRequest(method, route string, code int, elapsed time.Duration) {
	if that == nil {
		return
	}
	that.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	that.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
