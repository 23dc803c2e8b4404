package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("Counts by label", func(t *testing.T) {
		// Given: metrics on a private registry
		reg := prometheus.NewRegistry()
		m := New(reg)

		// When: events are recorded
		m.Move("accepted")
		m.Move("accepted")
		m.Move("not_your_turn")
		m.GameFinished("won")
		m.Matchmaking("paired")
		m.LeaderboardWin()
		m.HTTPRequest(http.MethodGet, "/api/game", http.StatusOK, 5*time.Millisecond)

		// Then: the counters follow
		assert.InDelta(t, 2, testutil.ToFloat64(m.moves.WithLabelValues("accepted")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.moves.WithLabelValues("not_your_turn")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.gamesFinished.WithLabelValues("won")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.matchmaking.WithLabelValues("paired")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.leaderboardWin), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/game", "200")), 0)
	})

	t.Run("Nil metrics are a no-op", func(t *testing.T) {
		var m *Metrics

		assert.NotPanics(t, func() {
			m.Move("accepted")
			m.GameFinished("tie")
			m.Matchmaking("waiting")
			m.LeaderboardWin()
			m.HTTPRequest(http.MethodPost, "/api/game/move", http.StatusBadRequest, time.Millisecond)
		})
	})
}
