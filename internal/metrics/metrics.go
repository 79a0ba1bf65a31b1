// Package metrics counts game outcomes for Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tmiltonj/depose/internal/engine"
)

// Recorder turns engine events into Prometheus series. It registers on
// its own registry so several games or tests never collide.
type Recorder struct {
	Registry *prometheus.Registry

	Actions      *prometheus.CounterVec
	Challenges   *prometheus.CounterVec
	Blocks       *prometheus.CounterVec
	LivesLost    *prometheus.CounterVec
	Eliminations prometheus.Counter
	Games        prometheus.Counter
	Turns        prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depose_actions_total",
				Help: "Resolved actions by kind and result",
			},
			[]string{"action", "result"},
		),
		Challenges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depose_challenges_total",
				Help: "Challenges by action and whether the claim held",
			},
			[]string{"action", "outcome"},
		),
		Blocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depose_blocks_total",
				Help: "Blocks claimed",
			},
			[]string{"block"},
		),
		LivesLost: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depose_lives_lost_total",
				Help: "Cards given up, by cause",
			},
			[]string{"cause"},
		),
		Eliminations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "depose_eliminations_total",
			Help: "Players eliminated",
		}),
		Games: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "depose_games_finished_total",
			Help: "Games played to a winner",
		}),
		Turns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "depose_turns_total",
			Help: "Turns started",
		}),
	}
	r.Registry.MustRegister(r.Actions, r.Challenges, r.Blocks, r.LivesLost, r.Eliminations, r.Games, r.Turns)
	return r
}

// OnEvent implements engine.Listener.
func (r *Recorder) OnEvent(ev engine.Event) {
	data, _ := ev.Data.(map[string]interface{})
	str := func(key string) string {
		switch v := data[key].(type) {
		case string:
			return v
		case engine.ActionKind:
			return string(v)
		case engine.Role:
			return v.String()
		}
		return ""
	}

	switch ev.Type {
	case engine.EventTurnStart:
		r.Turns.Inc()
	case engine.EventActionResolved:
		r.Actions.WithLabelValues(str("action"), str("result")).Inc()
	case engine.EventBlockClaimed:
		r.Blocks.WithLabelValues(str("block")).Inc()
	case engine.EventCardRevealed:
		action, _ := data["action"].(engine.ActionKind)
		role, _ := data["role"].(engine.Role)
		outcome := "bluff"
		if role.Legitimizes(action) {
			outcome = "proven"
		}
		r.Challenges.WithLabelValues(string(action), outcome).Inc()
	case engine.EventLifeLost:
		r.LivesLost.WithLabelValues(str("cause")).Inc()
	case engine.EventPlayerEliminated:
		r.Eliminations.Inc()
	case engine.EventGameOver:
		r.Games.Inc()
	}
}
