package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tmiltonj/depose/internal/engine"
	"github.com/tmiltonj/depose/internal/engine/effects"
)

// salaryOnly takes Salary until Depose is available, never contests.
type salaryOnly struct{}

func (salaryOnly) Choose(_ context.Context, q *engine.Query) (int, error) {
	for i, o := range q.Options {
		if o == string(engine.ActionDepose) {
			return i, nil
		}
	}
	return 0, nil
}

func (salaryOnly) Confirm(context.Context, *engine.Query) (bool, error) { return false, nil }

func TestRecorderCountsGame(t *testing.T) {
	r := NewRecorder()
	players := []*engine.Player{
		engine.NewPlayer("Rei", salaryOnly{}),
		engine.NewPlayer("Asuka", salaryOnly{}),
	}
	g, err := engine.NewGame(players, engine.DefaultConfig(), effects.NewRegistry(), engine.WithListener(r))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := testutil.ToFloat64(r.Games); got != 1 {
		t.Errorf("expected 1 game, got %v", got)
	}
	if got := testutil.ToFloat64(r.Eliminations); got != 1 {
		t.Errorf("expected 1 elimination, got %v", got)
	}
	// Rei deposes first, Asuka answers, Rei saves up again and finishes.
	if got := testutil.ToFloat64(r.LivesLost.WithLabelValues("Depose")); got != 3 {
		t.Errorf("expected 3 lives lost to Depose, got %v", got)
	}
	if got := testutil.ToFloat64(r.Actions.WithLabelValues("Depose", "SUCCESS")); got != 3 {
		t.Errorf("expected 3 successful Deposes, got %v", got)
	}
	if got := testutil.ToFloat64(r.Turns); got != float64(g.Turn) {
		t.Errorf("expected %d turns, got %v", g.Turn, got)
	}
}

func TestRecorderChallenges(t *testing.T) {
	r := NewRecorder()
	r.OnEvent(engine.Event{Type: engine.EventCardRevealed, Data: map[string]interface{}{
		"role": engine.RoleLord, "action": engine.ActionTithe,
	}})
	r.OnEvent(engine.Event{Type: engine.EventCardRevealed, Data: map[string]interface{}{
		"role": engine.RoleMedic, "action": engine.ActionTithe,
	}})
	r.OnEvent(engine.Event{Type: engine.EventBlockClaimed, Data: map[string]interface{}{
		"block": engine.ActionBlockMug,
	}})

	if got := testutil.ToFloat64(r.Challenges.WithLabelValues("Tithe", "proven")); got != 1 {
		t.Errorf("expected 1 proven Tithe, got %v", got)
	}
	if got := testutil.ToFloat64(r.Challenges.WithLabelValues("Tithe", "bluff")); got != 1 {
		t.Errorf("expected 1 bluffed Tithe, got %v", got)
	}
	if got := testutil.ToFloat64(r.Blocks.WithLabelValues("Block Mug")); got != 1 {
		t.Errorf("expected 1 Block Mug, got %v", got)
	}
	if n := testutil.CollectAndCount(r.Registry); n == 0 {
		t.Error("registry should expose series")
	}
}
