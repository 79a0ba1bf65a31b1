package bot

import (
	"context"
	"time"

	"github.com/tmiltonj/depose/internal/engine"
)

// Agent seats a Brain at the table. It implements engine.Input for its
// own queries and engine.Listener to keep the brain's memory current.
type Agent struct {
	Name  string
	Delay time.Duration // pause before each answer so humans can follow

	brain Brain
}

func NewAgent(name string, brain Brain) *Agent {
	return &Agent{Name: name, brain: brain}
}

func (a *Agent) Choose(ctx context.Context, q *engine.Query) (int, error) {
	if err := a.wait(ctx); err != nil {
		return 0, err
	}
	return a.brain.Choose(q), nil
}

func (a *Agent) Confirm(ctx context.Context, q *engine.Query) (bool, error) {
	if err := a.wait(ctx); err != nil {
		return false, err
	}
	return a.brain.Confirm(q), nil
}

func (a *Agent) OnEvent(ev engine.Event) {
	a.brain.OnEvent(ev)
}

func (a *Agent) wait(ctx context.Context) error {
	if a.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
