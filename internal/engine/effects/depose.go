package effects

import (
	"context"

	"github.com/tmiltonj/depose/internal/engine"
)

// Depose: pay 7 coins, target loses a life. Cannot be blocked or
// challenged.
type Depose struct{}

func (Depose) Kind() engine.ActionKind { return engine.ActionDepose }
func (Depose) Targeted() bool          { return true }

func (Depose) Apply(ctx context.Context, g *engine.Game, actor, target *engine.Player) ([]engine.Event, error) {
	return takeLife(ctx, actor, target, engine.ActionDepose)
}

// Murder (Mercenary): pay 3 coins, target loses a life. Blockable by a
// Medic.
type Murder struct{}

func (Murder) Kind() engine.ActionKind { return engine.ActionMurder }
func (Murder) Targeted() bool          { return true }

func (Murder) Apply(ctx context.Context, g *engine.Game, actor, target *engine.Player) ([]engine.Event, error) {
	return takeLife(ctx, actor, target, engine.ActionMurder)
}

// takeLife is a no-op on a target already out of cards, e.g. one who lost
// their last card challenging the claim.
func takeLife(ctx context.Context, actor, target *engine.Player, kind engine.ActionKind) ([]engine.Event, error) {
	card, ok, err := target.LoseLife(ctx)
	if err != nil {
		return nil, err
	}
	events := []engine.Event{applied(actor, kind, map[string]interface{}{"target": target.Name})}
	if ok {
		events = append(events, engine.LifeLostEvent(target, card, string(kind)))
	}
	return events, nil
}
