package effects

import (
	"context"

	"github.com/tmiltonj/depose/internal/engine"
)

const mugAmount = 2

// Mug (Bandit): take up to 2 coins from the target. Blockable by a Bandit
// or a Diplomat.
type Mug struct{}

func (Mug) Kind() engine.ActionKind { return engine.ActionMug }
func (Mug) Targeted() bool          { return true }

func (Mug) Apply(ctx context.Context, g *engine.Game, actor, target *engine.Player) ([]engine.Event, error) {
	stolen := min(mugAmount, target.Coins())
	target.AddCoins(-stolen)
	actor.AddCoins(stolen)
	return []engine.Event{
		applied(actor, engine.ActionMug, map[string]interface{}{"target": target.Name, "stolen": stolen}),
		engine.CoinsChangedEvent(target, -stolen, string(engine.ActionMug)),
		engine.CoinsChangedEvent(actor, stolen, string(engine.ActionMug)),
	}, nil
}
