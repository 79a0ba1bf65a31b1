package effects

import (
	"context"

	"github.com/tmiltonj/depose/internal/engine"
)

// Block is a counter-action. Its effect is the cancellation of the action
// it answers, so applying it changes nothing by itself.
type Block struct {
	kind engine.ActionKind
}

func (b Block) Kind() engine.ActionKind { return b.kind }
func (b Block) Targeted() bool          { return false }

func (b Block) Apply(ctx context.Context, g *engine.Game, actor, _ *engine.Player) ([]engine.Event, error) {
	return []engine.Event{applied(actor, b.kind, nil)}, nil
}
