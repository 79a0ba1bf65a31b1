package effects

import (
	"context"
	"fmt"

	"github.com/tmiltonj/depose/internal/engine"
)

// Diplomacy (Diplomat): draw 2 cards, then return 2 cards of the
// player's choice to the deck.
type Diplomacy struct{}

func (Diplomacy) Kind() engine.ActionKind { return engine.ActionDiplomacy }
func (Diplomacy) Targeted() bool          { return false }

func (Diplomacy) Apply(ctx context.Context, g *engine.Game, actor, _ *engine.Player) ([]engine.Event, error) {
	if err := actor.DrawCards(engine.DiplomacyDraw); err != nil {
		return nil, err
	}
	for i := 0; i < engine.DiplomacyDraw; i++ {
		prompt := fmt.Sprintf("Choose a card to return (%d of %d)", i+1, engine.DiplomacyDraw)
		if _, err := actor.ChooseReturn(ctx, prompt); err != nil {
			return nil, err
		}
	}
	return []engine.Event{
		applied(actor, engine.ActionDiplomacy, nil),
		{Type: engine.EventCardsExchanged, Player: actor.Name, Data: map[string]interface{}{"count": engine.DiplomacyDraw}},
	}, nil
}
