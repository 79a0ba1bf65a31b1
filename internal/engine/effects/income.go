package effects

import (
	"context"

	"github.com/tmiltonj/depose/internal/engine"
)

// Coin amounts for the three income actions.
const (
	salaryAmount    = 1
	donationsAmount = 2
	titheAmount     = 3
)

// Salary: take 1 coin. Cannot be blocked or challenged.
type Salary struct{}

func (Salary) Kind() engine.ActionKind { return engine.ActionSalary }
func (Salary) Targeted() bool          { return false }

func (Salary) Apply(ctx context.Context, g *engine.Game, actor, _ *engine.Player) ([]engine.Event, error) {
	return gain(actor, salaryAmount, engine.ActionSalary), nil
}

// Donations: take 2 coins. Blockable by a Lord.
type Donations struct{}

func (Donations) Kind() engine.ActionKind { return engine.ActionDonations }
func (Donations) Targeted() bool          { return false }

func (Donations) Apply(ctx context.Context, g *engine.Game, actor, _ *engine.Player) ([]engine.Event, error) {
	return gain(actor, donationsAmount, engine.ActionDonations), nil
}

// Tithe (Lord): take 3 coins.
type Tithe struct{}

func (Tithe) Kind() engine.ActionKind { return engine.ActionTithe }
func (Tithe) Targeted() bool          { return false }

func (Tithe) Apply(ctx context.Context, g *engine.Game, actor, _ *engine.Player) ([]engine.Event, error) {
	return gain(actor, titheAmount, engine.ActionTithe), nil
}

func gain(p *engine.Player, n int, kind engine.ActionKind) []engine.Event {
	p.AddCoins(n)
	return []engine.Event{
		applied(p, kind, map[string]interface{}{"gained": n}),
		engine.CoinsChangedEvent(p, n, string(kind)),
	}
}

func applied(p *engine.Player, kind engine.ActionKind, data map[string]interface{}) engine.Event {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["action"] = kind
	return engine.Event{Type: engine.EventActionApplied, Player: p.Name, Data: data}
}
