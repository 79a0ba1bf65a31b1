package engine

import (
	"context"
	"fmt"
)

// TurnReport summarises one completed turn.
type TurnReport struct {
	Turn       int
	Player     string
	Action     ActionKind
	Result     Result
	Eliminated []string
	Winner     string
}

// ValidActions returns the actions p may declare this turn. At
// Config.ForcedDepose coins Depose is the only option.
func (g *Game) ValidActions(p *Player) []ActionKind {
	if p.Coins() >= g.Config.ForcedDepose {
		return []ActionKind{ActionDepose}
	}
	var out []ActionKind
	for _, kind := range TurnActions() {
		if p.Coins() < kind.Cost() {
			continue
		}
		if _, err := g.Effects.Get(kind); err != nil {
			continue
		}
		out = append(out, kind)
	}
	return out
}

// PlayTurn runs one full turn for the active player: choose, resolve,
// clean up and rotate.
func (g *Game) PlayTurn(ctx context.Context) (*TurnReport, error) {
	switch g.Phase {
	case PhaseSetup:
		return nil, ErrNotStarted
	case PhaseGameOver:
		return nil, ErrGameOver
	}

	actor := g.ActivePlayer()
	g.Turn++
	g.emit(Event{
		Type:   EventTurnStart,
		Player: actor.Name,
		Data:   map[string]interface{}{"turn": g.Turn, "coins": actor.Coins()},
	})

	g.setPhase(PhaseChooseAction)
	kind, err := actor.ChooseAction(ctx, g.ValidActions(actor))
	if err != nil {
		return nil, err
	}

	res, err := g.Declare(ctx, actor, kind, nil)
	if err != nil {
		return nil, err
	}

	report := &TurnReport{Turn: g.Turn, Player: actor.Name, Action: kind, Result: res}
	report.Eliminated = g.Cleanup()
	if g.Winner != nil {
		report.Winner = g.Winner.Name
	}
	return report, nil
}

// Declare resolves kind for actor through its full capability chain. A
// non-nil target skips the target query. The actor, target and coins are
// checked before anything is asked or charged. The cost is charged here
// under CostOnDeclare and is not refunded if the action is blocked or its
// claim is exposed.
func (g *Game) Declare(ctx context.Context, actor *Player, kind ActionKind, target *Player) (Result, error) {
	if g.Over() {
		return 0, ErrGameOver
	}
	if err := g.checkActor(actor); err != nil {
		return 0, err
	}
	action, err := g.factory.Create(kind, actor)
	if err != nil {
		return 0, err
	}
	if err := g.checkTarget(actor, kind, target); err != nil {
		return 0, err
	}
	cost := kind.Cost()
	if actor.Coins() < cost {
		return 0, fmt.Errorf("%w: %s needs %d for %s, has %d", ErrNotEnoughCoins, actor.Name, cost, kind, actor.Coins())
	}

	g.emit(Event{
		Type:   EventActionDeclared,
		Player: actor.Name,
		Data:   map[string]interface{}{"action": kind, "chain": Chain(action)},
	})
	g.narrate("%s declares %s", actor.Name, kind)
	g.log.Debug("action declared", "player", actor.Name, "action", kind, "coins", actor.Coins())

	if cost > 0 && g.Config.CostPolicy == CostOnDeclare {
		actor.AddCoins(-cost)
		g.emit(CoinsChangedEvent(actor, -cost, "cost"))
	}

	res, err := action.Perform(ctx, g, target)
	if err != nil {
		return 0, err
	}

	g.emit(Event{
		Type:   EventActionResolved,
		Player: actor.Name,
		Data:   map[string]interface{}{"action": kind, "result": res.String()},
	})
	g.log.Info("action resolved", "turn", g.Turn, "player", actor.Name, "action", kind, "result", res)
	return res, nil
}

// checkActor rejects players who are not seated or already out. Once the
// game has started only the active player may declare.
func (g *Game) checkActor(actor *Player) error {
	if actor == nil || !contains(g.Players, actor) {
		return fmt.Errorf("%w: not seated at this table", ErrNotYourTurn)
	}
	if !actor.Alive() {
		return fmt.Errorf("%w: %s is out of the game", ErrNotYourTurn, actor.Name)
	}
	if g.Phase != PhaseSetup && actor != g.ActivePlayer() {
		return fmt.Errorf("%w: it is %s's turn, not %s's", ErrNotYourTurn, g.ActivePlayer().Name, actor.Name)
	}
	return nil
}

// checkTarget validates a target against the shape of kind. The Targeted
// layer repeats the opponent check when the target is chosen later.
func (g *Game) checkTarget(actor *Player, kind ActionKind, target *Player) error {
	if !shapes[kind].targeted {
		if target != nil {
			return fmt.Errorf("%w: %s should not be targeted", ErrInvalidTarget, kind)
		}
		return nil
	}
	opponents := g.Opponents(actor)
	if target != nil && !contains(opponents, target) {
		return fmt.Errorf("%w: %s cannot %s %s", ErrInvalidTarget, actor.Name, kind, target.Name)
	}
	if len(opponents) == 0 {
		return fmt.Errorf("%w: %s has no opponents for %s", ErrNoValidTarget, actor.Name, kind)
	}
	return nil
}

// Cleanup eliminates every player left without cards, then ends the game
// or moves the turn to the next living player in seating order. Returns
// the names eliminated.
func (g *Game) Cleanup() []string {
	g.setPhase(PhaseCleanup)

	var out []string
	for _, p := range g.Players {
		if _, gone := g.eliminated[p]; gone || p.Alive() {
			continue
		}
		g.eliminated[p] = g.Turn
		out = append(out, p.Name)
		g.emit(Event{Type: EventPlayerEliminated, Player: p.Name})
		g.narrate("%s has been eliminated", p.Name)
	}

	living := g.Living()
	if len(living) < 2 {
		if len(living) == 1 {
			g.Winner = living[0]
		}
		g.setPhase(PhaseGameOver)
		winner := ""
		if g.Winner != nil {
			winner = g.Winner.Name
			g.narrate("%s wins", winner)
		}
		g.emit(Event{Type: EventGameOver, Player: winner, Data: map[string]interface{}{"turns": g.Turn}})
		g.log.Info("game over", "winner", winner, "turns", g.Turn)
		return out
	}

	n := len(g.Players)
	for i := 1; i <= n; i++ {
		next := (g.Active + i) % n
		if g.Players[next].Alive() {
			g.Active = next
			break
		}
	}
	g.setPhase(PhaseStartTurn)
	return out
}

// Run starts the game if needed and plays turns until one player is left.
func (g *Game) Run(ctx context.Context) (*Player, error) {
	if g.Phase == PhaseSetup {
		if err := g.StartGame(); err != nil {
			return nil, err
		}
	}
	for !g.Over() {
		if _, err := g.PlayTurn(ctx); err != nil {
			return nil, err
		}
	}
	return g.Winner, nil
}

// CoinsChangedEvent reports a change of delta coins for p.
func CoinsChangedEvent(p *Player, delta int, reason string) Event {
	return Event{
		Type:   EventCoinsChanged,
		Player: p.Name,
		Data:   map[string]interface{}{"delta": delta, "coins": p.Coins(), "reason": reason},
	}
}
