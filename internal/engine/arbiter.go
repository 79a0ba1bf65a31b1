package engine

import (
	"context"
	"fmt"
)

// The arbiter polls players and settles contested claims. It decides who
// is asked and in which order; every change to hands and the deck goes
// through Player methods.

// ResolveTarget settles the target of a targeted action. A target chosen
// in advance must be a living opponent; otherwise the actor is asked.
func (g *Game) ResolveTarget(ctx context.Context, a Action, target *Player) (*Player, error) {
	g.setPhase(PhaseTargeting)
	actor := a.Actor()
	candidates := g.Opponents(actor)

	if target != nil {
		if !contains(candidates, target) {
			return nil, fmt.Errorf("%w: %s cannot %s %s", ErrInvalidTarget, actor.Name, a.Kind(), target.Name)
		}
	} else {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: %s has no opponents for %s", ErrNoValidTarget, actor.Name, a.Kind())
		}
		chosen, err := actor.ChooseTarget(ctx, a.Kind(), candidates)
		if err != nil {
			return nil, err
		}
		target = chosen
	}

	g.emit(Event{
		Type:   EventTargetChosen,
		Player: actor.Name,
		Data:   map[string]interface{}{"action": a.Kind(), "target": target.Name},
	})
	g.narrate("%s targets %s with %s", actor.Name, target.Name, a.Kind())
	return target, nil
}

// AskForCounters polls for a block. Only the target may block a targeted
// action; anything else is offered to every living opponent in seating
// order. Returns the first player to accept, or nil.
func (g *Game) AskForCounters(ctx context.Context, a Action, target *Player) (*Player, error) {
	g.setPhase(PhaseBlocking)
	actor := a.Actor()

	var candidates []*Player
	switch {
	case target == nil:
		candidates = g.Opponents(actor)
	case target.Alive():
		candidates = []*Player{target}
	}

	blocker, err := g.poll(candidates, func(p *Player) (bool, error) {
		return p.AskToBlock(ctx, a.Kind(), actor)
	})
	if err != nil || blocker == nil {
		return nil, err
	}

	block, _ := BlockFor(a.Kind())
	g.emit(Event{
		Type:   EventBlockClaimed,
		Player: blocker.Name,
		Data:   map[string]interface{}{"action": a.Kind(), "block": block, "actor": actor.Name},
	})
	g.narrate("%s claims %s", blocker.Name, block)
	return blocker, nil
}

// AskForChallenges offers every living opponent of the claimant, in
// seating order, the chance to challenge. Returns the first to accept.
func (g *Game) AskForChallenges(ctx context.Context, a Action) (*Player, error) {
	g.setPhase(PhaseChallenging)
	claimant := a.Actor()

	challenger, err := g.poll(g.Opponents(claimant), func(p *Player) (bool, error) {
		return p.AskToChallenge(ctx, a.Kind(), claimant)
	})
	if err != nil || challenger == nil {
		return nil, err
	}

	g.emit(Event{
		Type:   EventChallenged,
		Player: challenger.Name,
		Data:   map[string]interface{}{"action": a.Kind(), "claimant": claimant.Name},
	})
	g.narrate("%s challenges %s's %s", challenger.Name, claimant.Name, a.Kind())
	return challenger, nil
}

// ResolveChallenge makes the claimant reveal a card. A card that
// legitimizes the claim goes back into the deck and is replaced, and the
// challenger loses a life: ResultChallengeFailure. Any other card is lost
// by the claimant: ResultChallengeSuccess.
func (g *Game) ResolveChallenge(ctx context.Context, a Action, challenger *Player) (Result, error) {
	claimant := a.Actor()
	kind := a.Kind()

	revealed, err := claimant.Reveal(ctx, kind, challenger.Name)
	if err != nil {
		return 0, err
	}
	g.emit(Event{
		Type:   EventCardRevealed,
		Player: claimant.Name,
		Data:   map[string]interface{}{"role": revealed, "action": kind},
	})

	rec := &ChallengeRecord{
		Action:     kind,
		Claimant:   claimant.Name,
		Challenger: challenger.Name,
		Revealed:   revealed,
		Outcome:    ResultChallengeFailure,
		Loser:      challenger.Name,
	}
	if !revealed.Legitimizes(kind) {
		rec.Outcome = ResultChallengeSuccess
		rec.Loser = claimant.Name
	}
	g.LastChallenge = rec

	if rec.Outcome == ResultChallengeSuccess {
		if err := claimant.Discard(revealed); err != nil {
			return 0, err
		}
		g.emit(LifeLostEvent(claimant, revealed, "challenge"))
		g.narrate("%s revealed %s and was caught bluffing", claimant.Name, revealed)
		g.log.Debug("challenge upheld", "claimant", claimant.Name, "challenger", challenger.Name, "action", kind, "revealed", revealed)
		return ResultChallengeSuccess, nil
	}

	if _, err := claimant.ReplaceCard(revealed); err != nil {
		return 0, err
	}
	g.emit(Event{
		Type:   EventCardReplaced,
		Player: claimant.Name,
		Data:   map[string]interface{}{"returned": revealed},
	})

	g.narrate("%s revealed %s, %s loses a life", claimant.Name, revealed, challenger.Name)
	card, ok, err := challenger.LoseLife(ctx)
	if err != nil {
		return 0, err
	}
	if ok {
		g.emit(LifeLostEvent(challenger, card, "challenge"))
	}
	g.log.Debug("challenge failed", "claimant", claimant.Name, "challenger", challenger.Name, "action", kind)
	return ResultChallengeFailure, nil
}

// poll asks candidates one at a time and stops at the first yes. The
// players not yet asked are kept in g.pending while a query is out.
func (g *Game) poll(candidates []*Player, ask func(*Player) (bool, error)) (*Player, error) {
	g.pending = append([]*Player(nil), candidates...)
	defer func() { g.pending = nil }()

	for len(g.pending) > 0 {
		p := g.pending[0]
		g.pending = g.pending[1:]
		yes, err := ask(p)
		if err != nil {
			return nil, err
		}
		if yes {
			return p, nil
		}
	}
	return nil, nil
}

// Pending returns the players still to be asked in the current poll.
func (g *Game) Pending() []*Player {
	return append([]*Player(nil), g.pending...)
}

// LifeLostEvent reports that p gave up card.
func LifeLostEvent(p *Player, card Role, cause string) Event {
	return Event{
		Type:   EventLifeLost,
		Player: p.Name,
		Data:   map[string]interface{}{"role": card, "cause": cause, "remaining": p.HandSize()},
	}
}

func contains(players []*Player, p *Player) bool {
	for _, q := range players {
		if q == p {
			return true
		}
	}
	return false
}
