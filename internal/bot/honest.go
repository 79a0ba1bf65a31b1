package bot

import "github.com/tmiltonj/depose/internal/engine"

// HonestBot only claims roles it holds and challenges only claims that
// card counting proves false.
type HonestBot struct {
	memory
	rng engine.RandomSource
}

// claimOrder is the order in which role actions are preferred.
var claimOrder = []engine.ActionKind{
	engine.ActionMurder,
	engine.ActionTithe,
	engine.ActionMug,
	engine.ActionDiplomacy,
}

// sideChance is how often Mug or Diplomacy is taken over a safe Salary.
const sideChance = 1.0 / 3

func (b *HonestBot) Choose(q *engine.Query) int {
	switch q.Kind {
	case engine.QueryAction:
		return b.honestAction(q)
	case engine.QueryTarget:
		return b.rng.IntN(len(q.Options))
	case engine.QueryReveal:
		for i, c := range q.Hand {
			if c.Legitimizes(q.Action) {
				return i
			}
		}
		return cheapest(q.Hand)
	case engine.QueryLoseLife, engine.QueryReturn:
		return cheapest(q.Hand)
	}
	return 0
}

// honestAction deposes when it can and otherwise uses the strongest role
// it holds. Mug and Diplomacy can stall a bot, so they only replace
// Salary some of the time.
func (b *HonestBot) honestAction(q *engine.Query) int {
	if i := optionIndex(q.Options, engine.ActionDepose); i >= 0 {
		return i
	}
	side := chance(b.rng, sideChance)
	for _, kind := range claimOrder {
		i := optionIndex(q.Options, kind)
		if i < 0 || !holdsAny(q.Hand, engine.RolesFor(kind)) {
			continue
		}
		if kind == engine.ActionMug || kind == engine.ActionDiplomacy {
			if !side {
				continue
			}
		}
		return i
	}
	return max(0, optionIndex(q.Options, engine.ActionSalary))
}

func (b *HonestBot) Confirm(q *engine.Query) bool {
	switch q.Kind {
	case engine.QueryBlock:
		block, ok := engine.BlockFor(q.Action)
		return ok && holdsAny(q.Hand, engine.RolesFor(block))
	case engine.QueryChallenge:
		return b.certainBluff(q)
	}
	return false
}
