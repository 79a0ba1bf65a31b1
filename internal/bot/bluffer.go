package bot

import "github.com/tmiltonj/depose/internal/engine"

// BlufferBot plays like HonestBot but sometimes claims roles it does not
// hold and sometimes challenges on a hunch.
type BlufferBot struct {
	HonestBot
	tuning Tuning
}

func (b *BlufferBot) Choose(q *engine.Query) int {
	if q.Kind == engine.QueryAction && chance(b.rng, b.tuning.BluffChance) {
		var bluffs []int
		for _, kind := range claimOrder {
			if i := optionIndex(q.Options, kind); i >= 0 && !holdsAny(q.Hand, engine.RolesFor(kind)) {
				bluffs = append(bluffs, i)
			}
		}
		if len(bluffs) > 0 {
			return bluffs[b.rng.IntN(len(bluffs))]
		}
	}
	return b.HonestBot.Choose(q)
}

func (b *BlufferBot) Confirm(q *engine.Query) bool {
	if b.HonestBot.Confirm(q) {
		return true
	}
	switch q.Kind {
	case engine.QueryBlock:
		return chance(b.rng, b.tuning.BlockBluffChance)
	case engine.QueryChallenge:
		return chance(b.rng, b.tuning.ChallengeChance)
	}
	return false
}
