package bot

import "github.com/tmiltonj/depose/internal/engine"

// RandomBot picks uniformly and says yes to one question in four.
type RandomBot struct {
	rng engine.RandomSource
}

func (b *RandomBot) Choose(q *engine.Query) int {
	if len(q.Options) == 0 {
		return 0
	}
	return b.rng.IntN(len(q.Options))
}

func (b *RandomBot) Confirm(q *engine.Query) bool {
	return b.rng.IntN(4) == 0
}

func (b *RandomBot) OnEvent(engine.Event) {}
