package bot

import "github.com/tmiltonj/depose/internal/engine"

// cardValue ranks roles by how much a bot wants to keep them.
var cardValue = map[engine.Role]int{
	engine.RoleLord:      5,
	engine.RoleMercenary: 4,
	engine.RoleBandit:    3,
	engine.RoleDiplomat:  2,
	engine.RoleMedic:     1,
}

// memory counts face-up cards so a bot can tell when a claim is
// impossible.
type memory struct {
	copies  int
	visible map[engine.Role]int
}

func newMemory(copies int) memory {
	if copies <= 0 {
		copies = 3
	}
	return memory{copies: copies, visible: map[engine.Role]int{}}
}

func (m *memory) OnEvent(ev engine.Event) {
	if ev.Type != engine.EventLifeLost {
		return
	}
	data, ok := ev.Data.(map[string]interface{})
	if !ok {
		return
	}
	if role, ok := data["role"].(engine.Role); ok {
		m.visible[role]++
	}
}

// certainBluff reports whether every copy of every role backing q.Action
// is either face up or in the bot's own hand.
func (m *memory) certainBluff(q *engine.Query) bool {
	roles := engine.RolesFor(q.Action)
	if len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if m.visible[r]+count(q.Hand, r) < m.copies {
			return false
		}
	}
	return true
}

func count(hand []engine.Role, r engine.Role) int {
	n := 0
	for _, c := range hand {
		if c == r {
			n++
		}
	}
	return n
}

func holdsAny(hand []engine.Role, roles []engine.Role) bool {
	for _, r := range roles {
		if count(hand, r) > 0 {
			return true
		}
	}
	return false
}

// cheapest returns the index of the least valuable card in hand.
func cheapest(hand []engine.Role) int {
	best := 0
	for i, c := range hand {
		if cardValue[c] < cardValue[hand[best]] {
			best = i
		}
	}
	return best
}

func optionIndex(options []string, kind engine.ActionKind) int {
	for i, o := range options {
		if o == string(kind) {
			return i
		}
	}
	return -1
}

func chance(rng engine.RandomSource, p float64) bool {
	return rng.IntN(1000) < int(p*1000)
}
