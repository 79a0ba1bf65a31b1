// Package effects holds the bare effect of every Depose action.
package effects

import "github.com/tmiltonj/depose/internal/engine"

// All returns one of every effect, blocks included.
func All() []engine.Effect {
	return []engine.Effect{
		Salary{},
		Donations{},
		Tithe{},
		Depose{},
		Mug{},
		Murder{},
		Diplomacy{},
		Block{kind: engine.ActionBlockDonations},
		Block{kind: engine.ActionBlockMug},
		Block{kind: engine.ActionBlockMurder},
	}
}

// NewRegistry returns a registry with every effect registered.
func NewRegistry() *engine.EffectRegistry {
	r := engine.NewEffectRegistry()
	for _, e := range All() {
		r.Register(e)
	}
	return r
}
