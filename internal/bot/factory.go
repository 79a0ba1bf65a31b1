package bot

import (
	"fmt"

	"github.com/tmiltonj/depose/internal/engine"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level Level, rng engine.RandomSource, tuning Tuning) (Brain, error) {
	switch level {
	case LevelHonest:
		return &HonestBot{memory: newMemory(tuning.RoleCopies), rng: rng}, nil
	case LevelBluffer:
		return &BlufferBot{HonestBot: HonestBot{memory: newMemory(tuning.RoleCopies), rng: rng}, tuning: tuning}, nil
	case LevelRandom:
		return &RandomBot{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
