// Package bot provides computer players that answer engine queries.
package bot

import (
	"fmt"

	"github.com/tmiltonj/depose/internal/engine"
)

// Brain is the interface that all bot strategies must implement. It sees
// only what the query and the public event stream reveal.
type Brain interface {
	Choose(q *engine.Query) int
	Confirm(q *engine.Query) bool
	OnEvent(ev engine.Event)
}

// Level selects a strategy.
type Level int

const (
	LevelHonest Level = iota
	LevelBluffer
	LevelRandom
)

var levelNames = map[Level]string{
	LevelHonest:  "honest",
	LevelBluffer: "bluffer",
	LevelRandom:  "random",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "unknown"
}

// ParseLevel accepts the names returned by Level.String.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if name == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown bot level %q", s)
}
