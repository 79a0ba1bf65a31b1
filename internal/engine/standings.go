package engine

import "sort"

// Standing is one player's finishing position.
type Standing struct {
	Place      int    `json:"place"`
	Player     string `json:"player"`
	Coins      int    `json:"coins"`
	Cards      int    `json:"cards"`
	OutOnTurn  int    `json:"out_on_turn,omitempty"`
	Eliminated bool   `json:"eliminated"`
}

// Standings ranks the table: players still in first, then the rest by how
// long they lasted. Players out on the same turn share a place.
func (g *Game) Standings() []Standing {
	entries := make([]Standing, len(g.Players))
	for i, p := range g.Players {
		turn, out := g.eliminated[p]
		entries[i] = Standing{
			Player:     p.Name,
			Coins:      p.Coins(),
			Cards:      p.HandSize(),
			OutOnTurn:  turn,
			Eliminated: out,
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Eliminated != b.Eliminated {
			return !a.Eliminated
		}
		return a.OutOnTurn > b.OutOnTurn
	})

	for i := range entries {
		switch {
		case i == 0:
			entries[i].Place = 1
		case entries[i].Eliminated && entries[i-1].Eliminated && entries[i].OutOnTurn == entries[i-1].OutOnTurn:
			entries[i].Place = entries[i-1].Place
		default:
			entries[i].Place = i + 1
		}
	}
	return entries
}
