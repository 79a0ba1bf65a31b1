package engine

import "math/rand/v2"

// RandomSource picks uniformly in [0, n). Deck draws go through it so that
// harnesses can plug in a cryptographic or a seeded generator.
type RandomSource interface {
	IntN(n int) int
}

type defaultSource struct{}

func (defaultSource) IntN(n int) int { return rand.IntN(n) }

// Deck is an unordered bag of role cards.
type Deck struct {
	cards []Role
	rng   RandomSource
}

// NewDeck creates a deck holding the given cards. A nil source falls back
// to math/rand/v2.
func NewDeck(cards []Role, rng RandomSource) *Deck {
	if rng == nil {
		rng = defaultSource{}
	}
	d := &Deck{cards: make([]Role, len(cards)), rng: rng}
	copy(d.cards, cards)
	return d
}

// Get removes and returns a uniformly random card.
func (d *Deck) Get() (Role, error) {
	if len(d.cards) == 0 {
		return 0, ErrDeckEmpty
	}
	i := d.rng.IntN(len(d.cards))
	card := d.cards[i]
	last := len(d.cards) - 1
	d.cards[i] = d.cards[last]
	d.cards = d.cards[:last]
	return card, nil
}

// Add puts a card back into the bag.
func (d *Deck) Add(card Role) {
	d.cards = append(d.cards, card)
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Count returns how many copies of role are in the deck.
func (d *Deck) Count(role Role) int {
	n := 0
	for _, c := range d.cards {
		if c == role {
			n++
		}
	}
	return n
}

// BaseDeck returns copies sets of every role.
func BaseDeck(copies int) []Role {
	var cards []Role
	for i := 0; i < copies; i++ {
		cards = append(cards, AllRoles()...)
	}
	return cards
}
