package engine

import (
	"context"
	"fmt"
)

// Player holds one seat's coins and concealed cards. It knows nothing of
// the rules: the game asks it questions through its Input and mutates it
// only through the methods below.
type Player struct {
	Name string

	coins int
	hand  []Role
	lost  []Role // face-up cards given up as lives

	input Input
	deck  *Deck
}

func NewPlayer(name string, input Input) *Player {
	return &Player{Name: name, input: input}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (Coins: %d, Cards: %d)", p.Name, p.coins, len(p.hand))
}

// Coins returns the current coin total.
func (p *Player) Coins() int { return p.coins }

// SetCoins sets the coin total, clamped at zero.
func (p *Player) SetCoins(n int) {
	p.coins = max(0, n)
}

// AddCoins adjusts the coin total by delta, clamped at zero.
func (p *Player) AddCoins(delta int) {
	p.SetCoins(p.coins + delta)
}

// Hand returns a copy of the concealed cards.
func (p *Player) Hand() []Role {
	out := make([]Role, len(p.hand))
	copy(out, p.hand)
	return out
}

// Lost returns a copy of the face-up cards this player has lost.
func (p *Player) Lost() []Role {
	out := make([]Role, len(p.lost))
	copy(out, p.lost)
	return out
}

// HandSize returns the number of concealed cards.
func (p *Player) HandSize() int { return len(p.hand) }

// Alive reports whether the player still holds a card.
func (p *Player) Alive() bool { return len(p.hand) > 0 }

// Holds reports whether role is in the hand.
func (p *Player) Holds(role Role) bool {
	return p.indexOf(role) >= 0
}

// AddCard puts a card straight into the hand.
func (p *Player) AddCard(card Role) {
	p.hand = append(p.hand, card)
}

// DrawCards moves n cards from the deck into the hand.
func (p *Player) DrawCards(n int) error {
	for i := 0; i < n; i++ {
		card, err := p.deck.Get()
		if err != nil {
			return fmt.Errorf("%s draws: %w", p.Name, err)
		}
		p.hand = append(p.hand, card)
	}
	return nil
}

// RemoveCard takes role out of the hand. The hand is untouched when the
// card is missing.
func (p *Player) RemoveCard(role Role) error {
	i := p.indexOf(role)
	if i < 0 {
		return fmt.Errorf("%w: %s does not hold %s", ErrCardNotFound, p.Name, role)
	}
	p.hand = append(p.hand[:i], p.hand[i+1:]...)
	return nil
}

// ReturnCard moves role from the hand back to the deck.
func (p *Player) ReturnCard(role Role) error {
	if err := p.RemoveCard(role); err != nil {
		return err
	}
	p.deck.Add(role)
	return nil
}

// ReplaceCard shuffles a revealed card back into the deck and draws a
// fresh one in its place. Hand size is unchanged.
func (p *Player) ReplaceCard(role Role) (Role, error) {
	if err := p.ReturnCard(role); err != nil {
		return 0, err
	}
	card, err := p.deck.Get()
	if err != nil {
		return 0, fmt.Errorf("%s replaces %s: %w", p.Name, role, err)
	}
	p.hand = append(p.hand, card)
	return card, nil
}

// Discard turns role face up as a lost life.
func (p *Player) Discard(role Role) error {
	if err := p.RemoveCard(role); err != nil {
		return err
	}
	p.lost = append(p.lost, role)
	return nil
}

// LoseLife asks the player which card to give up and discards it. With a
// single card the choice is forced. Returns ok=false when the hand was
// already empty.
func (p *Player) LoseLife(ctx context.Context) (card Role, ok bool, err error) {
	if len(p.hand) == 0 {
		return 0, false, nil
	}
	card, err = p.pickCard(ctx, QueryLoseLife, "You lost a life, reveal a card", "", "")
	if err != nil {
		return 0, false, err
	}
	if err := p.Discard(card); err != nil {
		return 0, false, err
	}
	return card, true, nil
}

// Reveal asks the player which card to show in answer to a challenge of
// kind. The card stays in the hand.
func (p *Player) Reveal(ctx context.Context, kind ActionKind, challenger string) (Role, error) {
	prompt := fmt.Sprintf("%s challenged your %s, choose a card to reveal", challenger, kind)
	return p.pickCard(ctx, QueryReveal, prompt, kind, challenger)
}

// ChooseReturn asks which card to put back into the deck and returns it.
func (p *Player) ChooseReturn(ctx context.Context, prompt string) (Role, error) {
	card, err := p.pickCard(ctx, QueryReturn, prompt, "", "")
	if err != nil {
		return 0, err
	}
	if err := p.ReturnCard(card); err != nil {
		return 0, err
	}
	return card, nil
}

func (p *Player) pickCard(ctx context.Context, kind QueryKind, prompt string, action ActionKind, actor string) (Role, error) {
	if len(p.hand) == 0 {
		return 0, fmt.Errorf("%w: %s has no cards", ErrCardNotFound, p.Name)
	}
	if len(p.hand) == 1 {
		return p.hand[0], nil
	}
	q := p.query(kind, prompt, roleStrings(p.hand))
	q.Action = action
	q.Actor = actor
	i, err := p.input.Choose(ctx, q)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(p.hand) {
		return 0, fmt.Errorf("%w: card %d of %d", ErrInvalidChoice, i, len(p.hand))
	}
	return p.hand[i], nil
}

// ChooseAction asks the player to pick one of options.
func (p *Player) ChooseAction(ctx context.Context, options []ActionKind) (ActionKind, error) {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = string(o)
	}
	i, err := p.input.Choose(ctx, p.query(QueryAction, "Select an action", labels))
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(options) {
		return "", fmt.Errorf("%w: action %d of %d", ErrInvalidChoice, i, len(options))
	}
	return options[i], nil
}

// ChooseTarget asks the player to pick one of candidates.
func (p *Player) ChooseTarget(ctx context.Context, kind ActionKind, candidates []*Player) (*Player, error) {
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Name
	}
	q := p.query(QueryTarget, fmt.Sprintf("Choose a target to %s", kind), labels)
	q.Action = kind
	i, err := p.input.Choose(ctx, q)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(candidates) {
		return nil, fmt.Errorf("%w: target %d of %d", ErrInvalidChoice, i, len(candidates))
	}
	return candidates[i], nil
}

// AskToBlock asks whether the player blocks actor's kind.
func (p *Player) AskToBlock(ctx context.Context, kind ActionKind, actor *Player) (bool, error) {
	q := p.query(QueryBlock, fmt.Sprintf("%s, do you wish to block %s's %s?", p.Name, actor.Name, kind), nil)
	q.Action = kind
	q.Actor = actor.Name
	return p.input.Confirm(ctx, q)
}

// AskToChallenge asks whether the player challenges actor's claim to kind.
func (p *Player) AskToChallenge(ctx context.Context, kind ActionKind, actor *Player) (bool, error) {
	q := p.query(QueryChallenge, fmt.Sprintf("%s, do you wish to challenge %s's %s?", p.Name, actor.Name, kind), nil)
	q.Action = kind
	q.Actor = actor.Name
	return p.input.Confirm(ctx, q)
}

func (p *Player) query(kind QueryKind, prompt string, options []string) *Query {
	return &Query{
		Kind:    kind,
		Player:  p.Name,
		Prompt:  prompt,
		Options: options,
		Hand:    p.Hand(),
		Coins:   p.coins,
	}
}

func (p *Player) indexOf(role Role) int {
	for i, c := range p.hand {
		if c == role {
			return i
		}
	}
	return -1
}
