package engine

import (
	"context"
	"fmt"
	"sync"
)

// QueryKind identifies what a player is being asked.
type QueryKind string

const (
	QueryAction    QueryKind = "choose_action"
	QueryTarget    QueryKind = "choose_target"
	QueryBlock     QueryKind = "block"
	QueryChallenge QueryKind = "challenge"
	QueryReveal    QueryKind = "reveal"
	QueryLoseLife  QueryKind = "lose_life"
	QueryReturn    QueryKind = "return_card"
)

// Query is a single request for input addressed to one player.
type Query struct {
	ID      int       `json:"id"`
	Kind    QueryKind `json:"kind"`
	Player  string    `json:"player"`
	Prompt  string    `json:"prompt"`
	Options []string  `json:"options,omitempty"`

	// Context for automated players. Hand and Coins describe the player
	// being asked, Actor and Action the claim being answered.
	Action ActionKind `json:"action,omitempty"`
	Actor  string     `json:"actor,omitempty"`
	Hand   []Role     `json:"hand,omitempty"`
	Coins  int        `json:"coins"`

	reply chan int
	once  sync.Once
}

// Input is the asynchronous input contract every player exposes.
// Implementations may block until the answer arrives; they must honour
// ctx cancellation.
type Input interface {
	// Choose returns an index into q.Options.
	Choose(ctx context.Context, q *Query) (int, error)
	// Confirm answers a yes/no question.
	Confirm(ctx context.Context, q *Query) (bool, error)
}

// Narrator receives fire-and-forget narration.
type Narrator interface {
	Message(text string)
}

type discardNarrator struct{}

func (discardNarrator) Message(string) {}

// Confirm options as presented by the Mailbox.
const (
	AnswerYes = 0
	AnswerNo  = 1
)

// Mailbox turns player input into explicit request/response messages.
// Each Choose/Confirm publishes a *Query on Pending and suspends until
// the query is resolved by its addressee or ctx is cancelled. Because the
// engine is single-flow, at most one query is outstanding at a time.
type Mailbox struct {
	pending chan *Query
	mu      sync.Mutex
	nextID  int
}

func NewMailbox() *Mailbox {
	return &Mailbox{pending: make(chan *Query)}
}

// Pending delivers queries awaiting an answer.
func (m *Mailbox) Pending() <-chan *Query {
	return m.pending
}

func (m *Mailbox) Choose(ctx context.Context, q *Query) (int, error) {
	return m.ask(ctx, q)
}

func (m *Mailbox) Confirm(ctx context.Context, q *Query) (bool, error) {
	q.Options = []string{"Yes", "No"}
	i, err := m.ask(ctx, q)
	if err != nil {
		return false, err
	}
	return i == AnswerYes, nil
}

func (m *Mailbox) ask(ctx context.Context, q *Query) (int, error) {
	m.mu.Lock()
	m.nextID++
	q.ID = m.nextID
	m.mu.Unlock()
	q.reply = make(chan int, 1)

	select {
	case m.pending <- q:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case choice := <-q.reply:
		return choice, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Resolve answers the query on behalf of player. Answers from anyone but
// the addressee, out-of-range choices and second answers are rejected.
func (q *Query) Resolve(player string, choice int) error {
	if player != q.Player {
		return fmt.Errorf("%w: query %d is for %s, not %s", ErrWrongResponder, q.ID, q.Player, player)
	}
	if choice < 0 || choice >= len(q.Options) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidChoice, choice, len(q.Options))
	}
	if q.reply == nil {
		return fmt.Errorf("query %d is not awaiting an answer", q.ID)
	}
	answered := false
	q.once.Do(func() {
		q.reply <- choice
		answered = true
	})
	if !answered {
		return fmt.Errorf("query %d already answered", q.ID)
	}
	return nil
}
