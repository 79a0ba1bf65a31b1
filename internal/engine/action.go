package engine

import (
	"context"
	"fmt"
)

// ActionKind identifies actions and blocks.
type ActionKind string

const (
	ActionSalary         ActionKind = "Salary"
	ActionDonations      ActionKind = "Donations"
	ActionTithe          ActionKind = "Tithe"
	ActionDepose         ActionKind = "Depose"
	ActionMug            ActionKind = "Mug"
	ActionMurder         ActionKind = "Murder"
	ActionDiplomacy      ActionKind = "Diplomacy"
	ActionBlockDonations ActionKind = "Block Donations"
	ActionBlockMug       ActionKind = "Block Mug"
	ActionBlockMurder    ActionKind = "Block Murder"
)

// Action costs in coins.
const (
	deposeCost = 7
	murderCost = 3
)

// DiplomacyDraw is how many cards Diplomacy draws and then returns.
const DiplomacyDraw = 2

var actionCosts = map[ActionKind]int{
	ActionDepose: deposeCost,
	ActionMurder: murderCost,
}

// Cost returns the coin cost of kind.
func (k ActionKind) Cost() int {
	return actionCosts[k]
}

// Result is the terminal outcome of one action attempt.
type Result int

const (
	ResultSuccess          Result = iota // effect applied
	ResultBlocked                        // block stood, effect never applied
	ResultChallengeSuccess               // claim exposed, claimant lost a card
	ResultChallengeFailure               // claim proven, resolution continues
)

var resultNames = map[Result]string{
	ResultSuccess:          "SUCCESS",
	ResultBlocked:          "BLOCKED",
	ResultChallengeSuccess: "CHALLENGE_SUCCESS",
	ResultChallengeFailure: "CHALLENGE_FAILURE",
}

func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return "UNKNOWN"
}

func (r Result) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Effect is the bare economic or life effect of an action. It knows
// nothing about targeting, blocking or challenges.
type Effect interface {
	Kind() ActionKind
	// Targeted reports whether the effect needs a target.
	Targeted() bool
	// Apply mutates actor and target through their Player methods.
	Apply(ctx context.Context, g *Game, actor, target *Player) ([]Event, error)
}

// EffectRegistry maps action kinds to their effects.
type EffectRegistry struct {
	effects map[ActionKind]Effect
}

func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{effects: make(map[ActionKind]Effect)}
}

func (r *EffectRegistry) Register(e Effect) {
	r.effects[e.Kind()] = e
}

func (r *EffectRegistry) Get(kind ActionKind) (Effect, error) {
	e, ok := r.effects[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	return e, nil
}

// Action is one attempt by a player, composed of capability layers
// around a base effect.
type Action interface {
	Kind() ActionKind
	Actor() *Player
	// Layer names this capability: "Targeted", "Counterable",
	// "Questionable", or the kind for the base effect.
	Layer() string
	// Unwrap returns the wrapped action, nil for the base.
	Unwrap() Action
	// Perform resolves the layer. target is nil until a Targeted layer
	// has chosen one.
	Perform(ctx context.Context, g *Game, target *Player) (Result, error)
}

// Chain lists the layers of a, outermost first.
func Chain(a Action) []string {
	var layers []string
	for ; a != nil; a = a.Unwrap() {
		layers = append(layers, a.Layer())
	}
	return layers
}

// base applies an effect once every outer layer has let it through.
type base struct {
	actor  *Player
	effect Effect
}

func (b *base) Kind() ActionKind { return b.effect.Kind() }
func (b *base) Actor() *Player   { return b.actor }
func (b *base) Layer() string    { return string(b.effect.Kind()) }
func (b *base) Unwrap() Action   { return nil }

func (b *base) Perform(ctx context.Context, g *Game, target *Player) (Result, error) {
	kind := b.effect.Kind()
	if b.effect.Targeted() && target == nil {
		return 0, fmt.Errorf("%w: %s must be targeted", ErrInvalidTarget, kind)
	}
	if !b.effect.Targeted() && target != nil {
		return 0, fmt.Errorf("%w: %s should not be targeted", ErrInvalidTarget, kind)
	}
	g.setPhase(PhaseApply)
	if cost := kind.Cost(); cost > 0 && g.Config.CostPolicy == CostOnApply {
		b.actor.AddCoins(-cost)
		g.emit(CoinsChangedEvent(b.actor, -cost, "cost"))
	}
	events, err := b.effect.Apply(ctx, g, b.actor, target)
	if err != nil {
		return 0, err
	}
	g.emit(events...)
	return ResultSuccess, nil
}

// Targeted resolves a target before the wrapped action runs.
type Targeted struct {
	Inner Action
}

func (t *Targeted) Kind() ActionKind { return t.Inner.Kind() }
func (t *Targeted) Actor() *Player   { return t.Inner.Actor() }
func (t *Targeted) Layer() string    { return "Targeted" }
func (t *Targeted) Unwrap() Action   { return t.Inner }

func (t *Targeted) Perform(ctx context.Context, g *Game, target *Player) (Result, error) {
	target, err := g.ResolveTarget(ctx, t, target)
	if err != nil {
		return 0, err
	}
	return t.Inner.Perform(ctx, g, target)
}

// Counterable lets opponents block the wrapped action.
type Counterable struct {
	Inner Action
}

func (c *Counterable) Kind() ActionKind { return c.Inner.Kind() }
func (c *Counterable) Actor() *Player   { return c.Inner.Actor() }
func (c *Counterable) Layer() string    { return "Counterable" }
func (c *Counterable) Unwrap() Action   { return c.Inner }

func (c *Counterable) Perform(ctx context.Context, g *Game, target *Player) (Result, error) {
	blocker, err := g.AskForCounters(ctx, c, target)
	if err != nil {
		return 0, err
	}
	if blocker == nil {
		return c.Inner.Perform(ctx, g, target)
	}

	block, err := g.factory.CreateBlock(c.Kind(), blocker)
	if err != nil {
		return 0, err
	}
	res, err := block.Perform(ctx, g, nil)
	if err != nil {
		return 0, err
	}
	if res == ResultSuccess {
		g.narrate("%s's %s was blocked by %s", c.Actor().Name, c.Kind(), blocker.Name)
		return ResultBlocked, nil
	}
	g.narrate("%s's block failed, %s goes ahead", blocker.Name, c.Kind())
	return c.Inner.Perform(ctx, g, target)
}

// Questionable lets opponents challenge the claim behind the wrapped
// action.
type Questionable struct {
	Inner Action
}

func (q *Questionable) Kind() ActionKind { return q.Inner.Kind() }
func (q *Questionable) Actor() *Player   { return q.Inner.Actor() }
func (q *Questionable) Layer() string    { return "Questionable" }
func (q *Questionable) Unwrap() Action   { return q.Inner }

func (q *Questionable) Perform(ctx context.Context, g *Game, target *Player) (Result, error) {
	challenger, err := g.AskForChallenges(ctx, q)
	if err != nil {
		return 0, err
	}
	if challenger == nil {
		return q.Inner.Perform(ctx, g, target)
	}
	outcome, err := g.ResolveChallenge(ctx, q, challenger)
	if err != nil {
		return 0, err
	}
	if outcome == ResultChallengeSuccess {
		return ResultChallengeSuccess, nil
	}
	return q.Inner.Perform(ctx, g, target)
}
