package engine

import "fmt"

// shape lists the capability layers of an action kind.
type shape struct {
	targeted     bool
	questionable bool
	counterable  bool
	block        ActionKind // counter-action built when a block is claimed
}

// shapes is the composition table. Layers always nest in the same order:
// Targeted(Questionable(Counterable(effect))).
var shapes = map[ActionKind]shape{
	ActionSalary:         {},
	ActionDonations:      {counterable: true, block: ActionBlockDonations},
	ActionTithe:          {questionable: true},
	ActionDepose:         {targeted: true},
	ActionMug:            {targeted: true, questionable: true, counterable: true, block: ActionBlockMug},
	ActionMurder:         {targeted: true, questionable: true, counterable: true, block: ActionBlockMurder},
	ActionDiplomacy:      {questionable: true},
	ActionBlockDonations: {questionable: true},
	ActionBlockMug:       {questionable: true},
	ActionBlockMurder:    {questionable: true},
}

// TurnActions are the kinds a player may choose on their turn, in menu order.
func TurnActions() []ActionKind {
	return []ActionKind{
		ActionSalary, ActionDonations, ActionTithe, ActionDepose,
		ActionMug, ActionMurder, ActionDiplomacy,
	}
}

// BlockFor returns the counter-action for kind, if it can be blocked.
func BlockFor(kind ActionKind) (ActionKind, bool) {
	s, ok := shapes[kind]
	if !ok || !s.counterable {
		return "", false
	}
	return s.block, true
}

// IsBlock reports whether kind is a counter-action.
func IsBlock(kind ActionKind) bool {
	for _, s := range shapes {
		if s.block == kind {
			return true
		}
	}
	return false
}

// ActionFactory builds capability chains from the composition table.
type ActionFactory struct {
	effects *EffectRegistry
}

func NewActionFactory(effects *EffectRegistry) *ActionFactory {
	return &ActionFactory{effects: effects}
}

// Create builds the full chain for kind performed by actor.
func (f *ActionFactory) Create(kind ActionKind, actor *Player) (Action, error) {
	s, ok := shapes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	effect, err := f.effects.Get(kind)
	if err != nil {
		return nil, err
	}

	var a Action = &base{actor: actor, effect: effect}
	if s.counterable {
		a = &Counterable{Inner: a}
	}
	if s.questionable {
		a = &Questionable{Inner: a}
	}
	if s.targeted {
		a = &Targeted{Inner: a}
	}
	return a, nil
}

// CreateBlock builds the counter-action against kind for blocker.
func (f *ActionFactory) CreateBlock(kind ActionKind, blocker *Player) (Action, error) {
	block, ok := BlockFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no block", ErrUnknownAction, kind)
	}
	return f.Create(block, blocker)
}
