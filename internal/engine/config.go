package engine

import "fmt"

// CostPolicy decides when an action's coin cost is charged.
type CostPolicy int

const (
	// CostOnDeclare charges when the action is declared, before anyone is
	// asked to block or challenge. The coins are gone even if the action
	// is later blocked or its claim is exposed.
	CostOnDeclare CostPolicy = iota
	// CostOnApply charges only when the effect actually applies.
	CostOnApply
)

// DefaultCostPolicy follows the printed Coup rules.
const DefaultCostPolicy = CostOnDeclare

var costPolicyNames = map[CostPolicy]string{
	CostOnDeclare: "declare",
	CostOnApply:   "apply",
}

func (c CostPolicy) String() string {
	if s, ok := costPolicyNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCostPolicy accepts "declare" or "apply".
func ParseCostPolicy(s string) (CostPolicy, error) {
	for p, name := range costPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown cost policy %q", s)
}

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	RoleCopies    int // copies of each role in the deck (default 3)
	StartingCoins int
	StartingCards int
	MinPlayers    int
	MaxPlayers    int
	CostPolicy    CostPolicy
	ForcedDepose  int // coin total at which Depose becomes mandatory
}

func DefaultConfig() GameConfig {
	return GameConfig{
		RoleCopies:    3,
		StartingCoins: 2,
		StartingCards: 2,
		MinPlayers:    2,
		MaxPlayers:    6,
		CostPolicy:    DefaultCostPolicy,
		ForcedDepose:  10,
	}
}

// Validate checks that a table of n players can be dealt and still leave
// enough cards for Diplomacy draws.
func (c GameConfig) Validate(n int) error {
	if n < c.MinPlayers || n > c.MaxPlayers {
		return fmt.Errorf("%w: %d players, want %d-%d", ErrPlayerCount, n, c.MinPlayers, c.MaxPlayers)
	}
	if c.StartingCards < 1 {
		return fmt.Errorf("starting cards must be positive, got %d", c.StartingCards)
	}
	total := c.RoleCopies * len(AllRoles())
	if need := n*c.StartingCards + DiplomacyDraw; total < need {
		return fmt.Errorf("deck of %d cards cannot seat %d players (need %d)", total, n, need)
	}
	return nil
}
