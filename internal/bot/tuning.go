package bot

// Tuning holds the probabilities used by the bluffing strategy.
type Tuning struct {
	BluffChance      float64 // declare an action without the role
	BlockBluffChance float64 // claim a block without the role
	ChallengeChance  float64 // challenge a claim that could be true
	RoleCopies       int     // copies of each role in the deck, for card counting
}

// DefaultTuning bluffs now and then and challenges rarely.
var DefaultTuning = Tuning{
	BluffChance:      0.25,
	BlockBluffChance: 0.15,
	ChallengeChance:  0.10,
	RoleCopies:       3,
}
