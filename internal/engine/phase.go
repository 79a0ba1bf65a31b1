package engine

// GamePhase represents the current phase of the turn state machine.
type GamePhase int

const (
	PhaseSetup        GamePhase = iota // players seated, nothing dealt
	PhaseStartTurn                     // selecting the active player
	PhaseChooseAction                  // active player picking an action
	PhaseTargeting                     // active player picking a target
	PhaseChallenging                   // polling opponents for a challenge
	PhaseBlocking                      // polling for a block
	PhaseApply                         // effect being applied
	PhaseCleanup                       // eliminating empty hands, advancing
	PhaseGameOver                      // one player left
)

var phaseNames = map[GamePhase]string{
	PhaseSetup:        "Setup",
	PhaseStartTurn:    "StartTurn",
	PhaseChooseAction: "ChooseAction",
	PhaseTargeting:    "Targeting",
	PhaseChallenging:  "Challenging",
	PhaseBlocking:     "Blocking",
	PhaseApply:        "ApplyOrAbort",
	PhaseCleanup:      "Cleanup",
	PhaseGameOver:     "GameOver",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}
