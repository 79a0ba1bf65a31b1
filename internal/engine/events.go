package engine

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventGameStart        EventType = "game_start"
	EventTurnStart        EventType = "turn_start"
	EventActionDeclared   EventType = "action_declared"
	EventTargetChosen     EventType = "target_chosen"
	EventBlockClaimed     EventType = "block_claimed"
	EventChallenged       EventType = "challenged"
	EventCardRevealed     EventType = "card_revealed"
	EventCardReplaced     EventType = "card_replaced"
	EventLifeLost         EventType = "life_lost"
	EventCoinsChanged     EventType = "coins_changed"
	EventCardsExchanged   EventType = "cards_exchanged"
	EventActionApplied    EventType = "action_applied"
	EventActionResolved   EventType = "action_resolved"
	EventPlayerEliminated EventType = "player_eliminated"
	EventPhaseChange      EventType = "phase_change"
	EventGameOver         EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType   `json:"type"`
	Player string      `json:"player,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Listener observes engine events. OnEvent runs on the game's flow, so
// implementations must not block.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(ev Event) { f(ev) }
