package protocol

import "github.com/tmiltonj/depose/internal/engine"

// Frame types, server to spectator. The socket is read-only; nothing is
// accepted from clients beyond control frames.
const (
	MsgHello     = "hello"
	MsgSeats     = "seats"
	MsgGameState = "game_state"
	MsgEvent     = "event"
	MsgStandings = "standings"
	MsgError     = "error"
)

// Hello is the first frame a spectator receives.
type Hello struct {
	GameID  string `json:"game_id"`
	JoinURL string `json:"join_url,omitempty"`
}

// Seats lists the table before the deal.
type Seats struct {
	Seats   []Seat `json:"seats"`
	Started bool   `json:"started"`
}

type Seat struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bot  bool   `json:"bot"`
}

// EventFrame carries one engine event together with the public table it
// produced, so a late spectator needs nothing else to draw the board.
type EventFrame struct {
	Event engine.Event          `json:"event"`
	State engine.PublicViewData `json:"state"`
}

// StandingsFrame closes a game.
type StandingsFrame struct {
	Winner    string            `json:"winner,omitempty"`
	Turns     int               `json:"turns"`
	Standings []engine.Standing `json:"standings"`
}

// ErrorMsg reports a server-side failure to spectators.
type ErrorMsg struct {
	Message string `json:"message"`
}
