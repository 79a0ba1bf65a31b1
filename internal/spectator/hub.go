// Package spectator serves a read-only live view of one table over
// WebSocket, plus the QR code, state and metrics endpoints around it.
package spectator

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/tmiltonj/depose/internal/engine"
	"github.com/tmiltonj/depose/internal/lobby"
	"github.com/tmiltonj/depose/internal/protocol"
)

const backlog = 256

// Hub fans engine events out to every connected spectator. It is an
// engine.Listener: OnEvent runs on the game's flow, snapshots the public
// view there and hands the encoded frame to Run without blocking.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]bool
	hello     protocol.Hello
	seats     *protocol.Seats
	state     *engine.PublicViewData
	standings *protocol.StandingsFrame
	view      func() engine.PublicViewData

	seq        atomic.Uint64
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stopped    chan struct{}
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, backlog),
		stopped:    make(chan struct{}),
		log:        log.With("component", "spectator"),
	}
}

// Attach points the hub at g. Call it before g starts.
func (h *Hub) Attach(g *engine.Game) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.view = g.PublicView
	h.hello.GameID = g.ID
}

func (h *Hub) setJoinURL(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hello.JoinURL = url
}

// Run serves registrations and broadcasts until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.greet(c)
			h.log.Debug("spectator joined", "addr", c.addr)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn("spectator too slow, dropping", "addr", c.addr)
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()

		case <-done:
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// OnEvent implements engine.Listener.
func (h *Hub) OnEvent(ev engine.Event) {
	h.mu.Lock()
	view := h.view
	h.mu.Unlock()
	if view == nil {
		return
	}
	state := view()

	h.mu.Lock()
	h.state = &state
	h.mu.Unlock()

	h.publish(protocol.MsgEvent, protocol.EventFrame{Event: ev, State: state})
}

// PublishSeats has the lobby.OnChange signature.
func (h *Hub) PublishSeats(seats []lobby.Seat, started bool) {
	frame := protocol.Seats{Started: started, Seats: make([]protocol.Seat, len(seats))}
	for i, s := range seats {
		frame.Seats[i] = protocol.Seat{ID: s.ID, Name: s.Name, Bot: s.Bot}
	}
	h.mu.Lock()
	h.seats = &frame
	h.mu.Unlock()
	h.publish(protocol.MsgSeats, frame)
}

// PublishStandings sends the final ranking of g.
func (h *Hub) PublishStandings(g *engine.Game) {
	frame := protocol.StandingsFrame{Turns: g.Turn, Standings: g.Standings()}
	if g.Winner != nil {
		frame.Winner = g.Winner.Name
	}
	h.mu.Lock()
	h.standings = &frame
	h.mu.Unlock()
	h.publish(protocol.MsgStandings, frame)
}

// State returns the last public view seen, if any.
func (h *Hub) State() (engine.PublicViewData, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == nil {
		return engine.PublicViewData{}, false
	}
	return *h.state, true
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stopped:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) publish(typ string, payload interface{}) {
	data, err := h.encode(typ, h.seq.Add(1), payload)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("spectator backlog full, frame dropped", "type", typ)
	}
}

// greet brings a new client up to date: hello, then whatever the table
// currently looks like.
func (h *Hub) greet(c *Client) {
	h.mu.Lock()
	hello, seats, state, standings := h.hello, h.seats, h.state, h.standings
	h.mu.Unlock()

	seq := h.seq.Load()
	c.queue(h.mustEncode(protocol.MsgHello, seq, hello))
	if seats != nil {
		c.queue(h.mustEncode(protocol.MsgSeats, seq, seats))
	}
	if state != nil {
		c.queue(h.mustEncode(protocol.MsgGameState, seq, state))
	}
	if standings != nil {
		c.queue(h.mustEncode(protocol.MsgStandings, seq, standings))
	}
}

func (h *Hub) encode(typ string, seq uint64, payload interface{}) ([]byte, error) {
	env, err := protocol.NewEnvelope(typ, seq, payload)
	if err == nil {
		var data []byte
		if data, err = json.Marshal(env); err == nil {
			return data, nil
		}
	}
	h.log.Error("encode frame", "type", typ, "err", err)
	return nil, err
}

func (h *Hub) mustEncode(typ string, seq uint64, payload interface{}) []byte {
	data, _ := h.encode(typ, seq, payload)
	return data
}
