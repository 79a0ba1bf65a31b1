// Package lobby seats humans and bots before a game is dealt.
package lobby

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrStarted     = errors.New("table already started")
	ErrFull        = errors.New("table is full")
	ErrNameTaken   = errors.New("name already seated")
	ErrEmptyName   = errors.New("name is empty")
	ErrNoSeat      = errors.New("no such seat")
	ErrTooFewSeats = errors.New("not enough players")
)

// Seat is one chair at the table.
type Seat struct {
	ID   string
	Name string
	Bot  bool
}

// Lobby is a table that has not been dealt yet. OnChange, if set, is
// called with a copy of the seats after every successful change.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	seats      []*Seat
	MinPlayers int
	MaxPlayers int
	started    bool

	OnChange func(seats []Seat, started bool)
}

// NewLobby creates an empty table for min to max players.
func NewLobby(min, max int) *Lobby {
	return &Lobby{
		ID:         uuid.NewString(),
		MinPlayers: min,
		MaxPlayers: max,
	}
}

// Join seats name and returns the new seat. Names are unique without
// regard to case.
func (l *Lobby) Join(name string, bot bool) (Seat, error) {
	name = strings.TrimSpace(name)
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return Seat{}, ErrStarted
	}
	if name == "" {
		l.mu.Unlock()
		return Seat{}, ErrEmptyName
	}
	if len(l.seats) >= l.MaxPlayers {
		l.mu.Unlock()
		return Seat{}, fmt.Errorf("%w: %d seats", ErrFull, l.MaxPlayers)
	}
	for _, s := range l.seats {
		if strings.EqualFold(s.Name, name) {
			l.mu.Unlock()
			return Seat{}, fmt.Errorf("%w: %s", ErrNameTaken, name)
		}
	}
	seat := &Seat{ID: uuid.NewString(), Name: name, Bot: bot}
	l.seats = append(l.seats, seat)
	l.mu.Unlock()

	l.changed()
	return *seat, nil
}

// Leave frees the seat with id.
func (l *Lobby) Leave(id string) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrStarted
	}
	idx := -1
	for i, s := range l.seats {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return ErrNoSeat
	}
	l.seats = append(l.seats[:idx], l.seats[idx+1:]...)
	l.mu.Unlock()

	l.changed()
	return nil
}

// Start closes the table. Seats are fixed from here on.
func (l *Lobby) Start() error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrStarted
	}
	if len(l.seats) < l.MinPlayers {
		n := len(l.seats)
		l.mu.Unlock()
		return fmt.Errorf("%w: %d of %d", ErrTooFewSeats, n, l.MinPlayers)
	}
	l.started = true
	l.mu.Unlock()

	l.changed()
	return nil
}

func (l *Lobby) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}

// Seats returns a copy of the seats in joining order.
func (l *Lobby) Seats() []Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Lobby) snapshot() []Seat {
	out := make([]Seat, len(l.seats))
	for i, s := range l.seats {
		out[i] = *s
	}
	return out
}

func (l *Lobby) changed() {
	if l.OnChange == nil {
		return
	}
	l.mu.Lock()
	seats, started := l.snapshot(), l.started
	l.mu.Unlock()
	l.OnChange(seats, started)
}
