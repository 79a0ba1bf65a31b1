package lobby

import (
	"errors"
	"testing"
)

func TestJoinAndStart(t *testing.T) {
	l := NewLobby(2, 3)
	if l.ID == "" {
		t.Fatal("expected a table id")
	}
	rei, err := l.Join("Rei", false)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if rei.ID == "" || rei.Bot {
		t.Fatalf("unexpected seat %+v", rei)
	}
	if err := l.Start(); !errors.Is(err, ErrTooFewSeats) {
		t.Fatalf("expected ErrTooFewSeats, got %v", err)
	}
	if _, err := l.Join("Asuka", true); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := l.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !l.Started() {
		t.Fatal("expected table to be started")
	}
	if _, err := l.Join("Misato", true); !errors.Is(err, ErrStarted) {
		t.Fatalf("expected ErrStarted, got %v", err)
	}
	if err := l.Leave(rei.ID); !errors.Is(err, ErrStarted) {
		t.Fatalf("expected ErrStarted on leave, got %v", err)
	}

	seats := l.Seats()
	if len(seats) != 2 || seats[0].Name != "Rei" || !seats[1].Bot {
		t.Fatalf("unexpected seats %+v", seats)
	}
}

func TestJoinRejects(t *testing.T) {
	l := NewLobby(2, 2)
	if _, err := l.Join("  ", false); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := l.Join("Rei", false); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := l.Join("rei", true); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	if _, err := l.Join("Asuka", true); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := l.Join("Misato", true); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
}

func TestLeave(t *testing.T) {
	l := NewLobby(2, 6)
	a, _ := l.Join("Rei", false)
	l.Join("Asuka", false)
	if err := l.Leave("nobody"); !errors.Is(err, ErrNoSeat) {
		t.Fatalf("expected ErrNoSeat, got %v", err)
	}
	if err := l.Leave(a.ID); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if seats := l.Seats(); len(seats) != 1 || seats[0].Name != "Asuka" {
		t.Fatalf("unexpected seats %+v", seats)
	}
	if _, err := l.Join("Rei", false); err != nil {
		t.Fatalf("name should be free again: %v", err)
	}
}

func TestOnChange(t *testing.T) {
	l := NewLobby(2, 6)
	var calls int
	var last []Seat
	var started bool
	l.OnChange = func(seats []Seat, s bool) {
		calls++
		last, started = seats, s
	}
	l.Join("Rei", false)
	l.Join("Asuka", true)
	l.Join("Asuka", true)
	l.Start()

	if calls != 3 {
		t.Fatalf("expected 3 notifications, got %d", calls)
	}
	if len(last) != 2 || !started {
		t.Fatalf("unexpected final notification %+v %v", last, started)
	}
}
