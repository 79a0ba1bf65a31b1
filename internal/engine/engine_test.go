package engine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tmiltonj/depose/internal/engine"
	"github.com/tmiltonj/depose/internal/engine/effects"
)

// firstCard always draws index 0, so tests can predict draws.
type firstCard struct{}

func (firstCard) IntN(int) int { return 0 }

// scripted answers queries from fixed data and logs every query it sees.
type scripted struct {
	name  string
	hand  []engine.Role
	coins int

	actions    []engine.ActionKind // consumed in order
	prefer     []engine.ActionKind // used once actions run out
	targets    []string
	blocks     bool
	challenges bool
	reveal     engine.Role
	lose       engine.Role
	returns    []engine.Role

	log *[]string
}

func (s *scripted) record(q *engine.Query) {
	if s.log != nil {
		*s.log = append(*s.log, fmt.Sprintf("%s:%s", q.Player, q.Kind))
	}
}

func (s *scripted) Choose(ctx context.Context, q *engine.Query) (int, error) {
	s.record(q)
	switch q.Kind {
	case engine.QueryAction:
		if len(s.actions) > 0 {
			next := s.actions[0]
			s.actions = s.actions[1:]
			return indexOf(q.Options, string(next)), nil
		}
		for _, k := range s.prefer {
			if i := indexOf(q.Options, string(k)); i >= 0 {
				return i, nil
			}
		}
	case engine.QueryTarget:
		if len(s.targets) > 0 {
			next := s.targets[0]
			s.targets = s.targets[1:]
			return indexOf(q.Options, next), nil
		}
	case engine.QueryReveal:
		if i := indexOf(q.Options, s.reveal.String()); i >= 0 {
			return i, nil
		}
	case engine.QueryLoseLife:
		if i := indexOf(q.Options, s.lose.String()); i >= 0 {
			return i, nil
		}
	case engine.QueryReturn:
		if len(s.returns) > 0 {
			next := s.returns[0]
			s.returns = s.returns[1:]
			return indexOf(q.Options, next.String()), nil
		}
	}
	return 0, nil
}

func (s *scripted) Confirm(ctx context.Context, q *engine.Query) (bool, error) {
	s.record(q)
	switch q.Kind {
	case engine.QueryBlock:
		return s.blocks, nil
	case engine.QueryChallenge:
		return s.challenges, nil
	}
	return false, nil
}

func indexOf(options []string, want string) int {
	for i, o := range options {
		if o == want {
			return i
		}
	}
	return -1
}

func newTable(t *testing.T, deck []engine.Role, seats ...*scripted) (*engine.Game, *[]string) {
	t.Helper()
	return newTableConfig(t, engine.DefaultConfig(), deck, seats...)
}

// newTableConfig seats the scripted players with the hands and coins they
// declare. The game stays in setup so no cards are dealt.
func newTableConfig(t *testing.T, cfg engine.GameConfig, deck []engine.Role, seats ...*scripted) (*engine.Game, *[]string) {
	t.Helper()
	log := &[]string{}
	var players []*engine.Player
	for _, s := range seats {
		s.log = log
		players = append(players, engine.NewPlayer(s.name, s))
	}
	g, err := engine.NewGame(players, cfg, effects.NewRegistry(),
		engine.WithDeck(deck), engine.WithRandom(firstCard{}))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	for i, s := range seats {
		for _, c := range s.hand {
			g.Players[i].AddCard(c)
		}
		g.Players[i].SetCoins(s.coins)
	}
	return g, log
}

func totalCards(g *engine.Game) int {
	n := g.Deck.Len()
	for _, p := range g.Players {
		n += p.HandSize() + len(p.Lost())
	}
	return n
}

func newTestGame(t *testing.T, n int) *engine.Game {
	t.Helper()
	var players []*engine.Player
	for i := 0; i < n; i++ {
		players = append(players, engine.NewPlayer(string(rune('A'+i)), &scripted{}))
	}
	g, err := engine.NewGame(players, engine.DefaultConfig(), effects.NewRegistry())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 4)
	if len(g.Players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(g.Players))
	}
	if g.Phase != engine.PhaseSetup {
		t.Fatalf("expected Setup phase, got %s", g.Phase)
	}
	if g.ID == "" {
		t.Fatal("expected a match ID")
	}
	if g.Deck.Len() != 15 {
		t.Fatalf("expected 15 cards in deck, got %d", g.Deck.Len())
	}
}

func TestNewGameRejects(t *testing.T) {
	seat := func(names ...string) []*engine.Player {
		var out []*engine.Player
		for _, n := range names {
			out = append(out, engine.NewPlayer(n, &scripted{}))
		}
		return out
	}
	tests := []struct {
		name    string
		players []*engine.Player
		want    error
	}{
		{"one player", seat("A"), engine.ErrPlayerCount},
		{"seven players", seat("A", "B", "C", "D", "E", "F", "G"), engine.ErrPlayerCount},
		{"duplicate name", seat("A", "B", "A"), engine.ErrDuplicatePlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewGame(tt.players, engine.DefaultConfig(), effects.NewRegistry())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestStartGame(t *testing.T) {
	g := newTestGame(t, 4)
	if err := g.StartGame(); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if g.Phase != engine.PhaseStartTurn {
		t.Fatalf("expected StartTurn phase, got %s", g.Phase)
	}
	for _, p := range g.Players {
		if p.HandSize() != 2 {
			t.Errorf("player %s should have 2 cards, got %d", p.Name, p.HandSize())
		}
		if p.Coins() != 2 {
			t.Errorf("player %s should have 2 coins, got %d", p.Name, p.Coins())
		}
	}
	if g.Deck.Len() != 7 {
		t.Fatalf("expected 7 cards left, got %d", g.Deck.Len())
	}
	if g.ActivePlayer() != g.Players[0] {
		t.Fatalf("expected first seat to start, got %s", g.ActivePlayer().Name)
	}
	if err := g.StartGame(); !errors.Is(err, engine.ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestPlayTurnBeforeStart(t *testing.T) {
	g := newTestGame(t, 2)
	if _, err := g.PlayTurn(context.Background()); !errors.Is(err, engine.ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestValidActions(t *testing.T) {
	g := newTestGame(t, 2)
	p := g.Players[0]
	tests := []struct {
		coins  int
		has    []engine.ActionKind
		hasNot []engine.ActionKind
	}{
		{0, []engine.ActionKind{engine.ActionSalary, engine.ActionMug, engine.ActionDiplomacy}, []engine.ActionKind{engine.ActionMurder, engine.ActionDepose}},
		{3, []engine.ActionKind{engine.ActionMurder}, []engine.ActionKind{engine.ActionDepose}},
		{7, []engine.ActionKind{engine.ActionMurder, engine.ActionDepose, engine.ActionTithe}, nil},
		{10, []engine.ActionKind{engine.ActionDepose}, []engine.ActionKind{engine.ActionSalary, engine.ActionMurder}},
	}
	for _, tt := range tests {
		p.SetCoins(tt.coins)
		got := g.ValidActions(p)
		for _, k := range tt.has {
			if !hasKind(got, k) {
				t.Errorf("coins=%d: expected %s in %v", tt.coins, k, got)
			}
		}
		for _, k := range tt.hasNot {
			if hasKind(got, k) {
				t.Errorf("coins=%d: did not expect %s in %v", tt.coins, k, got)
			}
		}
	}
}

func hasKind(kinds []engine.ActionKind, k engine.ActionKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

func TestGameRunsToWinner(t *testing.T) {
	// Everyone takes Salary until they can Depose, nobody blocks or
	// challenges, and the first opponent is always the target.
	var players []*engine.Player
	for _, n := range []string{"A", "B", "C", "D"} {
		in := &scripted{prefer: []engine.ActionKind{engine.ActionDepose, engine.ActionSalary}}
		players = append(players, engine.NewPlayer(n, in))
	}
	g, err := engine.NewGame(players, engine.DefaultConfig(), effects.NewRegistry(), engine.WithRandom(firstCard{}))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	winner, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil {
		t.Fatal("expected a winner")
	}
	if !g.Over() {
		t.Fatalf("expected GameOver, got %s", g.Phase)
	}
	living := g.Living()
	if len(living) != 1 || living[0] != winner {
		t.Fatalf("expected only the winner alive, got %v", living)
	}
	if _, err := g.PlayTurn(context.Background()); !errors.Is(err, engine.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if totalCards(g) != 15 {
		t.Fatalf("expected 15 cards in play, got %d", totalCards(g))
	}
}

func TestEliminationOffTurn(t *testing.T) {
	a := &scripted{name: "A", hand: []engine.Role{engine.RoleLord, engine.RoleMedic}, coins: 2, reveal: engine.RoleLord}
	b := &scripted{name: "B", hand: []engine.Role{engine.RoleBandit}, coins: 2, challenges: true}
	c := &scripted{name: "C", hand: []engine.Role{engine.RoleMedic, engine.RoleMedic}, coins: 2}
	g, _ := newTable(t, []engine.Role{engine.RoleDiplomat}, a, b, c)

	res, err := g.Declare(context.Background(), g.Players[0], engine.ActionTithe, nil)
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if res != engine.ResultSuccess {
		t.Fatalf("expected SUCCESS, got %s", res)
	}
	if g.Players[1].Alive() {
		t.Fatal("B should have lost their only card")
	}

	out := g.Cleanup()
	if len(out) != 1 || out[0] != "B" {
		t.Fatalf("expected B eliminated, got %v", out)
	}
	if g.ActivePlayer().Name != "C" {
		t.Fatalf("expected C to be next, got %s", g.ActivePlayer().Name)
	}
	if again := g.Cleanup(); len(again) != 0 {
		t.Fatalf("B should only be eliminated once, got %v", again)
	}
}

func TestCleanupDeclaresWinner(t *testing.T) {
	a := &scripted{name: "A", hand: []engine.Role{engine.RoleLord}, coins: 7}
	b := &scripted{name: "B", hand: []engine.Role{engine.RoleBandit}}
	g, _ := newTable(t, nil, a, b)

	if _, err := g.Declare(context.Background(), g.Players[0], engine.ActionDepose, g.Players[1]); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	g.Cleanup()
	if !g.Over() {
		t.Fatalf("expected GameOver, got %s", g.Phase)
	}
	if g.Winner != g.Players[0] {
		t.Fatalf("expected A to win, got %v", g.Winner)
	}
	if _, err := g.Declare(context.Background(), g.Players[0], engine.ActionSalary, nil); !errors.Is(err, engine.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestViews(t *testing.T) {
	a := &scripted{name: "A", hand: []engine.Role{engine.RoleLord, engine.RoleMedic}, coins: 2}
	b := &scripted{name: "B", hand: []engine.Role{engine.RoleBandit}, coins: 4}
	g, _ := newTable(t, []engine.Role{engine.RoleDiplomat}, a, b)

	pv := g.PublicView()
	if len(pv.Players) != 2 || pv.Players[1].Coins != 4 || pv.Players[0].HandSize != 2 {
		t.Fatalf("unexpected public view %+v", pv)
	}
	if pv.DeckSize != 1 {
		t.Fatalf("expected deck size 1, got %d", pv.DeckSize)
	}

	v := g.ViewFor("A")
	if len(v.Hand) != 2 || v.Hand[0] != engine.RoleLord {
		t.Fatalf("expected A to see own hand, got %v", v.Hand)
	}
	if len(g.ViewFor("nobody").Hand) != 0 {
		t.Fatal("unknown players see no hand")
	}
}

func TestListenerSeesEvents(t *testing.T) {
	var types []engine.EventType
	players := []*engine.Player{
		engine.NewPlayer("A", &scripted{}),
		engine.NewPlayer("B", &scripted{}),
	}
	g, err := engine.NewGame(players, engine.DefaultConfig(), effects.NewRegistry(),
		engine.WithListener(engine.ListenerFunc(func(ev engine.Event) { types = append(types, ev.Type) })))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.StartGame(); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if _, err := g.PlayTurn(context.Background()); err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}

	for _, want := range []engine.EventType{engine.EventGameStart, engine.EventTurnStart, engine.EventActionDeclared, engine.EventActionResolved} {
		found := false
		for _, got := range types {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in %v", want, types)
		}
	}
}

func TestStandings(t *testing.T) {
	a := &scripted{name: "A", hand: []engine.Role{engine.RoleLord}, coins: 7}
	b := &scripted{name: "B", hand: []engine.Role{engine.RoleBandit}}
	c := &scripted{name: "C", hand: []engine.Role{engine.RoleMedic}, coins: 3}
	g, _ := newTable(t, nil, a, b, c)
	ctx := context.Background()

	if _, err := g.Declare(ctx, g.Players[0], engine.ActionDepose, g.Players[1]); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	g.Cleanup()
	if _, err := g.Declare(ctx, g.Players[2], engine.ActionMurder, g.Players[0]); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	g.Turn++
	g.Cleanup()

	st := g.Standings()
	want := []string{"C", "A", "B"}
	for i, name := range want {
		if st[i].Player != name || st[i].Place != i+1 {
			t.Errorf("place %d: expected %s, got %+v", i+1, name, st[i])
		}
	}
	if !g.PublicView().Players[1].Eliminated {
		t.Error("B should show as eliminated")
	}
}
