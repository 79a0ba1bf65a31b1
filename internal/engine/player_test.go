package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tmiltonj/depose/internal/engine"
)

func TestLegitimacyTable(t *testing.T) {
	tests := []struct {
		role  engine.Role
		kind  engine.ActionKind
		legit bool
	}{
		{engine.RoleLord, engine.ActionTithe, true},
		{engine.RoleLord, engine.ActionBlockDonations, true},
		{engine.RoleLord, engine.ActionMug, false},
		{engine.RoleBandit, engine.ActionMug, true},
		{engine.RoleBandit, engine.ActionBlockMug, true},
		{engine.RoleBandit, engine.ActionBlockMurder, false},
		{engine.RoleMercenary, engine.ActionMurder, true},
		{engine.RoleMercenary, engine.ActionTithe, false},
		{engine.RoleMedic, engine.ActionBlockMurder, true},
		{engine.RoleMedic, engine.ActionMurder, false},
		{engine.RoleDiplomat, engine.ActionDiplomacy, true},
		{engine.RoleDiplomat, engine.ActionBlockMug, true},
		{engine.RoleDiplomat, engine.ActionBlockDonations, false},
	}
	for _, tt := range tests {
		if got := tt.role.Legitimizes(tt.kind); got != tt.legit {
			t.Errorf("%s legitimizes %s: expected %v, got %v", tt.role, tt.kind, tt.legit, got)
		}
	}
	if roles := engine.RolesFor(engine.ActionBlockMug); len(roles) != 2 {
		t.Fatalf("expected two roles to block Mug, got %v", roles)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range engine.AllRoles() {
		got, err := engine.ParseRole(r.String())
		if err != nil || got != r {
			t.Errorf("ParseRole(%q) = %v, %v", r.String(), got, err)
		}
	}
	if r, err := engine.ParseRole("lord"); err != nil || r != engine.RoleLord {
		t.Errorf("expected case-insensitive match, got %v, %v", r, err)
	}
	if _, err := engine.ParseRole("Duke"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestDeck(t *testing.T) {
	d := engine.NewDeck(engine.BaseDeck(3), nil)
	if d.Len() != 15 {
		t.Fatalf("expected 15 cards, got %d", d.Len())
	}
	for _, r := range engine.AllRoles() {
		if d.Count(r) != 3 {
			t.Errorf("expected 3 %s, got %d", r, d.Count(r))
		}
	}
	seen := map[engine.Role]int{}
	for i := 0; i < 15; i++ {
		c, err := d.Get()
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		seen[c]++
	}
	for _, r := range engine.AllRoles() {
		if seen[r] != 3 {
			t.Errorf("expected to draw 3 %s, got %d", r, seen[r])
		}
	}
	if _, err := d.Get(); !errors.Is(err, engine.ErrDeckEmpty) {
		t.Fatalf("expected ErrDeckEmpty, got %v", err)
	}
	d.Add(engine.RoleMedic)
	if c, _ := d.Get(); c != engine.RoleMedic {
		t.Fatalf("expected Medic back, got %s", c)
	}
}

func TestRemoveCardLeavesHandOnError(t *testing.T) {
	p := engine.NewPlayer("A", &scripted{})
	p.AddCard(engine.RoleLord)
	p.AddCard(engine.RoleMedic)

	if err := p.RemoveCard(engine.RoleBandit); !errors.Is(err, engine.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
	if h := p.Hand(); len(h) != 2 || h[0] != engine.RoleLord || h[1] != engine.RoleMedic {
		t.Fatalf("hand changed: %v", h)
	}
	if err := p.Discard(engine.RoleBandit); !errors.Is(err, engine.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound from Discard, got %v", err)
	}
	if len(p.Lost()) != 0 {
		t.Fatalf("nothing should be lost, got %v", p.Lost())
	}
}

func TestCoinsClampAtZero(t *testing.T) {
	p := engine.NewPlayer("A", &scripted{})
	p.SetCoins(1)
	p.AddCoins(-5)
	if p.Coins() != 0 {
		t.Fatalf("expected 0 coins, got %d", p.Coins())
	}
}

func TestLoseLife(t *testing.T) {
	in := &scripted{lose: engine.RoleMedic}
	p := engine.NewPlayer("A", in)
	p.AddCard(engine.RoleLord)
	p.AddCard(engine.RoleMedic)
	ctx := context.Background()

	card, ok, err := p.LoseLife(ctx)
	if err != nil || !ok || card != engine.RoleMedic {
		t.Fatalf("expected to lose Medic, got %s %v %v", card, ok, err)
	}
	card, ok, err = p.LoseLife(ctx)
	if err != nil || !ok || card != engine.RoleLord {
		t.Fatalf("expected forced loss of Lord, got %s %v %v", card, ok, err)
	}
	if p.Alive() {
		t.Fatal("player should be out of cards")
	}
	if _, ok, err := p.LoseLife(ctx); ok || err != nil {
		t.Fatalf("losing a life with no cards should be a no-op, got %v %v", ok, err)
	}
	if len(p.Lost()) != 2 {
		t.Fatalf("expected 2 lost cards, got %v", p.Lost())
	}
}

// badIndex answers every query with an out-of-range option.
type badIndex struct{}

func (badIndex) Choose(context.Context, *engine.Query) (int, error)   { return 99, nil }
func (badIndex) Confirm(context.Context, *engine.Query) (bool, error) { return false, nil }

func TestInvalidChoiceRejected(t *testing.T) {
	p := engine.NewPlayer("A", badIndex{})
	p.AddCard(engine.RoleLord)
	p.AddCard(engine.RoleMedic)
	if _, _, err := p.LoseLife(context.Background()); !errors.Is(err, engine.ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
	if p.HandSize() != 2 {
		t.Fatalf("hand should be untouched, got %v", p.Hand())
	}
	if _, err := p.ChooseAction(context.Background(), engine.TurnActions()); !errors.Is(err, engine.ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
}

func TestMailbox(t *testing.T) {
	mb := engine.NewMailbox()
	p := engine.NewPlayer("A", mb)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type answer struct {
		kind engine.ActionKind
		err  error
	}
	done := make(chan answer, 1)
	go func() {
		k, err := p.ChooseAction(ctx, []engine.ActionKind{engine.ActionSalary, engine.ActionTithe})
		done <- answer{k, err}
	}()

	var q *engine.Query
	select {
	case q = <-mb.Pending():
	case <-ctx.Done():
		t.Fatal("no query published")
	}
	if q.Player != "A" || q.Kind != engine.QueryAction {
		t.Fatalf("unexpected query %+v", q)
	}
	if err := q.Resolve("B", 1); !errors.Is(err, engine.ErrWrongResponder) {
		t.Fatalf("expected ErrWrongResponder, got %v", err)
	}
	if err := q.Resolve("A", 5); !errors.Is(err, engine.ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
	if err := q.Resolve("A", 1); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := q.Resolve("A", 0); err == nil {
		t.Fatal("expected error answering twice")
	}

	got := <-done
	if got.err != nil || got.kind != engine.ActionTithe {
		t.Fatalf("expected Tithe, got %s %v", got.kind, got.err)
	}
}

func TestMailboxConfirm(t *testing.T) {
	mb := engine.NewMailbox()
	p := engine.NewPlayer("B", mb)
	actor := engine.NewPlayer("A", &scripted{})
	ctx := context.Background()

	done := make(chan bool, 1)
	go func() {
		yes, _ := p.AskToChallenge(ctx, engine.ActionTithe, actor)
		done <- yes
	}()
	q := <-mb.Pending()
	if len(q.Options) != 2 || q.Action != engine.ActionTithe || q.Actor != "A" {
		t.Fatalf("unexpected query %+v", q)
	}
	if err := q.Resolve("B", engine.AnswerYes); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !<-done {
		t.Fatal("expected yes")
	}
}

func TestMailboxCancel(t *testing.T) {
	mb := engine.NewMailbox()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := mb.Choose(ctx, &engine.Query{Player: "A", Options: []string{"x"}})
		done <- err
	}()
	<-mb.Pending()
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCostPolicyParse(t *testing.T) {
	for _, p := range []engine.CostPolicy{engine.CostOnDeclare, engine.CostOnApply} {
		got, err := engine.ParseCostPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseCostPolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := engine.ParseCostPolicy("never"); err == nil {
		t.Error("expected error for unknown policy")
	}
	if engine.DefaultConfig().CostPolicy != engine.CostOnDeclare {
		t.Error("default cost policy should charge on declare")
	}
}
