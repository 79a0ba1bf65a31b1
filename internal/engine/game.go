package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

var (
	ErrInvalidTarget   = errors.New("invalid target")
	ErrNoValidTarget   = errors.New("no valid target")
	ErrUnknownAction   = errors.New("unknown action")
	ErrCardNotFound    = errors.New("card not found")
	ErrDeckEmpty       = errors.New("deck is empty")
	ErrWrongResponder  = errors.New("query answered by the wrong player")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrGameOver        = errors.New("game is over")
	ErrNotEnoughCoins  = errors.New("not enough coins")
	ErrNotStarted      = errors.New("game not started")
	ErrPlayerCount     = errors.New("wrong number of players")
	ErrDuplicatePlayer = errors.New("duplicate player name")
	ErrAlreadyStarted  = errors.New("game already started")
	ErrNotYourTurn     = errors.New("player cannot act now")
)

// ChallengeRecord describes the most recent challenge.
type ChallengeRecord struct {
	Action     ActionKind `json:"action"`
	Claimant   string     `json:"claimant"`
	Challenger string     `json:"challenger"`
	Revealed   Role       `json:"revealed"`
	Outcome    Result     `json:"outcome"`
	Loser      string     `json:"loser"`
}

// Option configures a Game.
type Option func(*Game)

// WithNarrator routes narration to n.
func WithNarrator(n Narrator) Option {
	return func(g *Game) { g.narrator = n }
}

// WithListener adds an event observer.
func WithListener(l Listener) Option {
	return func(g *Game) { g.listeners = append(g.listeners, l) }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithRandom sets the deck's randomness source.
func WithRandom(r RandomSource) Option {
	return func(g *Game) { g.rng = r }
}

// WithDeck replaces the standard deck, e.g. with a stacked one in tests.
func WithDeck(cards []Role) Option {
	return func(g *Game) { g.deckCards = cards }
}

// Game is the coordinator for one match. It owns the seating order, the
// deck, the turn rotation and every query issued to players.
type Game struct {
	ID      string
	Players []*Player
	Deck    *Deck
	Config  GameConfig
	Effects *EffectRegistry

	Phase  GamePhase
	Turn   int
	Active int // index into Players of the active player
	Winner *Player

	// Opponents still to be asked about the current block or challenge.
	pending []*Player
	// LastChallenge is the outcome of the most recent challenge.
	LastChallenge *ChallengeRecord

	eliminated map[*Player]int // turn on which each player went out
	factory    *ActionFactory
	narrator   Narrator
	listeners  []Listener
	log        *slog.Logger
	rng        RandomSource
	deckCards  []Role
}

// NewGame seats players in the given order.
func NewGame(players []*Player, config GameConfig, effects *EffectRegistry, opts ...Option) (*Game, error) {
	if err := config.Validate(len(players)); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
		}
		seen[p.Name] = true
	}

	g := &Game{
		ID:         uuid.NewString(),
		Players:    players,
		Config:     config,
		Effects:    effects,
		Phase:      PhaseSetup,
		eliminated: map[*Player]int{},
		factory:    NewActionFactory(effects),
		narrator:   discardNarrator{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.deckCards == nil {
		g.deckCards = BaseDeck(config.RoleCopies)
	}
	g.Deck = NewDeck(g.deckCards, g.rng)
	g.log = g.log.With("game", g.ID)
	for _, p := range players {
		p.deck = g.Deck
	}
	return g, nil
}

// Factory returns the action factory bound to this game's effects.
func (g *Game) Factory() *ActionFactory {
	return g.factory
}

// StartGame deals starting coins and cards and puts the first seat on turn.
func (g *Game) StartGame() error {
	if g.Phase != PhaseSetup {
		return ErrAlreadyStarted
	}
	for _, p := range g.Players {
		p.SetCoins(g.Config.StartingCoins)
		if err := p.DrawCards(g.Config.StartingCards); err != nil {
			return err
		}
	}
	g.Active = 0
	g.Turn = 0
	g.setPhase(PhaseStartTurn)
	g.emit(Event{Type: EventGameStart, Data: map[string]interface{}{
		"players": g.names(g.Players),
		"deck":    g.Deck.Len(),
	}})
	g.log.Info("game started", "players", len(g.Players))
	return nil
}

// GetPlayer finds a player by name.
func (g *Game) GetPlayer(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ActivePlayer returns the player whose turn it is.
func (g *Game) ActivePlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.Active]
}

// Living returns the players still holding cards, in seating order.
func (g *Game) Living() []*Player {
	var out []*Player
	for _, p := range g.Players {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// Opponents returns the living players other than p, in seating order.
func (g *Game) Opponents(p *Player) []*Player {
	var out []*Player
	for _, o := range g.Players {
		if o != p && o.Alive() {
			out = append(out, o)
		}
	}
	return out
}

// Over reports whether the match has finished.
func (g *Game) Over() bool {
	return g.Phase == PhaseGameOver
}

func (g *Game) setPhase(p GamePhase) {
	if g.Phase == p {
		return
	}
	g.Phase = p
	g.emit(Event{Type: EventPhaseChange, Data: map[string]interface{}{"phase": p.String()}})
}

func (g *Game) emit(events ...Event) {
	for _, ev := range events {
		g.log.Debug("event", "type", ev.Type, "player", ev.Player)
		for _, l := range g.listeners {
			l.OnEvent(ev)
		}
	}
}

func (g *Game) narrate(format string, args ...any) {
	g.narrator.Message(fmt.Sprintf(format, args...))
}

func (g *Game) names(players []*Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

// PublicViewData is the game state visible to everyone at the table.
type PublicViewData struct {
	ID            string             `json:"id"`
	Phase         string             `json:"phase"`
	Turn          int                `json:"turn"`
	Active        string             `json:"active,omitempty"`
	Players       []PublicPlayerData `json:"players"`
	DeckSize      int                `json:"deck_size"`
	LastChallenge *ChallengeRecord   `json:"last_challenge,omitempty"`
	Winner        string             `json:"winner,omitempty"`
}

type PublicPlayerData struct {
	Name       string `json:"name"`
	Coins      int    `json:"coins"`
	HandSize   int    `json:"hand_size"`
	Lost       []Role `json:"lost,omitempty"`
	Eliminated bool   `json:"eliminated"`
}

func (g *Game) PublicView() PublicViewData {
	pv := PublicViewData{
		ID:       g.ID,
		Phase:    g.Phase.String(),
		Turn:     g.Turn,
		DeckSize: g.Deck.Len(),
	}
	if g.LastChallenge != nil {
		rec := *g.LastChallenge
		pv.LastChallenge = &rec
	}
	if g.Phase != PhaseSetup && !g.Over() {
		pv.Active = g.ActivePlayer().Name
	}
	if g.Winner != nil {
		pv.Winner = g.Winner.Name
	}
	for _, p := range g.Players {
		_, out := g.eliminated[p]
		pv.Players = append(pv.Players, PublicPlayerData{
			Name:       p.Name,
			Coins:      p.Coins(),
			HandSize:   p.HandSize(),
			Lost:       p.Lost(),
			Eliminated: out,
		})
	}
	return pv
}

// PlayerViewData adds what one player can see privately.
type PlayerViewData struct {
	PublicViewData
	Hand     []Role       `json:"hand"`
	IsMyTurn bool         `json:"is_my_turn"`
	Actions  []ActionKind `json:"actions,omitempty"`
}

func (g *Game) ViewFor(name string) PlayerViewData {
	pv := PlayerViewData{PublicViewData: g.PublicView()}
	p := g.GetPlayer(name)
	if p == nil {
		return pv
	}
	pv.Hand = p.Hand()
	pv.IsMyTurn = pv.Active == name
	if pv.IsMyTurn {
		pv.Actions = g.ValidActions(p)
	}
	return pv
}
