// Package console is the terminal table: it narrates the game and
// answers mailbox queries for the humans sitting at it.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/tmiltonj/depose/internal/engine"
)

// Console must only be driven from one goroutine. It reads the game
// while the engine is parked on a query, never otherwise.
type Console struct {
	out     io.Writer
	prompt  Prompter
	game    *engine.Game
	hotSeat bool
	last    string
}

type Option func(*Console)

func WithPrompter(p Prompter) Option { return func(c *Console) { c.prompt = p } }

func WithWriter(w io.Writer) Option { return func(c *Console) { c.out = w } }

// WithHotSeat asks the next human to take the keyboard before showing
// their hand.
func WithHotSeat(on bool) Option { return func(c *Console) { c.hotSeat = on } }

func New(opts ...Option) *Console {
	c := &Console{out: os.Stdout, prompt: Terminal{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Attach lets the console draw the table for g.
func (c *Console) Attach(g *engine.Game) { c.game = g }

// Message implements engine.Narrator.
func (c *Console) Message(text string) {
	fmt.Fprint(c.out, pterm.Info.Sprintln(text))
}

// Banner prints the title.
func (c *Console) Banner() {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("DE", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("POSE", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		fmt.Fprintln(c.out, "DEPOSE")
		return
	}
	fmt.Fprint(c.out, title)
}

// Serve answers queries from mb until done is closed or ctx ends.
func (c *Console) Serve(ctx context.Context, mb *engine.Mailbox, done <-chan struct{}) error {
	for {
		select {
		case q := <-mb.Pending():
			if err := c.answer(q); err != nil {
				return err
			}
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Console) answer(q *engine.Query) error {
	if c.hotSeat && q.Player != c.last {
		fmt.Fprint(c.out, pterm.DefaultSection.Sprintln(q.Player+" to the keyboard"))
		if _, err := c.prompt.Confirm("Ready, " + q.Player + "?"); err != nil {
			return err
		}
	}
	c.last = q.Player
	c.render(q)

	for {
		choice, err := c.ask(q)
		if err != nil {
			return err
		}
		err = q.Resolve(q.Player, choice)
		if err == nil {
			return nil
		}
		if !errors.Is(err, engine.ErrInvalidChoice) {
			return err
		}
		fmt.Fprint(c.out, pterm.Warning.Sprintln(err.Error()))
	}
}

func (c *Console) ask(q *engine.Query) (int, error) {
	switch q.Kind {
	case engine.QueryBlock, engine.QueryChallenge:
		yes, err := c.prompt.Confirm(q.Prompt)
		if err != nil {
			return 0, err
		}
		if yes {
			return engine.AnswerYes, nil
		}
		return engine.AnswerNo, nil
	default:
		return c.prompt.Select(q.Prompt, q.Options)
	}
}

// render shows the public table and then what only q.Player may see.
func (c *Console) render(q *engine.Query) {
	if c.game != nil && q.Kind == engine.QueryAction {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(StatusRows(c.game.PublicView())).Srender()
		if err == nil {
			fmt.Fprintln(c.out, table)
		}
	}
	fmt.Fprint(c.out, pterm.Info.Sprintfln("%s: %s | %d coins", pterm.LightCyan(q.Player), handLine(q.Hand), q.Coins))
}

// StatusRows lays out the public view as a table with a header row.
func StatusRows(v engine.PublicViewData) [][]string {
	rows := [][]string{{"", "Player", "Coins", "Cards", "Lost"}}
	for _, p := range v.Players {
		marker := ""
		switch {
		case p.Eliminated:
			marker = "out"
		case p.Name == v.Active:
			marker = ">"
		}
		rows = append(rows, []string{
			marker,
			p.Name,
			strconv.Itoa(p.Coins),
			strconv.Itoa(p.HandSize),
			roleList(p.Lost),
		})
	}
	return rows
}

// ShowStandings prints the final ranking.
func (c *Console) ShowStandings(standings []engine.Standing) {
	rows := [][]string{{"Place", "Player", "Coins", "Cards", "Out on turn"}}
	for _, s := range standings {
		out := "-"
		if s.Eliminated {
			out = strconv.Itoa(s.OutOnTurn)
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Place), s.Player, strconv.Itoa(s.Coins), strconv.Itoa(s.Cards), out,
		})
	}
	fmt.Fprint(c.out, pterm.DefaultSection.Sprintln("Standings"))
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(c.out, table)
	if len(standings) > 0 && !standings[0].Eliminated {
		fmt.Fprint(c.out, pterm.Success.Sprintfln("%s takes the throne", standings[0].Player))
	}
}

func handLine(hand []engine.Role) string {
	if len(hand) == 0 {
		return "no cards"
	}
	return roleList(hand)
}

func roleList(roles []engine.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
