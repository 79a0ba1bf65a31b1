package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/tmiltonj/depose/internal/bot"
	"github.com/tmiltonj/depose/internal/config"
	"github.com/tmiltonj/depose/internal/console"
	"github.com/tmiltonj/depose/internal/engine"
	"github.com/tmiltonj/depose/internal/engine/effects"
	"github.com/tmiltonj/depose/internal/entropy"
	"github.com/tmiltonj/depose/internal/lobby"
	"github.com/tmiltonj/depose/internal/logger"
	"github.com/tmiltonj/depose/internal/metrics"
	"github.com/tmiltonj/depose/internal/qrcode"
	"github.com/tmiltonj/depose/internal/spectator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if err := parseFlags(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("game aborted", "err", err)
	}
}

// parseFlags lets the command line override the environment.
func parseFlags(cfg *config.Config) error {
	flag.IntVar(&cfg.Players, "players", cfg.Players, "seats at the table (2-6)")
	flag.IntVar(&cfg.Humans, "humans", cfg.Humans, "human seats, filled first")
	level := flag.String("bots", cfg.BotLevel.String(), "bot level: honest, bluffer or random")
	flag.DurationVar(&cfg.BotDelay, "bot-delay", cfg.BotDelay, "pause before each bot answer")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for a fresh game")
	cost := flag.String("cost", cfg.CostPolicy.String(), "when costs are paid: declare or apply")
	flag.StringVar(&cfg.SpectatorAddr, "spectator", cfg.SpectatorAddr, "serve the spectator view on this address, e.g. :8080")
	flag.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "link advertised in the spectator QR code")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "pterm, text or json")
	flag.Parse()

	var err error
	if cfg.BotLevel, err = bot.ParseLevel(*level); err != nil {
		return err
	}
	if cfg.CostPolicy, err = engine.ParseCostPolicy(*cost); err != nil {
		return err
	}
	return cfg.Validate()
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	con := console.New(console.WithHotSeat(cfg.Humans > 1))
	con.Banner()

	rules := engine.DefaultConfig()
	rules.CostPolicy = cfg.CostPolicy

	hub := spectator.NewHub(slog.Default())
	table := lobby.NewLobby(rules.MinPlayers, rules.MaxPlayers)
	if cfg.SpectatorAddr != "" {
		table.OnChange = hub.PublishSeats
	}
	for i, name := range cfg.Names {
		if _, err := table.Join(name, i >= cfg.Humans); err != nil {
			return err
		}
	}
	if err := table.Start(); err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	mb := engine.NewMailbox()
	opts := []engine.Option{
		engine.WithRandom(entropy.New(cfg.Seed)),
		engine.WithNarrator(con),
		engine.WithLogger(slog.Default()),
		engine.WithListener(recorder),
	}

	var players []*engine.Player
	for i, seat := range table.Seats() {
		if !seat.Bot {
			players = append(players, engine.NewPlayer(seat.Name, mb))
			continue
		}
		brain, err := bot.NewBrain(cfg.BotLevel, botSource(cfg.Seed, i), bot.DefaultTuning)
		if err != nil {
			return err
		}
		agent := bot.NewAgent(seat.Name, brain)
		agent.Delay = cfg.BotDelay
		players = append(players, engine.NewPlayer(seat.Name, agent))
		opts = append(opts, engine.WithListener(agent))
	}
	if cfg.SpectatorAddr != "" {
		opts = append(opts, engine.WithListener(hub))
	}

	g, err := engine.NewGame(players, rules, effects.NewRegistry(), opts...)
	if err != nil {
		return err
	}
	con.Attach(g)
	slog.Info("table dealt", "game", g.ID, "players", cfg.Names, "humans", cfg.Humans, "bots", cfg.BotLevel, "cost", cfg.CostPolicy)

	if cfg.SpectatorAddr != "" {
		hub.Attach(g)
		go hub.Run(ctx.Done())
		srv := spectator.New(hub, spectator.Options{
			Addr:      cfg.SpectatorAddr,
			PublicURL: cfg.PublicURL,
			Registry:  recorder.Registry,
			Logger:    slog.Default(),
		})
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				slog.Error("spectator stopped", "err", err)
			}
		}()
		url := srv.JoinURL(nil)
		if code, err := qrcode.Terminal(url); err == nil {
			fmt.Print(code)
		}
		pterm.Info.Printfln("Spectators can follow at %s", url)
	}

	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		_, runErr = g.Run(ctx)
	}()
	if err := con.Serve(ctx, mb, done); err != nil {
		cancel()
		<-done
		return err
	}
	if runErr != nil {
		return runErr
	}

	con.ShowStandings(g.Standings())
	if cfg.SpectatorAddr != "" {
		hub.PublishStandings(g)
		pterm.Info.Println("Spectator view stays up until Ctrl+C")
		<-ctx.Done()
	}
	return nil
}

// botSource gives every bot its own stream so a seeded table replays
// exactly; seed 0 leaves them all on the cryptographic source.
func botSource(seed uint64, seat int) engine.RandomSource {
	if seed == 0 {
		return entropy.NewCrypto()
	}
	return entropy.NewSeeded(seed + uint64(seat) + 1)
}
