package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tmiltonj/depose/internal/bot"
	"github.com/tmiltonj/depose/internal/engine"
)

// DefaultNames seat the table when no names are configured.
var DefaultNames = []string{"Shinji", "Rei", "Asuka", "Misato", "Gendo", "Kaworu"}

type Config struct {
	Players    int
	Humans     int
	Names      []string
	BotLevel   bot.Level
	BotDelay   time.Duration
	Seed       uint64 // 0 draws from the cryptographic source
	CostPolicy engine.CostPolicy

	SpectatorAddr string // empty disables the spectator server
	PublicURL     string // advertised in the join QR code

	LogLevel  string
	LogFormat string
}

// Load reads .env if present, then DEPOSE_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Players:    4,
		Humans:     1,
		BotLevel:   bot.LevelBluffer,
		BotDelay:   600 * time.Millisecond,
		CostPolicy: engine.DefaultCostPolicy,
		LogLevel:   "warn",
		LogFormat:  "pterm",
	}

	var err error
	if cfg.Players, err = intEnv("DEPOSE_PLAYERS", cfg.Players); err != nil {
		return nil, err
	}
	if cfg.Humans, err = intEnv("DEPOSE_HUMANS", cfg.Humans); err != nil {
		return nil, err
	}
	if v := os.Getenv("DEPOSE_BOT_LEVEL"); v != "" {
		if cfg.BotLevel, err = bot.ParseLevel(v); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("DEPOSE_BOT_DELAY"); v != "" {
		if cfg.BotDelay, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("DEPOSE_BOT_DELAY: %w", err)
		}
	}
	if v := os.Getenv("DEPOSE_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("DEPOSE_SEED: %w", err)
		}
	}
	if v := os.Getenv("DEPOSE_COST_POLICY"); v != "" {
		if cfg.CostPolicy, err = engine.ParseCostPolicy(v); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("DEPOSE_NAMES"); v != "" {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				cfg.Names = append(cfg.Names, n)
			}
		}
	}
	cfg.SpectatorAddr = os.Getenv("DEPOSE_SPECTATOR_ADDR")
	cfg.PublicURL = os.Getenv("DEPOSE_PUBLIC_URL")
	if v := os.Getenv("DEPOSE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DEPOSE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the table size and fills in seat names.
func (c *Config) Validate() error {
	def := engine.DefaultConfig()
	if c.Players < def.MinPlayers || c.Players > def.MaxPlayers {
		return fmt.Errorf("players must be %d-%d, got %d", def.MinPlayers, def.MaxPlayers, c.Players)
	}
	if c.Humans < 0 || c.Humans > c.Players {
		return fmt.Errorf("humans must be 0-%d, got %d", c.Players, c.Humans)
	}
	for _, n := range DefaultNames {
		if len(c.Names) >= c.Players {
			break
		}
		if !seated(c.Names, n) {
			c.Names = append(c.Names, n)
		}
	}
	if len(c.Names) > c.Players {
		c.Names = c.Names[:c.Players]
	}
	switch c.LogFormat {
	case "pterm", "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func seated(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
