package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

type Seat string

const (
	SeatHuman Seat = "human"
	SeatAI    Seat = "ai"
)

func ParseSeat(s string) (Seat, error) {
	switch Seat(strings.ToLower(strings.TrimSpace(s))) {
	case SeatHuman:
		return SeatHuman, nil
	case SeatAI:
		return SeatAI, nil
	default:
		return "", fmt.Errorf("unknown seat %q, want human or ai", s)
	}
}

// Config is the process configuration, read from the environment.
type Config struct {
	Addr       string
	LayoutPath string
	Seats      map[engine.Team]Seat
	Seed       uint64
	StepDelay  time.Duration
	LogLevel   string
	LogDev     bool
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		Seats:     map[engine.Team]Seat{engine.TeamRed: SeatHuman, engine.TeamBlue: SeatAI},
		StepDelay: 250 * time.Millisecond,
		LogLevel:  "info",
	}
}

// Load reads .env (if present) and then the environment. Every malformed
// variable is reported, not just the first.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	var err error

	if v, ok := lookup("PORTAL_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("PORTAL_LAYOUT"); ok {
		c.LayoutPath = v
	}
	for _, team := range engine.Teams {
		key := "PORTAL_" + strings.ToUpper(string(team))
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		seat, serr := ParseSeat(v)
		if serr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", key, serr))
			continue
		}
		c.Seats[team] = seat
	}
	if v, ok := lookup("PORTAL_SEED"); ok && v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("PORTAL_SEED: %w", perr))
		}
		c.Seed = seed
	}
	if v, ok := lookup("PORTAL_STEP_DELAY"); ok && v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("PORTAL_STEP_DELAY: %w", perr))
		} else if d < 0 {
			err = multierr.Append(err, fmt.Errorf("PORTAL_STEP_DELAY must not be negative, got %s", d))
		}
		c.StepDelay = d
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_DEV"); ok && v != "" {
		dev, perr := strconv.ParseBool(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("LOG_DEV: %w", perr))
		}
		c.LogDev = dev
	}

	if err != nil {
		return Config{}, err
	}
	return c, nil
}

// AISeats lists the teams played by the AI.
func (c Config) AISeats() map[engine.Team]bool {
	out := make(map[engine.Team]bool, len(c.Seats))
	for team, seat := range c.Seats {
		out[team] = seat == SeatAI
	}
	return out
}
