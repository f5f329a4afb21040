package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, map[engine.Team]bool{engine.TeamRed: false, engine.TeamBlue: true}, c.AISeats())
}

func TestFromEnvOverrides(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"PORTAL_ADDR":       ":9000",
		"PORTAL_LAYOUT":     "boards/small.yaml",
		"PORTAL_RED":        "AI",
		"PORTAL_BLUE":       "human",
		"PORTAL_SEED":       "1234",
		"PORTAL_STEP_DELAY": "50ms",
		"LOG_LEVEL":         "debug",
		"LOG_DEV":           "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "boards/small.yaml", c.LayoutPath)
	assert.Equal(t, SeatAI, c.Seats[engine.TeamRed])
	assert.Equal(t, SeatHuman, c.Seats[engine.TeamBlue])
	assert.Equal(t, uint64(1234), c.Seed)
	assert.Equal(t, 50*time.Millisecond, c.StepDelay)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.LogDev)
}

func TestFromEnvReportsEveryError(t *testing.T) {
	_, err := FromEnv(env(map[string]string{
		"PORTAL_RED":        "robot",
		"PORTAL_SEED":       "-1",
		"PORTAL_STEP_DELAY": "soon",
		"LOG_DEV":           "maybe",
	}))
	require.Error(t, err)
	for _, key := range []string{"PORTAL_RED", "PORTAL_SEED", "PORTAL_STEP_DELAY", "LOG_DEV"} {
		assert.ErrorContains(t, err, key)
	}
}

func TestDefaultLayoutSetup(t *testing.T) {
	s, err := DefaultLayout().Setup()
	require.NoError(t, err)

	assert.Len(t, s.Tiles, 40)
	assert.Equal(t, engine.TeamRed, s.FirstTeam)
	assert.Equal(t, 0, s.Entry[engine.TeamRed])
	assert.Equal(t, 20, s.Entry[engine.TeamBlue])
	assert.Equal(t, engine.TileSpikes, s.Tiles[7])
	assert.Equal(t, engine.TileTurnAgain, s.Tiles[24])
	assert.Equal(t, engine.TileFinalSpot, s.Tiles[35])
	assert.Equal(t, engine.FinalSpotSetup{Team: engine.TeamBlue, PathLength: 2}, s.FinalSpots[15])
	assert.Equal(t, engine.DefaultTiming(), s.Timing)
	assert.Equal(t, engine.DefaultBrain(), s.Brain)
	assert.Equal(t, 3, s.RampPathLength)
	assert.Equal(t, 1, s.RampCaptureWaypoint)
}

func TestLayoutSetupRejectsOverlaps(t *testing.T) {
	l := DefaultLayout()
	l.Spikes = append(l.Spikes, 4, 99)
	l.FirstTeam = "green"

	_, err := l.Setup()
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidSetup))
	assert.ErrorContains(t, err, "tile 4 is both spikes and turn_again")
	assert.ErrorContains(t, err, "spikes tile 99 out of range")
	assert.ErrorContains(t, err, "first team")
}

func TestLayoutSetupRunsEngineValidation(t *testing.T) {
	l := DefaultLayout()
	l.FiguresPerTeam = 5

	_, err := l.Setup()
	assert.ErrorIs(t, err, engine.ErrInvalidSetup)
	assert.ErrorContains(t, err, "final spots for 5 figures")
}

func TestLoadLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := []byte(`
size: 12
first_team: blue
figures_per_team: 1
super_dice_max: 2
ramp: {path_length: 2, capture_waypoint: 1}
entries: {red: 0, blue: 6}
spikes: [3]
turn_again: [8]
final_spots:
  - {tile: 5, team: red, path_length: 2}
  - {tile: 11, team: blue, path_length: 2}
timing: {attack_delay: 10ms, jump_delay: 5ms, death_delay: 20ms}
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	l, err := LoadLayout(path)
	require.NoError(t, err)
	s, err := l.Setup()
	require.NoError(t, err)

	assert.Equal(t, engine.TeamBlue, s.FirstTeam)
	assert.Len(t, s.Tiles, 12)
	assert.Equal(t, 20*time.Millisecond, s.Timing.DeathDelay)
	assert.Equal(t, engine.TileFinalSpot, s.Tiles[11])
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	l, err := LoadLayout("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(), l)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug", true)
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
