package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayout []byte

// Layout is the YAML form of a board and its rules.
type Layout struct {
	Size           int              `yaml:"size"`
	FirstTeam      string           `yaml:"first_team"`
	FiguresPerTeam int              `yaml:"figures_per_team"`
	SuperDiceMax   int              `yaml:"super_dice_max"`
	Ramp           RampLayout       `yaml:"ramp"`
	Entries        map[string]int   `yaml:"entries"`
	Spikes         []int            `yaml:"spikes"`
	TurnAgain      []int            `yaml:"turn_again"`
	FinalSpots     []FinalSpotEntry `yaml:"final_spots"`
	Timing         TimingLayout     `yaml:"timing"`
	AI             BrainLayout      `yaml:"ai"`
}

type RampLayout struct {
	PathLength      int `yaml:"path_length"`
	CaptureWaypoint int `yaml:"capture_waypoint"`
}

type FinalSpotEntry struct {
	Tile       int    `yaml:"tile"`
	Team       string `yaml:"team"`
	PathLength int    `yaml:"path_length"`
}

type TimingLayout struct {
	AttackDelay time.Duration `yaml:"attack_delay"`
	JumpDelay   time.Duration `yaml:"jump_delay"`
	DeathDelay  time.Duration `yaml:"death_delay"`
}

type BrainLayout struct {
	HighPriorityScore  int           `yaml:"high_priority_score"`
	LowPriorityScore   int           `yaml:"low_priority_score"`
	PreferredInGame    int           `yaml:"preferred_in_game"`
	FinalSpotValue     int           `yaml:"final_spot_value"`
	OtherTeamValue     int           `yaml:"other_team_value"`
	TurnAgainValue     int           `yaml:"turn_again_value"`
	SpikesValue        int           `yaml:"spikes_value"`
	SameTeamValue      int           `yaml:"same_team_value"`
	DiceStopDelay      time.Duration `yaml:"dice_stop_delay"`
	SuperDiceStepDelay time.Duration `yaml:"super_dice_step_delay"`
}

func DefaultLayout() Layout {
	l, err := ParseLayout(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("config: embedded layout: %v", err))
	}
	return l
}

// LoadLayout reads a layout file. An empty path gives the built-in layout.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(data)
}

func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l, nil
}

// Setup converts the layout into an engine setup and validates it.
func (l Layout) Setup() (engine.Setup, error) {
	var err error
	if l.Size <= 0 {
		return engine.Setup{}, fmt.Errorf("%w: board size must be positive, got %d", engine.ErrInvalidSetup, l.Size)
	}

	tiles := make([]engine.TileType, l.Size)
	for i := range tiles {
		tiles[i] = engine.TileStandard
	}
	mark := func(kind engine.TileType, idx int) {
		if idx < 0 || idx >= l.Size {
			err = multierr.Append(err, fmt.Errorf("%s tile %d out of range", kind, idx))
			return
		}
		if tiles[idx] != engine.TileStandard {
			err = multierr.Append(err, fmt.Errorf("tile %d is both %s and %s", idx, tiles[idx], kind))
			return
		}
		tiles[idx] = kind
	}
	for _, i := range l.Spikes {
		mark(engine.TileSpikes, i)
	}
	for _, i := range l.TurnAgain {
		mark(engine.TileTurnAgain, i)
	}

	spots := make(map[int]engine.FinalSpotSetup, len(l.FinalSpots))
	for _, fs := range l.FinalSpots {
		team, terr := engine.ParseTeam(fs.Team)
		if terr != nil {
			err = multierr.Append(err, fmt.Errorf("final spot %d: %w", fs.Tile, terr))
			continue
		}
		mark(engine.TileFinalSpot, fs.Tile)
		spots[fs.Tile] = engine.FinalSpotSetup{Team: team, PathLength: fs.PathLength}
	}

	entries := make(map[engine.Team]int, len(l.Entries))
	for name, idx := range l.Entries {
		team, terr := engine.ParseTeam(name)
		if terr != nil {
			err = multierr.Append(err, fmt.Errorf("entry: %w", terr))
			continue
		}
		entries[team] = idx
	}

	first, terr := engine.ParseTeam(l.FirstTeam)
	if terr != nil {
		err = multierr.Append(err, fmt.Errorf("first team: %w", terr))
	}
	if err != nil {
		return engine.Setup{}, fmt.Errorf("%w: %w", engine.ErrInvalidSetup, err)
	}

	s := engine.Setup{
		Tiles:               tiles,
		FinalSpots:          spots,
		Entry:               entries,
		FirstTeam:           first,
		FiguresPerTeam:      l.FiguresPerTeam,
		RampPathLength:      l.Ramp.PathLength,
		RampCaptureWaypoint: l.Ramp.CaptureWaypoint,
		SuperDiceMax:        l.SuperDiceMax,
		Timing: engine.Timing{
			AttackDelay: l.Timing.AttackDelay,
			JumpDelay:   l.Timing.JumpDelay,
			DeathDelay:  l.Timing.DeathDelay,
		},
		Brain: engine.Brain{
			HighPriorityScore:  l.AI.HighPriorityScore,
			LowPriorityScore:   l.AI.LowPriorityScore,
			PreferredInGame:    l.AI.PreferredInGame,
			FinalSpotValue:     l.AI.FinalSpotValue,
			OtherTeamValue:     l.AI.OtherTeamValue,
			TurnAgainValue:     l.AI.TurnAgainValue,
			SpikesValue:        l.AI.SpikesValue,
			SameTeamValue:      l.AI.SameTeamValue,
			DiceStopDelay:      l.AI.DiceStopDelay,
			SuperDiceStepDelay: l.AI.SuperDiceStepDelay,
		},
	}
	if err := s.Validate(); err != nil {
		return engine.Setup{}, err
	}
	return s, nil
}
