package engine

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Timing holds the fixed delays of figure effects.
type Timing struct {
	AttackDelay time.Duration // mover pause while attacking
	JumpDelay   time.Duration // jump flag lifetime
	DeathDelay  time.Duration // time until a dead figure is back on its ramp
}

func DefaultTiming() Timing {
	return Timing{
		AttackDelay: 1500 * time.Millisecond,
		JumpDelay:   500 * time.Millisecond,
		DeathDelay:  3 * time.Second,
	}
}

type FinalSpotSetup struct {
	Team       Team
	PathLength int
}

// Setup is the immutable configuration of one game. It is assembled once and
// never changes while the game runs.
type Setup struct {
	Tiles               []TileType
	FinalSpots          map[int]FinalSpotSetup // keyed by tile index
	Entry               map[Team]int
	FirstTeam           Team
	FiguresPerTeam      int
	RampPathLength      int // waypoints from the first ramp slot to the entry tile
	RampCaptureWaypoint int // ramp waypoint at which the entry tile is checked for an enemy
	SuperDiceMax        int
	Timing              Timing
	Brain               Brain
}

func (s Setup) Validate() error {
	var err error
	n := len(s.Tiles)
	if n <= MaxDiceValue {
		err = multierr.Append(err, fmt.Errorf("board needs more than %d tiles, got %d", MaxDiceValue, n))
	}
	if !s.FirstTeam.Valid() {
		err = multierr.Append(err, fmt.Errorf("first team: %w: %q", ErrUnknownTeam, s.FirstTeam))
	}
	if s.FiguresPerTeam < 1 {
		err = multierr.Append(err, fmt.Errorf("figures per team must be positive, got %d", s.FiguresPerTeam))
	}
	if s.SuperDiceMax < 1 {
		err = multierr.Append(err, fmt.Errorf("super dice max must be positive, got %d", s.SuperDiceMax))
	}
	if s.RampPathLength < 2 {
		err = multierr.Append(err, fmt.Errorf("ramp path needs at least 2 waypoints, got %d", s.RampPathLength))
	}
	if s.RampCaptureWaypoint < 1 || s.RampCaptureWaypoint >= s.RampPathLength {
		err = multierr.Append(err, fmt.Errorf("ramp capture waypoint %d outside [1,%d)", s.RampCaptureWaypoint, s.RampPathLength))
	}
	if s.Timing.AttackDelay < 0 || s.Timing.JumpDelay < 0 || s.Timing.DeathDelay < 0 {
		err = multierr.Append(err, fmt.Errorf("timing delays must not be negative"))
	}

	seen := map[int]Team{}
	for _, team := range Teams {
		idx, ok := s.Entry[team]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("team %s has no entry tile", team))
			continue
		}
		if idx < 0 || idx >= n {
			err = multierr.Append(err, fmt.Errorf("team %s entry %d out of range", team, idx))
			continue
		}
		if other, dup := seen[idx]; dup {
			err = multierr.Append(err, fmt.Errorf("teams %s and %s share entry tile %d", other, team, idx))
		}
		seen[idx] = team
		if s.Tiles[idx] != TileStandard {
			err = multierr.Append(err, fmt.Errorf("team %s entry tile %d must be standard, is %s", team, idx, s.Tiles[idx]))
		}
	}
	for team := range s.Entry {
		if !team.Valid() {
			err = multierr.Append(err, fmt.Errorf("entry: %w: %q", ErrUnknownTeam, team))
		}
	}

	spots := map[Team]int{}
	for i, tt := range s.Tiles {
		switch tt {
		case TileStandard, TileSpikes, TileTurnAgain:
		case TileFinalSpot:
			fs, ok := s.FinalSpots[i]
			if !ok {
				err = multierr.Append(err, fmt.Errorf("final spot tile %d has no final spot", i))
				continue
			}
			if !fs.Team.Valid() {
				err = multierr.Append(err, fmt.Errorf("final spot %d: %w: %q", i, ErrUnknownTeam, fs.Team))
			}
			if fs.PathLength < 2 {
				err = multierr.Append(err, fmt.Errorf("final spot %d path needs at least 2 waypoints, got %d", i, fs.PathLength))
			}
			spots[fs.Team]++
		default:
			err = multierr.Append(err, fmt.Errorf("tile %d has unknown type %q", i, tt))
		}
	}
	for i := range s.FinalSpots {
		if i < 0 || i >= n || s.Tiles[i] != TileFinalSpot {
			err = multierr.Append(err, fmt.Errorf("final spot %d is not on a final spot tile", i))
		}
	}
	for _, team := range Teams {
		if spots[team] < s.FiguresPerTeam {
			err = multierr.Append(err, fmt.Errorf("team %s has %d final spots for %d figures", team, spots[team], s.FiguresPerTeam))
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	return nil
}
