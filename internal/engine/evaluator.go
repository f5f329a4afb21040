package engine

import (
	"time"

	"golang.org/x/exp/rand"
)

// finalSpotSuperMultiplier boosts a reachable final spot while super dice is ready.
const finalSpotSuperMultiplier = 2

// Brain holds the AI scoring weights, decision thresholds and input pacing.
type Brain struct {
	HighPriorityScore  int
	LowPriorityScore   int
	PreferredInGame    int
	FinalSpotValue     int
	OtherTeamValue     int
	TurnAgainValue     int
	SpikesValue        int
	SameTeamValue      int
	DiceStopDelay      time.Duration
	SuperDiceStepDelay time.Duration
}

func DefaultBrain() Brain {
	return Brain{
		HighPriorityScore:  4,
		LowPriorityScore:   -2,
		PreferredInGame:    3,
		FinalSpotValue:     3,
		OtherTeamValue:     2,
		TurnAgainValue:     1,
		SpikesValue:        -2,
		SameTeamValue:      -2,
		DiceStopDelay:      500 * time.Millisecond,
		SuperDiceStepDelay: 300 * time.Millisecond,
	}
}

// Evaluation is the score of one figure for the current turn. NeededSteps is the
// distance to the best positive event ahead, 0 when there is none.
type Evaluation struct {
	Figure      *Figure
	Score       int
	NeededSteps int
}

// Evaluate scores the tiles a figure can reach with one dice throw. Final spots
// of the other team, or already occupied ones, are passed over without using up
// one of the six looked-at tiles. Ramp figures are not evaluated.
func Evaluate(b *Board, f *Figure, superActive bool, brain Brain) Evaluation {
	ev := Evaluation{Figure: f}
	if f.state != FigureInGame {
		return ev
	}

	best := 0
	track := func(value, distance int) {
		if value > best && distance <= MaxDiceValue {
			best = value
			ev.NeededSteps = distance
		}
	}

	idx := f.boardIndex
	for looked, distance := 0, 1; looked < MaxDiceValue && distance < b.Size(); distance++ {
		idx = b.Normalize(idx + 1)
		tile := b.Tile(idx)

		switch tile.Type {
		case TileFinalSpot:
			if tile.FinalSpot.Team != f.Team || tile.FinalSpot.Occupied {
				continue
			}
			add := brain.FinalSpotValue
			if superActive {
				add *= finalSpotSuperMultiplier
			}
			ev.Score += add
			track(brain.FinalSpotValue, distance)
		case TileTurnAgain:
			ev.Score += brain.TurnAgainValue
			track(brain.TurnAgainValue, distance)
		case TileSpikes:
			ev.Score += brain.SpikesValue
		}
		looked++

		occ := tile.Occupant
		if occ == nil {
			continue
		}
		if occ.Team == f.Team {
			ev.Score += brain.SameTeamValue
		} else if occ.boardIndex != b.EntryIndex(occ.Team) {
			// an enemy on its own entry tile is left alone
			ev.Score += brain.OtherTeamValue
			track(brain.OtherTeamValue, distance)
		}
	}
	return ev
}

// choose applies the AI selection policy to the selectable figures of a team.
// ramp is the selectable ramp figure, nil when the ramp is blocked or empty.
func choose(b *Board, team *TeamState, inGame []*Figure, ramp *Figure, brain Brain, rng *rand.Rand) (Evaluation, bool) {
	superReady := team.SuperDiceReady()

	evals := make([]Evaluation, 0, len(inGame)+1)
	for _, f := range inGame {
		evals = append(evals, Evaluate(b, f, superReady, brain))
	}
	if ramp != nil {
		evals = append(evals, Evaluation{Figure: ramp})
	}
	if len(evals) == 0 {
		return Evaluation{}, false
	}

	top := evals[0].Score
	for _, ev := range evals[1:] {
		if ev.Score > top {
			top = ev.Score
		}
	}

	if ramp != nil {
		entry := b.Tile(b.EntryIndex(team.Name))
		if entry.Occupant != nil && entry.Occupant.Team != team.Name {
			return Evaluation{Figure: ramp}, true
		}
	}

	if superReady || top >= brain.HighPriorityScore || len(inGame) >= brain.PreferredInGame || ramp == nil {
		tied := make([]Evaluation, 0, len(evals))
		for _, ev := range evals {
			if ev.Score == top {
				tied = append(tied, ev)
			}
		}
		return tied[rng.Intn(len(tied))], true
	}

	return Evaluation{Figure: ramp}, true
}
