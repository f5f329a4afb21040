package engine

import "fmt"

// nextPhase is the phase transition table. rampSelected reports whether the
// selected figure starts from its ramp; ended whether a team has finished.
func nextPhase(current Phase, rampSelected, ended bool) Phase {
	switch current {
	case PhaseGameStart:
		return PhaseRoundStart
	case PhaseRoundStart:
		return PhaseFigureSelection
	case PhaseFigureSelection:
		// leaving the ramp needs no dice
		if rampSelected {
			return PhaseFigureMovement
		}
		return PhaseDiceRoll
	case PhaseDiceRoll:
		return PhaseFigureMovement
	case PhaseFigureMovement:
		return PhaseRoundEnd
	case PhaseRoundEnd:
		if ended {
			return PhaseGameOver
		}
		return PhaseRoundStart
	case PhaseGameOver:
		return PhaseGameOver
	default:
		panic(fmt.Sprintf("engine: unknown phase %q", current))
	}
}
