package engine

// TeamState is a team's figures and progress counters.
type TeamState struct {
	Name Team

	figures     []*Figure
	inGame      []*Figure
	superMax    int
	superCharge int
	superReady  bool
	finished    int
}

func newTeamState(name Team, figures []*Figure, superMax int) *TeamState {
	return &TeamState{
		Name:     name,
		figures:  figures,
		superMax: superMax,
	}
}

func (t *TeamState) Figures() []*Figure {
	out := make([]*Figure, len(t.figures))
	copy(out, t.figures)
	return out
}

func (t *TeamState) InGame() []*Figure {
	out := make([]*Figure, len(t.inGame))
	copy(out, t.inGame)
	return out
}

func (t *TeamState) SuperDiceCharge() int { return t.superCharge }
func (t *TeamState) SuperDiceReady() bool { return t.superReady }
func (t *TeamState) Finished() int        { return t.finished }

// chargeSuperDice adds one round of charge. The charge saturates at the maximum.
func (t *TeamState) chargeSuperDice() {
	if t.superReady {
		return
	}
	t.superCharge++
	t.superReady = t.superCharge >= t.superMax
}

func (t *TeamState) resetSuperDice() {
	t.superCharge = 0
	t.superReady = false
}

func (t *TeamState) putInGame(f *Figure) {
	for _, g := range t.inGame {
		if g == f {
			return
		}
	}
	t.inGame = append(t.inGame, f)
}

func (t *TeamState) removeFromPlay(f *Figure) {
	for i, g := range t.inGame {
		if g == f {
			t.inGame = append(t.inGame[:i], t.inGame[i+1:]...)
			return
		}
	}
}
