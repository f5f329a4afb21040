package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

// fakePort records the calls a controller makes and runs scheduled work at once.
type fakePort struct {
	team   *TeamState
	board  *Board
	phase  Phase
	inGame []*Figure
	ramp   *Figure
	calls  []string
}

func (p *fakePort) Team() Team                       { return p.team.Name }
func (p *fakePort) Phase() Phase                     { return p.phase }
func (p *fakePort) Board() *Board                    { return p.board }
func (p *fakePort) TeamState() *TeamState            { return p.team }
func (p *fakePort) Selectable() ([]*Figure, *Figure) { return p.inGame, p.ramp }
func (p *fakePort) Highlight(f *Figure)              { p.calls = append(p.calls, "highlight "+f.ID) }
func (p *fakePort) ConfirmFigure(f *Figure)          { p.calls = append(p.calls, "confirm "+f.ID) }
func (p *fakePort) DiceLeft()                        { p.calls = append(p.calls, "left") }
func (p *fakePort) DiceRight()                       { p.calls = append(p.calls, "right") }
func (p *fakePort) DiceConfirm()                     { p.calls = append(p.calls, "dice") }

func (p *fakePort) After(d time.Duration, fn func()) {
	p.calls = append(p.calls, fmt.Sprintf("wait %s", d))
	fn()
}

func TestAIResolveDice(t *testing.T) {
	brain := DefaultBrain()
	stop := fmt.Sprintf("wait %s", brain.DiceStopDelay)
	step := fmt.Sprintf("wait %s", brain.SuperDiceStepDelay)

	cases := []struct {
		name   string
		ready  bool
		chosen Evaluation
		want   []string
	}{
		{
			name: "regular dice is stopped after a delay",
			want: []string{stop, "dice"},
		},
		{
			name:   "low score keeps the regular dice",
			ready:  true,
			chosen: Evaluation{Score: brain.LowPriorityScore},
			want:   []string{"dice", stop, "dice"},
		},
		{
			name:   "super dice stepped to the needed value",
			ready:  true,
			chosen: Evaluation{Score: 3, NeededSteps: 3},
			want:   []string{"right", "dice", "right", step, "right", step, "dice"},
		},
		{
			name:   "no target means six",
			ready:  true,
			chosen: Evaluation{Score: 0, NeededSteps: 2},
			want: []string{"right", "dice",
				"right", step, "right", step, "right", step, "right", step, "right", step, "dice"},
		},
		{
			name:   "one step confirms at once",
			ready:  true,
			chosen: Evaluation{Score: 2, NeededSteps: 1},
			want:   []string{"right", "dice", "dice"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			team := newTeamState(TeamBlue, nil, 3)
			team.superReady = tc.ready
			p := &fakePort{team: team, phase: PhaseDiceRoll}
			ai := NewAIController(brain, rand.New(rand.NewSource(1)))
			ai.chosen = tc.chosen

			ai.ResolveDice(p)
			assert.Equal(t, tc.want, p.calls)
		})
	}
}

func TestAISelectFigureConfirmsChoice(t *testing.T) {
	b := NewBoard(NewTestSetup())
	f := put(b, "blue-1", TeamBlue, 32)
	p := &fakePort{team: newTeamState(TeamBlue, nil, 3), board: b, phase: PhaseFigureSelection, inGame: []*Figure{f}}
	ai := NewAIController(DefaultBrain(), rand.New(rand.NewSource(1)))

	ai.SelectFigure(p)
	assert.Equal(t, []string{"confirm blue-1"}, p.calls)
	assert.Same(t, f, ai.Chosen().Figure)
}

func TestHumanSelectionCycles(t *testing.T) {
	a := newFigure("red-1", TeamRed, nil)
	b := newFigure("red-2", TeamRed, nil)
	ramp := newFigure("red-3", TeamRed, nil)
	p := &fakePort{team: newTeamState(TeamRed, nil, 3), phase: PhaseFigureSelection, inGame: []*Figure{a, b}, ramp: ramp}
	h := NewHumanController()

	h.SelectFigure(p)
	h.HandleInput(p, CmdLeft)
	h.HandleInput(p, CmdRight)
	h.HandleInput(p, CmdRight)
	h.HandleInput(p, CmdConfirm)

	assert.Equal(t, []string{"highlight red-1", "highlight red-3", "highlight red-1", "highlight red-2", "confirm red-2"}, p.calls)

	p.calls = nil
	p.phase = PhaseDiceRoll
	h.HandleInput(p, CmdLeft)
	h.HandleInput(p, CmdRight)
	h.HandleInput(p, CmdConfirm)
	assert.Equal(t, []string{"left", "right", "dice"}, p.calls)
}
