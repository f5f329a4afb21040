package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNormalize(t *testing.T) {
	b := NewBoard(NewTestSetup())
	n := b.Size()

	for i := -3 * n; i <= 3*n; i++ {
		got := b.Normalize(i)
		require.GreaterOrEqual(t, got, 0)
		require.Less(t, got, n)
		require.Equal(t, got, b.Normalize(got+n), "normalize must be periodic")
	}
	assert.Equal(t, 2, b.Normalize(42))
	assert.Equal(t, 39, b.Normalize(-1))
}

func TestBoardPanics(t *testing.T) {
	b := NewBoard(NewTestSetup())

	assert.Panics(t, func() { b.Tile(-1) })
	assert.Panics(t, func() { b.Tile(b.Size()) })
	assert.Panics(t, func() { b.EntryIndex(Team("green")) })
	assert.Panics(t, func() { b.Ramp(Team("green")) })

	red := newFigure("red-1", TeamRed, nil)
	blue := newFigure("blue-1", TeamBlue, nil)
	b.Occupy(3, red)
	b.Occupy(3, red)
	assert.Panics(t, func() { b.Occupy(3, blue) }, "a tile holds one figure")

	b.Free(3)
	assert.NotPanics(t, func() { b.Occupy(3, blue) })
}

func TestRampFirstSkipsFiguresOutOfRamp(t *testing.T) {
	r := &Ramp{Team: TeamRed, PathLength: 3}
	figs := []*Figure{newFigure("red-1", TeamRed, nil), newFigure("red-2", TeamRed, nil), newFigure("red-3", TeamRed, nil)}
	r.slots = figs

	assert.Same(t, figs[0], r.First())
	figs[0].state = FigureInGame
	figs[1].dead = true
	assert.Same(t, figs[2], r.First())
	assert.Equal(t, 1, r.Count())

	figs[2].state = FigureFinished
	assert.Nil(t, r.First())
}

func TestNextPhase(t *testing.T) {
	cases := []struct {
		name         string
		current      Phase
		rampSelected bool
		ended        bool
		want         Phase
	}{
		{name: "start", current: PhaseGameStart, want: PhaseRoundStart},
		{name: "round start selects", current: PhaseRoundStart, want: PhaseFigureSelection},
		{name: "in-game figure rolls dice", current: PhaseFigureSelection, want: PhaseDiceRoll},
		{name: "ramp figure skips dice", current: PhaseFigureSelection, rampSelected: true, want: PhaseFigureMovement},
		{name: "dice then movement", current: PhaseDiceRoll, want: PhaseFigureMovement},
		{name: "movement ends round", current: PhaseFigureMovement, want: PhaseRoundEnd},
		{name: "next round", current: PhaseRoundEnd, want: PhaseRoundStart},
		{name: "finished game", current: PhaseRoundEnd, ended: true, want: PhaseGameOver},
		{name: "game over is terminal", current: PhaseGameOver, want: PhaseGameOver},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nextPhase(tc.current, tc.rampSelected, tc.ended))
		})
	}

	assert.Panics(t, func() { nextPhase(Phase("halftime"), false, false) })
}

func TestSetupValidate(t *testing.T) {
	require.NoError(t, NewTestSetup().Validate())

	cases := []struct {
		name    string
		mutate  func(s *Setup)
		wantMsg string
	}{
		{
			name:    "board too small",
			mutate:  func(s *Setup) { s.Tiles = s.Tiles[:6] },
			wantMsg: "board needs more than 6 tiles",
		},
		{
			name:    "unknown first team",
			mutate:  func(s *Setup) { s.FirstTeam = "green" },
			wantMsg: "first team",
		},
		{
			name:    "shared entry",
			mutate:  func(s *Setup) { s.Entry = map[Team]int{TeamRed: 0, TeamBlue: 0} },
			wantMsg: "share entry tile 0",
		},
		{
			name:    "entry on spikes",
			mutate:  func(s *Setup) { s.Entry = map[Team]int{TeamRed: 7, TeamBlue: 20} },
			wantMsg: "must be standard",
		},
		{
			name:    "capture waypoint past ramp",
			mutate:  func(s *Setup) { s.RampCaptureWaypoint = 3 },
			wantMsg: "ramp capture waypoint 3",
		},
		{
			name:    "not enough final spots",
			mutate:  func(s *Setup) { s.FiguresPerTeam = 5 },
			wantMsg: "has 4 final spots for 5 figures",
		},
		{
			name: "final spot without data",
			mutate: func(s *Setup) {
				spots := map[int]FinalSpotSetup{}
				for k, v := range s.FinalSpots {
					spots[k] = v
				}
				delete(spots, 35)
				s.FinalSpots = spots
			},
			wantMsg: "final spot tile 35 has no final spot",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewTestSetup()
			tc.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSetup))
			assert.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestSetupValidateReportsEveryProblem(t *testing.T) {
	s := NewTestSetup()
	s.FiguresPerTeam = 0
	s.SuperDiceMax = 0

	err := s.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "figures per team must be positive")
	assert.ErrorContains(t, err, "super dice max must be positive")
}

func TestRegularDice(t *testing.T) {
	d := NewDice(rand.New(rand.NewSource(7)))
	seen := map[int]bool{}

	for i := 0; i < 600; i++ {
		d.Open(false)
		require.False(t, d.InMenu())
		require.False(t, d.Right(), "a regular dice cannot be stepped")
		v, done := d.Confirm()
		require.True(t, done)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, MaxDiceValue)
		require.False(t, d.Active())
		seen[v] = true
	}
	assert.Len(t, seen, MaxDiceValue)
}

func TestSuperDiceMenu(t *testing.T) {
	d := NewDice(rand.New(rand.NewSource(1)))
	d.Open(true)
	require.True(t, d.InMenu())
	assert.Equal(t, DiceRegular, d.Mode())

	assert.True(t, d.Right())
	assert.Equal(t, DiceSuper, d.Mode())

	_, done := d.Confirm()
	require.False(t, done)
	require.False(t, d.InMenu())

	d.Right()
	d.Right()
	assert.Equal(t, 3, d.Value())
	d.Left()
	d.Left()
	d.Left()
	assert.Equal(t, MaxDiceValue, d.Value(), "value wraps from 1 to 6")

	v, done := d.Confirm()
	assert.True(t, done)
	assert.Equal(t, MaxDiceValue, v)

	_, done = d.Confirm()
	assert.False(t, done, "a closed dice produces nothing")
}

func TestSuperDiceChargeSaturates(t *testing.T) {
	ts := newTeamState(TeamRed, nil, 3)

	ts.chargeSuperDice()
	ts.chargeSuperDice()
	assert.False(t, ts.SuperDiceReady())
	ts.chargeSuperDice()
	assert.True(t, ts.SuperDiceReady())
	ts.chargeSuperDice()
	assert.Equal(t, 3, ts.SuperDiceCharge())

	ts.resetSuperDice()
	assert.Zero(t, ts.SuperDiceCharge())
	assert.False(t, ts.SuperDiceReady())
}

func TestVirtualClockOrder(t *testing.T) {
	c := NewVirtualClock()
	var got []string
	c.After(200, func() { got = append(got, "c") })
	c.After(100, func() { got = append(got, "a") })
	c.After(100, func() {
		got = append(got, "b")
		c.After(0, func() { got = append(got, "b2") })
	})

	assert.Equal(t, 3, c.Advance(100))
	assert.Equal(t, []string{"a", "b", "b2"}, got)
	assert.Equal(t, 1, c.RunUntilIdle(10))
	assert.Equal(t, []string{"a", "b", "b2", "c"}, got)
}
