package engine

// NewTestSetup is a 40 tile board. Red enters at 0 and finishes on 35..38, blue
// enters at 20 and finishes on 15..18. Spikes lie on 7, 13, 27 and 33, turn-again
// tiles on 4, 10, 24 and 30.
func NewTestSetup() Setup {
	tiles := make([]TileType, 40)
	for i := range tiles {
		tiles[i] = TileStandard
	}
	for _, i := range []int{7, 13, 27, 33} {
		tiles[i] = TileSpikes
	}
	for _, i := range []int{4, 10, 24, 30} {
		tiles[i] = TileTurnAgain
	}
	spots := map[int]FinalSpotSetup{}
	for i := 35; i <= 38; i++ {
		tiles[i] = TileFinalSpot
		spots[i] = FinalSpotSetup{Team: TeamRed, PathLength: 2 + i - 35}
	}
	for i := 15; i <= 18; i++ {
		tiles[i] = TileFinalSpot
		spots[i] = FinalSpotSetup{Team: TeamBlue, PathLength: 2 + i - 15}
	}
	return Setup{
		Tiles:               tiles,
		FinalSpots:          spots,
		Entry:               map[Team]int{TeamRed: 0, TeamBlue: 20},
		FirstTeam:           TeamRed,
		FiguresPerTeam:      4,
		RampPathLength:      3,
		RampCaptureWaypoint: 1,
		SuperDiceMax:        3,
		Timing:              DefaultTiming(),
		Brain:               DefaultBrain(),
	}
}

// Place moves a ramp figure straight onto tile idx.
func (g *Game) Place(id string, idx int) *Figure {
	f := g.figures[id]
	g.board.Occupy(idx, f)
	f.setInGame(g.ringPath(), idx)
	g.teams[f.Team].putInGame(f)
	return f
}

func (g *Game) ChargeSuperDice(t Team) {
	ts := g.teams[t]
	ts.superCharge = ts.superMax
	ts.superReady = true
}

func (g *Game) SetFinished(t Team, n int) {
	g.teams[t].finished = n
}

func (g *Game) TakeFinalSpot(idx int) {
	g.board.Tile(idx).FinalSpot.Occupied = true
}
