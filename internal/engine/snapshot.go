package engine

// Snapshot is a read-only view of a game, safe to hand to other goroutines.
type Snapshot struct {
	Phase     Phase             `json:"phase"`
	Round     int               `json:"round"`
	Active    Team              `json:"active_team"`
	LastDice  int               `json:"last_dice,omitempty"`
	Goal      int               `json:"goal"`
	TurnAgain bool              `json:"turn_again,omitempty"`
	Selected  string            `json:"selected,omitempty"`
	Winner    Team              `json:"winner,omitempty"`
	Dice      *DiceView         `json:"dice,omitempty"`
	Teams     map[Team]TeamView `json:"teams"`
	Tiles     []TileView        `json:"tiles"`
}

type TeamView struct {
	SuperDiceCharge int          `json:"super_dice_charge"`
	SuperDiceReady  bool         `json:"super_dice_ready"`
	Finished        int          `json:"finished"`
	OnRamp          int          `json:"on_ramp"`
	Entry           int          `json:"entry"`
	Figures         []FigureView `json:"figures"`
}

type FigureView struct {
	ID         string      `json:"id"`
	State      FigureState `json:"state"`
	BoardIndex int         `json:"board_index"`
	Moving     bool        `json:"moving,omitempty"`
	Jumping    bool        `json:"jumping,omitempty"`
	Attacking  bool        `json:"attacking,omitempty"`
	Dead       bool        `json:"dead,omitempty"`
}

type TileView struct {
	Index     int      `json:"index"`
	Type      TileType `json:"type"`
	Occupant  string   `json:"occupant,omitempty"`
	SpotTeam  Team     `json:"spot_team,omitempty"`
	SpotTaken bool     `json:"spot_taken,omitempty"`
}

type DiceView struct {
	Mode   DiceMode `json:"mode"`
	Value  int      `json:"value"`
	InMenu bool     `json:"in_menu"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:     g.phase,
		Round:     g.round,
		Active:    g.active,
		LastDice:  g.lastDice,
		Goal:      g.goal,
		TurnAgain: g.turnAgain,
		Teams:     make(map[Team]TeamView, len(g.teams)),
		Tiles:     make([]TileView, 0, g.board.Size()),
	}
	if g.selected != nil {
		s.Selected = g.selected.ID
	}
	if w, ok := g.Winner(); ok {
		s.Winner = w
	}
	if g.phase == PhaseDiceRoll && g.dice.Active() {
		s.Dice = &DiceView{Mode: g.dice.Mode(), Value: g.dice.Value(), InMenu: g.dice.InMenu()}
	}

	for _, team := range Teams {
		ts := g.teams[team]
		tv := TeamView{
			SuperDiceCharge: ts.superCharge,
			SuperDiceReady:  ts.superReady,
			Finished:        ts.finished,
			OnRamp:          g.board.Ramp(team).Count(),
			Entry:           g.board.EntryIndex(team),
			Figures:         make([]FigureView, 0, len(ts.figures)),
		}
		for _, f := range ts.figures {
			tv.Figures = append(tv.Figures, FigureView{
				ID:         f.ID,
				State:      f.state,
				BoardIndex: f.boardIndex,
				Moving:     f.moving,
				Jumping:    f.jumping,
				Attacking:  f.attacking,
				Dead:       f.dead,
			})
		}
		s.Teams[team] = tv
	}

	for _, t := range g.board.tiles {
		tv := TileView{Index: t.Index, Type: t.Type}
		if t.Occupant != nil {
			tv.Occupant = t.Occupant.ID
		}
		if t.FinalSpot != nil {
			tv.SpotTeam = t.FinalSpot.Team
			tv.SpotTaken = t.FinalSpot.Occupied
		}
		s.Tiles = append(s.Tiles, tv)
	}
	return s
}
