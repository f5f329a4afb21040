package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// Game is the turn state machine. It is not safe for concurrent use: every call,
// including scheduler callbacks and motion reports, must come from one goroutine.
type Game struct {
	setup       Setup
	board       *Board
	teams       map[Team]*TeamState
	figures     map[string]*Figure
	controllers map[Team]Controller
	motion      Motion
	clock       Scheduler
	observer    Observer
	log         *zap.Logger
	dice        *Dice
	hooks       *figureHooks

	phase        Phase
	round        int
	active       Team
	firstPlaying bool
	justStarted  bool
	lastDice     int
	goal         int
	ended        bool
	turnAgain    bool
	selected     *Figure
	starved      bool
	turn         int
	port         *seat
}

type Option func(*Game)

func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.log = l }
}

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observer = o }
}

// WithRand sets the dice random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.dice = NewDice(r) }
}

func NewGame(setup Setup, controllers map[Team]Controller, motion Motion, clock Scheduler, opts ...Option) (*Game, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	for _, t := range Teams {
		if controllers[t] == nil {
			return nil, fmt.Errorf("%w: no controller for team %s", ErrInvalidSetup, t)
		}
	}
	if motion == nil || clock == nil {
		return nil, fmt.Errorf("%w: motion and scheduler are required", ErrInvalidSetup)
	}

	g := &Game{
		setup:       setup,
		teams:       map[Team]*TeamState{},
		figures:     map[string]*Figure{},
		controllers: controllers,
		motion:      motion,
		clock:       clock,
		observer:    nopObserver{},
		log:         zap.NewNop(),
		dice:        NewDice(rand.New(rand.NewSource(uint64(time.Now().UnixNano())))),
	}
	for _, o := range opts {
		o(g)
	}

	g.board = NewBoard(setup)
	g.hooks = &figureHooks{
		motion:    motion,
		clock:     clock,
		timing:    setup.Timing,
		emit:      g.emit,
		waypoint:  g.onWaypoint,
		moveEnded: g.onMoveEnded,
		leftPlay:  g.onLeftPlay,
		respawned: g.onRespawned,
	}
	for _, team := range Teams {
		figs := make([]*Figure, setup.FiguresPerTeam)
		for i := range figs {
			f := newFigure(fmt.Sprintf("%s-%d", team, i+1), team, g.hooks)
			figs[i] = f
			g.figures[f.ID] = f
		}
		g.board.Ramp(team).slots = figs
		g.teams[team] = newTeamState(team, figs, setup.SuperDiceMax)
	}

	g.phase = PhaseGameStart
	g.round = 1
	g.justStarted = true
	g.firstPlaying = true
	g.goal = -1
	g.setActive()
	return g, nil
}

func (g *Game) Phase() Phase              { return g.phase }
func (g *Game) Round() int                { return g.round }
func (g *Game) Active() Team              { return g.active }
func (g *Game) Board() *Board             { return g.board }
func (g *Game) LastDice() int             { return g.lastDice }
func (g *Game) Goal() int                 { return g.goal }
func (g *Game) Ended() bool               { return g.ended }
func (g *Game) Selected() *Figure         { return g.selected }
func (g *Game) Team(t Team) *TeamState    { return g.teams[t] }

func (g *Game) Controller(t Team) Controller {
	return g.controllers[t]
}

func (g *Game) Figure(id string) (*Figure, bool) {
	f, ok := g.figures[id]
	return f, ok
}

// Winner is the team that ended the game.
func (g *Game) Winner() (Team, bool) {
	if g.phase != PhaseGameOver {
		return "", false
	}
	return g.active, true
}

// Begin leaves the title screen and starts the first round.
func (g *Game) Begin() {
	if g.phase != PhaseGameStart {
		return
	}
	g.emit(Event{Type: EvtGameStarted, Team: g.active, Round: g.round})
	g.advance()
}

// Input routes a player command to the active team's controller. A confirm
// from any seat leaves the title screen.
func (g *Game) Input(team Team, cmd Command) {
	switch g.phase {
	case PhaseGameStart:
		if cmd == CmdConfirm {
			g.Begin()
		}
		return
	case PhaseGameOver:
		return
	}
	if team != g.active || g.port == nil {
		return
	}
	g.controllers[team].HandleInput(g.port, cmd)
}

// WaypointReached is the motion layer reporting that a figure reached index on its current path.
func (g *Game) WaypointReached(figureID string, index int) error {
	f, ok := g.figures[figureID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFigure, figureID)
	}
	f.waypointReached(index)
	return nil
}

// MoveComplete is the motion layer reporting the end of a non-looping path.
func (g *Game) MoveComplete(figureID string) error {
	f, ok := g.figures[figureID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFigure, figureID)
	}
	f.moveComplete()
	return nil
}

func (g *Game) emit(e Event) {
	g.observer.Notify(e)
}

func (g *Game) setActive() {
	if g.firstPlaying {
		g.active = g.setup.FirstTeam
	} else {
		g.active = g.setup.FirstTeam.Other()
	}
}

func (g *Game) advance() {
	if g.phase == PhaseGameOver {
		return
	}
	rampSelected := g.selected != nil && g.selected.state == FigureOnRamp
	next := nextPhase(g.phase, rampSelected, g.ended)
	g.log.Debug("phase change",
		zap.String("from", string(g.phase)),
		zap.String("to", string(next)),
		zap.Int("round", g.round),
		zap.String("team", string(g.active)))
	g.phase = next
	g.enter(next)
}

func (g *Game) enter(p Phase) {
	switch p {
	case PhaseRoundStart:
		g.startRound()
	case PhaseFigureSelection:
		g.selectFigure()
	case PhaseDiceRoll:
		g.rollDice()
	case PhaseFigureMovement:
		g.moveFigure()
	case PhaseRoundEnd:
		g.endRound()
	case PhaseGameOver:
		g.gameOver()
	case PhaseGameStart:
		panic("engine: game start cannot be entered again")
	default:
		panic(fmt.Sprintf("engine: unknown phase %q", p))
	}
}

func (g *Game) startRound() {
	if !g.justStarted {
		g.round++
		g.setActive()
	} else {
		g.justStarted = false
	}
	g.turn++
	g.port = &seat{g: g, team: g.active, turn: g.turn}
	g.selected = nil
	g.starved = false
	g.goal = -1

	team := g.teams[g.active]
	team.chargeSuperDice()
	g.emit(Event{Type: EvtRoundStarted, Team: g.active, Round: g.round})
	g.emit(Event{Type: EvtSuperDiceCharged, Team: g.active, Value: team.SuperDiceCharge(), Ready: team.SuperDiceReady()})
	g.advance()
}

func (g *Game) selectFigure() {
	inGame, ramp := g.selectable(g.active)
	if len(inGame) == 0 && ramp == nil {
		// nothing to move until a figure of this team is back on its ramp
		g.starved = true
		g.log.Debug("no selectable figure", zap.String("team", string(g.active)))
		return
	}
	g.controllers[g.active].SelectFigure(g.port)
}

// selectable lists the in-game figures of a team and its ramp figure. The ramp
// is blocked while a figure of the same team stands on the entry tile.
func (g *Game) selectable(t Team) ([]*Figure, *Figure) {
	inGame := g.teams[t].InGame()
	ramp := g.board.Ramp(t).First()
	entry := g.board.EntryIndex(t)
	for _, f := range inGame {
		if f.boardIndex == entry {
			ramp = nil
			break
		}
	}
	return inGame, ramp
}

func (g *Game) isSelectable(f *Figure) bool {
	inGame, ramp := g.selectable(f.Team)
	if f == ramp {
		return true
	}
	for _, o := range inGame {
		if o == f {
			return true
		}
	}
	return false
}

func (g *Game) confirmFigure(f *Figure) {
	g.selected = f
	g.emit(Event{Type: EvtFigureSelected, Team: f.Team, Figure: f.ID})
	g.advance()
}

func (g *Game) rollDice() {
	team := g.teams[g.active]
	g.dice.Open(team.SuperDiceReady())
	g.emit(Event{Type: EvtDiceOpened, Team: g.active, Dice: g.dice.Mode(), Ready: team.SuperDiceReady()})
	g.controllers[g.active].ResolveDice(g.port)
}

func (g *Game) diceStep(left bool) {
	inMenu := g.dice.InMenu()
	var changed bool
	if left {
		changed = g.dice.Left()
	} else {
		changed = g.dice.Right()
	}
	if !changed {
		return
	}
	if inMenu {
		g.emit(Event{Type: EvtDiceModeChanged, Team: g.active, Dice: g.dice.Mode()})
		return
	}
	g.emit(Event{Type: EvtDiceValueChanged, Team: g.active, Dice: g.dice.Mode(), Value: g.dice.Value()})
}

func (g *Game) diceConfirm() {
	value, done := g.dice.Confirm()
	if !done {
		g.emit(Event{Type: EvtDiceModeChanged, Team: g.active, Dice: g.dice.Mode()})
		return
	}
	team := g.teams[g.active]
	if g.dice.Mode() == DiceSuper {
		team.resetSuperDice()
		g.emit(Event{Type: EvtSuperDiceCharged, Team: g.active, Value: 0})
	}
	g.lastDice = value
	g.emit(Event{Type: EvtDiceRolled, Team: g.active, Dice: g.dice.Mode(), Value: value})
	g.advance()
}

func (g *Game) ringPath() Path {
	return Path{Kind: PathRing, Length: g.board.Size()}
}

func (g *Game) moveFigure() {
	f := g.selected
	if f.state == FigureOnRamp {
		g.goal = g.board.EntryIndex(f.Team)
		f.goToStart(Path{Kind: PathRamp, Team: f.Team, Length: g.setup.RampPathLength})
		return
	}

	g.board.Free(f.boardIndex)
	g.goal = g.board.Normalize(f.boardIndex + g.lastDice)
	f.goToIndex(g.ringPath(), g.goal)
	g.checkNextTile(f, f.boardIndex)
}

func (g *Game) onWaypoint(f *Figure, index int) {
	if f != g.selected || g.phase != PhaseFigureMovement {
		return
	}
	switch f.path.Kind {
	case PathRamp:
		if index != g.setup.RampCaptureWaypoint {
			return
		}
		tile := g.board.Tile(g.board.EntryIndex(f.Team))
		if tile.Occupant != nil && tile.Occupant.Team != f.Team {
			f.attack()
			g.capture(f, tile)
		}
	case PathRing:
		g.checkNextTile(f, index)
	}
}

// checkNextTile looks one tile ahead of a moving figure: the goal tile's occupant
// is captured, an occupied or spiked tile on the way is jumped over.
func (g *Game) checkNextTile(f *Figure, current int) {
	if current == g.goal {
		return
	}
	next := g.board.Normalize(current + 1)
	tile := g.board.Tile(next)
	if tile.Occupant != nil && next == g.goal {
		f.attack()
		g.capture(f, tile)
		return
	}
	if !f.jumping && next != g.goal && (tile.Occupant != nil || tile.Type == TileSpikes) {
		f.jump()
	}
}

func (g *Game) capture(attacker *Figure, tile *Tile) {
	victim := tile.Occupant
	g.board.Free(tile.Index)
	g.log.Debug("capture",
		zap.String("attacker", attacker.ID),
		zap.String("victim", victim.ID),
		zap.Int("tile", tile.Index))
	victim.die(nil)
}

func (g *Game) onMoveEnded(f *Figure) {
	if f != g.selected || g.phase != PhaseFigureMovement {
		return
	}
	team := g.teams[f.Team]
	switch f.state {
	case FigureOnRamp:
		entry := g.board.EntryIndex(f.Team)
		g.board.Occupy(entry, f)
		f.setInGame(g.ringPath(), entry)
		team.putInGame(f)
		g.advance()
	case FigureFinished:
		team.finished++
		g.emit(Event{Type: EvtFinishedCountChanged, Team: f.Team, Value: team.finished})
		g.advance()
	case FigureInGame:
		g.landOn(f)
	default:
		panic(fmt.Sprintf("engine: figure %s in unknown state %q", f.ID, f.state))
	}
}

// landOn applies the effect of the tile a figure stopped on.
func (g *Game) landOn(f *Figure) {
	tile := g.board.Tile(f.boardIndex)
	switch tile.Type {
	case TileSpikes:
		f.die(func() {
			if g.phase == PhaseFigureMovement && g.selected == f {
				g.advance()
			}
		})
	case TileFinalSpot:
		spot := tile.FinalSpot
		if spot.Team == f.Team && !spot.Occupied {
			spot.Occupied = true
			g.emit(Event{Type: EvtFigureFinished, Team: f.Team, Figure: f.ID, Value: tile.Index})
			f.goToFinalSpot(Path{Kind: PathFinal, Team: f.Team, Length: spot.PathLength})
			return
		}
		g.board.Occupy(tile.Index, f)
		g.advance()
	case TileTurnAgain:
		g.board.Occupy(tile.Index, f)
		g.turnAgain = true
		g.emit(Event{Type: EvtTurnAgain, Team: f.Team, Figure: f.ID})
		g.advance()
	case TileStandard:
		g.board.Occupy(tile.Index, f)
		g.advance()
	default:
		panic(fmt.Sprintf("engine: tile %d has unknown type %q", tile.Index, tile.Type))
	}
}

func (g *Game) onLeftPlay(f *Figure) {
	g.teams[f.Team].removeFromPlay(f)
}

func (g *Game) onRespawned(f *Figure) {
	if g.starved && g.phase == PhaseFigureSelection && f.Team == g.active {
		g.starved = false
		g.selectFigure()
	}
}

func (g *Game) endRound() {
	if !g.turnAgain {
		g.firstPlaying = !g.firstPlaying
	} else {
		g.turnAgain = false
	}
	if g.teams[g.active].finished >= g.setup.FiguresPerTeam {
		g.ended = true
	}
	g.advance()
}

func (g *Game) gameOver() {
	g.port = nil
	g.log.Info("game over", zap.String("winner", string(g.active)), zap.Int("rounds", g.round))
	g.emit(Event{Type: EvtGameOver, Team: g.active, Round: g.round})
}

// seat implements Port for one turn of one team.
type seat struct {
	g    *Game
	team Team
	turn int
}

func (s *seat) live() bool {
	return s.g.port == s && s.g.active == s.team && s.g.turn == s.turn
}

func (s *seat) Team() Team            { return s.team }
func (s *seat) Phase() Phase          { return s.g.phase }
func (s *seat) Board() *Board         { return s.g.board }
func (s *seat) TeamState() *TeamState { return s.g.teams[s.team] }

func (s *seat) Selectable() ([]*Figure, *Figure) {
	return s.g.selectable(s.team)
}

func (s *seat) Highlight(f *Figure) {
	if !s.live() || s.g.phase != PhaseFigureSelection || f == nil || f.Team != s.team {
		return
	}
	s.g.emit(Event{Type: EvtFigureHighlighted, Team: s.team, Figure: f.ID})
}

func (s *seat) ConfirmFigure(f *Figure) {
	if !s.live() || s.g.phase != PhaseFigureSelection || s.g.selected != nil {
		return
	}
	if f == nil || f.Team != s.team || !s.g.isSelectable(f) {
		return
	}
	s.g.confirmFigure(f)
}

func (s *seat) DiceLeft() {
	if s.live() && s.g.phase == PhaseDiceRoll {
		s.g.diceStep(true)
	}
}

func (s *seat) DiceRight() {
	if s.live() && s.g.phase == PhaseDiceRoll {
		s.g.diceStep(false)
	}
}

func (s *seat) DiceConfirm() {
	if s.live() && s.g.phase == PhaseDiceRoll {
		s.g.diceConfirm()
	}
}

// After schedules fn on the game's clock; it is dropped if the turn is over by then.
func (s *seat) After(d time.Duration, fn func()) {
	s.g.clock.After(d, func() {
		if s.live() {
			fn()
		}
	})
}
