package engine

type FigureState string

const (
	FigureOnRamp   FigureState = "on_ramp"
	FigureInGame   FigureState = "in_game"
	FigureFinished FigureState = "finished"
)

type PathKind string

const (
	PathRamp  PathKind = "ramp"
	PathRing  PathKind = "ring"
	PathFinal PathKind = "final"
)

// Path identifies a waypoint track of the motion layer. The ring path loops;
// ramp and final paths end at their last waypoint.
type Path struct {
	Kind   PathKind `json:"kind"`
	Team   Team     `json:"team"`
	Length int      `json:"length"`
}

// figureHooks connects figures to the game that owns them.
type figureHooks struct {
	motion    Motion
	clock     Scheduler
	timing    Timing
	emit      func(Event)
	waypoint  func(f *Figure, index int)
	moveEnded func(f *Figure)
	leftPlay  func(f *Figure)
	respawned func(f *Figure)
}

// Figure is a single piece. Board references it only while it is in game.
type Figure struct {
	ID   string
	Team Team

	state       FigureState
	boardIndex  int
	targetIndex int
	path        Path
	lastVisited int
	moving      bool
	jumping     bool
	attacking   bool
	dead        bool

	hooks *figureHooks
}

func newFigure(id string, team Team, hooks *figureHooks) *Figure {
	return &Figure{
		ID:          id,
		Team:        team,
		state:       FigureOnRamp,
		boardIndex:  -1,
		targetIndex: -1,
		lastVisited: -1,
		hooks:       hooks,
	}
}

func (f *Figure) State() FigureState { return f.state }
func (f *Figure) BoardIndex() int    { return f.boardIndex }
func (f *Figure) TargetIndex() int   { return f.targetIndex }
func (f *Figure) Jumping() bool      { return f.jumping }
func (f *Figure) Attacking() bool    { return f.attacking }
func (f *Figure) Moving() bool       { return f.moving }

// Dead reports a figure that was killed and waits to reappear on its ramp.
func (f *Figure) Dead() bool { return f.dead }

func (f *Figure) startPath(p Path, from, target int) {
	f.path = p
	f.lastVisited = -1
	f.targetIndex = target
	f.moving = true
	f.hooks.motion.StartMove(f.ID, p, from)
	f.hooks.emit(Event{Type: EvtFigureMoving, Team: f.Team, Figure: f.ID, Value: target})
}

// goToStart walks the ramp path down to the team's entry tile.
func (f *Figure) goToStart(ramp Path) {
	f.startPath(ramp, 0, ramp.Length-1)
}

// goToIndex walks the ring from the current index to goal.
func (f *Figure) goToIndex(ring Path, goal int) {
	f.startPath(ring, f.boardIndex, goal)
}

func (f *Figure) goToFinalSpot(final Path) {
	f.state = FigureFinished
	f.startPath(final, 0, final.Length-1)
	f.hooks.leftPlay(f)
}

func (f *Figure) setInGame(ring Path, entry int) {
	f.state = FigureInGame
	f.path = ring
	f.boardIndex = entry
}

func (f *Figure) jump() {
	f.jumping = true
	f.hooks.emit(Event{Type: EvtFigureJumped, Team: f.Team, Figure: f.ID, Value: f.boardIndex})
	f.hooks.clock.After(f.hooks.timing.JumpDelay, func() {
		f.jumping = false
	})
}

// attack pauses the mover and resumes it towards the same target afterwards.
func (f *Figure) attack() {
	f.attacking = true
	f.hooks.motion.PauseMove(f.ID)
	f.hooks.emit(Event{Type: EvtFigureAttacked, Team: f.Team, Figure: f.ID})
	f.hooks.clock.After(f.hooks.timing.AttackDelay, func() {
		if !f.attacking || f.dead {
			return
		}
		f.attacking = false
		f.hooks.motion.ResumeMove(f.ID)
	})
}

// die removes the figure from play. After the death delay it is back on its
// ramp and then runs, if given.
func (f *Figure) die(then func()) {
	f.hooks.motion.StopMove(f.ID)
	f.dead = true
	f.moving = false
	f.attacking = false
	f.jumping = false
	f.hooks.leftPlay(f)
	f.hooks.emit(Event{Type: EvtFigureDied, Team: f.Team, Figure: f.ID, Value: f.boardIndex})
	f.hooks.clock.After(f.hooks.timing.DeathDelay, func() {
		f.returnToRamp()
		if then != nil {
			then()
		}
	})
}

func (f *Figure) returnToRamp() {
	f.state = FigureOnRamp
	f.dead = false
	f.boardIndex = -1
	f.targetIndex = -1
	f.lastVisited = -1
	f.path = Path{}
	f.hooks.emit(Event{Type: EvtFigureRespawned, Team: f.Team, Figure: f.ID})
	f.hooks.respawned(f)
}

func (f *Figure) waypointReached(index int) {
	if !f.moving || index == f.lastVisited {
		return
	}
	f.lastVisited = index
	if f.path.Kind == PathRing {
		f.boardIndex = index
	}
	f.hooks.emit(Event{Type: EvtWaypointReached, Team: f.Team, Figure: f.ID, Value: index})
	f.hooks.waypoint(f, index)

	if f.moving && index == f.targetIndex {
		f.hooks.motion.PauseMove(f.ID)
		f.moving = false
		f.hooks.moveEnded(f)
	}
}

// moveComplete handles the motion layer reporting the end of a non-looping path.
func (f *Figure) moveComplete() {
	if !f.moving || f.attacking {
		return
	}
	f.moving = false
	f.hooks.moveEnded(f)
}
