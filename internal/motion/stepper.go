package motion

import (
	"time"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"go.uber.org/zap"
)

// Sink receives the progress of every move. *engine.Game implements it.
type Sink interface {
	WaypointReached(figureID string, index int) error
	MoveComplete(figureID string) error
}

type track struct {
	path   engine.Path
	index  int
	paused bool
	done   bool
	gen    int
}

// Stepper is an engine.Motion that advances a figure one waypoint per tick on the
// game's scheduler. Ring paths wrap around; other paths end at their last waypoint.
type Stepper struct {
	clock  engine.Scheduler
	delay  time.Duration
	log    *zap.Logger
	sink   Sink
	tracks map[string]*track
}

func NewStepper(clock engine.Scheduler, delay time.Duration, log *zap.Logger) *Stepper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stepper{
		clock:  clock,
		delay:  delay,
		log:    log,
		tracks: map[string]*track{},
	}
}

// Bind sets where waypoints are reported. It must be called before the first move.
func (s *Stepper) Bind(sink Sink) {
	s.sink = sink
}

func (s *Stepper) StartMove(figureID string, path engine.Path, from int) {
	t, ok := s.tracks[figureID]
	if !ok {
		t = &track{}
		s.tracks[figureID] = t
	}
	t.gen++
	t.path = path
	t.index = from
	t.paused = false
	t.done = false
	s.log.Debug("move started",
		zap.String("figure", figureID),
		zap.String("path", string(path.Kind)),
		zap.Int("from", from))
	s.schedule(figureID, t)
}

func (s *Stepper) PauseMove(figureID string) {
	t, ok := s.tracks[figureID]
	if !ok || t.paused || t.done {
		return
	}
	t.paused = true
	t.gen++
}

func (s *Stepper) ResumeMove(figureID string) {
	t, ok := s.tracks[figureID]
	if !ok || !t.paused || t.done {
		return
	}
	t.paused = false
	t.gen++
	s.schedule(figureID, t)
}

func (s *Stepper) StopMove(figureID string) {
	t, ok := s.tracks[figureID]
	if !ok {
		return
	}
	t.done = true
	t.gen++
}

// Position returns the last waypoint a figure reached on its current path.
func (s *Stepper) Position(figureID string) (engine.Path, int, bool) {
	t, ok := s.tracks[figureID]
	if !ok {
		return engine.Path{}, 0, false
	}
	return t.path, t.index, true
}

func (s *Stepper) schedule(figureID string, t *track) {
	gen := t.gen
	s.clock.After(s.delay, func() {
		s.step(figureID, t, gen)
	})
}

func (s *Stepper) stale(t *track, gen int) bool {
	return t.gen != gen || t.paused || t.done
}

func (s *Stepper) step(figureID string, t *track, gen int) {
	if s.stale(t, gen) {
		return
	}
	looping := t.path.Kind == engine.PathRing
	if !looping && t.index >= t.path.Length-1 {
		t.done = true
		return
	}

	t.index++
	if looping {
		t.index %= t.path.Length
	}
	if err := s.sink.WaypointReached(figureID, t.index); err != nil {
		s.log.Warn("waypoint rejected", zap.String("figure", figureID), zap.Error(err))
		t.done = true
		return
	}
	// the sink may have paused or restarted this figure
	if s.stale(t, gen) {
		return
	}

	if !looping && t.index >= t.path.Length-1 {
		t.done = true
		if err := s.sink.MoveComplete(figureID); err != nil {
			s.log.Warn("move completion rejected", zap.String("figure", figureID), zap.Error(err))
		}
		return
	}
	s.schedule(figureID, t)
}
