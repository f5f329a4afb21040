package lobby

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"github.com/DoyleJ11/portal-race/internal/motion"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// Factory builds a game that schedules on clock and reports to observer.
type Factory func(clock engine.Scheduler, observer engine.Observer) (*engine.Game, error)

// Seats tells which teams are played by the AI.
type Seats map[engine.Team]bool

// NewFactory returns a Factory for games of setup, moved by a motion.Stepper
// with stepDelay per waypoint. A zero seed picks one from the clock. Games
// without a human seat start on their own.
func NewFactory(setup engine.Setup, ai Seats, stepDelay time.Duration, seed uint64, log *zap.Logger) Factory {
	if log == nil {
		log = zap.NewNop()
	}
	// lobbies call the factory from their own goroutines
	var games atomic.Uint64
	return func(clock engine.Scheduler, observer engine.Observer) (*engine.Game, error) {
		base := seed
		if base == 0 {
			base = uint64(time.Now().UnixNano())
		}
		base += games.Add(1) * 3

		controllers := map[engine.Team]engine.Controller{}
		humans := 0
		for i, team := range engine.Teams {
			if ai[team] {
				controllers[team] = engine.NewAIController(setup.Brain, rand.New(rand.NewSource(base+uint64(i)+1)))
				continue
			}
			controllers[team] = engine.NewHumanController()
			humans++
		}

		stepper := motion.NewStepper(clock, stepDelay, log.Named("motion"))
		g, err := engine.NewGame(setup, controllers, stepper, clock,
			engine.WithLogger(log.Named("engine")),
			engine.WithObserver(observer),
			engine.WithRand(rand.New(rand.NewSource(base))))
		if err != nil {
			return nil, fmt.Errorf("build game: %w", err)
		}
		stepper.Bind(g)

		if humans == 0 {
			g.Begin()
		}
		return g, nil
	}
}
