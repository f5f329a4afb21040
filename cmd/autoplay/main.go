// Command autoplay runs AI-only games on a virtual clock and reports who won.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/DoyleJ11/portal-race/internal/config"
	"github.com/DoyleJ11/portal-race/internal/engine"
	"github.com/DoyleJ11/portal-race/internal/motion"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type result struct {
	winner  engine.Team
	rounds  int
	elapsed string
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	seed := flag.Uint64("seed", 1, "base random seed")
	layoutPath := flag.String("layout", "", "layout file (default: built-in board)")
	step := flag.Duration("step", 100*time.Millisecond, "virtual time per waypoint")
	maxSteps := flag.Int("max-steps", 2000000, "scheduler steps before a game is abandoned")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := config.NewLogger(*level, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	layout, err := config.LoadLayout(*layoutPath)
	if err != nil {
		log.Fatal("load layout", zap.Error(err))
	}
	setup, err := layout.Setup()
	if err != nil {
		log.Fatal("invalid layout", zap.Error(err))
	}

	var (
		mu     sync.Mutex
		wins   = map[engine.Team]int{}
		rounds int
	)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < *games; i++ {
		i := i
		gameSeed := *seed + uint64(i)*3
		g.Go(func() error {
			res, err := play(setup, gameSeed, *step, *maxSteps, log)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			log.Info("game finished",
				zap.Int("game", i),
				zap.String("winner", string(res.winner)),
				zap.Int("rounds", res.rounds),
				zap.String("virtual_time", res.elapsed))
			mu.Lock()
			wins[res.winner]++
			rounds += res.rounds
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("autoplay failed", zap.Error(err))
	}

	for _, team := range engine.Teams {
		log.Info("wins", zap.String("team", string(team)), zap.Int("games", wins[team]))
	}
	if *games > 0 {
		log.Info("average rounds", zap.Float64("rounds", float64(rounds)/float64(*games)))
	}
}

func play(setup engine.Setup, seed uint64, step time.Duration, maxSteps int, log *zap.Logger) (result, error) {
	clock := engine.NewVirtualClock()
	stepper := motion.NewStepper(clock, step, log.Named("motion"))
	controllers := map[engine.Team]engine.Controller{
		engine.TeamRed:  engine.NewAIController(setup.Brain, rand.New(rand.NewSource(seed+1))),
		engine.TeamBlue: engine.NewAIController(setup.Brain, rand.New(rand.NewSource(seed+2))),
	}
	game, err := engine.NewGame(setup, controllers, stepper, clock,
		engine.WithLogger(log.Named("engine")),
		engine.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return result{}, err
	}
	stepper.Bind(game)

	game.Begin()
	clock.RunUntilIdle(maxSteps)

	winner, ok := game.Winner()
	if !ok {
		return result{}, fmt.Errorf("no winner after %d steps, stuck in %s", maxSteps, game.Phase())
	}
	return result{winner: winner, rounds: game.Round(), elapsed: clock.Now().String()}, nil
}
