package engine

import (
	"time"

	"golang.org/x/exp/rand"
)

// Controller decides a team's turn. SelectFigure and ResolveDice start the
// decision; the controller answers through the Port, now or later.
type Controller interface {
	SelectFigure(p Port)
	ResolveDice(p Port)
	HandleInput(p Port, cmd Command)
}

// Port is a controller's handle on the game for one turn of one team. Calls on a
// port of a finished turn are ignored.
type Port interface {
	Team() Team
	Phase() Phase
	Board() *Board
	TeamState() *TeamState
	// Selectable returns the in-game figures and the ramp figure (nil if none) that may be selected.
	Selectable() (inGame []*Figure, ramp *Figure)
	Highlight(f *Figure)
	ConfirmFigure(f *Figure)
	DiceLeft()
	DiceRight()
	DiceConfirm()
	After(d time.Duration, fn func())
}

// HumanController turns left/right/confirm input into figure selection and dice
// menu navigation.
type HumanController struct {
	options []*Figure
	cursor  int
}

func NewHumanController() *HumanController {
	return &HumanController{}
}

func (h *HumanController) SelectFigure(p Port) {
	inGame, ramp := p.Selectable()
	h.options = inGame
	if ramp != nil {
		h.options = append(h.options, ramp)
	}
	h.cursor = 0
	if len(h.options) == 0 {
		return
	}
	p.Highlight(h.options[0])
}

// ResolveDice waits for input.
func (h *HumanController) ResolveDice(Port) {}

func (h *HumanController) HandleInput(p Port, cmd Command) {
	switch p.Phase() {
	case PhaseFigureSelection:
		if len(h.options) == 0 {
			return
		}
		switch cmd {
		case CmdLeft:
			h.cursor = (h.cursor - 1 + len(h.options)) % len(h.options)
			p.Highlight(h.options[h.cursor])
		case CmdRight:
			h.cursor = (h.cursor + 1) % len(h.options)
			p.Highlight(h.options[h.cursor])
		case CmdConfirm:
			p.ConfirmFigure(h.options[h.cursor])
		}
	case PhaseDiceRoll:
		switch cmd {
		case CmdLeft:
			p.DiceLeft()
		case CmdRight:
			p.DiceRight()
		case CmdConfirm:
			p.DiceConfirm()
		}
	}
}

// AIController picks figures with the evaluator and drives the dice through the
// same inputs a player would use, paced by the brain's delays.
type AIController struct {
	brain  Brain
	rng    *rand.Rand
	chosen Evaluation
}

func NewAIController(brain Brain, rng *rand.Rand) *AIController {
	return &AIController{brain: brain, rng: rng}
}

func (c *AIController) SelectFigure(p Port) {
	inGame, ramp := p.Selectable()
	ev, ok := choose(p.Board(), p.TeamState(), inGame, ramp, c.brain, c.rng)
	if !ok {
		return
	}
	c.chosen = ev
	p.ConfirmFigure(ev.Figure)
}

func (c *AIController) ResolveDice(p Port) {
	if !p.TeamState().SuperDiceReady() {
		p.After(c.brain.DiceStopDelay, p.DiceConfirm)
		return
	}

	if c.chosen.Score <= c.brain.LowPriorityScore {
		// keep regular dice selected, then stop it
		p.DiceConfirm()
		p.After(c.brain.DiceStopDelay, p.DiceConfirm)
		return
	}

	p.DiceRight()
	p.DiceConfirm()
	target := MaxDiceValue
	if c.chosen.Score >= 1 && c.chosen.NeededSteps > 0 {
		target = c.chosen.NeededSteps
	}
	c.stepDice(p, target-1)
}

// stepDice presses right the remaining number of times, then confirms.
func (c *AIController) stepDice(p Port, remaining int) {
	if remaining <= 0 {
		p.DiceConfirm()
		return
	}
	p.DiceRight()
	p.After(c.brain.SuperDiceStepDelay, func() {
		c.stepDice(p, remaining-1)
	})
}

func (c *AIController) HandleInput(Port, Command) {}

// Chosen returns the evaluation behind the last selection.
func (c *AIController) Chosen() Evaluation { return c.chosen }
