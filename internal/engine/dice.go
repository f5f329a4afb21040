package engine

import "golang.org/x/exp/rand"

type DiceMode string

const (
	DiceRegular DiceMode = "regular"
	DiceSuper   DiceMode = "super"
)

const MaxDiceValue = 6

type dicePhase int

const (
	diceClosed dicePhase = iota
	diceMenu             // choosing between regular and super dice
	diceRolling          // regular dice rolling, or super dice value being stepped
)

// Dice resolves a movement distance in [1,6]. A regular roll is uniform; a super
// dice value is stepped manually. The mode menu is only offered when super dice is ready.
type Dice struct {
	rng   *rand.Rand
	phase dicePhase
	mode  DiceMode
	value int
}

func NewDice(rng *rand.Rand) *Dice {
	return &Dice{rng: rng, mode: DiceRegular, value: 1}
}

// Open starts a dice interaction. Without a ready super dice the regular dice starts rolling at once.
func (d *Dice) Open(superReady bool) {
	d.mode = DiceRegular
	d.value = 1
	if superReady {
		d.phase = diceMenu
		return
	}
	d.phase = diceRolling
}

func (d *Dice) Mode() DiceMode { return d.mode }
func (d *Dice) Value() int     { return d.value }
func (d *Dice) InMenu() bool   { return d.phase == diceMenu }
func (d *Dice) Active() bool   { return d.phase != diceClosed }

func (d *Dice) Left() bool  { return d.step(-1) }
func (d *Dice) Right() bool { return d.step(1) }

func (d *Dice) step(delta int) bool {
	switch d.phase {
	case diceMenu:
		if d.mode == DiceRegular {
			d.mode = DiceSuper
		} else {
			d.mode = DiceRegular
		}
		return true
	case diceRolling:
		if d.mode != DiceSuper {
			return false
		}
		d.value = (d.value-1+delta+MaxDiceValue)%MaxDiceValue + 1
		return true
	default:
		return false
	}
}

// Confirm closes the menu, or produces the final value. done is false while
// only the mode was confirmed.
func (d *Dice) Confirm() (value int, done bool) {
	switch d.phase {
	case diceMenu:
		d.phase = diceRolling
		return 0, false
	case diceRolling:
		if d.mode == DiceRegular {
			d.value = d.Roll()
		}
		d.phase = diceClosed
		return d.value, true
	default:
		return 0, false
	}
}

func (d *Dice) Roll() int {
	return d.rng.Intn(MaxDiceValue) + 1
}
