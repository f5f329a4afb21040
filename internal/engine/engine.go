package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidSetup = errors.New("invalid setup")
var ErrUnknownTeam = errors.New("unknown team")
var ErrUnknownFigure = errors.New("unknown figure")

type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Teams lists every team in seating order.
var Teams = []Team{TeamRed, TeamBlue}

func (t Team) Valid() bool {
	return t == TeamRed || t == TeamBlue
}

func (t Team) Other() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

func ParseTeam(s string) (Team, error) {
	switch Team(s) {
	case TeamRed, TeamBlue:
		return Team(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTeam, s)
	}
}

type Phase string

const (
	PhaseGameStart       Phase = "game_start"
	PhaseRoundStart      Phase = "round_start"
	PhaseFigureSelection Phase = "figure_selection"
	PhaseDiceRoll        Phase = "dice_roll"
	PhaseFigureMovement  Phase = "figure_movement"
	PhaseRoundEnd        Phase = "round_end"
	PhaseGameOver        Phase = "game_over"
)

type Command string

const (
	CmdLeft    Command = "left"
	CmdRight   Command = "right"
	CmdConfirm Command = "confirm"
)

func ParseCommand(s string) (Command, bool) {
	switch Command(s) {
	case CmdLeft, CmdRight, CmdConfirm:
		return Command(s), true
	default:
		return "", false
	}
}

type EventType string

/*
	Begin            -> EvtGameStarted -> EvtRoundStarted -> EvtSuperDiceCharged
	Figure selection -> EvtFigureHighlighted* -> EvtFigureSelected
	Dice             -> EvtDiceOpened -> EvtDiceModeChanged* / EvtDiceValueChanged* -> EvtDiceRolled
	Movement         -> EvtFigureMoving -> EvtWaypointReached* (EvtFigureJumped | EvtFigureAttacked + EvtFigureDied)
	Landing          -> EvtTurnAgain | EvtFigureDied ... EvtFigureRespawned | EvtFigureFinished -> EvtFinishedCountChanged
	Round end        -> EvtGameOver when a team has all of its figures in its final spots
*/

const (
	EvtGameStarted          EventType = "GameStarted"
	EvtRoundStarted         EventType = "RoundStarted"
	EvtSuperDiceCharged     EventType = "SuperDiceCharged"
	EvtFigureHighlighted    EventType = "FigureHighlighted"
	EvtFigureSelected       EventType = "FigureSelected"
	EvtDiceOpened           EventType = "DiceOpened"
	EvtDiceModeChanged      EventType = "DiceModeChanged"
	EvtDiceValueChanged     EventType = "DiceValueChanged"
	EvtDiceRolled           EventType = "DiceRolled"
	EvtFigureMoving         EventType = "FigureMoving"
	EvtWaypointReached      EventType = "WaypointReached"
	EvtFigureJumped         EventType = "FigureJumped"
	EvtFigureAttacked       EventType = "FigureAttacked"
	EvtFigureDied           EventType = "FigureDied"
	EvtFigureRespawned      EventType = "FigureRespawned"
	EvtFigureFinished       EventType = "FigureFinished"
	EvtTurnAgain            EventType = "TurnAgain"
	EvtFinishedCountChanged EventType = "FinishedCountChanged"
	EvtGameOver             EventType = "GameOver"
)

type Event struct {
	Type   EventType `json:"type"`
	Team   Team      `json:"team,omitempty"`
	Figure string    `json:"figure,omitempty"`
	Round  int       `json:"round,omitempty"`
	Value  int       `json:"value,omitempty"`
	Ready  bool      `json:"ready,omitempty"`
	Dice   DiceMode  `json:"dice,omitempty"`
}

// Observer is the presentation port. It receives every event the game produces, in order.
type Observer interface {
	Notify(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

type nopObserver struct{}

func (nopObserver) Notify(Event) {}
