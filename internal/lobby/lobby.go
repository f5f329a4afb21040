package lobby

import (
	"context"
	"fmt"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"go.uber.org/zap"
)

type Msg interface{ isLobbyMsg() }

// Input is a command from the player seated at Team.
type Input struct {
	Team engine.Team
	Cmd  engine.Command
}

func (Input) isLobbyMsg() {}

// Restart throws the running game away and sets up a new one.
type Restart struct{}

func (Restart) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

// timerFired carries a scheduled game callback back onto the lobby goroutine.
type timerFired struct {
	epoch int
	fn    func()
}

func (timerFired) isLobbyMsg() {}

// Snapshot is what clients receive: the game state plus the events that led to it.
type Snapshot struct {
	Version int
	State   engine.Snapshot
	Events  []engine.Event
}

type View struct {
	Version    int
	NumClients int
	Epoch      int
	State      engine.Snapshot
}

// Lobby owns one game. Every game call, including timers and motion ticks,
// runs on the lobby goroutine.
type Lobby struct {
	inbox   chan Msg
	factory Factory
	game    *engine.Game
	events  *engine.EventLog
	version int
	epoch   int
	clients map[string]chan Snapshot
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, factory Factory, log *zap.Logger) (*Lobby, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		inbox:   make(chan Msg, 64),
		factory: factory,
		events:  &engine.EventLog{},
		clients: make(map[string]chan Snapshot),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	if err := l.newGame(); err != nil {
		cancel()
		return nil, err
	}
	l.events.Drain()

	go l.loop()
	return l, nil
}

// newGame replaces the current game. Timers of the old game die with its epoch.
func (l *Lobby) newGame() error {
	l.epoch++
	l.events.Drain()
	g, err := l.factory(&lobbyClock{l: l, epoch: l.epoch}, l.events)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	l.game = g
	return nil
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- l.snapshot(nil)
				l.log.Debug("client joined", zap.String("client", msg.ClientID))

			case Leave:
				delete(l.clients, msg.ClientID)
				l.log.Debug("client left", zap.String("client", msg.ClientID))

			case Input:
				l.game.Input(msg.Team, msg.Cmd)
				l.publish()

			case timerFired:
				if msg.epoch != l.epoch {
					break
				}
				msg.fn()
				l.publish()

			case Restart:
				if err := l.newGame(); err != nil {
					l.log.Error("restart failed", zap.Error(err))
					break
				}
				l.log.Info("game restarted", zap.Int("epoch", l.epoch))
				l.version++
				l.broadcast(l.snapshot(l.events.Drain()))

			case GetState:
				// test-only: reflect internal state without data races
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					Epoch:      l.epoch,
					State:      l.game.Snapshot(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// publish broadcasts a new version if the game produced events.
func (l *Lobby) publish() {
	events := l.events.Drain()
	if len(events) == 0 {
		return
	}
	l.version++
	l.broadcast(l.snapshot(events))
}

func (l *Lobby) snapshot(events []engine.Event) Snapshot {
	return Snapshot{Version: l.version, State: l.game.Snapshot(), Events: events}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.epoch++
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
			l.log.Warn("dropped slow client", zap.String("client", id))
		}
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Done is closed once the lobby stopped.
func (l *Lobby) Done() <-chan struct{} { return l.ctx.Done() }
