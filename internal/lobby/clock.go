package lobby

import "time"

// lobbyClock is the real-time engine.Scheduler of one game. Callbacks are
// posted back to the lobby inbox, tagged with the epoch of their game.
type lobbyClock struct {
	l     *Lobby
	epoch int
}

func (c *lobbyClock) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		select {
		case c.l.inbox <- timerFired{epoch: c.epoch, fn: fn}:
		case <-c.l.ctx.Done():
		}
	})
}
