package engine

import (
	"container/heap"
	"time"
)

// Scheduler runs fn on the game's control thread once d has elapsed.
// Implementations must never run fn concurrently with other game calls.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Motion is the port to the layer that animates figures along paths. It reports
// back through Game.WaypointReached and Game.MoveComplete.
type Motion interface {
	StartMove(figureID string, path Path, from int)
	ResumeMove(figureID string)
	PauseMove(figureID string)
	StopMove(figureID string)
}

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(*timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	t := old[len(old)-1]
	*q = old[:len(old)-1]
	return t
}

// VirtualClock is a single-threaded Scheduler driven by explicit time advances.
// Callbacks due at the same instant run in scheduling order.
type VirtualClock struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

func (c *VirtualClock) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	c.seq++
	heap.Push(&c.queue, &timer{due: c.now + d, seq: c.seq, fn: fn})
}

func (c *VirtualClock) Now() time.Duration { return c.now }
func (c *VirtualClock) Pending() int       { return c.queue.Len() }

// Step runs the next callback, moving time forward to its due time.
func (c *VirtualClock) Step() bool {
	if c.queue.Len() == 0 {
		return false
	}
	t := heap.Pop(&c.queue).(*timer)
	if t.due > c.now {
		c.now = t.due
	}
	t.fn()
	return true
}

// Advance runs every callback due within d and returns how many ran.
func (c *VirtualClock) Advance(d time.Duration) int {
	end := c.now + d
	ran := 0
	for c.queue.Len() > 0 && c.queue[0].due <= end {
		c.Step()
		ran++
	}
	c.now = end
	return ran
}

// RunUntilIdle steps until nothing is scheduled or limit callbacks ran.
func (c *VirtualClock) RunUntilIdle(limit int) int {
	ran := 0
	for ran < limit && c.Step() {
		ran++
	}
	return ran
}
