package engine

import "fmt"

type TileType string

const (
	TileStandard  TileType = "standard"
	TileSpikes    TileType = "spikes"
	TileTurnAgain TileType = "turn_again"
	TileFinalSpot TileType = "final_spot"
)

// FinalSpot is a team's terminal slot reached through a final-spot tile.
type FinalSpot struct {
	Team       Team
	PathLength int
	Occupied   bool
}

type Tile struct {
	Index     int
	Type      TileType
	Occupant  *Figure
	FinalSpot *FinalSpot // set only for TileFinalSpot
}

// Ramp holds a team's figures in exit order. Slots never change; a figure sits on
// the ramp whenever its state is FigureOnRamp.
type Ramp struct {
	Team       Team
	PathLength int
	slots      []*Figure
}

// First returns the ON_RAMP figure closest to the ramp exit, or nil.
func (r *Ramp) First() *Figure {
	for _, f := range r.slots {
		if f.state == FigureOnRamp && !f.dead {
			return f
		}
	}
	return nil
}

func (r *Ramp) Count() int {
	n := 0
	for _, f := range r.slots {
		if f.state == FigureOnRamp && !f.dead {
			n++
		}
	}
	return n
}

type Board struct {
	tiles []*Tile
	entry map[Team]int
	ramps map[Team]*Ramp
}

func NewBoard(s Setup) *Board {
	b := &Board{
		tiles: make([]*Tile, len(s.Tiles)),
		entry: map[Team]int{},
		ramps: map[Team]*Ramp{},
	}
	for i, tt := range s.Tiles {
		t := &Tile{Index: i, Type: tt}
		if tt == TileFinalSpot {
			fs := s.FinalSpots[i]
			t.FinalSpot = &FinalSpot{Team: fs.Team, PathLength: fs.PathLength}
		}
		b.tiles[i] = t
	}
	for team, idx := range s.Entry {
		b.entry[team] = idx
		b.ramps[team] = &Ramp{Team: team, PathLength: s.RampPathLength}
	}
	return b
}

func (b *Board) Size() int { return len(b.tiles) }

// Normalize maps any integer onto the ring [0, Size()).
func (b *Board) Normalize(i int) int {
	n := len(b.tiles)
	return ((i % n) + n) % n
}

// Tile panics on an out-of-range index; callers normalize first.
func (b *Board) Tile(i int) *Tile {
	if i < 0 || i >= len(b.tiles) {
		panic(fmt.Sprintf("engine: tile index %d out of range [0,%d)", i, len(b.tiles)))
	}
	return b.tiles[i]
}

func (b *Board) Next(i int) *Tile {
	return b.Tile(b.Normalize(i + 1))
}

func (b *Board) EntryIndex(t Team) int {
	idx, ok := b.entry[t]
	if !ok {
		panic(fmt.Sprintf("engine: no entry tile for team %q", t))
	}
	return idx
}

func (b *Board) Ramp(t Team) *Ramp {
	r, ok := b.ramps[t]
	if !ok {
		panic(fmt.Sprintf("engine: no ramp for team %q", t))
	}
	return r
}

// Occupy places f on tile i. A tile holds at most one figure.
func (b *Board) Occupy(i int, f *Figure) {
	t := b.Tile(i)
	if t.Occupant != nil && t.Occupant != f {
		panic(fmt.Sprintf("engine: tile %d already occupied by %s", i, t.Occupant.ID))
	}
	t.Occupant = f
}

func (b *Board) Free(i int) {
	b.Tile(i).Occupant = nil
}

func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}
