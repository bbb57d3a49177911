package gen

import (
	"github.com/OCharnyshevich/oregen/internal/server/config"
	terrain "github.com/OCharnyshevich/oregen/internal/server/world/gen"
	"github.com/OCharnyshevich/oregen/pkg/ore"
)

// Accessor is the block access the engine needs from the host world.
type Accessor interface {
	BlockAt(x, y, z int) (int, error)
	SetBlock(x, y, z, id, meta int) error
}

// Placement is the outcome of one placement attempt.
type Placement int

const (
	Blocked Placement = iota
	Placed
	OutOfBounds
)

func (p Placement) String() string {
	switch p {
	case Placed:
		return "placed"
	case OutOfBounds:
		return "out of bounds"
	default:
		return "blocked"
	}
}

// Matcher picks the ore to put over a block. It is either AnyOre or SpecificOre.
type Matcher interface {
	match(blockID, y int) (*ore.Type, bool)
}

// AnyOre places the first registered ore that may replace the block.
type AnyOre struct{ Registry *ore.Registry }

func (m AnyOre) match(blockID, y int) (*ore.Type, bool) {
	return m.Registry.ForBlock(blockID, y)
}

// SpecificOre places only Ore.
type SpecificOre struct{ Ore *ore.Type }

func (m SpecificOre) match(blockID, y int) (*ore.Type, bool) {
	if m.Ore.CanPlaceAt(blockID, y) {
		return m.Ore, true
	}
	return nil, false
}

// Grow runs one vein random walk from (x, y, z) and returns the number of
// ore blocks placed. It makes at most 3*size attempts and stops after size
// placements. Blocks outside the world's Y bounds or outside chunk are
// never touched.
func Grow(a Accessor, rng Rand, m Matcher, chunk terrain.ChunkPos, x, y, z, size int) int {
	placed := 0
	for attempt := 0; attempt < size*3 && placed < size; attempt++ {
		if tryPlace(a, m, chunk, x, y, z) == Placed {
			placed++
		}

		// Horizontal steps are twice as likely as vertical ones.
		switch rng.IntN(10) {
		case 0, 1:
			x++
		case 2, 3:
			x--
		case 4:
			y++
		case 5:
			y--
		case 6, 7:
			z++
		case 8, 9:
			z--
		}
	}
	return placed
}

func tryPlace(a Accessor, m Matcher, chunk terrain.ChunkPos, x, y, z int) Placement {
	if y < config.WorldMinY || y > config.WorldMaxY || terrain.ChunkPosOf(x, z) != chunk {
		return OutOfBounds
	}
	return place(a, m, x, y, z)
}

// place swaps the block at (x, y, z) for the matched ore. Accessor
// errors are attempt failures, never returned.
func place(a Accessor, m Matcher, x, y, z int) Placement {
	id, err := a.BlockAt(x, y, z)
	if err != nil {
		return OutOfBounds
	}
	t, ok := m.match(id, y)
	if !ok {
		return Blocked
	}
	if err := a.SetBlock(x, y, z, t.Block().ID, 0); err != nil {
		return Blocked
	}
	return Placed
}
