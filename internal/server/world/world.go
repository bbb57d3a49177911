package world

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/OCharnyshevich/oregen/internal/server/world/gen"
)

var (
	// ErrChunkNotLoaded is returned when a block of an unloaded chunk is accessed.
	ErrChunkNotLoaded = errors.New("chunk not loaded")
	// ErrOutOfBounds is returned for y outside [0, gen.ChunkHeight).
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrOutsideChunk is returned when a ChunkView is asked for a block of another chunk.
	ErrOutsideChunk = errors.New("position outside chunk")
)

// BlockPos represents a block position in the world.
type BlockPos struct {
	X, Y, Z int
}

// World tracks block state with a generator for base terrain and overrides
// for every block written since.
type World struct {
	mu        sync.RWMutex
	blocks    map[BlockPos]uint16
	generator gen.Generator
	chunks    map[gen.ChunkPos]*gen.ChunkData
}

// NewWorld creates a new World with the given generator.
func NewWorld(generator gen.Generator) *World {
	return &World{
		blocks:    make(map[BlockPos]uint16),
		generator: generator,
		chunks:    make(map[gen.ChunkPos]*gen.ChunkData),
	}
}

// LoadChunk makes the chunk available, generating its base terrain if it is
// not in memory. fresh reports whether this call generated it.
func (w *World) LoadChunk(cx, cz int) (fresh bool) {
	pos := gen.ChunkPos{X: cx, Z: cz}

	w.mu.RLock()
	_, ok := w.chunks[pos]
	w.mu.RUnlock()
	if ok {
		return false
	}

	c := w.generator.Generate(cx, cz)

	w.mu.Lock()
	defer w.mu.Unlock()
	// Double-check after acquiring write lock.
	if _, ok := w.chunks[pos]; ok {
		return false
	}
	w.chunks[pos] = c
	return true
}

// LoadRadius loads every chunk within radius of (0, 0) and returns the ones
// this call generated, nearest rings first.
func (w *World) LoadRadius(radius int) []gen.ChunkPos {
	var fresh []gen.ChunkPos
	for r := 0; r <= radius; r++ {
		for cx := -r; cx <= r; cx++ {
			for cz := -r; cz <= r; cz++ {
				if max(abs(cx), abs(cz)) != r {
					continue
				}
				if w.LoadChunk(cx, cz) {
					fresh = append(fresh, gen.ChunkPos{X: cx, Z: cz})
				}
			}
		}
	}
	return fresh
}

// IsLoaded reports whether the chunk is in memory.
func (w *World) IsLoaded(cx, cz int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.chunks[gen.ChunkPos{X: cx, Z: cz}]
	return ok
}

// LoadedChunks returns the loaded chunk positions sorted by X, then Z.
func (w *World) LoadedChunks() []gen.ChunkPos {
	w.mu.RLock()
	out := make([]gen.ChunkPos, 0, len(w.chunks))
	for pos := range w.chunks {
		out = append(out, pos)
	}
	w.mu.RUnlock()

	slices.SortFunc(out, func(a, b gen.ChunkPos) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Z - b.Z
	})
	return out
}

// State returns the block state at the given position.
// Checks overrides first, then falls back to the generated chunk.
func (w *World) State(x, y, z int) (uint16, error) {
	if y < 0 || y >= gen.ChunkHeight {
		return 0, fmt.Errorf("%w: y=%d", ErrOutOfBounds, y)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	pos := gen.ChunkPosOf(x, z)
	c, ok := w.chunks[pos]
	if !ok {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrChunkNotLoaded, pos.X, pos.Z)
	}
	if s, ok := w.blocks[BlockPos{x, y, z}]; ok {
		return s, nil
	}
	return c.GetBlock(x&(gen.ChunkSize-1), y, z&(gen.ChunkSize-1)), nil
}

// BlockAt returns the block id at the given position.
func (w *World) BlockAt(x, y, z int) (int, error) {
	s, err := w.State(x, y, z)
	if err != nil {
		return 0, err
	}
	id, _ := gen.SplitState(s)
	return id, nil
}

// SetBlock stores a block override. Writing the generated base value back
// removes the override.
func (w *World) SetBlock(x, y, z, id, meta int) error {
	if y < 0 || y >= gen.ChunkHeight {
		return fmt.Errorf("%w: y=%d", ErrOutOfBounds, y)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	pos := gen.ChunkPosOf(x, z)
	c, ok := w.chunks[pos]
	if !ok {
		return fmt.Errorf("%w: (%d, %d)", ErrChunkNotLoaded, pos.X, pos.Z)
	}

	state := gen.State(id, meta)
	base := c.GetBlock(x&(gen.ChunkSize-1), y, z&(gen.ChunkSize-1))
	bpos := BlockPos{x, y, z}
	if state == base {
		delete(w.blocks, bpos)
	} else {
		w.blocks[bpos] = state
	}
	return nil
}

// ForEachOverride calls fn for every block override under a read lock.
func (w *World) ForEachOverride(fn func(pos BlockPos, state uint16)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for pos, state := range w.blocks {
		fn(pos, state)
	}
}

// LoadOverrides replaces all overrides, typically with a saved snapshot.
// Chunks do not need to be loaded.
func (w *World) LoadOverrides(overrides map[BlockPos]uint16) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.blocks = make(map[BlockPos]uint16, len(overrides))
	for pos, s := range overrides {
		w.blocks[pos] = s
	}
}

// OverrideCount returns the number of stored overrides.
func (w *World) OverrideCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.blocks)
}

// HeightAt returns the generated surface height of a column.
func (w *World) HeightAt(x, z int) int {
	return w.generator.HeightAt(x, z)
}

// SpawnHeight returns the terrain height at spawn (0, 0) + 1 to stand on.
func (w *World) SpawnHeight() int {
	return w.generator.HeightAt(0, 0) + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
