package world

import (
	"fmt"

	"github.com/OCharnyshevich/oregen/internal/server/world/gen"
)

// ChunkView is block access restricted to one chunk.
type ChunkView struct {
	w   *World
	pos gen.ChunkPos
}

// Chunk returns a view of the chunk at pos. The chunk does not have to be
// loaded yet; accesses fail with ErrChunkNotLoaded until it is.
func (w *World) Chunk(pos gen.ChunkPos) ChunkView {
	return ChunkView{w: w, pos: pos}
}

func (v ChunkView) Pos() gen.ChunkPos { return v.pos }

func (v ChunkView) contains(x, z int) error {
	if gen.ChunkPosOf(x, z) != v.pos {
		return fmt.Errorf("%w: (%d, %d) not in chunk (%d, %d)", ErrOutsideChunk, x, z, v.pos.X, v.pos.Z)
	}
	return nil
}

func (v ChunkView) BlockAt(x, y, z int) (int, error) {
	if err := v.contains(x, z); err != nil {
		return 0, err
	}
	return v.w.BlockAt(x, y, z)
}

func (v ChunkView) SetBlock(x, y, z, id, meta int) error {
	if err := v.contains(x, z); err != nil {
		return err
	}
	return v.w.SetBlock(x, y, z, id, meta)
}
