package gen

// Chunk geometry. Chunks are 32×32 columns, 320 blocks tall, stored in
// 16-block-high sections.
const (
	ChunkSize     = 32
	ChunkShift    = 5
	ChunkHeight   = 320
	SectionHeight = 16
	SectionCount  = ChunkHeight / SectionHeight

	sectionVolume = ChunkSize * ChunkSize * SectionHeight
)

// ChunkPos identifies a chunk by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

// ChunkPosOf returns the chunk containing the world block column (x, z).
func ChunkPosOf(x, z int) ChunkPos {
	return ChunkPos{X: x >> ChunkShift, Z: z >> ChunkShift}
}

// MinBlock returns the world coordinates of the chunk's lowest x/z corner.
func (p ChunkPos) MinBlock() (x, z int) {
	return p.X << ChunkShift, p.Z << ChunkShift
}

// Section holds block data for a 32×16×32 vertical slice of a chunk.
// Index = y*1024 + z*32 + x, value = blockID<<4 | metadata.
type Section struct {
	Blocks [sectionVolume]uint16
}

// ChunkData holds the generated terrain for one chunk column.
type ChunkData struct {
	Sections [SectionCount]*Section // nil = all-empty
}

// Generator produces chunk data deterministically from a seed.
type Generator interface {
	Generate(chunkX, chunkZ int) *ChunkData
	HeightAt(blockX, blockZ int) int
}

// State packs a block id and metadata into a section value.
func State(id, meta int) uint16 {
	return uint16(id<<4 | meta&0xF)
}

// SplitState is the inverse of State.
func SplitState(s uint16) (id, meta int) {
	return int(s >> 4), int(s & 0xF)
}

// InChunk reports whether local coordinates address a block of the chunk.
func InChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && z >= 0 && z < ChunkSize && y >= 0 && y < ChunkHeight
}

// SetBlock sets a block state at the given local coordinates within the chunk.
// x, z must be in [0,32), y must be in [0,320).
func (c *ChunkData) SetBlock(x, y, z int, state uint16) {
	sec := y / SectionHeight
	if c.Sections[sec] == nil {
		if state == 0 {
			return
		}
		c.Sections[sec] = &Section{}
	}
	c.Sections[sec].Blocks[(y%SectionHeight)*ChunkSize*ChunkSize+z*ChunkSize+x] = state
}

// GetBlock returns the block state at the given local coordinates.
func (c *ChunkData) GetBlock(x, y, z int) uint16 {
	sec := y / SectionHeight
	if c.Sections[sec] == nil {
		return 0
	}
	return c.Sections[sec].Blocks[(y%SectionHeight)*ChunkSize*ChunkSize+z*ChunkSize+x]
}

// Fill sets every block of the column (x, z) from y0 to y1 inclusive.
func (c *ChunkData) Fill(x, z, y0, y1 int, state uint16) {
	for y := max(y0, 0); y <= y1 && y < ChunkHeight; y++ {
		c.SetBlock(x, y, z, state)
	}
}
