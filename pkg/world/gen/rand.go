package gen

// Rand is the random source generation draws from. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// ChunkSeed derives the per-chunk seed. Multiplication wraps.
func ChunkSeed(cx, cz int) int64 {
	return int64(cx)*341873128712 + int64(cz)*132897987541
}

// ChunkRand is a small deterministic LCG for per-chunk generation.
type ChunkRand struct {
	state uint64
}

func NewChunkRand(seed int64) *ChunkRand {
	return &ChunkRand{state: uint64(seed)}
}

func (r *ChunkRand) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (r *ChunkRand) IntN(n int) int {
	if n <= 0 {
		panic("invalid argument to IntN")
	}
	return int((r.next() >> 33) % uint64(n))
}

// Float64 returns a value in [0, 1).
func (r *ChunkRand) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}
