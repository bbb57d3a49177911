package config

import "math"

// World and chunk geometry the generation settings are clamped against.
const (
	WorldMinY  = 1
	WorldMaxY  = 310
	ChunkSize  = 32
	ChunkShift = 5

	MinVeinsPerChunk = 1
	MaxVeinsPerChunk = 80
	MinVeinSize      = 1
	MaxVeinSize      = 100
)

// Generation is the resolved, clamped view of OreConfig. It is derived on
// every read and never written back.
type Generation struct {
	MinY          int
	MaxY          int
	VeinsPerChunk int
	MinVeinSize   int
	MaxVeinSize   int
	SpawnChance   float64
	Natural       bool
	Custom        []CustomGeneration
}

// CustomGeneration is the resolved view of one CustomOre.
type CustomGeneration struct {
	OreName        string
	ReplacesBlocks []string
	MinY           int
	MaxY           int
	VeinsPerChunk  int
	SpawnChance    float64
	MinVeinSize    int
	MaxVeinSize    int
}

// Generation clamps every stored value into its legal range.
func (o OreConfig) Generation() Generation {
	minY, maxY := ClampYRange(o.MinY, o.MaxY)
	minSize, maxSize := ClampVeinSizes(o.MinVeinSize, o.MaxVeinSize)
	g := Generation{
		MinY:          minY,
		MaxY:          maxY,
		VeinsPerChunk: ClampVeinsPerChunk(o.VeinsPerChunk),
		MinVeinSize:   minSize,
		MaxVeinSize:   maxSize,
		SpawnChance:   ClampChance(o.SpawnChance),
		Natural:       o.EnableNaturalGeneration,
	}
	if len(o.CustomOres) > 0 {
		g.Custom = make([]CustomGeneration, 0, len(o.CustomOres))
		for _, c := range o.CustomOres {
			g.Custom = append(g.Custom, c.Generation())
		}
	}
	return g
}

func (c CustomOre) Generation() CustomGeneration {
	minY, maxY := ClampYRange(c.MinY, c.MaxY)
	minSize, maxSize := ClampVeinSizes(c.MinVeinSize, c.MaxVeinSize)
	return CustomGeneration{
		OreName:        c.OreName,
		ReplacesBlocks: append([]string(nil), c.ReplacesBlocks...),
		MinY:           minY,
		MaxY:           maxY,
		VeinsPerChunk:  ClampVeinsPerChunk(c.VeinsPerChunk),
		SpawnChance:    ClampChance(c.SpawnChance),
		MinVeinSize:    minSize,
		MaxVeinSize:    maxSize,
	}
}

// ClampYRange returns a range with WorldMinY <= minY < maxY <= WorldMaxY.
// Both bounds are computed from the raw values so a crossed pair never
// drifts further on repeated reads.
func ClampYRange(rawMin, rawMax int) (minY, maxY int) {
	lo := clampInt(rawMin, WorldMinY, WorldMaxY-1)
	hi := clampInt(rawMax, WorldMinY+1, WorldMaxY)
	return min(lo, hi-1), max(hi, lo+1)
}

// ClampVeinSizes returns sizes with MinVeinSize <= minSize <= maxSize <= MaxVeinSize.
func ClampVeinSizes(rawMin, rawMax int) (minSize, maxSize int) {
	lo := clampInt(rawMin, MinVeinSize, MaxVeinSize)
	hi := clampInt(rawMax, MinVeinSize, MaxVeinSize)
	return min(lo, hi), max(lo, hi)
}

func ClampVeinsPerChunk(v int) int {
	return clampInt(v, MinVeinsPerChunk, MaxVeinsPerChunk)
}

// ClampChance maps v into [0, 1]; NaN reads as 0.
func ClampChance(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
