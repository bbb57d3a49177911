package gen

import "math"

// 2D simplex noise over a seeded permutation. Samples lie in [-1, 1].

const (
	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
)

// Eight unit-ish gradients; the diagonal ones match the classic 2D table.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Noise is a seeded 2D simplex noise source.
type Noise struct {
	perm [512]uint8
}

// NewNoise shuffles the permutation table with a splitmix64 stream of seed.
func NewNoise(seed int64) *Noise {
	n := &Noise{}
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	state := uint64(seed)
	for i := 255; i > 0; i-- {
		state += 0x9e3779b97f4a7c15
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		j := int(z % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// At samples the noise at (x, y).
func (n *Noise) At(x, y float64) float64 {
	s := (x + y) * skew2
	i := int(math.Floor(x + s))
	j := int(math.Floor(y + s))

	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Lower or upper triangle of the skewed cell.
	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	ii := i & 255
	jj := j & 255
	return 70 * (n.corner(ii, jj, x0, y0) +
		n.corner(ii+i1, jj+j1, x0-float64(i1)+unskew2, y0-float64(j1)+unskew2) +
		n.corner(ii+1, jj+1, x0-1+2*unskew2, y0-1+2*unskew2))
}

func (n *Noise) corner(i, j int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	g := grad2[n.perm[i+int(n.perm[j])]&7]
	t *= t
	return t * t * (g[0]*x + g[1]*y)
}

// Field is fractal noise addressed by block coordinates.
type Field struct {
	noise       *Noise
	scale       float64 // blocks per unit of the first octave
	octaves     int
	persistence float64
}

func NewField(seed int64, scale float64, octaves int, persistence float64) Field {
	return Field{noise: NewNoise(seed), scale: scale, octaves: max(octaves, 1), persistence: persistence}
}

// At returns the normalized sum of the octaves at block (bx, bz), in [-1, 1].
func (f Field) At(bx, bz int) float64 {
	x := float64(bx) / f.scale
	z := float64(bz) / f.scale
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for range f.octaves {
		sum += f.noise.At(x*freq, z*freq) * amp
		norm += amp
		amp *= f.persistence
		freq *= 2
	}
	return sum / norm
}

// Unit returns At mapped into [0, 1].
func (f Field) Unit(bx, bz int) float64 {
	return f.At(bx, bz)*0.5 + 0.5
}
