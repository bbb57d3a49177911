package gen

import (
	"math"

	"github.com/OCharnyshevich/oregen/internal/server/config"
)

// Cluster places a dense blob of ore around (x, y, z), the shape used for
// direct placement from the console. Each of the size steps drifts away
// from the centre and fills a small sphere of radius 1 or 2 with a ragged
// edge. Only the world's Y bounds are enforced; a Cluster may cross chunks.
func Cluster(a Accessor, rng Rand, m Matcher, x, y, z, size int) int {
	placed := 0
	for i := 0; i < size; i++ {
		progress := float64(i) / float64(size)
		a1 := rng.Float64() * 2 * math.Pi
		a2 := rng.Float64() * 2 * math.Pi

		cx := x + int(math.Cos(a1)*progress*2)
		cy := y + int(math.Sin(a1)*math.Cos(a2)*progress*2)
		cz := z + int(math.Sin(a2)*progress*2)

		r := 1 + rng.IntN(2)
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				for dz := -r; dz <= r; dz++ {
					dist := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
					if dist > float64(r)+rng.Float64()*0.5 {
						continue
					}
					by := cy + dy
					if by < config.WorldMinY || by > config.WorldMaxY {
						continue
					}
					if place(a, m, cx+dx, by, cz+dz) == Placed {
						placed++
					}
				}
			}
		}
	}
	return placed
}
