package gen

import (
	"github.com/OCharnyshevich/oregen/pkg/gamedata"
)

const (
	baseHeight   = 96
	soilDepth    = 3
	bedrockDepth = 3
)

// Rock families by temperature (rows) and moisture (columns), from cold/dry
// to hot/wet. Families missing from the palette fall back to Rock_Stone.
//
//	Temp\Wet | Dry (<0.33)    | Medium          | Wet (>0.66)
//	Cold     | Slate          | Shale           | Aqua
//	Mild     | Stone          | Marble          | Quartzite
//	Hot      | Sandstone      | Basalt          | Volcanic
var rockGrid = [3][3]string{
	{"Rock_Slate", "Rock_Shale", "Rock_Aqua"},
	{"Rock_Stone", "Rock_Marble", "Rock_Quartzite"},
	{"Rock_Sandstone", "Rock_Basalt", "Rock_Volcanic"},
}

// StrataGenerator produces rolling terrain whose rock body changes family
// across large regions, so every stone an ore can replace shows up.
type StrataGenerator struct {
	terrain Field
	detail  Field
	temp    Field
	wet     Field
	speckle *Noise

	bedrock, stone, dirt, grass uint16
	rocks                       [3][3]uint16
}

// NewStrataGenerator creates a StrataGenerator from a seed. Bedrock, stone,
// dirt and grass must exist in blocks.
func NewStrataGenerator(seed int64, blocks gamedata.BlockRegistry) (*StrataGenerator, error) {
	g := &StrataGenerator{
		terrain: NewField(seed, 128, 6, 0.5),
		detail:  NewField(seed+1, 32, 3, 0.5),
		temp:    NewField(seed+100, 512, 4, 0.5),
		wet:     NewField(seed+200, 512, 4, 0.5),
		speckle: NewNoise(seed + 1),
	}

	for _, r := range []struct {
		name string
		dst  *uint16
	}{
		{"Rock_Bedrock", &g.bedrock},
		{"Rock_Stone", &g.stone},
		{"Soil_Dirt", &g.dirt},
		{"Soil_Grass", &g.grass},
	} {
		s, err := resolve(blocks, r.name)
		if err != nil {
			return nil, err
		}
		*r.dst = s
	}

	for i, row := range rockGrid {
		for j, name := range row {
			s, err := resolve(blocks, name)
			if err != nil {
				s = g.stone
			}
			g.rocks[i][j] = s
		}
	}
	return g, nil
}

func (g *StrataGenerator) Generate(chunkX, chunkZ int) *ChunkData {
	c := &ChunkData{}
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			bx := chunkX*ChunkSize + x
			bz := chunkZ*ChunkSize + z
			g.fillColumn(c, x, z, bx, bz, g.HeightAt(bx, bz), g.RockAt(bx, bz))
		}
	}
	return c
}

// HeightAt returns the y of the top solid block at a world column.
func (g *StrataGenerator) HeightAt(bx, bz int) int {
	h := int(baseHeight + g.terrain.At(bx, bz)*32 + g.detail.At(bx, bz)*4)
	return max(bedrockDepth+soilDepth+1, min(h, ChunkHeight-1))
}

// RockAt returns the rock state that forms the body of the column.
func (g *StrataGenerator) RockAt(bx, bz int) uint16 {
	return g.rocks[band(g.temp.Unit(bx, bz))][band(g.wet.Unit(bx, bz))]
}

func band(v float64) int {
	switch {
	case v < 0.33:
		return 0
	case v < 0.66:
		return 1
	default:
		return 2
	}
}

func (g *StrataGenerator) fillColumn(c *ChunkData, x, z, bx, bz, height int, rock uint16) {
	// y=0 is always bedrock, y=1..3 mix bedrock into the rock.
	c.SetBlock(x, 0, z, g.bedrock)
	for y := 1; y <= bedrockDepth; y++ {
		if g.speckle.At(float64(bx)*0.5, float64(bz+y*7)*0.5) > 0.3 {
			c.SetBlock(x, y, z, g.bedrock)
		} else {
			c.SetBlock(x, y, z, rock)
		}
	}

	stoneTop := height - soilDepth
	c.Fill(x, z, bedrockDepth+1, stoneTop, rock)
	c.Fill(x, z, stoneTop+1, height-1, g.dirt)
	c.SetBlock(x, height, z, g.grass)
}
