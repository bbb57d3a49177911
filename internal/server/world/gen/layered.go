package gen

import (
	"fmt"

	"github.com/OCharnyshevich/oregen/pkg/gamedata"
)

// Layer is one horizontal band of a layered world, counted from y=0 upward.
type Layer struct {
	Block  string
	Height int
}

// DefaultLayers is a bedrock floor, a thick stone body and a dirt/grass cap.
// The top solid block is grass at y=64.
var DefaultLayers = []Layer{
	{"Rock_Bedrock", 1},
	{"Rock_Stone", 60},
	{"Soil_Dirt", 3},
	{"Soil_Grass", 1},
}

// LayeredGenerator generates a flat world where every column is the same
// stack of layers.
type LayeredGenerator struct {
	column []uint16
}

// NewLayeredGenerator resolves layers against blocks.
func NewLayeredGenerator(blocks gamedata.BlockRegistry, layers []Layer) (*LayeredGenerator, error) {
	g := &LayeredGenerator{}
	for _, l := range layers {
		if l.Height <= 0 {
			return nil, fmt.Errorf("layer %s: height %d must be positive", l.Block, l.Height)
		}
		s, err := resolve(blocks, l.Block)
		if err != nil {
			return nil, err
		}
		for range l.Height {
			g.column = append(g.column, s)
		}
	}
	if len(g.column) > ChunkHeight {
		return nil, fmt.Errorf("layers are %d blocks tall, chunk height is %d", len(g.column), ChunkHeight)
	}
	return g, nil
}

func (g *LayeredGenerator) Generate(_, _ int) *ChunkData {
	c := &ChunkData{}
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			for y, s := range g.column {
				c.SetBlock(x, y, z, s)
			}
		}
	}
	return c
}

func (g *LayeredGenerator) HeightAt(_, _ int) int {
	return len(g.column) - 1
}
