package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Palette is an immutable BlockRegistry built from a block list.
type Palette struct {
	blocks []Block
	byID   map[int]int
	byName map[string]int
}

// NewPalette indexes blocks. Duplicate ids or names and negative ids are rejected.
func NewPalette(blocks []Block) (*Palette, error) {
	p := &Palette{
		blocks: slices.Clone(blocks),
		byID:   make(map[int]int, len(blocks)),
		byName: make(map[string]int, len(blocks)),
	}
	for i, b := range p.blocks {
		if b.ID < 0 || b.ID > MaxBlockID {
			return nil, fmt.Errorf("block %q: id %d out of range [0,%d]", b.Name, b.ID, MaxBlockID)
		}
		if b.Name == "" {
			return nil, fmt.Errorf("block %d: empty name", b.ID)
		}
		if _, dup := p.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate block id %d", b.ID)
		}
		if _, dup := p.byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate block name %q", b.Name)
		}
		p.byID[b.ID] = i
		p.byName[b.Name] = i
	}
	return p, nil
}

// MaxBlockID is the largest id that fits a 12-bit block state.
const MaxBlockID = 1<<12 - 1

// LoadPalette reads a minecraft-data style blocks.json array.
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parse palette %s: %w", path, err)
	}
	p, err := NewPalette(blocks)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

func (p *Palette) ByID(id int) (Block, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Block{}, false
	}
	return p.blocks[i], true
}

func (p *Palette) ByName(name string) (Block, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Block{}, false
	}
	return p.blocks[i], true
}

func (p *Palette) All() []Block {
	return slices.Clone(p.blocks)
}

// MustID returns the id of name and panics if it is unknown. Only meant
// for palettes whose contents are fixed at compile time.
func (p *Palette) MustID(name string) int {
	b, ok := p.ByName(name)
	if !ok {
		panic("gamedata: unknown block " + name)
	}
	return b.ID
}
