// Package ore describes the placeable ore types and the registry the
// generator consults to decide which ore may replace a block.
package ore

import (
	"errors"
	"fmt"
	"slices"

	"github.com/OCharnyshevich/oregen/pkg/gamedata"
)

var (
	ErrNoReplaceable = errors.New("ore replaces no block")
	ErrInvalidRange  = errors.New("invalid ore Y range")
)

// Type is an immutable placeable ore. Registered types are shared by
// every reader of a Registry, so all state is behind accessors.
type Type struct {
	block       gamedata.Block
	name        string
	minY, maxY  int // inclusive
	replaceable map[int]struct{}
}

// NewType builds an ore type. replaceable must contain at least one id and
// minY must be below maxY.
func NewType(block gamedata.Block, name string, replaceable []int, minY, maxY int) (*Type, error) {
	if len(replaceable) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoReplaceable)
	}
	if minY >= maxY {
		return nil, fmt.Errorf("%s: %w [%d,%d]", name, ErrInvalidRange, minY, maxY)
	}
	set := make(map[int]struct{}, len(replaceable))
	for _, id := range replaceable {
		set[id] = struct{}{}
	}
	return &Type{block: block, name: name, minY: minY, maxY: maxY, replaceable: set}, nil
}

// Block is the ore block written into the world.
func (t *Type) Block() gamedata.Block { return t.block }

func (t *Type) Name() string { return t.name }

// MinY and MaxY bound the placement range, both inclusive.
func (t *Type) MinY() int { return t.minY }
func (t *Type) MaxY() int { return t.maxY }

func (t *Type) CanReplace(blockID int) bool {
	_, ok := t.replaceable[blockID]
	return ok
}

func (t *Type) ValidAtY(y int) bool {
	return y >= t.minY && y <= t.maxY
}

func (t *Type) CanPlaceAt(blockID, y int) bool {
	return t.ValidAtY(y) && t.CanReplace(blockID)
}

// Replaceable returns the replaceable block ids in ascending order.
func (t *Type) Replaceable() []int {
	ids := make([]int, 0, len(t.replaceable))
	for id := range t.replaceable {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Registry is an ordered, read-only set of ore types. Order is
// registration order and decides ForBlock matches.
type Registry struct {
	types []*Type
}

// NewRegistry returns ErrNoOres for an empty list.
func NewRegistry(types []*Type) (*Registry, error) {
	if len(types) == 0 {
		return nil, ErrNoOres
	}
	return &Registry{types: slices.Clone(types)}, nil
}

// ByName returns the first ore registered under name.
func (r *Registry) ByName(name string) (*Type, bool) {
	for _, t := range r.types {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}

// ForBlock returns the first registered ore that may replace blockID at y.
func (r *Registry) ForBlock(blockID, y int) (*Type, bool) {
	for _, t := range r.types {
		if t.CanPlaceAt(blockID, y) {
			return t, true
		}
	}
	return nil, false
}

func (r *Registry) All() []*Type {
	return slices.Clone(r.types)
}

func (r *Registry) Len() int {
	return len(r.types)
}
