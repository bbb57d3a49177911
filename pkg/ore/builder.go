package ore

import (
	"errors"
	"log/slog"

	"github.com/OCharnyshevich/oregen/pkg/gamedata"
)

// ErrNoOres means no ore survived resolution; generation is unavailable.
var ErrNoOres = errors.New("no valid ore types")

// Resolver maps block names to block types of the host.
type Resolver interface {
	ByName(name string) (gamedata.Block, bool)
}

// Spec is a configuration-level ore description, resolved by Build.
type Spec struct {
	Name     string
	Replaces []string
	MinY     int
	MaxY     int
	Custom   bool
}

// coalStones lists the built-in coal ores and the stones each one replaces.
var coalStones = []struct {
	ore    string
	stones []string
}{
	{"Ore_Coal_Stone", []string{"Rock_Stone", "Rock_Stone_Cobble", "Rock_Stone_Mossy", "Soil_Mud_Dry"}},
	{"Ore_Coal_Volcanic", []string{"Rock_Volcanic_Cracked_Lava", "Rock_Volcanic"}},
	{"Ore_Coal_Slate", []string{"Rock_Slate", "Rock_Slate_Cobble"}},
	{"Ore_Coal_Shale", []string{"Rock_Shale", "Rock_Shale_Cobble"}},
	{"Ore_Coal_Sandstone", []string{"Rock_Sandstone", "Rock_Sandstone_Cobble"}},
	{"Ore_Coal_Quartzite", []string{"Rock_Quartzite", "Rock_Quartzite_Cobble"}},
	{"Ore_Coal_Marble", []string{"Rock_Marble", "Rock_Marble_Cobble"}},
	{"Ore_Coal_Basalt", []string{"Rock_Basalt", "Rock_Basalt_Cobble"}},
	{"Ore_Coal_Aqua", []string{"Rock_Aqua", "Rock_Aqua_Cobble"}},
}

// CoalSpecs returns the built-in coal ores over the global Y range.
func CoalSpecs(minY, maxY int) []Spec {
	specs := make([]Spec, 0, len(coalStones))
	for _, c := range coalStones {
		specs = append(specs, Spec{
			Name:     c.ore,
			Replaces: append([]string(nil), c.stones...),
			MinY:     minY,
			MaxY:     maxY,
		})
	}
	return specs
}

// Build resolves specs in order. An ore whose block is unknown, or that
// resolves to no replaceable block, is skipped with a warning. Build
// returns ErrNoOres when nothing survives.
func Build(specs []Spec, res Resolver, log *slog.Logger) (*Registry, error) {
	types := make([]*Type, 0, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			continue
		}
		kind := "ore"
		if s.Custom {
			kind = "custom ore"
		}

		block, ok := res.ByName(s.Name)
		if !ok {
			log.Warn(kind+" block type not found, skipping", "ore", s.Name)
			continue
		}

		ids := make([]int, 0, len(s.Replaces))
		for _, stone := range s.Replaces {
			if b, ok := res.ByName(stone); ok {
				ids = append(ids, b.ID)
			}
		}
		if len(ids) == 0 {
			log.Warn("no valid stone types for "+kind+", skipping", "ore", s.Name)
			continue
		}

		t, err := NewType(block, s.Name, ids, s.MinY, s.MaxY)
		if err != nil {
			log.Warn("invalid "+kind+", skipping", "ore", s.Name, "error", err)
			continue
		}
		types = append(types, t)
		log.Info("registered "+kind, "ore", s.Name, "replaces", len(t.replaceable),
			"minY", s.MinY, "maxY", s.MaxY)
	}

	if len(types) == 0 {
		return nil, ErrNoOres
	}
	return &Registry{types: types}, nil
}
