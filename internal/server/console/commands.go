package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/oregen/internal/server/world/gen"
	"github.com/OCharnyshevich/oregen/pkg/ore"
)

type command struct {
	name    string
	usage   string
	desc    string
	handler func(c *Console, s *Session, args []string)
}

var commands []command

func init() {
	commands = []command{
		{name: "help", usage: "help", desc: "Show available commands", handler: cmdHelp},
		{name: "spawn", usage: "spawn [size]", desc: "Spawn an ore vein two blocks below your position (size 1-20)", handler: cmdSpawn},
		{name: "generate", usage: "generate [radius] [count]", desc: "Generate ore veins at random points around you", handler: cmdGenerate},
		{name: "fill", usage: "fill [radius]", desc: "Fill the underground around you with ore veins", handler: cmdFill},
		{name: "reload", usage: "reload", desc: "Reload the config file and rebuild the ore registry", handler: cmdReload},
		{name: "tp", usage: "tp <x> <y> <z>", desc: "Move to block coordinates", handler: cmdTp},
		{name: "pos", usage: "pos", desc: "Show your position", handler: cmdPos},
		{name: "ores", usage: "ores", desc: "List registered ores", handler: cmdOres},
		{name: "stats", usage: "stats", desc: "Show generation totals", handler: cmdStats},
		{name: "save", usage: "save", desc: "Save world overrides", handler: cmdSave},
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// intArgs parses optional integer arguments, keeping defaults for missing ones.
func intArgs(args []string, defaults ...int) ([]int, error) {
	if len(args) > len(defaults) {
		return nil, errors.New("too many arguments")
	}
	out := slices.Clone(defaults)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out[i] = v
	}
	return out, nil
}

// spawnAt loads the area a cluster can reach and places it under the world lock.
func (c *Console) spawnAt(x, y, z, size int) (int, error) {
	const reach = 5 // centre drift plus cluster radius
	c.Loader.EnsureLoaded(x-reach, z-reach, x+reach, z+reach)
	return c.Engine.SpawnCluster(c.World, c.Rand, x, y, z, size)
}

func cmdHelp(_ *Console, s *Session, _ []string) {
	s.printf("--- Available Commands ---")
	for _, cmd := range commands {
		s.printf("%s - %s", cmd.usage, cmd.desc)
	}
}

func cmdSpawn(c *Console, s *Session, args []string) {
	v, err := intArgs(args, 8)
	if err != nil {
		s.errorf("Usage: spawn [size] (%v)", err)
		return
	}
	size := clamp(v[0], 1, 20)
	x, y, z := s.X, s.Y-2, s.Z

	c.Lock.Lock()
	placed, err := c.spawnAt(x, y, z, size)
	c.Lock.Unlock()
	if err != nil {
		s.errorf("Ore generation is unavailable: %v", err)
		return
	}
	s.printf("Spawned ore vein with %d blocks at (%d, %d, %d)", placed, x, y, z)
}

func cmdGenerate(c *Console, s *Session, args []string) {
	v, err := intArgs(args, 32, 10)
	if err != nil {
		s.errorf("Usage: generate [radius] [count] (%v)", err)
		return
	}
	radius := clamp(v[0], 1, 128)
	count := clamp(v[1], 1, 100)
	s.printf("Generating %d ore veins in radius %d...", count, radius)

	c.Lock.Lock()
	defer c.Lock.Unlock()

	total, veins := 0, 0
	for range count {
		x := s.X + c.Rand.IntN(radius*2) - radius
		z := s.Z + c.Rand.IntN(radius*2) - radius
		y := 10 + c.Rand.IntN(50)
		size := 4 + c.Rand.IntN(9)

		placed, err := c.spawnAt(x, y, z, size)
		if err != nil {
			s.errorf("Ore generation is unavailable: %v", err)
			return
		}
		if placed > 0 {
			total += placed
			veins++
		}
	}
	s.printf("Generated %d veins with %d total ore blocks!", veins, total)
}

func cmdFill(c *Console, s *Session, args []string) {
	v, err := intArgs(args, 16)
	if err != nil {
		s.errorf("Usage: fill [radius] (%v)", err)
		return
	}
	radius := clamp(v[0], 1, 64)
	s.printf("Filling area with ore (radius %d)...", radius)

	const spacing = 8

	c.Lock.Lock()
	defer c.Lock.Unlock()

	total, veins := 0, 0
	for x := s.X - radius; x <= s.X+radius; x += spacing {
		for z := s.Z - radius; z <= s.Z+radius; z += spacing {
			for yBase := 15; yBase <= 55; yBase += 15 {
				vx := x + c.Rand.IntN(spacing) - spacing/2
				vz := z + c.Rand.IntN(spacing) - spacing/2
				vy := yBase + c.Rand.IntN(10) - 5
				size := 5 + c.Rand.IntN(6)

				placed, err := c.spawnAt(vx, vy, vz, size)
				if err != nil {
					s.errorf("Ore generation is unavailable: %v", err)
					return
				}
				if placed > 0 {
					total += placed
					veins++
				}
			}
		}
	}
	s.printf("Created %d veins with %d total ore blocks!", veins, total)
}

func cmdReload(c *Console, s *Session, _ []string) {
	c.Lock.Lock()
	err := c.Engine.Reload()
	c.Lock.Unlock()
	if err != nil {
		s.errorf("Reload failed, keeping previous config: %v", err)
		return
	}

	g := c.Settings.Generation()
	s.printf("Config reloaded!")
	s.printf("  Y range: %d to %d", g.MinY, g.MaxY)
	s.printf("  Veins/chunk: %d (size %d-%d)", g.VeinsPerChunk, g.MinVeinSize, g.MaxVeinSize)
	s.printf("  Spawn chance: %.0f%%", g.SpawnChance*100)
	s.printf("  Natural generation: %t, custom ores: %d", g.Natural, len(g.Custom))
}

func cmdTp(_ *Console, s *Session, args []string) {
	if len(args) != 3 {
		s.errorf("Usage: tp <x> <y> <z>")
		return
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	z, errZ := strconv.Atoi(args[2])
	if errX != nil || errY != nil || errZ != nil {
		s.errorf("Usage: tp <x> <y> <z> (integers)")
		return
	}
	s.X, s.Y, s.Z = x, y, z
	s.printf("Teleported to %d, %d, %d.", x, y, z)
}

func cmdPos(_ *Console, s *Session, _ []string) {
	p := gen.ChunkPosOf(s.X, s.Z)
	s.printf("Position: %d, %d, %d (chunk %d, %d)", s.X, s.Y, s.Z, p.X, p.Z)
}

func cmdOres(c *Console, s *Session, _ []string) {
	reg, err := c.Engine.Registry()
	if err != nil {
		s.errorf("Ore generation is unavailable: %v", err)
		return
	}
	s.printf("Registered ores (%d):", reg.Len())
	for _, t := range reg.All() {
		s.printf("  %s (id %d) y %d-%d, replaces %s", t.Name(), t.Block().ID, t.MinY(), t.MaxY(), replaceNames(c, t))
	}
}

func replaceNames(c *Console, t *ore.Type) string {
	ids := t.Replaceable()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if c.Blocks != nil {
			if b, ok := c.Blocks.ByID(id); ok {
				names = append(names, b.Name)
				continue
			}
		}
		names = append(names, strconv.Itoa(id))
	}
	return strings.Join(names, ", ")
}

func cmdStats(c *Console, s *Session, _ []string) {
	s.printf("Loaded chunks: %d, block overrides: %d", len(c.World.LoadedChunks()), c.World.OverrideCount())
	if c.Stats == nil {
		return
	}
	st, err := c.Stats.Stats(context.Background())
	if err != nil {
		s.errorf("Journal unavailable: %v", err)
		return
	}
	s.printf("Generated chunks: %d, veins: %d, natural blocks: %d, custom blocks: %d",
		st.Chunks, st.Veins, st.Placed, st.CustomPlaced)

	custom, err := c.Stats.CustomPlaced(context.Background())
	if err != nil {
		s.errorf("Journal unavailable: %v", err)
		return
	}
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		s.printf("  %s: %d", name, custom[name])
	}
}

func cmdSave(c *Console, s *Session, _ []string) {
	if c.Save == nil {
		s.errorf("Save is not available.")
		return
	}
	if err := c.Save(); err != nil {
		s.errorf("Save failed: %v", err)
		return
	}
	s.printf("Save complete.")
}
