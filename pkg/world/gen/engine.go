package gen

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/OCharnyshevich/oregen/internal/server/config"
	terrain "github.com/OCharnyshevich/oregen/internal/server/world/gen"
	"github.com/OCharnyshevich/oregen/pkg/ore"
)

// Settings supplies the clamped generation settings. It is read on every
// event, so a reload takes effect on the next chunk.
type Settings interface {
	Generation() config.Generation
}

// ChunkEvent is the host's chunk-load notification.
type ChunkEvent struct {
	Pos            terrain.ChunkPos
	NewlyGenerated bool
	Access         Accessor
}

// Report summarizes one handler call.
type Report struct {
	Pos         terrain.ChunkPos
	Seed        int64
	Natural     bool // natural spawn check passed
	Veins       int  // natural veins attempted
	VeinsPlaced int  // natural veins that placed at least one block
	Placed      int  // natural blocks placed
	Custom      map[string]int
}

// Total returns all blocks placed by the call.
func (r Report) Total() int {
	n := r.Placed
	for _, c := range r.Custom {
		n += c
	}
	return n
}

func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("cx", r.Pos.X),
		slog.Int("cz", r.Pos.Z),
		slog.Int64("seed", r.Seed),
		slog.Bool("natural", r.Natural),
		slog.Int("veins", r.Veins),
		slog.Int("placed", r.Placed),
		slog.Int("total", r.Total()),
	)
}

// Engine runs the per-chunk ore passes against a cached registry.
type Engine struct {
	settings Settings
	cache    *ore.Cache
	log      *slog.Logger
	newRand  func(seed int64) Rand

	warned atomic.Uint64
}

type Option func(*Engine)

// WithRand replaces the per-chunk random source.
func WithRand(f func(seed int64) Rand) Option {
	return func(e *Engine) { e.newRand = f }
}

func NewEngine(settings Settings, cache *ore.Cache, log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		settings: settings,
		cache:    cache,
		log:      log,
		newRand:  func(seed int64) Rand { return NewChunkRand(seed) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegistryBuilder returns the build function for ore.NewCache: the built-in
// coal ores over the global range, then the custom ores over their own.
func RegistryBuilder(settings Settings, res ore.Resolver, log *slog.Logger) ore.BuildFunc {
	return func() (*ore.Registry, error) {
		g := settings.Generation()
		specs := ore.CoalSpecs(g.MinY, g.MaxY)
		for _, c := range g.Custom {
			specs = append(specs, ore.Spec{
				Name:     c.OreName,
				Replaces: c.ReplacesBlocks,
				MinY:     c.MinY,
				MaxY:     c.MaxY,
				Custom:   true,
			})
		}
		return ore.Build(specs, res, log)
	}
}

// Registry returns the cached registry, building it on first use.
func (e *Engine) Registry() (*ore.Registry, error) {
	return e.cache.Get()
}

// Handle routes a chunk event by the current settings: the natural handler
// when natural generation is on, the custom-only handler when it is off and
// custom ores exist, nothing otherwise.
func (e *Engine) Handle(ev ChunkEvent) Report {
	g := e.settings.Generation()
	switch {
	case g.Natural:
		return e.OnChunkLoad(ev)
	case len(g.Custom) > 0:
		return e.OnChunkLoadCustom(ev)
	default:
		return Report{Pos: ev.Pos, Seed: ChunkSeed(ev.Pos.X, ev.Pos.Z)}
	}
}

// OnChunkLoad runs the natural pass and then the custom pass on one random
// stream. The custom pass runs even if the natural spawn check fails.
func (e *Engine) OnChunkLoad(ev ChunkEvent) Report {
	rep := Report{Pos: ev.Pos, Seed: ChunkSeed(ev.Pos.X, ev.Pos.Z)}
	reg, ok := e.prepare(ev)
	if !ok {
		return rep
	}

	g := e.settings.Generation()
	rng := e.newRand(rep.Seed)
	e.natural(ev, g, reg, rng, &rep)
	e.custom(ev, g, reg, rng, &rep)

	e.log.Debug("generated ores", "chunk", rep)
	return rep
}

// OnChunkLoadCustom runs only the custom pass, from a fresh stream.
func (e *Engine) OnChunkLoadCustom(ev ChunkEvent) Report {
	rep := Report{Pos: ev.Pos, Seed: ChunkSeed(ev.Pos.X, ev.Pos.Z)}
	reg, ok := e.prepare(ev)
	if !ok {
		return rep
	}

	e.custom(ev, e.settings.Generation(), reg, e.newRand(rep.Seed), &rep)

	e.log.Debug("generated custom ores", "chunk", rep)
	return rep
}

func (e *Engine) prepare(ev ChunkEvent) (*ore.Registry, bool) {
	if !ev.NewlyGenerated {
		return nil, false
	}
	if ev.Access == nil {
		e.log.Warn("chunk event without world access, skipping", "cx", ev.Pos.X, "cz", ev.Pos.Z)
		return nil, false
	}
	reg, err := e.cache.Get()
	if err != nil {
		// Once per build attempt, not once per chunk.
		if v := e.cache.Version() + 1; e.warned.Swap(v) != v {
			e.log.Warn("ore registry unavailable, ore generation disabled", "error", err)
		}
		return nil, false
	}
	return reg, true
}

func (e *Engine) natural(ev ChunkEvent, g config.Generation, reg *ore.Registry, rng Rand, rep *Report) {
	if rng.Float64() >= g.SpawnChance {
		return
	}
	rep.Natural = true

	x0, z0 := ev.Pos.MinBlock()
	m := AnyOre{Registry: reg}
	veins := g.VeinsPerChunk + rng.IntN(2)
	for range veins {
		x := x0 + rng.IntN(config.ChunkSize)
		z := z0 + rng.IntN(config.ChunkSize)
		y := g.MinY + int(math.Pow(rng.Float64(), 1.5)*float64(g.MaxY-g.MinY))
		size := g.MinVeinSize + rng.IntN(g.MaxVeinSize-g.MinVeinSize+1)

		n := Grow(ev.Access, rng, m, ev.Pos, x, y, z, size)
		rep.Veins++
		rep.Placed += n
		if n > 0 {
			rep.VeinsPlaced++
		}
	}
}

func (e *Engine) custom(ev ChunkEvent, g config.Generation, reg *ore.Registry, rng Rand, rep *Report) {
	x0, z0 := ev.Pos.MinBlock()
	for _, c := range g.Custom {
		if rng.Float64() >= c.SpawnChance {
			continue
		}
		t, ok := reg.ByName(c.OreName)
		if !ok {
			continue
		}

		m := SpecificOre{Ore: t}
		veins := c.VeinsPerChunk + rng.IntN(2)
		for range veins {
			x := x0 + rng.IntN(config.ChunkSize)
			z := z0 + rng.IntN(config.ChunkSize)
			y := c.MinY + rng.IntN(c.MaxY-c.MinY+1)
			size := c.MinVeinSize + rng.IntN(c.MaxVeinSize-c.MinVeinSize+1)

			n := Grow(ev.Access, rng, m, ev.Pos, x, y, z, size)
			if rep.Custom == nil {
				rep.Custom = make(map[string]int)
			}
			rep.Custom[c.OreName] += n
		}
	}
}

// SpawnCluster places a Cluster of whatever ores fit at (x, y, z).
// It returns ore.ErrNoOres when the registry is unavailable.
func (e *Engine) SpawnCluster(a Accessor, rng Rand, x, y, z, size int) (int, error) {
	reg, err := e.cache.Get()
	if err != nil {
		return 0, err
	}
	return Cluster(a, rng, AnyOre{Registry: reg}, x, y, z, size), nil
}

type reloader interface {
	Reload() error
}

// Reload re-reads the settings, if they can be reloaded, and drops the
// cached registry so the next event rebuilds it. On a failed settings
// reload the registry is kept.
func (e *Engine) Reload() error {
	if r, ok := e.settings.(reloader); ok {
		if err := r.Reload(); err != nil {
			return err
		}
	}
	e.cache.Invalidate()
	e.log.Info("ore generation reloaded")
	return nil
}

// Available reports whether a registry could be built.
func (e *Engine) Available() bool {
	_, err := e.cache.Get()
	return err == nil
}
