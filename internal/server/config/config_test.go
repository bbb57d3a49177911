package config

import (
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultGeneration(t *testing.T) {
	g := DefaultConfig().Ores.Generation()
	if g.MinY != 10 || g.MaxY != 120 {
		t.Errorf("Y range = [%d,%d], want [10,120]", g.MinY, g.MaxY)
	}
	if g.VeinsPerChunk != 20 {
		t.Errorf("VeinsPerChunk = %d, want 20", g.VeinsPerChunk)
	}
	if g.MinVeinSize != 6 || g.MaxVeinSize != 17 {
		t.Errorf("vein sizes = [%d,%d], want [6,17]", g.MinVeinSize, g.MaxVeinSize)
	}
	if g.SpawnChance != 0.85 {
		t.Errorf("SpawnChance = %v, want 0.85", g.SpawnChance)
	}
	if !g.Natural {
		t.Error("natural generation should be enabled by default")
	}
	if len(g.Custom) != 0 {
		t.Errorf("Custom = %d entries, want 0", len(g.Custom))
	}
}

func TestClampYRange(t *testing.T) {
	tests := []struct {
		rawMin, rawMax int
		wantMin        int
		wantMax        int
	}{
		{10, 120, 10, 120},
		{-50, 400, WorldMinY, WorldMaxY},
		{60, 60, 59, 61},
		{500, 400, WorldMaxY - 1, WorldMaxY},
		{200, 100, 99, 201},
		{WorldMaxY, WorldMaxY, WorldMaxY - 1, WorldMaxY},
		{0, 0, WorldMinY, WorldMinY + 1},
	}
	for _, tt := range tests {
		gotMin, gotMax := ClampYRange(tt.rawMin, tt.rawMax)
		if gotMin != tt.wantMin || gotMax != tt.wantMax {
			t.Errorf("ClampYRange(%d, %d) = (%d, %d), want (%d, %d)",
				tt.rawMin, tt.rawMax, gotMin, gotMax, tt.wantMin, tt.wantMax)
		}
	}
}

func TestClampVeinSizes(t *testing.T) {
	tests := []struct {
		rawMin, rawMax int
		wantMin        int
		wantMax        int
	}{
		{6, 17, 6, 17},
		{-3, -1, 1, 1},
		{0, 500, 1, 100},
		{20, 10, 10, 20},
		{150, 120, 100, 100},
		{5, 5, 5, 5},
	}
	for _, tt := range tests {
		gotMin, gotMax := ClampVeinSizes(tt.rawMin, tt.rawMax)
		if gotMin != tt.wantMin || gotMax != tt.wantMax {
			t.Errorf("ClampVeinSizes(%d, %d) = (%d, %d), want (%d, %d)",
				tt.rawMin, tt.rawMax, gotMin, gotMax, tt.wantMin, tt.wantMax)
		}
	}
}

func TestClampChance(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{-1, 0},
		{3, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := ClampChance(tt.in); got != tt.want {
			t.Errorf("ClampChance(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampVeinsPerChunk(t *testing.T) {
	for in, want := range map[int]int{-5: 1, 0: 1, 1: 1, 40: 40, 80: 80, 81: 80, 1000: 80} {
		if got := ClampVeinsPerChunk(in); got != want {
			t.Errorf("ClampVeinsPerChunk(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 5000 {
		rawMin := r.IntN(1000) - 500
		rawMax := r.IntN(1000) - 500

		y1, y2 := ClampYRange(rawMin, rawMax)
		if y1 < WorldMinY || y2 > WorldMaxY || y1 >= y2 {
			t.Fatalf("ClampYRange(%d, %d) = (%d, %d) violates bounds", rawMin, rawMax, y1, y2)
		}
		if a, b := ClampYRange(y1, y2); a != y1 || b != y2 {
			t.Fatalf("ClampYRange not idempotent for (%d, %d): (%d, %d) then (%d, %d)",
				rawMin, rawMax, y1, y2, a, b)
		}

		s1, s2 := ClampVeinSizes(rawMin, rawMax)
		if s1 < MinVeinSize || s2 > MaxVeinSize || s1 > s2 {
			t.Fatalf("ClampVeinSizes(%d, %d) = (%d, %d) violates bounds", rawMin, rawMax, s1, s2)
		}
		if a, b := ClampVeinSizes(s1, s2); a != s1 || b != s2 {
			t.Fatalf("ClampVeinSizes not idempotent for (%d, %d)", rawMin, rawMax)
		}

		c := (r.Float64() - 0.5) * 10
		if once := ClampChance(c); ClampChance(once) != once {
			t.Fatalf("ClampChance not idempotent for %v", c)
		}
	}
}

func TestGenerationDoesNotMutateStoredValues(t *testing.T) {
	o := OreConfig{MinY: 900, MaxY: -4, VeinsPerChunk: 0, MinVeinSize: -2, MaxVeinSize: 999, SpawnChance: 7}
	_ = o.Generation()
	_ = o.Generation()
	if o.MinY != 900 || o.MaxY != -4 || o.SpawnChance != 7 {
		t.Errorf("stored values changed: %+v", o)
	}
}

func TestCustomOreGenerationUsesOwnRange(t *testing.T) {
	o := DefaultOreConfig()
	o.CustomOres = []CustomOre{{
		OreName:        "Ore_Iron_Stone",
		ReplacesBlocks: []string{"Rock_Stone"},
		MinY:           -10,
		MaxY:           40,
		VeinsPerChunk:  200,
		SpawnChance:    1.5,
		MinVeinSize:    9,
		MaxVeinSize:    3,
	}}
	g := o.Generation()
	if len(g.Custom) != 1 {
		t.Fatalf("Custom = %d entries, want 1", len(g.Custom))
	}
	c := g.Custom[0]
	if c.MinY != WorldMinY || c.MaxY != 40 {
		t.Errorf("custom Y range = [%d,%d], want [%d,40]", c.MinY, c.MaxY, WorldMinY)
	}
	if c.VeinsPerChunk != MaxVeinsPerChunk {
		t.Errorf("custom VeinsPerChunk = %d, want %d", c.VeinsPerChunk, MaxVeinsPerChunk)
	}
	if c.SpawnChance != 1 {
		t.Errorf("custom SpawnChance = %v, want 1", c.SpawnChance)
	}
	if c.MinVeinSize != 3 || c.MaxVeinSize != 9 {
		t.Errorf("custom sizes = [%d,%d], want [3,9]", c.MinVeinSize, c.MaxVeinSize)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	doc := []byte(`
ores:
  min_y: 20
  custom_ores:
    - ore_name: Ore_Iron_Stone
      replaces_blocks: [Rock_Stone, Rock_Slate]
      max_y: 64
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Ores.MinY != 20 {
		t.Errorf("MinY = %d, want 20", cfg.Ores.MinY)
	}
	if cfg.Ores.MaxY != 120 {
		t.Errorf("MaxY = %d, want default 120", cfg.Ores.MaxY)
	}
	if !cfg.Ores.EnableNaturalGeneration {
		t.Error("EnableNaturalGeneration should keep its default")
	}
	if len(cfg.Ores.CustomOres) != 1 {
		t.Fatalf("CustomOres = %d, want 1", len(cfg.Ores.CustomOres))
	}
	c := cfg.Ores.CustomOres[0]
	if c.MaxY != 64 || c.MinY != 10 || c.VeinsPerChunk != 5 || c.SpawnChance != 0.5 {
		t.Errorf("custom ore = %+v, want defaults with max_y 64", c)
	}
	if len(c.ReplacesBlocks) != 2 {
		t.Errorf("ReplacesBlocks = %v, want 2 entries", c.ReplacesBlocks)
	}
}

func TestParseRejectsWrongTypes(t *testing.T) {
	bad := [][]byte{
		[]byte("ores:\n  min_y: low\n"),
		[]byte("ores:\n  spawn_chance: [1]\n"),
		[]byte("ores:\n  custom_ores:\n    - replaces_blocks: [Rock_Stone]\n"),
		[]byte("logging:\n  level: loud\n"),
		[]byte("unknown_section: 1\n"),
	}
	for _, doc := range bad {
		if _, err := Parse(doc); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalid", doc, err)
		}
	}
}

func TestParseAcceptsOutOfRangeNumbers(t *testing.T) {
	cfg, err := Parse([]byte("ores:\n  min_y: -900\n  spawn_chance: 12.5\n  veins_per_chunk: 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Ores.MinY != -900 {
		t.Errorf("stored MinY = %d, want raw -900", cfg.Ores.MinY)
	}
	g := cfg.Ores.Generation()
	if g.MinY != WorldMinY || g.SpawnChance != 1 || g.VeinsPerChunk != 1 {
		t.Errorf("Generation() = %+v, want clamped values", g)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if cfg.Ores.VeinsPerChunk != 20 {
		t.Errorf("VeinsPerChunk = %d, want default 20", cfg.Ores.VeinsPerChunk)
	}
}

func TestStoreWritesDefaultsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "oregen.yaml")
	log := slog.New(slog.DiscardHandler)

	s, err := NewStore(path, log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if got := s.Generation().VeinsPerChunk; got != 20 {
		t.Errorf("VeinsPerChunk = %d, want 20", got)
	}

	if err := os.WriteFile(path, []byte("ores:\n  veins_per_chunk: 3\n  enable_natural_generation: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	g := s.Generation()
	if g.VeinsPerChunk != 3 || g.Natural {
		t.Errorf("after reload Generation() = %+v", g)
	}
}

func TestStoreReloadKeepsSnapshotOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oregen.yaml")
	if err := os.WriteFile(path, []byte("ores:\n  veins_per_chunk: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewStore(path, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := os.WriteFile(path, []byte("ores:\n  veins_per_chunk: many\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("Reload should fail on an invalid document")
	}
	if got := s.Generation().VeinsPerChunk; got != 7 {
		t.Errorf("VeinsPerChunk = %d, want previous snapshot 7", got)
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.World.Radius = 9
	cfg.Console.Listen = ":9000"

	fromFile := DefaultConfig()
	fromFile.World.Radius = 2
	fromFile.Console.Listen = ":7000"
	fromFile.Logging.Level = "debug"
	fromFile.Ores.VeinsPerChunk = 4

	fromFile.World.Seed = 77
	cfg.World.Generator = "layered"
	fromFile.World.Generator = "strata"

	Merge(cfg, fromFile, map[string]bool{"radius": true, "generator": true})

	if cfg.World.Radius != 9 {
		t.Errorf("Radius = %d, want flag value 9", cfg.World.Radius)
	}
	if cfg.Console.Listen != ":7000" {
		t.Errorf("Listen = %q, want file value", cfg.Console.Listen)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want file value", cfg.Logging.Level)
	}
	if cfg.Ores.VeinsPerChunk != 4 {
		t.Errorf("VeinsPerChunk = %d, want file value 4", cfg.Ores.VeinsPerChunk)
	}
	if cfg.World.Generator != "layered" || cfg.World.Seed != 77 {
		t.Errorf("World = %+v, want flag generator and file seed", cfg.World)
	}
}
