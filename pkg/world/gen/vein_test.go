package gen

import (
	"math/rand/v2"
	"testing"

	"github.com/OCharnyshevich/oregen/internal/server/config"
	terrain "github.com/OCharnyshevich/oregen/internal/server/world/gen"
)

func TestGrowNeverLeavesChunkOrWorld(t *testing.T) {
	reg := testCache(t, testOreType(t, testOre, "Ore_Any", 0, 400))
	r, err := reg.Get()
	if err != nil {
		t.Fatal(err)
	}
	m := AnyOre{Registry: r}

	for seed := range uint64(200) {
		rng := rand.New(rand.NewPCG(seed, seed*31+7))
		chunk := terrain.ChunkPos{X: rng.IntN(9) - 4, Z: rng.IntN(9) - 4}
		x0, z0 := chunk.MinBlock()

		// Start on edges and at the world's vertical limits to force exits.
		x := x0 + []int{0, 31, rng.IntN(32)}[rng.IntN(3)]
		z := z0 + []int{0, 31, rng.IntN(32)}[rng.IntN(3)]
		y := []int{config.WorldMinY, config.WorldMaxY, 1 + rng.IntN(310)}[rng.IntN(3)]

		w := newFakeWorld(testStone)
		n := Grow(w, rng, m, chunk, x, y, z, 1+rng.IntN(100))
		if n != len(w.blocks) {
			t.Fatalf("seed %d: Grow returned %d, %d writes", seed, n, len(w.blocks))
		}
		for p := range w.blocks {
			if p.y < config.WorldMinY || p.y > config.WorldMaxY {
				t.Fatalf("seed %d: placed at y=%d", seed, p.y)
			}
			if terrain.ChunkPosOf(p.x, p.z) != chunk {
				t.Fatalf("seed %d: placed at %+v outside chunk %+v", seed, p, chunk)
			}
		}
	}
}

func TestGrowAttemptBudget(t *testing.T) {
	// Nothing is replaceable: the walk makes exactly 3n direction draws.
	rng := &scriptedRand{}
	w := newFakeWorld(1)
	reg, _ := testCache(t, testOreType(t, testOre, "Ore_Test", 1, 310)).Get()

	if n := Grow(w, rng, AnyOre{Registry: reg}, terrain.ChunkPos{}, 5, 50, 5, 4); n != 0 {
		t.Errorf("Grow = %d, want 0", n)
	}
	if len(rng.calls) != 12 {
		t.Errorf("direction draws = %d, want 12", len(rng.calls))
	}
}

func TestGrowSpecificOreRespectsRange(t *testing.T) {
	iron := testOreType(t, testOre, "Ore_Iron", 30, 31)
	w := newFakeWorld(testStone)
	// +y every step: only y=30 and y=31 qualify.
	rng := &scriptedRand{ints: []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}}

	if n := Grow(w, rng, SpecificOre{Ore: iron}, terrain.ChunkPos{}, 3, 28, 3, 5); n != 2 {
		t.Errorf("Grow = %d, want 2", n)
	}
}

func TestGrowSurvivesWorldErrors(t *testing.T) {
	reg, _ := testCache(t, testOreType(t, testOre, "Ore_Test", 1, 310)).Get()
	w := newFakeWorld(testStone)
	w.failAt[pos{5, 50, 5}] = true

	// First attempt fails in the world, the walk carries on along +x.
	if n := Grow(w, &scriptedRand{}, AnyOre{Registry: reg}, terrain.ChunkPos{}, 5, 50, 5, 3); n != 3 {
		t.Errorf("Grow = %d, want 3", n)
	}
	if _, ok := w.blocks[pos{5, 50, 5}]; ok {
		t.Error("failed write recorded")
	}
}

func TestTryPlaceResults(t *testing.T) {
	reg, _ := testCache(t, testOreType(t, testOre, "Ore_Test", 1, 310)).Get()
	m := AnyOre{Registry: reg}
	chunk := terrain.ChunkPos{X: 1, Z: 1}

	tests := []struct {
		name    string
		fill    int
		x, y, z int
		want    Placement
	}{
		{"placed", testStone, 32, 10, 40, Placed},
		{"not replaceable", 3, 32, 10, 40, Blocked},
		{"below world", testStone, 32, 0, 40, OutOfBounds},
		{"above world", testStone, 32, config.WorldMaxY + 1, 40, OutOfBounds},
		{"other chunk", testStone, 31, 10, 40, OutOfBounds},
	}
	for _, tt := range tests {
		if got := tryPlace(newFakeWorld(tt.fill), m, chunk, tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("%s: tryPlace = %v, want %v", tt.name, got, tt.want)
		}
	}
}
