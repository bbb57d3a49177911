package gen

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/OCharnyshevich/oregen/internal/server/config"
	"github.com/OCharnyshevich/oregen/pkg/gamedata"
	"github.com/OCharnyshevich/oregen/pkg/ore"
)

var discard = slog.New(slog.DiscardHandler)

type pos struct{ x, y, z int }

// fakeWorld is filled with one block everywhere and records writes.
type fakeWorld struct {
	fill   int
	blocks map[pos]int
	failAt map[pos]bool
}

func newFakeWorld(fill int) *fakeWorld {
	return &fakeWorld{fill: fill, blocks: map[pos]int{}, failAt: map[pos]bool{}}
}

func (w *fakeWorld) BlockAt(x, y, z int) (int, error) {
	if id, ok := w.blocks[pos{x, y, z}]; ok {
		return id, nil
	}
	return w.fill, nil
}

func (w *fakeWorld) SetBlock(x, y, z, id, meta int) error {
	if w.failAt[pos{x, y, z}] {
		return errors.New("chunk not loaded")
	}
	w.blocks[pos{x, y, z}] = id
	return nil
}

// scriptedRand replays queued values, then returns 0.5 and 0.
type scriptedRand struct {
	floats []float64
	ints   []int
	calls  []string
}

func (r *scriptedRand) Float64() float64 {
	r.calls = append(r.calls, "f")
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	r.calls = append(r.calls, fmt.Sprintf("i%d", n))
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

type fixedSettings struct {
	g       config.Generation
	reloads int
	err     error
}

func (s *fixedSettings) Generation() config.Generation { return s.g }

func (s *fixedSettings) Reload() error {
	s.reloads++
	return s.err
}

const (
	testStone = 7
	testOre   = 100
)

func testOreType(t *testing.T, id int, name string, minY, maxY int) *ore.Type {
	t.Helper()
	ty, err := ore.NewType(gamedata.Block{ID: id, Name: name}, name, []int{testStone}, minY, maxY)
	if err != nil {
		t.Fatalf("NewType: %v", err)
	}
	return ty
}

func testCache(t *testing.T, types ...*ore.Type) *ore.Cache {
	t.Helper()
	reg, err := ore.NewRegistry(types)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return ore.NewCache(func() (*ore.Registry, error) { return reg, nil })
}
