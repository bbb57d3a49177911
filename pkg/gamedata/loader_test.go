package gamedata_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/OCharnyshevich/oregen/pkg/gamedata"
)

func TestLoad_UnknownPalette(t *testing.T) {
	_, err := gamedata.Load("nonexistent-palette")
	if err == nil {
		t.Fatal("expected error for unknown palette, got nil")
	}
}

func TestRegisterAndLoad(t *testing.T) {
	called := false
	gamedata.Register("test-palette", func() *gamedata.Palette {
		called = true
		p, _ := gamedata.NewPalette(nil)
		return p
	})

	p, err := gamedata.Load("test-palette")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil Palette")
	}
	if !called {
		t.Fatal("factory function was not called")
	}
}

func TestDefaultPaletteRegistered(t *testing.T) {
	if !slices.Contains(gamedata.RegisteredPalettes(), gamedata.DefaultPaletteName) {
		t.Fatalf("default palette not registered: %v", gamedata.RegisteredPalettes())
	}
	p, err := gamedata.Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	stone, ok := p.ByName("Rock_Stone")
	if !ok {
		t.Fatal("expected Rock_Stone in default palette")
	}
	if got, ok := p.ByID(stone.ID); !ok || got.Name != "Rock_Stone" {
		t.Errorf("ByID(%d) = %+v, %v", stone.ID, got, ok)
	}
	if _, ok := p.ByName("Ore_Coal_Stone"); !ok {
		t.Error("expected Ore_Coal_Stone in default palette")
	}
}

func TestNewPaletteRejectsDuplicates(t *testing.T) {
	if _, err := gamedata.NewPalette([]gamedata.Block{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}); err == nil {
		t.Error("duplicate id accepted")
	}
	if _, err := gamedata.NewPalette([]gamedata.Block{{ID: 1, Name: "a"}, {ID: 2, Name: "a"}}); err == nil {
		t.Error("duplicate name accepted")
	}
	if _, err := gamedata.NewPalette([]gamedata.Block{{ID: gamedata.MaxBlockID + 1, Name: "big"}}); err == nil {
		t.Error("out of range id accepted")
	}
}

func TestLoadPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.json")
	doc := `[
	  {"id": 0, "name": "air", "displayName": "Air", "hardness": 0},
	  {"id": 1, "name": "stone", "displayName": "Stone", "hardness": 1.5},
	  {"id": 16, "name": "coal_ore", "displayName": "Coal Ore"}
	]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := gamedata.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(p.All()) != 3 {
		t.Errorf("All() = %d blocks, want 3", len(p.All()))
	}
	coal, ok := p.ByName("coal_ore")
	if !ok || coal.ID != 16 || coal.DisplayName != "Coal Ore" {
		t.Errorf("ByName(coal_ore) = %+v, %v", coal, ok)
	}
	if _, ok := p.ByID(99); ok {
		t.Error("ByID(99) should not resolve")
	}
}
