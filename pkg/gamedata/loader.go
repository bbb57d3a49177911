package gamedata

import (
	"fmt"
	"slices"
)

var palettes = map[string]func() *Palette{}

func Register(name string, factory func() *Palette) {
	palettes[name] = factory
}

func Load(name string) (*Palette, error) {
	f, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette: %s", name)
	}
	return f(), nil
}

func RegisteredPalettes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Open returns the palette stored at path, or the built-in default palette
// when path is empty.
func Open(path string) (*Palette, error) {
	if path == "" {
		return Load(DefaultPaletteName)
	}
	return LoadPalette(path)
}
