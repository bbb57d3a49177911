package config

import "gopkg.in/yaml.v3"

// Config holds the host configuration and the raw ore generation settings.
// Values are stored exactly as persisted; ore numbers are clamped when read
// through Generation, never when loaded.
type Config struct {
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	World   WorldConfig   `yaml:"world" json:"world"`
	Console ConsoleConfig `yaml:"console" json:"console"`
	Ores    OreConfig     `yaml:"ores" json:"ores"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // "console", "text" or "json"
}

type WorldConfig struct {
	Generator string `yaml:"generator" json:"generator"` // "strata" or "layered"
	Seed      int64  `yaml:"seed" json:"seed"`           // terrain seed; ore seeds derive from chunk coordinates only
	Radius    int    `yaml:"radius" json:"radius"`       // chunks loaded around (0, 0)
	Palette   string `yaml:"palette" json:"palette"`     // blocks.json path, empty = built-in palette
	DataDir   string `yaml:"data_dir" json:"data_dir"`   // overrides, sessions and journal
}

type ConsoleConfig struct {
	Listen string `yaml:"listen" json:"listen"` // websocket console address, empty = disabled
}

// OreConfig is the persisted natural generation block.
type OreConfig struct {
	MinY                    int         `yaml:"min_y" json:"min_y"`
	MaxY                    int         `yaml:"max_y" json:"max_y"`
	VeinsPerChunk           int         `yaml:"veins_per_chunk" json:"veins_per_chunk"`
	MinVeinSize             int         `yaml:"min_vein_size" json:"min_vein_size"`
	MaxVeinSize             int         `yaml:"max_vein_size" json:"max_vein_size"`
	SpawnChance             float64     `yaml:"spawn_chance" json:"spawn_chance"`
	EnableNaturalGeneration bool        `yaml:"enable_natural_generation" json:"enable_natural_generation"`
	CustomOres              []CustomOre `yaml:"custom_ores" json:"custom_ores"`
}

// CustomOre is one user-defined ore with its own range, chance and sizes.
type CustomOre struct {
	OreName        string   `yaml:"ore_name" json:"ore_name"`
	ReplacesBlocks []string `yaml:"replaces_blocks" json:"replaces_blocks"`
	MinY           int      `yaml:"min_y" json:"min_y"`
	MaxY           int      `yaml:"max_y" json:"max_y"`
	VeinsPerChunk  int      `yaml:"veins_per_chunk" json:"veins_per_chunk"`
	SpawnChance    float64  `yaml:"spawn_chance" json:"spawn_chance"`
	MinVeinSize    int      `yaml:"min_vein_size" json:"min_vein_size"`
	MaxVeinSize    int      `yaml:"max_vein_size" json:"max_vein_size"`
}

// DefaultConfig returns a Config with the stock coal settings and no custom ores.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		World:   WorldConfig{Generator: "strata", Radius: 4, DataDir: "data"},
		Ores:    DefaultOreConfig(),
	}
}

func DefaultOreConfig() OreConfig {
	return OreConfig{
		MinY:                    10,
		MaxY:                    120,
		VeinsPerChunk:           20,
		MinVeinSize:             6,
		MaxVeinSize:             17,
		SpawnChance:             0.85,
		EnableNaturalGeneration: true,
	}
}

// DefaultCustomOre returns the values a custom ore entry starts from
// before its persisted fields are applied.
func DefaultCustomOre() CustomOre {
	return CustomOre{
		MinY:          10,
		MaxY:          120,
		VeinsPerChunk: 5,
		SpawnChance:   0.5,
		MinVeinSize:   3,
		MaxVeinSize:   8,
	}
}

// UnmarshalYAML fills unset custom ore fields with DefaultCustomOre values.
func (c *CustomOre) UnmarshalYAML(node *yaml.Node) error {
	type plain CustomOre
	v := plain(DefaultCustomOre())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*c = CustomOre(v)
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["log-level"] {
		cfg.Logging.Level = fromFile.Logging.Level
	}
	if !explicitFlags["log-format"] {
		cfg.Logging.Format = fromFile.Logging.Format
	}
	if !explicitFlags["generator"] {
		cfg.World.Generator = fromFile.World.Generator
	}
	if !explicitFlags["seed"] {
		cfg.World.Seed = fromFile.World.Seed
	}
	if !explicitFlags["data"] {
		cfg.World.DataDir = fromFile.World.DataDir
	}
	if !explicitFlags["radius"] {
		cfg.World.Radius = fromFile.World.Radius
	}
	if !explicitFlags["palette"] {
		cfg.World.Palette = fromFile.World.Palette
	}
	if !explicitFlags["listen"] {
		cfg.Console.Listen = fromFile.Console.Listen
	}
	cfg.Ores = fromFile.Ores
}
