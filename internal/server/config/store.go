package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a config document does not match the schema.
var ErrInvalid = errors.New("invalid config")

//go:embed config.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("config.schema.json", schemaSource)
	})
	return schema, schemaErr
}

// Parse decodes a YAML document on top of DefaultConfig. Fields the
// document omits keep their defaults.
func Parse(data []byte) (*Config, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// validate checks the document shape. Numeric ranges are not checked here;
// they are clamped when read.
func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return nil
	}
	// Round-trip through JSON so the validator sees JSON value types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Store owns the config file and the current snapshot. Readers always get
// a complete snapshot; Reload swaps it atomically.
type Store struct {
	path string
	log  *slog.Logger
	cur  atomic.Pointer[Config]
}

// NewStore loads path, writing the defaults there first if it does not exist.
func NewStore(path string, log *slog.Logger) (*Store, error) {
	s := &Store{path: path, log: log}

	cfg, err := Load(path)
	switch {
	case err == nil:
		log.Info("loaded config from file", "path", path)
	case errors.Is(err, os.ErrNotExist):
		cfg = DefaultConfig()
		s.cur.Store(cfg)
		if err := s.Save(); err != nil {
			return nil, err
		}
		log.Info("wrote default config", "path", path)
		return s, nil
	default:
		return nil, err
	}

	s.cur.Store(cfg)
	return s, nil
}

// NewMemoryStore returns a Store that is never backed by a file. Reload
// keeps the current snapshot.
func NewMemoryStore(cfg *Config) *Store {
	s := &Store{log: slog.New(slog.DiscardHandler)}
	s.cur.Store(cfg)
	return s
}

// Get returns the current snapshot. Callers must not mutate it.
func (s *Store) Get() *Config {
	return s.cur.Load()
}

// Set replaces the current snapshot without touching the file.
func (s *Store) Set(cfg *Config) {
	s.cur.Store(cfg)
}

// Generation returns the clamped ore settings of the current snapshot.
func (s *Store) Generation() Generation {
	return s.cur.Load().Ores.Generation()
}

// Reload re-reads the file. On failure the previous snapshot stays active.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	cfg, err := Load(s.path)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	s.cur.Store(cfg)
	s.log.Info("reloaded config", "path", s.path)
	return nil
}

// Save writes the current snapshot to disk atomically.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(s.cur.Load())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
