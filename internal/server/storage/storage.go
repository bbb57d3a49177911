package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/oregen/internal/server/world"
	"github.com/OCharnyshevich/oregen/internal/server/world/gen"
)

const overridesFile = "overrides.json.zst"

// Storage handles file-based persistence for world overrides and console sessions.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "world"),
		filepath.Join(dir, "sessions"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the storage root.
func (s *Storage) Dir() string { return s.dir }

// LoadWorld reads the compressed override snapshot and bulk-loads it into w.
func (s *Storage) LoadWorld(w *world.World) error {
	path := filepath.Join(s.dir, "world", overridesFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read world overrides: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("read world overrides: %w", err)
	}
	defer dec.Close()

	var wd WorldData
	if err := json.NewDecoder(dec).Decode(&wd); err != nil {
		return fmt.Errorf("parse world overrides: %w", err)
	}

	overrides := make(map[world.BlockPos]uint16, len(wd.Overrides))
	for _, o := range wd.Overrides {
		overrides[world.BlockPos{X: o.X, Y: o.Y, Z: o.Z}] = gen.State(o.Block, o.Meta)
	}

	w.LoadOverrides(overrides)
	s.log.Info("loaded world overrides", "count", len(overrides))
	return nil
}

// SaveWorld writes all block overrides, sorted by position, as zstd-compressed JSON.
func (s *Storage) SaveWorld(w *world.World) error {
	var wd WorldData
	w.ForEachOverride(func(pos world.BlockPos, state uint16) {
		id, meta := gen.SplitState(state)
		wd.Overrides = append(wd.Overrides, BlockOverride{
			X: pos.X, Y: pos.Y, Z: pos.Z, Block: id, Meta: meta,
		})
	})
	slices.SortFunc(wd.Overrides, func(a, b BlockOverride) int {
		switch {
		case a.X != b.X:
			return a.X - b.X
		case a.Z != b.Z:
			return a.Z - b.Z
		default:
			return a.Y - b.Y
		}
	})

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(&wd); err != nil {
		enc.Close()
		return fmt.Errorf("marshal world overrides: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("compress world overrides: %w", err)
	}

	path := filepath.Join(s.dir, "world", overridesFile)
	if err := atomicWrite(path, &buf); err != nil {
		return err
	}
	s.log.Info("saved world overrides", "count", len(wd.Overrides), "bytes", buf.Len())
	return nil
}

// LoadSession reads sessions/<name>.json and returns the data, or nil if not found.
func (s *Storage) LoadSession(name string) (*SessionData, error) {
	path := filepath.Join(s.dir, "sessions", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session %s: %w", name, err)
	}

	var sd SessionData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", name, err)
	}
	return &sd, nil
}

// SaveSession persists a console session.
func (s *Storage) SaveSession(sd *SessionData) error {
	data, err := json.MarshalIndent(sd, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(s.dir, "sessions", sd.Name+".json")
	return atomicWrite(path, bytes.NewReader(data))
}

// atomicWrite writes r to path using a temp file + rename.
func atomicWrite(path string, r io.Reader) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
