// Package journal records which chunks have had their ores generated, so a
// chunk regenerated from the same seed after a restart is not treated as
// newly generated a second time.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	terrain "github.com/OCharnyshevich/oregen/internal/server/world/gen"
	oregen "github.com/OCharnyshevich/oregen/pkg/world/gen"
)

type Journal struct {
	db *sql.DB
}

// Stats aggregates every recorded chunk.
type Stats struct {
	Chunks       int
	Veins        int
	Placed       int
	CustomPlaced int
}

func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			cx INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			veins INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			custom_placed INTEGER NOT NULL,
			generated_at TEXT NOT NULL,
			PRIMARY KEY (cx, cz)
		);`,
		`CREATE TABLE IF NOT EXISTS custom_ores (
			cx INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			ore TEXT NOT NULL,
			placed INTEGER NOT NULL,
			PRIMARY KEY (cx, cz, ore)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init journal schema: %w", err)
		}
	}
	return nil
}

// Seen reports whether the chunk was recorded before.
func (j *Journal) Seen(ctx context.Context, pos terrain.ChunkPos) (bool, error) {
	var one int
	err := j.db.QueryRowContext(ctx, `SELECT 1 FROM chunks WHERE cx=? AND cz=?`, pos.X, pos.Z).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("journal lookup (%d, %d): %w", pos.X, pos.Z, err)
	}
	return true, nil
}

// Record stores the outcome of a handler call, replacing any earlier row
// for the chunk.
func (j *Journal) Record(ctx context.Context, rep oregen.Report) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	custom := rep.Total() - rep.Placed
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO chunks(cx,cz,seed,veins,placed,custom_placed,generated_at) VALUES(?,?,?,?,?,?,?)`,
		rep.Pos.X, rep.Pos.Z, rep.Seed, rep.Veins, rep.Placed, custom, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("journal record (%d, %d): %w", rep.Pos.X, rep.Pos.Z, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_ores WHERE cx=? AND cz=?`, rep.Pos.X, rep.Pos.Z); err != nil {
		return err
	}
	for name, n := range rep.Custom {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO custom_ores(cx,cz,ore,placed) VALUES(?,?,?,?)`, rep.Pos.X, rep.Pos.Z, name, n,
		); err != nil {
			return fmt.Errorf("journal record custom ore %s: %w", name, err)
		}
	}
	return tx.Commit()
}

func (j *Journal) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(veins),0), COALESCE(SUM(placed),0), COALESCE(SUM(custom_placed),0) FROM chunks`,
	).Scan(&s.Chunks, &s.Veins, &s.Placed, &s.CustomPlaced)
	if err != nil {
		return Stats{}, fmt.Errorf("journal stats: %w", err)
	}
	return s, nil
}

// CustomPlaced returns blocks placed per custom ore across all chunks.
func (j *Journal) CustomPlaced(ctx context.Context) (map[string]int, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT ore, SUM(placed) FROM custom_ores GROUP BY ore`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	return j.db.Close()
}
