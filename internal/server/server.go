package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/OCharnyshevich/oregen/internal/server/config"
	"github.com/OCharnyshevich/oregen/internal/server/console"
	"github.com/OCharnyshevich/oregen/internal/server/journal"
	"github.com/OCharnyshevich/oregen/internal/server/storage"
	"github.com/OCharnyshevich/oregen/internal/server/world"
	"github.com/OCharnyshevich/oregen/internal/server/world/gen"
	"github.com/OCharnyshevich/oregen/pkg/gamedata"
	"github.com/OCharnyshevich/oregen/pkg/ore"
	oregen "github.com/OCharnyshevich/oregen/pkg/world/gen"
)

const consoleSession = "console"

// Server hosts one world: it generates chunks, runs the ore engine on the
// new ones and exposes the operator console.
type Server struct {
	cfg     *config.Config
	store   *config.Store
	log     *slog.Logger
	palette *gamedata.Palette
	world   *world.World
	storage *storage.Storage
	journal *journal.Journal
	engine  *oregen.Engine
	console *console.Console

	// mu serializes chunk generation with console edits.
	mu sync.Mutex
	// pending holds reports of chunks populated since the last save. They
	// reach the journal only after their overrides are on disk.
	pending []oregen.Report

	// Stdin and Stdout carry the local console session. Nil Stdin disables it.
	Stdin  io.Reader
	Stdout io.Writer
}

// New opens the data directory and builds the world from the current
// snapshot of store.
func New(store *config.Store, log *slog.Logger) (*Server, error) {
	cfg := store.Get()

	palette, err := gamedata.Open(cfg.World.Palette)
	if err != nil {
		return nil, err
	}

	var generator gen.Generator
	switch cfg.World.Generator {
	case "layered":
		generator, err = gen.NewLayeredGenerator(palette, gen.DefaultLayers)
	default:
		generator, err = gen.NewStrataGenerator(cfg.World.Seed, palette)
	}
	if err != nil {
		return nil, fmt.Errorf("%s generator: %w", cfg.World.Generator, err)
	}

	st, err := storage.New(cfg.World.DataDir, log)
	if err != nil {
		return nil, err
	}
	w := world.NewWorld(generator)
	if err := st.LoadWorld(w); err != nil {
		return nil, err
	}

	j, err := journal.Open(filepath.Join(cfg.World.DataDir, "journal.db"))
	if err != nil {
		return nil, err
	}

	cache := ore.NewCache(oregen.RegistryBuilder(store, palette, log))
	s := &Server{
		cfg:     cfg,
		store:   store,
		log:     log,
		palette: palette,
		world:   w,
		storage: st,
		journal: j,
		engine:  oregen.NewEngine(store, cache, log),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}
	s.console = console.New(console.Options{
		Engine:   s.engine,
		World:    w,
		Settings: store,
		Blocks:   palette,
		Loader:   s,
		Stats:    j,
		Save:     s.Save,
		Lock:     &s.mu,
		Log:      log,
	})
	return s, nil
}

// Start loads the configured radius and serves consoles until ctx is done.
// Overrides and the console position are saved on the way out.
func (s *Server) Start(ctx context.Context) error {
	defer s.journal.Close()

	s.mu.Lock()
	fresh := s.world.LoadRadius(s.cfg.World.Radius)
	for _, pos := range fresh {
		s.populate(pos)
	}
	s.mu.Unlock()

	s.log.Info("server started",
		"generator", s.cfg.World.Generator,
		"seed", s.cfg.World.Seed,
		"radius", s.cfg.World.Radius,
		"chunks", len(s.world.LoadedChunks()),
		"generated", len(fresh),
		"oresAvailable", s.engine.Available(),
	)

	errc := make(chan error, 1)
	if addr := s.cfg.Console.Listen; addr != "" {
		srv, err := s.listen(ctx, addr)
		if err != nil {
			return err
		}
		defer srv.Close()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sess, err := s.loadSession()
	if err != nil {
		return err
	}
	served := make(chan struct{})
	if s.Stdin != nil {
		go func() {
			defer close(served)
			err := s.console.Serve(ctx, s.Stdin, sess)
			if err != nil && !errors.Is(err, context.Canceled) {
				errc <- err
			}
		}()
	} else {
		close(served)
	}

	select {
	case <-ctx.Done():
		s.log.Info("server shutting down")
	case err := <-errc:
		s.log.Error("console stopped", "error", err)
	}
	<-served

	saveErr := s.Save()
	if err := s.saveSession(sess); err != nil {
		s.log.Error("save console session", "error", err)
	}
	return saveErr
}

func (s *Server) listen(ctx context.Context, addr string) (*http.Server, error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/console", s.console.WSHandler(0, s.world.SpawnHeight(), 0))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("console listener", "error", err)
		}
	}()
	s.log.Info("websocket console listening", "addr", ln.Addr().String())
	return srv, nil
}

func (s *Server) loadSession() (*console.Session, error) {
	sd, err := s.storage.LoadSession(consoleSession)
	if err != nil {
		return nil, err
	}
	if sd == nil {
		return console.NewSession(consoleSession, 0, s.world.SpawnHeight(), 0, s.Stdout), nil
	}
	s.log.Info("restored console position", "x", sd.Position.X, "y", sd.Position.Y, "z", sd.Position.Z)
	return console.NewSession(sd.Name, sd.Position.X, sd.Position.Y, sd.Position.Z, s.Stdout), nil
}

func (s *Server) saveSession(sess *console.Session) error {
	return s.storage.SaveSession(&storage.SessionData{
		Name:     sess.Name,
		Position: storage.PositionData{X: sess.X, Y: sess.Y, Z: sess.Z},
	})
}

// EnsureLoaded loads every chunk overlapping the block rectangle and runs
// ore generation on the ones it creates. Callers hold s.mu.
func (s *Server) EnsureLoaded(x0, z0, x1, z1 int) {
	for cx := x0 >> gen.ChunkShift; cx <= x1>>gen.ChunkShift; cx++ {
		for cz := z0 >> gen.ChunkShift; cz <= z1>>gen.ChunkShift; cz++ {
			if s.world.LoadChunk(cx, cz) {
				s.populate(gen.ChunkPos{X: cx, Z: cz})
			}
		}
	}
}

// populate runs the ore engine on a chunk whose base was just generated.
// Chunks the journal already knows keep their persisted overrides and are
// reported to the engine as not newly generated. Callers hold s.mu.
func (s *Server) populate(pos gen.ChunkPos) {
	ctx := context.Background()
	seen, err := s.journal.Seen(ctx, pos)
	if err != nil {
		s.log.Warn("journal unavailable, treating chunk as new", "chunk", pos, "error", err)
	}

	rep := s.engine.Handle(oregen.ChunkEvent{
		Pos:            pos,
		NewlyGenerated: !seen,
		Access:         s.world.Chunk(pos),
	})
	if !seen {
		s.pending = append(s.pending, rep)
	}
}

// Save writes the world overrides, then journals the chunks populated since
// the last save. A chunk is never journaled before its ore is on disk, so
// a crash in between regenerates it on the next start.
func (s *Server) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SaveWorld(s.world); err != nil {
		return err
	}
	ctx := context.Background()
	for i, rep := range s.pending {
		if err := s.journal.Record(ctx, rep); err != nil {
			s.pending = s.pending[i:]
			return err
		}
	}
	s.pending = nil
	return nil
}
