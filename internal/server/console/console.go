// Package console is the operator command line of the server. Sessions run
// over stdin or a websocket and share one command table.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/OCharnyshevich/oregen/internal/server/config"
	"github.com/OCharnyshevich/oregen/internal/server/journal"
	"github.com/OCharnyshevich/oregen/internal/server/world"
	"github.com/OCharnyshevich/oregen/pkg/gamedata"
	oregen "github.com/OCharnyshevich/oregen/pkg/world/gen"
)

// Loader makes every chunk overlapping the block rectangle available,
// running ore generation for chunks it creates. Callers hold Options.Lock.
type Loader interface {
	EnsureLoaded(x0, z0, x1, z1 int)
}

// StatsSource reports journal totals.
type StatsSource interface {
	Stats(ctx context.Context) (journal.Stats, error)
	CustomPlaced(ctx context.Context) (map[string]int, error)
}

// Options wires a Console to the server.
type Options struct {
	Engine   *oregen.Engine
	World    *world.World
	Settings *config.Store
	Blocks   gamedata.BlockRegistry // optional, names replaceable blocks in "ores"
	Loader   Loader
	Stats    StatsSource  // optional
	Save     func() error // optional
	Lock     sync.Locker  // serializes world mutation with chunk generation
	Rand     oregen.Rand  // optional, defaults to math/rand/v2
	Log      *slog.Logger
}

type Console struct {
	Options
}

func New(opts Options) *Console {
	if opts.Rand == nil {
		opts.Rand = globalRand{}
	}
	if opts.Lock == nil {
		opts.Lock = &sync.Mutex{}
	}
	return &Console{Options: opts}
}

// Session is one operator: a name, a position commands act at, and where
// replies go.
type Session struct {
	Name    string
	X, Y, Z int

	mu  sync.Mutex
	out io.Writer
}

func NewSession(name string, x, y, z int, out io.Writer) *Session {
	return &Session{Name: name, X: x, Y: y, Z: z, out: out}
}

func (s *Session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Session) errorf(format string, args ...any) {
	s.printf("error: "+format, args...)
}

// Exec runs one command line. A leading "/" is optional.
func (c *Console) Exec(s *Session, line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}

	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	for _, cmd := range commands {
		if cmd.name == name {
			c.Log.Debug("console command", "session", s.Name, "command", name, "args", args)
			cmd.handler(c, s, args)
			return
		}
	}
	s.errorf("Unknown command: %s. Type help for a list of commands.", name)
}

// Serve executes lines from r until it is exhausted or ctx is done.
func (c *Console) Serve(ctx context.Context, r io.Reader, s *Session) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			c.Exec(s, line)
		}
	}
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }
