package gen

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/oregen/pkg/gamedata"
)

// ErrUnknownBlock is returned when a generator refers to a block the
// palette does not define.
var ErrUnknownBlock = errors.New("unknown block")

func resolve(blocks gamedata.BlockRegistry, name string) (uint16, error) {
	b, ok := blocks.ByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBlock, name)
	}
	return State(b.ID, 0), nil
}
