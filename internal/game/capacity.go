package game

import (
	"fmt"
	"math"

	"github.com/joansalasoler/oware-sub000/internal/owareerr"
)

// minGrowth and maxCapacity bound the history stack's geometric
// growth, per §9: it never grows by fewer than 126 frames at a time,
// and never past MaxInt32/16 frames.
const (
	minGrowth   = 126
	maxCapacity = math.MaxInt32 / 16
)

// ensureCapacity grows the history stack to hold at least n frames,
// doubling its capacity (or growing by minGrowth, whichever is
// larger) each time it falls short, and refusing to exceed
// maxCapacity.
func (g *Game) ensureCapacity(n int) error {
	if cap(g.history) >= n {
		return nil
	}
	if n > maxCapacity {
		return fmt.Errorf("%w: history would need %d frames, max is %d", owareerr.ErrCapacityExceeded, n, maxCapacity)
	}

	newCap := cap(g.history) * 2
	if newCap < cap(g.history)+minGrowth {
		newCap = cap(g.history) + minGrowth
	}
	if newCap > maxCapacity {
		newCap = maxCapacity
	}
	if newCap < n {
		newCap = n
	}

	grown := make([]frame, len(g.history), newCap)
	copy(grown, g.history)
	g.history = grown
	return nil
}
