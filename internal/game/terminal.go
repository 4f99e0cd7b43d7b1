package game

import "github.com/joansalasoler/oware-sub000/internal/board"

// Winner identifies the result of a finished game.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerSouth
	WinnerNorth
	WinnerDraw
)

func (w Winner) String() string {
	switch w {
	case WinnerSouth:
		return "south"
	case WinnerNorth:
		return "north"
	case WinnerDraw:
		return "draw"
	default:
		return "none"
	}
}

// IsRepetition reports whether the current position has occurred
// before at the same side to move, at least BoardSize plies back and
// since the last capture. It scans history frames backward in steps of
// two (preserving the side to move) from index length-BoardSize down
// to, but excluding, the capture index.
func (g *Game) IsRepetition() bool {
	depth := len(g.history)
	i := depth - board.BoardSize
	limit := g.captureIndex
	for i > limit {
		if i >= 0 && i < len(g.history) && g.history[i].hash == g.hash {
			return true
		}
		i -= 2
	}
	return false
}

// HasEnded reports whether the game is over: a store holds more than
// SeedGoal seeds, the side to move has no legal move, or the current
// position is a repetition.
func (g *Game) HasEnded() bool {
	if g.houses[board.SouthStore] > board.SeedGoal || g.houses[board.NorthStore] > board.SeedGoal {
		return true
	}
	if g.IsRepetition() {
		return true
	}
	return !g.HasLegalMoves()
}

// EndMatch pushes a terminal frame and rakes every seed remaining on
// the board into its owner's store, per §4.3. It is a no-op on the
// board contents if neither side has a remaining seed. The side to
// move does not change.
func (g *Game) EndMatch() {
	g.history = append(g.history, frame{
		houses:       g.houses,
		turn:         g.turn,
		move:         board.NullMove,
		cursor:       g.cursor,
		empty:        g.empty,
		hash:         g.hash,
		captureIndex: g.captureIndex,
	})

	south := sumRange(g.houses, board.SouthLeft, board.SouthRight)
	north := sumRange(g.houses, board.NorthLeft, board.NorthRight)
	g.houses[board.SouthStore] += south
	g.houses[board.NorthStore] += north
	for h := 0; h < board.BoardSize; h++ {
		g.houses[h] = 0
	}
	g.recompute()
}

// Outcome returns the exact result of a finished game from south's
// perspective: +MaxScore if south has more seeds, -MaxScore if north
// does, zero for a draw. If the board still holds seeds in its pits
// (EndMatch has not been called), the rake-in is computed abstractly
// by summing them into their owner's store without mutating state.
func (g *Game) Outcome() int {
	south := g.houses[board.SouthStore]
	north := g.houses[board.NorthStore]
	if south <= board.SeedGoal && north <= board.SeedGoal {
		south += sumRange(g.houses, board.SouthLeft, board.SouthRight)
		north += sumRange(g.houses, board.NorthLeft, board.NorthRight)
	}
	switch {
	case south > north:
		return MaxScore
	case north > south:
		return -MaxScore
	default:
		return 0
	}
}

// Winner returns the side favored by Outcome, or WinnerDraw if tied.
func (g *Game) Winner() Winner {
	switch o := g.Outcome(); {
	case o > 0:
		return WinnerSouth
	case o < 0:
		return WinnerNorth
	default:
		return WinnerDraw
	}
}

// Score evaluates the current position heuristically from south's
// perspective, per §4.5: a weighted store difference plus a per-pit
// bonus or penalty depending on each pit's seed count. Callers
// wanting the side-to-move's perspective negate the result for north.
func (g *Game) Score() int {
	w := g.weights
	score := w.StoreFactor * (g.houses[board.SouthStore] - g.houses[board.NorthStore])
	for h := board.SouthLeft; h <= board.SouthRight; h++ {
		score += pitWeight(w, g.houses[h])
	}
	for h := board.NorthLeft; h <= board.NorthRight; h++ {
		score -= pitWeight(w, g.houses[h])
	}
	return score
}

func pitWeight(w Weights, seeds int) int {
	switch {
	case seeds > 12:
		return w.BigPitBonus
	case seeds == 0:
		return w.EmptyPitPenalty
	case seeds == 1 || seeds == 2:
		return w.LowPitPenalty
	default:
		return 0
	}
}

// Perft counts the leaf positions reached by playing out every legal
// move to the given depth, stopping early at a terminal position. It
// exists purely as a debugging and regression tool (cmd/perft), never
// as a protocol surface.
func (g *Game) Perft(depth int) uint64 {
	if depth == 0 || g.HasEnded() {
		return 1
	}
	var nodes uint64
	for _, m := range g.LegalMoves() {
		if err := g.MakeMove(m); err != nil {
			continue
		}
		nodes += g.Perft(depth - 1)
		g.UnmakeMove()
	}
	return nodes
}
