// Package game implements the mutable Oware Abapa game state: make and
// unmake of moves over a reversible history stack, the staged legal
// move generator, repetition and terminal detection, and the
// heuristic evaluation used by the search.
package game

import (
	"fmt"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/owareerr"
)

// Weights configures the tunable heuristic constants from §4.5. Draw
// contempt is not part of it; it lives in search.Options. The config
// package builds a Weights value from its Options (Options.Weights).
type Weights struct {
	StoreFactor int // multiplier applied to the store difference
	BigPitBonus int // bonus for a pit holding more than 12 seeds
	EmptyPitPenalty int // penalty for an empty pit
	LowPitPenalty   int // penalty for a pit holding 1 or 2 seeds
}

// DefaultWeights reproduces the source evaluation's magic constants,
// preserved as tunables per the Open Questions in §9.
var DefaultWeights = Weights{
	StoreFactor:     25,
	BigPitBonus:     28,
	EmptyPitPenalty: -54,
	LowPitPenalty:   -36,
}

// MaxScore bounds the heuristic evaluation (§4.5) and is also the
// magnitude of an exact (non-heuristic) win, returned by Outcome
// (§8's scenario S6, §9's testable property 6).
const MaxScore = 1000

// frame is one entry of the reversible history stack: everything
// needed to undo a make_move or end_match back to the exact prior
// state, including the staged generator's cursor.
type frame struct {
	houses       [14]int
	turn         board.Side
	move         int
	cursor       Cursor
	empty        uint16
	hash         board.Hash
	captureIndex int
}

// Game is the runtime, mutable Oware Abapa state (component C of the
// specification): the board plus turn, the empty-pit mask, the
// staged-generator cursor, the perfect hash, the capture index, and a
// growable stack of prior frames.
type Game struct {
	houses       [14]int
	turn         board.Side
	empty        uint16
	captureIndex int
	cursor       Cursor
	hash         board.Hash
	history      []frame
	weights      Weights
}

// New returns a game set to the Oware Abapa starting position.
func New() *Game {
	g := &Game{weights: DefaultWeights}
	g.SetStart()
	return g
}

// SetWeights overrides the heuristic evaluation weights, for example
// with the value returned by config.Options.Weights.
func (g *Game) SetWeights(w Weights) {
	g.weights = w
}

// SetStart resets the game to the Oware Abapa starting position:
// south to move, twelve pits of four seeds, empty stores.
func (g *Game) SetStart() {
	_ = g.SetBoard(board.Start())
}

// SetBoard resets the game to an arbitrary external position,
// rejecting one that fails board.Position.Validate (§6).
func (g *Game) SetBoard(p board.Position) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g.houses = p.Houses
	g.turn = p.Turn
	g.history = g.history[:0]
	g.captureIndex = -1
	g.cursor = initialCursor(g.turn)
	g.recompute()
	return nil
}

// recompute derives the empty-pit mask and perfect hash from the
// current houses and turn. Called after every mutation.
func (g *Game) recompute() {
	var mask uint16
	for h := 0; h < board.BoardSize; h++ {
		if g.houses[h] == 0 {
			mask |= 1 << uint(h)
		}
	}
	g.empty = mask
	g.hash = board.ComputeHash(g.houses, g.turn)
}

// Turn returns the side to move.
func (g *Game) Turn() board.Side { return g.turn }

// Hash returns the current perfect hash.
func (g *Game) Hash() board.Hash { return g.hash }

// Length returns the number of moves played so far (the history
// depth).
func (g *Game) Length() int { return len(g.history) }

// CaptureIndex returns the history depth of the last capturing move,
// or -1 if none has occurred.
func (g *Game) CaptureIndex() int { return g.captureIndex }

// Moves returns the moves played so far, in order. A terminal frame
// pushed by EndMatch records board.NullMove.
func (g *Game) Moves() []int {
	moves := make([]int, len(g.history))
	for i, fr := range g.history {
		moves[i] = fr.move
	}
	return moves
}

// ToBoard returns the external representation of the current state.
func (g *Game) ToBoard() board.Position {
	return board.Position{Houses: g.houses, Turn: g.turn}
}

// Seeds returns the seed count at house h, a pit or a store.
func (g *Game) Seeds(h int) int { return g.houses[h] }

// String renders the current position in wire notation.
func (g *Game) String() string {
	return g.ToBoard().String()
}

func sumRange(houses [14]int, left, right int) int {
	total := 0
	for i := left; i <= right; i++ {
		total += houses[i]
	}
	return total
}

// validateMoveArg reports an InvalidMove error for an out-of-range
// house index, used by the exported mutators before touching state.
func validateMoveArg(m int) error {
	if m < 0 || m > board.NorthRight {
		return fmt.Errorf("%w: house %d out of range", owareerr.ErrInvalidMove, m)
	}
	return nil
}
