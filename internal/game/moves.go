package game

import (
	"fmt"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/owareerr"
)

// feeds reports whether sowing from house h would drop at least one
// seed into a pit on the opponent's side.
func (g *Game) feeds(h int) bool {
	seeds := g.houses[h]
	if seeds == 0 {
		return false
	}
	mine := board.HouseSide(h)
	for i := 1; i <= seeds; i++ {
		if board.HouseSide(board.Reaper(h, i)) != mine {
			return true
		}
	}
	return false
}

// hasFeedingMove reports whether the side to move has any move at all
// that feeds the opponent. It governs the starvation rule of §6: when
// the opponent's side is empty, a feeding move is mandatory if one
// exists.
func (g *Game) hasFeedingMove() bool {
	left, right := board.LeftRight(g.turn)
	for h := left; h <= right; h++ {
		if g.houses[h] > 0 && g.feeds(h) {
			return true
		}
	}
	return false
}

// rivalEmpty reports whether every pit on the opponent's side holds
// zero seeds, using the maintained empty-pit mask.
func (g *Game) rivalEmpty() bool {
	opp := g.turn.Opponent()
	mask := uint16(board.SouthMask)
	if opp == board.North {
		mask = uint16(board.NorthMask)
	}
	return g.empty&mask == mask
}

// sowResult is the outcome of simulating a move without mutating the
// game: the resulting house counts, the landing house, and the number
// of seeds that would be captured (zero if the move does not capture).
type sowResult struct {
	after    [14]int
	landing  int
	captured int
}

// evaluateMove simulates sowing from house h and the capture that
// would follow, per §4.3. A capture requires landing on the
// opponent's side in a pit left holding two or three seeds, and is
// voided entirely by the grand-slam rule: if taking it would leave
// every one of the opponent's pits empty, no seeds are captured.
func (g *Game) evaluateMove(h int) sowResult {
	after := g.houses
	seeds := after[h]
	after[h] = 0

	pos := h
	for i := 1; i <= seeds; i++ {
		pos = board.Reaper(h, i)
		after[pos]++
	}

	opp := g.turn.Opponent()
	if board.HouseSide(pos) != opp {
		return sowResult{after: after, landing: pos}
	}

	left, _ := board.LeftRight(opp)
	total := 0
	p := pos
	for p >= left {
		v := after[p]
		if v != 2 && v != 3 {
			break
		}
		total += v
		p--
	}
	if total == 0 {
		return sowResult{after: after, landing: pos}
	}

	oppLeft, oppRight := board.LeftRight(opp)
	oppTotal := sumRange(after, oppLeft, oppRight)
	if oppTotal == total {
		// Grand-slam: the capture would empty the opponent's side
		// entirely, so no seeds are taken.
		return sowResult{after: after, landing: pos}
	}

	return sowResult{after: after, landing: pos, captured: total}
}

// isCaptureHouse reports whether playing house h would capture seeds.
func (g *Game) isCaptureHouse(h int) bool {
	return g.evaluateMove(h).captured > 0
}

// IsCapture reports whether the given legal move would capture seeds.
func (g *Game) IsCapture(m int) bool {
	return g.isCaptureHouse(m)
}

// IsLegal reports whether m is a legal move in the current position,
// per the legality rule of §6: the mover's pit must hold seeds, and
// if the opponent's side is empty, the move must feed the opponent
// whenever some move can — otherwise any sowing move is legal.
func (g *Game) IsLegal(m int) bool {
	if m < board.SouthLeft || m > board.NorthRight {
		return false
	}
	if board.HouseSide(m) != g.turn {
		return false
	}
	if g.houses[m] == 0 {
		return false
	}
	if g.rivalEmpty() && g.hasFeedingMove() {
		return g.feeds(m)
	}
	return true
}

// MakeMove plays move m, pushing a frame that records the exact prior
// state so UnmakeMove can restore it. The capture walk strips seeds
// from the opponent's pits back toward their leftmost pit and credits
// them to the mover's store; the capture index records the history
// depth of the most recent capture, used by repetition detection.
func (g *Game) MakeMove(m int) error {
	if err := validateMoveArg(m); err != nil {
		return err
	}
	if !g.IsLegal(m) {
		return fmt.Errorf("%w: %s is not legal in %s", owareerr.ErrInvalidMove, board.MoveString(m), g)
	}

	if err := g.ensureCapacity(len(g.history) + 1); err != nil {
		return err
	}

	result := g.evaluateMove(m)

	g.history = append(g.history, frame{
		houses:       g.houses,
		turn:         g.turn,
		move:         m,
		cursor:       g.cursor,
		empty:        g.empty,
		hash:         g.hash,
		captureIndex: g.captureIndex,
	})

	g.houses = result.after

	if result.captured > 0 {
		opp := g.turn.Opponent()
		left, _ := board.LeftRight(opp)
		p := result.landing
		for p >= left {
			v := g.houses[p]
			if v != 2 && v != 3 {
				break
			}
			g.houses[p] = 0
			p--
		}
		g.houses[board.StoreOf(g.turn)] += result.captured
		g.captureIndex = len(g.history)
	}

	g.turn = g.turn.Opponent()
	g.cursor = initialCursor(g.turn)
	g.recompute()
	return nil
}

// UnmakeMove reverts the last MakeMove or EndMatch, restoring the
// position, turn, generator cursor, empty mask, hash and capture
// index exactly as they were before it.
func (g *Game) UnmakeMove() {
	n := len(g.history) - 1
	fr := g.history[n]
	g.history = g.history[:n]
	g.houses = fr.houses
	g.turn = fr.turn
	g.cursor = fr.cursor
	g.empty = fr.empty
	g.hash = fr.hash
	g.captureIndex = fr.captureIndex
}
