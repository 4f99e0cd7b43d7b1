package game

import "github.com/joansalasoler/oware-sub000/internal/board"

// Stage is one of the four phases of the staged move generator (§4.4):
// attacking captures first, then feeding moves mandated by the
// opponent's starvation, then the mover's own defensive and remaining
// moves.
type Stage uint8

const (
	StageAttack Stage = iota
	StageMandatory
	StageDefense
	StageRemaining
)

// Cursor packs the generator's resumable state as (next_house<<2)|stage
// per §4.4, so it can be saved and restored as a single value in a
// history frame or by an external caller via GetCursor/SetCursor.
type Cursor int32

func packCursor(house int, stage Stage) Cursor {
	return Cursor(int32(house)<<2 | int32(stage))
}

// House returns the next house the generator will examine.
func (c Cursor) House() int { return int(int32(c) >> 2) }

// StageOf returns the generator stage the cursor is positioned in.
func (c Cursor) StageOf() Stage { return Stage(int32(c) & 0x3) }

// initialCursor returns the cursor a fresh generator starts from for
// the given side: the attack stage, scanning from the rightmost pit.
func initialCursor(side board.Side) Cursor {
	_, right := board.LeftRight(side)
	return packCursor(right, StageAttack)
}

// GetCursor returns the generator's current resumable state.
func (g *Game) GetCursor() Cursor { return g.cursor }

// SetCursor restores a previously saved generator state.
func (g *Game) SetCursor(c Cursor) { g.cursor = c }

// ResetCursor rewinds the generator to the start of the attack stage
// for the side to move.
func (g *Game) ResetCursor() { g.cursor = initialCursor(g.turn) }

// NextMove advances the staged generator and returns the next legal
// move, or board.NullMove once exhausted. Stages run in order:
//
//   - ATTACK: feeding moves that capture, scanned right to left.
//   - MANDATORY: feeding moves that do not capture. Only reachable
//     when the opponent's side is empty; skipped otherwise.
//   - DEFENSE: non-capturing moves from a pit holding one or two
//     seeds.
//   - REMAINING: non-capturing moves from a pit holding three or
//     more seeds.
//
// When the opponent's side is empty and any ATTACK or MANDATORY move
// exists, DEFENSE and REMAINING are skipped entirely: the starvation
// rule makes only feeding moves legal in that position.
func (g *Game) NextMove() int {
	left, right := board.LeftRight(g.turn)

	for {
		stage := g.cursor.StageOf()
		house := g.cursor.House()

		switch stage {
		case StageAttack:
			for house >= left {
				h := house
				house--
				if g.houses[h] > 0 && g.feeds(h) && g.isCaptureHouse(h) {
					g.cursor = packCursor(house, StageAttack)
					return h
				}
			}
			if g.rivalEmpty() {
				g.cursor = packCursor(right, StageMandatory)
			} else {
				g.cursor = packCursor(right, StageDefense)
			}

		case StageMandatory:
			for house >= left {
				h := house
				house--
				if g.houses[h] > 0 && g.feeds(h) && !g.isCaptureHouse(h) {
					g.cursor = packCursor(house, StageMandatory)
					return h
				}
			}
			if g.hasFeedingMove() {
				g.cursor = packCursor(left-1, StageRemaining)
				return board.NullMove
			}
			g.cursor = packCursor(right, StageDefense)

		case StageDefense:
			for house >= left {
				h := house
				house--
				seeds := g.houses[h]
				if (seeds == 1 || seeds == 2) && !g.isCaptureHouse(h) {
					g.cursor = packCursor(house, StageDefense)
					return h
				}
			}
			g.cursor = packCursor(right, StageRemaining)

		case StageRemaining:
			for house >= left {
				h := house
				house--
				if g.houses[h] >= 3 && !g.isCaptureHouse(h) {
					g.cursor = packCursor(house, StageRemaining)
					return h
				}
			}
			g.cursor = packCursor(left-1, StageRemaining)
			return board.NullMove
		}
	}
}

// LegalMoves returns the full set of legal moves in the current
// position, by exhausting a fresh generator and restoring the
// caller's cursor afterward.
func (g *Game) LegalMoves() []int {
	saved := g.cursor
	g.ResetCursor()
	moves := make([]int, 0, board.BoardSize)
	for {
		m := g.NextMove()
		if m == board.NullMove {
			break
		}
		moves = append(moves, m)
	}
	g.cursor = saved
	return moves
}

// HasLegalMoves reports whether the side to move has any legal move,
// without allocating a slice.
func (g *Game) HasLegalMoves() bool {
	left, right := board.LeftRight(g.turn)
	for h := left; h <= right; h++ {
		if g.IsLegal(h) {
			return true
		}
	}
	return false
}
