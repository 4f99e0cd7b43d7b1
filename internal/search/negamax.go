package search

import (
	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/cache"
)

// negamax implements §4.8's recursive search: probe and tighten the
// window from the cache, resolve a terminal node through Outcome (or
// contempt at a repetition), consult the leaves database, fall back
// to the heuristic at the horizon, and otherwise walk the staged
// generator negating the window at each reply.
func (e *Engine) negamax(depth, ply int, alpha, beta int) int {
	e.nodes++
	e.pvLength[ply] = ply

	if e.nodes&1023 == 0 && e.aborted.Load() {
		return 0
	}

	if ply > 0 && e.game.IsRepetition() {
		return e.contemptScore()
	}

	if e.game.HasEnded() {
		return int(e.game.Turn()) * e.game.Outcome()
	}

	hash := e.game.Hash()
	ttMove := board.NullMove

	if e.cache != nil && e.cache.Find(hash) {
		ttMove = e.cache.GetMove()
		if e.cache.GetDepth() >= depth {
			score := e.cache.GetScore()
			switch e.cache.GetFlag() {
			case cache.Exact:
				return score
			case cache.Lower:
				if score > alpha {
					alpha = score
				}
			case cache.Upper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if e.leaves != nil {
		if score, ok := e.leaves.Find(e.game); ok {
			return score
		}
	}

	if depth <= 0 {
		return int(e.game.Turn()) * e.game.Score()
	}

	bestScore := -Infinity
	bestMove := board.NullMove
	flag := cache.Upper

	tryMove := func(m int) bool {
		if err := e.game.MakeMove(m); err != nil {
			return true
		}
		score := -e.negamax(depth-1, ply+1, -beta, -alpha)
		e.game.UnmakeMove()

		if e.aborted.Load() {
			return false
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				flag = cache.Exact
				e.updatePV(ply, m)
			}
		}

		if score >= beta {
			flag = cache.Lower
			return false
		}
		return true
	}

	if ttMove != board.NullMove && e.game.IsLegal(ttMove) {
		if !tryMove(ttMove) {
			if e.cache != nil && !e.aborted.Load() {
				e.cache.Store(hash, bestScore, bestMove, depth, flag)
			}
			return bestScore
		}
	}

	e.game.ResetCursor()
	for {
		m := e.game.NextMove()
		if m == board.NullMove {
			break
		}
		if m == ttMove {
			continue
		}
		if !tryMove(m) {
			break
		}
	}

	if e.aborted.Load() {
		return 0
	}

	if e.cache != nil {
		e.cache.Store(hash, bestScore, bestMove, depth, flag)
	}

	return bestScore
}

// updatePV copies the child's principal variation up into ply's slot
// after a new best move is found, per the standard triangular PV
// table technique.
func (e *Engine) updatePV(ply, move int) {
	e.pvTable[ply][ply] = move
	for j := ply + 1; j < e.pvLength[ply+1]; j++ {
		e.pvTable[ply][j] = e.pvTable[ply+1][j]
	}
	e.pvLength[ply] = e.pvLength[ply+1]
}

// contemptScore returns the configured draw contempt from the
// engine's own perspective (§9's open question): a fixed bias toward
// or against draws for whichever side the engine is playing as,
// expressed relative to the side to move the way every other score
// in this search is.
func (e *Engine) contemptScore() int {
	if e.game.Turn() == e.rootSide {
		return e.options.Contempt
	}
	return -e.options.Contempt
}
