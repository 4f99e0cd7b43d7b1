// Package search implements the iterative-deepening negamax engine
// (§4.8): a principal-variation search over the game package's staged
// generator, consulting a transposition cache, an endgame leaves
// database, and an opening book at the root, all behind small
// interfaces with no-op fallbacks so the core runs without any of
// them (§9).
package search

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dustin/go-humanize"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/cache"
	"github.com/joansalasoler/oware-sub000/internal/game"
)

// Search bounds and ply limit, mirroring the source engine's
// Infinity/MaxPly constants but scaled to Oware's exact win value.
const (
	Infinity = game.MaxScore + 1
	MaxPly   = 64
)

// Cache is the transposition-cache capability the search depends on.
// cache.Table satisfies it; a nil Cache makes every probe a miss.
type Cache interface {
	Find(hash board.Hash) bool
	GetScore() int
	GetMove() int
	GetDepth() int
	GetFlag() cache.Flag
	Store(hash board.Hash, score, move, depth int, flag cache.Flag)
}

// Leaves is the endgame-database capability. endgame.Prober satisfies
// it; a nil Leaves never short-circuits the recursion.
type Leaves interface {
	Find(g *game.Game) (score int, ok bool)
}

// Roots is the opening-book capability. book.Book satisfies it; a nil
// Roots means the root is always searched.
type Roots interface {
	RootMove(g *game.Game) int
}

// Limits bounds one computation: a depth limit, a move-time budget,
// or unbounded (Infinite) search until AbortComputation is called.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Infinite bool
}

// Options configures the tunable search behavior of §9's open
// questions: draw contempt and the aspiration window's starting
// half-width.
type Options struct {
	Contempt        int
	AspirationDelta int
}

// DefaultOptions mirrors the source engine's magic constants,
// preserved as tunables rather than hardcoded (§9).
var DefaultOptions = Options{
	Contempt:        -9,
	AspirationDelta: 25,
}

// Report is emitted after each completed iteration of the search
// (§4.8): the depth reached, its score, node count, elapsed time, and
// principal variation.
type Report struct {
	Depth    int
	Score    int
	Flag     cache.Flag
	Nodes    uint64
	Time     time.Duration
	PV       []int
	HashFull int
}

// String renders a report roughly as a UCI "info" line would, using
// humanize for the node count so large counts stay legible in logs.
func (r Report) String() string {
	pv := ""
	for i, m := range r.PV {
		if i > 0 {
			pv += " "
		}
		pv += board.MoveString(m)
	}
	return fmt.Sprintf("depth %d score %s nodes %s time %s pv %s",
		r.Depth, FormatScore(r.Score), humanize.Comma(int64(r.Nodes)), r.Time, pv)
}

// Engine runs the negamax search over a single game.Game instance it
// does not own the lifecycle of: the embedder constructs the game,
// positions it, and hands it to the engine for the duration of one
// computation (§5: single-owner, no concurrent mutation).
type Engine struct {
	game    *game.Game
	cache   Cache
	leaves  Leaves
	roots   Roots
	options Options

	aborted atomic.Bool
	nodes   uint64

	rootSide board.Side
	pvLength [MaxPly]int
	pvTable  [MaxPly][MaxPly]int

	lastPV []int

	// OnInfo, if set, receives a Report after every completed
	// iteration of iterative deepening.
	OnInfo func(Report)
}

// New returns an engine that searches g, with cache as its
// transposition table. Leaves and Roots default to nil (no-op).
func New(g *game.Game, c Cache) *Engine {
	log.Printf("[search] engine created, contempt=%d aspiration=%d", DefaultOptions.Contempt, DefaultOptions.AspirationDelta)
	return &Engine{game: g, cache: c, options: DefaultOptions}
}

// SetLeaves installs the endgame-database collaborator.
func (e *Engine) SetLeaves(l Leaves) { e.leaves = l }

// SetRoots installs the opening-book collaborator.
func (e *Engine) SetRoots(r Roots) { e.roots = r }

// SetOptions overrides the tunable search behavior.
func (e *Engine) SetOptions(o Options) { e.options = o }

// Nodes returns the number of nodes visited by the last computation.
func (e *Engine) Nodes() uint64 { return e.nodes }

// AbortComputation sets the shared aborted flag, requested by the
// embedder (§5's third thread) or by the internal move-time timer.
// The search notices it cooperatively at node entry and unwinds.
func (e *Engine) AbortComputation() { e.aborted.Store(true) }

// ComputeBestMove runs the search under the given limits and returns
// the best move found and a prediction of the opponent's reply
// (PonderMove), or board.NullMove for either if none completed.
//
// A move-time limit is enforced by a timer goroutine racing the
// search goroutine, both joined by an errgroup (§5's two-thread
// model: one search thread, one timer thread).
func (e *Engine) ComputeBestMove(limits Limits) (best, ponder int) {
	e.aborted.Store(false)
	e.nodes = 0
	e.lastPV = nil
	e.rootSide = e.game.Turn()
	for i := range e.pvLength {
		e.pvLength[i] = 0
	}

	if e.roots != nil {
		if m := e.roots.RootMove(e.game); m != board.NullMove {
			e.lastPV = []int{m}
			return m, board.NullMove
		}
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth >= MaxPly {
		maxDepth = MaxPly - 1
	}

	var grp errgroup.Group
	if limits.MoveTime > 0 && !limits.Infinite {
		grp.Go(func() error {
			timer := time.NewTimer(limits.MoveTime)
			defer timer.Stop()
			<-timer.C
			e.aborted.Store(true)
			return nil
		})
	}

	grp.Go(func() error {
		e.iterativeDeepen(maxDepth)
		e.aborted.Store(true)
		return nil
	})

	_ = grp.Wait()

	best = board.NullMove
	if len(e.lastPV) > 0 {
		best = e.lastPV[0]
	}
	return best, e.PonderMove()
}

// PonderMove returns the predicted opponent reply from the last
// completed computation: the second move of its principal variation,
// or board.NullMove if none is known.
func (e *Engine) PonderMove() int {
	if len(e.lastPV) > 1 {
		return e.lastPV[1]
	}
	return board.NullMove
}

func (e *Engine) iterativeDeepen(maxDepth int) {
	prevScore := 0
	for depth := 1; depth <= maxDepth; depth++ {
		if e.aborted.Load() {
			return
		}
		start := time.Now()

		var score int
		var flag cache.Flag
		if depth >= 4 && prevScore > -game.MaxScore && prevScore < game.MaxScore {
			score, flag = e.aspirationSearch(depth, prevScore)
		} else {
			score = e.negamax(depth, 0, -Infinity, Infinity)
			flag = cache.Exact
		}

		if e.aborted.Load() && depth > 1 {
			return
		}

		prevScore = score
		e.lastPV = e.currentPV()

		hashFull := 0
		if e.cache != nil {
			if pf, ok := e.cache.(interface{ PermilleFull() int }); ok {
				hashFull = pf.PermilleFull()
			}
		}
		report := Report{
			Depth:    depth,
			Score:    score,
			Flag:     flag,
			Nodes:    e.nodes,
			Time:     time.Since(start),
			PV:       e.lastPV,
			HashFull: hashFull,
		}
		log.Printf("[search] %s", report)
		if e.OnInfo != nil {
			e.OnInfo(report)
		}

		if score >= game.MaxScore || score <= -game.MaxScore {
			return
		}
	}
}

// aspirationSearch re-searches with a widening window on fail-high or
// fail-low, per §4.8.
func (e *Engine) aspirationSearch(depth, prevScore int) (int, cache.Flag) {
	delta := e.options.AspirationDelta
	alpha, beta := prevScore-delta, prevScore+delta

	for {
		score := e.negamax(depth, 0, alpha, beta)
		if e.aborted.Load() {
			return score, cache.Exact
		}
		if score <= alpha {
			alpha -= delta * 2
			if alpha < -Infinity {
				alpha = -Infinity
			}
			continue
		}
		if score >= beta {
			beta += delta * 2
			if beta > Infinity {
				beta = Infinity
			}
			continue
		}
		return score, cache.Exact
	}
}

func (e *Engine) currentPV() []int {
	pv := make([]int, e.pvLength[0])
	copy(pv, e.pvTable[0][:e.pvLength[0]])
	return pv
}

// FormatScore renders a centipawn-style score, rendering scores within
// 100 of MaxScore as "win" or "loss".
func FormatScore(score int) string {
	if score >= game.MaxScore-100 {
		return "win"
	}
	if score <= -game.MaxScore+100 {
		return "loss"
	}
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
