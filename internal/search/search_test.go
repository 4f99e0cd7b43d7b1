package search

import (
	"testing"
	"time"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/cache"
	"github.com/joansalasoler/oware-sub000/internal/game"
)

func TestComputeBestMoveReturnsLegalMoveAtDepth(t *testing.T) {
	g := game.New()
	eng := New(g, cache.New(1<<20))

	best, _ := eng.ComputeBestMove(Limits{Depth: 6})
	if best == board.NullMove {
		t.Fatal("ComputeBestMove returned NullMove for the starting position")
	}

	legal := false
	for _, m := range g.LegalMoves() {
		if m == best {
			legal = true
		}
	}
	if !legal {
		t.Fatalf("ComputeBestMove returned %d, not a legal move", best)
	}
	t.Logf("best move: %s, nodes: %d", board.MoveString(best), eng.Nodes())
}

func TestComputeBestMoveRespectsMoveTime(t *testing.T) {
	g := game.New()
	eng := New(g, cache.New(1<<20))

	start := time.Now()
	best, _ := eng.ComputeBestMove(Limits{MoveTime: 100 * time.Millisecond})
	elapsed := time.Since(start)

	if best == board.NullMove {
		t.Fatal("ComputeBestMove returned NullMove")
	}
	if elapsed > 2*time.Second {
		t.Fatalf("ComputeBestMove took %s, want roughly the move-time budget", elapsed)
	}
}

func TestAbortComputationStopsTheSearch(t *testing.T) {
	g := game.New()
	eng := New(g, cache.New(1<<20))

	done := make(chan struct{})
	go func() {
		eng.ComputeBestMove(Limits{Depth: MaxPly - 1})
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	eng.AbortComputation()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ComputeBestMove did not return after AbortComputation")
	}
}

func TestPonderMoveIsSecondPVMove(t *testing.T) {
	g := game.New()
	eng := New(g, cache.New(1<<20))

	best, ponder := eng.ComputeBestMove(Limits{Depth: 6})
	if best == board.NullMove {
		t.Fatal("ComputeBestMove returned NullMove")
	}
	if got := eng.PonderMove(); got != ponder {
		t.Fatalf("PonderMove() = %d, ComputeBestMove ponder = %d", got, ponder)
	}
}

func TestRootMoveSkipsSearchEntirely(t *testing.T) {
	g := game.New()
	eng := New(g, cache.New(1<<20))
	eng.SetRoots(stubRoots{move: board.SouthLeft + 3})

	best, _ := eng.ComputeBestMove(Limits{Depth: 10})
	if best != board.SouthLeft+3 {
		t.Fatalf("ComputeBestMove = %d, want the book's move %d", best, board.SouthLeft+3)
	}
	if eng.Nodes() != 0 {
		t.Fatalf("expected no nodes searched when the book supplies a move, got %d", eng.Nodes())
	}
}

type stubRoots struct{ move int }

func (s stubRoots) RootMove(*game.Game) int { return s.move }

func TestFormatScoreHandlesWinAndLoss(t *testing.T) {
	if got := FormatScore(game.MaxScore); got != "win" {
		t.Fatalf("FormatScore(MaxScore) = %q, want win", got)
	}
	if got := FormatScore(-game.MaxScore); got != "loss" {
		t.Fatalf("FormatScore(-MaxScore) = %q, want loss", got)
	}
	if got := FormatScore(150); got != "1.50" {
		t.Fatalf("FormatScore(150) = %q, want 1.50", got)
	}
}
