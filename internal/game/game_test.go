package game

import (
	"testing"

	"github.com/joansalasoler/oware-sub000/internal/board"
)

func TestStartPositionHasSixLegalMoves(t *testing.T) {
	g := New()
	moves := g.LegalMoves()
	if len(moves) != 6 {
		t.Fatalf("legal moves from start = %v, want 6 moves", moves)
	}
	for _, m := range moves {
		if !g.IsLegal(m) {
			t.Errorf("LegalMoves returned %d but IsLegal(%d) is false", m, m)
		}
	}
	for h := board.SouthLeft; h <= board.NorthRight; h++ {
		inSet := false
		for _, m := range moves {
			if m == h {
				inSet = true
			}
		}
		if g.IsLegal(h) != inSet {
			t.Errorf("IsLegal(%d) = %v, membership in LegalMoves = %v", h, g.IsLegal(h), inSet)
		}
	}
}

func TestGeneratorAgreesWithLegalMoves(t *testing.T) {
	g := New()
	g.ResetCursor()
	seen := map[int]bool{}
	for {
		m := g.NextMove()
		if m == board.NullMove {
			break
		}
		seen[m] = true
	}
	for _, m := range g.LegalMoves() {
		if !seen[m] {
			t.Errorf("NextMove never yielded legal move %d", m)
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	g := New()
	before := g.ToBoard()
	beforeHash := g.Hash()

	for _, m := range []int{4, 9, 1, 8} {
		if !g.IsLegal(m) {
			continue
		}
		if err := g.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%d): %v", m, err)
		}
	}
	for g.Length() > 0 {
		g.UnmakeMove()
	}

	if g.ToBoard() != before {
		t.Fatalf("round trip position mismatch: got %+v, want %+v", g.ToBoard(), before)
	}
	if g.Hash() != beforeHash {
		t.Fatalf("round trip hash mismatch: got %d, want %d", g.Hash(), beforeHash)
	}
}

func TestCaptureCreditsMoverStore(t *testing.T) {
	g := New()
	houses := [14]int{0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 46, 0, 0, 0}
	if err := g.SetBoard(board.Position{Houses: houses, Turn: board.South}); err != nil {
		t.Fatalf("SetBoard: %v", err)
	}
	if !g.IsCapture(5) {
		t.Fatalf("expected house 5 to capture")
	}
	if err := g.MakeMove(5); err != nil {
		t.Fatalf("MakeMove(5): %v", err)
	}
	if g.Seeds(6) != 0 {
		t.Errorf("captured pit 6 = %d, want 0", g.Seeds(6))
	}
	if g.Seeds(board.SouthStore) != 2 {
		t.Errorf("south store = %d, want 2", g.Seeds(board.SouthStore))
	}
}

func TestGrandSlamCaptureIsVoided(t *testing.T) {
	g := New()
	houses := [14]int{46, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0}
	if err := g.SetBoard(board.Position{Houses: houses, Turn: board.South}); err != nil {
		t.Fatalf("SetBoard: %v", err)
	}
	if g.IsCapture(5) {
		t.Fatalf("house 5 should not capture: it would empty north's side entirely")
	}
	if err := g.MakeMove(5); err != nil {
		t.Fatalf("MakeMove(5): %v", err)
	}
	if g.Seeds(6) != 2 {
		t.Errorf("pit 6 after voided capture = %d, want 2", g.Seeds(6))
	}
	if g.Seeds(board.SouthStore) != 0 {
		t.Errorf("south store after voided capture = %d, want 0", g.Seeds(board.SouthStore))
	}
}

func TestStarvationForcesFeedingMove(t *testing.T) {
	g := New()
	// South holds every seed; north's side is empty. South must play a
	// move that feeds north if one exists.
	houses := [14]int{0, 0, 0, 0, 0, 13, 0, 0, 0, 0, 0, 0, 35, 0}
	if err := g.SetBoard(board.Position{Houses: houses, Turn: board.South}); err != nil {
		t.Fatalf("SetBoard: %v", err)
	}
	if !g.IsLegal(5) {
		t.Fatalf("house 5 feeds north and should be legal")
	}
	moves := g.LegalMoves()
	if len(moves) != 1 || moves[0] != 5 {
		t.Fatalf("legal moves = %v, want only house 5", moves)
	}
}

func TestEndMatchRakesRemainingSeeds(t *testing.T) {
	g := New()
	houses := [14]int{2, 2, 2, 2, 2, 0, 3, 3, 3, 3, 2, 1, 10, 13}
	if err := g.SetBoard(board.Position{Houses: houses, Turn: board.South}); err != nil {
		t.Fatalf("SetBoard: %v", err)
	}
	g.EndMatch()
	if g.Seeds(board.SouthStore) != 20 {
		t.Errorf("south store after rake = %d, want 20", g.Seeds(board.SouthStore))
	}
	if g.Seeds(board.NorthStore) != 28 {
		t.Errorf("north store after rake = %d, want 28", g.Seeds(board.NorthStore))
	}
	for h := 0; h < board.BoardSize; h++ {
		if g.Seeds(h) != 0 {
			t.Errorf("pit %d after rake = %d, want 0", h, g.Seeds(h))
		}
	}
	if !g.HasEnded() {
		t.Fatalf("game should have ended: north store exceeds SeedGoal")
	}
	if g.Winner() != WinnerNorth {
		t.Fatalf("winner = %v, want north", g.Winner())
	}
}

func TestPerftDepthZeroIsOne(t *testing.T) {
	g := New()
	if n := g.Perft(0); n != 1 {
		t.Fatalf("Perft(0) = %d, want 1", n)
	}
}

func TestPerftDepthOneMatchesLegalMoveCount(t *testing.T) {
	g := New()
	want := uint64(len(g.LegalMoves()))
	if n := g.Perft(1); n != want {
		t.Fatalf("Perft(1) = %d, want %d", n, want)
	}
}

func TestHistoryCapacityGrowsPastMinimum(t *testing.T) {
	g := New()
	if err := g.ensureCapacity(200); err != nil {
		t.Fatalf("ensureCapacity: %v", err)
	}
	if cap(g.history) < 200 {
		t.Fatalf("capacity = %d, want at least 200", cap(g.history))
	}
}
