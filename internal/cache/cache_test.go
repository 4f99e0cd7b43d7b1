package cache

import (
	"testing"

	"github.com/joansalasoler/oware-sub000/internal/board"
)

func TestStoreThenFindRoundTrips(t *testing.T) {
	tab := New(1 << 16)
	hash := board.ComputeHash(board.StartHouses, board.South)

	tab.Store(hash, 42, 3, 7, Exact)
	if !tab.Find(hash) {
		t.Fatalf("Find after Store returned false")
	}
	if got := tab.GetScore(); got != 42 {
		t.Errorf("GetScore() = %d, want 42", got)
	}
	if got := tab.GetMove(); got != 3 {
		t.Errorf("GetMove() = %d, want 3", got)
	}
	if got := tab.GetDepth(); got != 7 {
		t.Errorf("GetDepth() = %d, want 7", got)
	}
	if got := tab.GetFlag(); got != Exact {
		t.Errorf("GetFlag() = %v, want Exact", got)
	}
}

func TestFindMissReturnsFalse(t *testing.T) {
	tab := New(1 << 16)
	hash := board.ComputeHash(board.StartHouses, board.South)
	if tab.Find(hash) {
		t.Fatalf("Find on empty table returned true")
	}
}

func TestClearEmptiesTable(t *testing.T) {
	tab := New(1 << 12)
	hash := board.ComputeHash(board.StartHouses, board.North)
	tab.Store(hash, 1, 1, 1, Lower)
	tab.Clear()
	if tab.Find(hash) {
		t.Fatalf("Find after Clear returned true")
	}
	if tab.PermilleFull() != 0 {
		t.Fatalf("PermilleFull after Clear = %d, want 0", tab.PermilleFull())
	}
}

func TestResizeRoundsDownToPowerOfTwo(t *testing.T) {
	tab := New(1000 * bytesPerEntry)
	if len(tab.entries)&(len(tab.entries)-1) != 0 {
		t.Fatalf("entry count %d is not a power of two", len(tab.entries))
	}
}
