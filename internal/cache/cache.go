// Package cache implements the search's transposition table (§4.7): a
// fixed-capacity, open-addressed table keyed by the game's perfect
// hash, storing a bounded score with a replacement policy of always
// overwrite by slot.
package cache

import "github.com/joansalasoler/oware-sub000/internal/board"

// Flag indicates how a stored score bounds the true value.
type Flag uint8

const (
	Empty Flag = iota
	Exact
	Lower
	Upper
)

// entry is a fixed-size cache record (§3's "Cache entry"): a
// verification tag, the best move found, its bounded score, the
// search depth it was computed at, and the bound kind.
type entry struct {
	tag   uint32
	move  int
	score int16
	depth int8
	flag  Flag
}

// Table is the fixed-memory transposition cache. It is owned by a
// single search and never accessed concurrently (§5).
type Table struct {
	entries []entry
	mask    uint64
	current int // index of the entry matched by the last Find, or -1
}

const bytesPerEntry = 16

// New allocates a table sized to approximately sizeBytes, rounded
// down to a power of two entry count for fast masking.
func New(sizeBytes int) *Table {
	t := &Table{current: -1}
	t.Resize(sizeBytes)
	return t
}

// Resize reallocates the table to approximately sizeBytes, discarding
// all existing entries.
func (t *Table) Resize(sizeBytes int) {
	count := roundDownToPowerOf2(uint64(sizeBytes / bytesPerEntry))
	if count == 0 {
		count = 1
	}
	t.entries = make([]entry, count)
	t.mask = count - 1
	t.current = -1
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Clear empties the table.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.current = -1
}

// Find looks up hash in the table and, if present, sets it as the
// current entry for the Get* accessors. Returns whether it was found.
func (t *Table) Find(hash board.Hash) bool {
	idx := uint64(hash) & t.mask
	e := t.entries[idx]
	if e.flag == Empty || e.tag != tagOf(hash) {
		t.current = -1
		return false
	}
	t.current = int(idx)
	return true
}

func tagOf(hash board.Hash) uint32 {
	return uint32(uint64(hash) >> 20)
}

// GetScore returns the score of the current entry set by Find.
func (t *Table) GetScore() int { return int(t.entries[t.current].score) }

// GetMove returns the best move of the current entry set by Find.
func (t *Table) GetMove() int { return t.entries[t.current].move }

// GetDepth returns the search depth the current entry was stored at.
func (t *Table) GetDepth() int { return int(t.entries[t.current].depth) }

// GetFlag returns the bound kind of the current entry.
func (t *Table) GetFlag() Flag { return t.entries[t.current].flag }

// Store records a search result for hash, overwriting whatever
// previously occupied its slot (§4.7: "always by slot, no chaining").
func (t *Table) Store(hash board.Hash, score, move, depth int, flag Flag) {
	idx := uint64(hash) & t.mask
	t.entries[idx] = entry{
		tag:   tagOf(hash),
		move:  move,
		score: int16(score),
		depth: int8(depth),
		flag:  flag,
	}
}

// PermilleFull samples up to the first 1000 slots and reports how
// many parts per thousand are occupied.
func (t *Table) PermilleFull() int {
	sample := 1000
	if len(t.entries) < sample {
		sample = len(t.entries)
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if t.entries[i].flag != Empty {
			used++
		}
	}
	return used * 1000 / sample
}

// Discharge is the hook for periodic ageing of the table, and it does
// nothing: the core's replacement policy is always-by-slot (§9's open question resolves
// this as the deliberate choice, since the engine has no Lazy-SMP
// search generations to track); Discharge is a no-op retained so
// callers that expect to age the table between searches have a stable
// place to call into.
func (t *Table) Discharge() {}
