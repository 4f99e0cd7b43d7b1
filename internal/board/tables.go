package board

// maxRunningSeeds and maxWalkIndex bound the binomial coefficient table:
// the perfect hash (§4.2) walks all 14 houses with a running seed count
// up to SeedCount, and the endgame indexer (§4.6) reuses the same table
// with columns shifted by a half-board offset.
const (
	maxRunningSeeds = SeedCount + 1
	maxWalkIndex    = BoardSize + 2
)

// coeffTable[n][i] = C(n+i, i), the number of ways to distribute n seeds
// over i+1 non-negative houses. Computed once at init via Pascal's
// triangle recurrence C(n+i,i) = C(n+i-1,i-1) + C(n+i-1,i).
var coeffTable [maxRunningSeeds + 1][maxWalkIndex + 1]uint64

func init() {
	for n := 0; n <= maxRunningSeeds; n++ {
		coeffTable[n][0] = 1
	}
	for i := 0; i <= maxWalkIndex; i++ {
		coeffTable[0][i] = 1
	}
	for n := 1; n <= maxRunningSeeds; n++ {
		for i := 1; i <= maxWalkIndex; i++ {
			coeffTable[n][i] = coeffTable[n-1][i] + coeffTable[n][i-1]
		}
	}
}

// Coeff returns C(n+i, i) from the precomputed binomial table, used by
// both the perfect hash and the endgame-table indexer.
func Coeff(n, i int) uint64 {
	return coeffTable[n][i]
}

// reaperTable[from][sown] is the landing house for a sowing of sown
// seeds starting at house `from`, skipping the origin house on every
// lap. reaperTable[from][0] is NullMove: an empty pit cannot be played.
var reaperTable [BoardSize][SeedCount + 1]int

func init() {
	for from := 0; from < BoardSize; from++ {
		reaperTable[from][0] = NullMove
		pos := from
		for sown := 1; sown <= SeedCount; sown++ {
			pos = (pos + 1) % BoardSize
			if pos == from {
				pos = (pos + 1) % BoardSize
			}
			reaperTable[from][sown] = pos
		}
	}
}

// Reaper returns the landing house for sowing `sown` seeds starting at
// house `from`.
func Reaper(from, sown int) int {
	return reaperTable[from][sown]
}
