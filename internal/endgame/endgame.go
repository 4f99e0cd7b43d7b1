// Package endgame implements the read-only endgame database reader
// (§4.6): a memory-resident, perfectly-indexed table of exact scores
// for positions with few seeds remaining on the board.
package endgame

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/game"
	"github.com/joansalasoler/oware-sub000/internal/owareerr"
)

const signature = "Oware Endgames "

// Flag is the two-bit kind stored in each endgame byte.
type Flag uint8

const (
	FlagEmpty Flag = iota
	FlagCycle
	flagReserved
	FlagExact
)

// lengths[k] = sum_{i=0..k} C(i+12,12), the cumulative count of
// indexable positions for a database covering up to k seeds on the
// board (§6's LENGTHS table), reusing the board package's binomial
// coefficients.
var lengths [16]uint64

func init() {
	var sum uint64
	for k := 0; k < 16; k++ {
		sum += board.Coeff(k, 12)
		lengths[k] = sum
	}
}

// Database is a loaded, in-memory endgame table for a fixed seed
// bound K.
type Database struct {
	k       int
	payload []byte
}

// Prober probes a loaded Database for the search's leaves
// collaborator, returning an exact score as soon as few enough seeds
// remain on the board.
type Prober struct {
	db *Database
}

// NewProber wraps a loaded Database for use as the search's leaves
// collaborator.
func NewProber(db *Database) *Prober { return &Prober{db: db} }

// Load reads and validates an endgame database file.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[endgame] failed to open %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", owareerr.ErrDatabaseUnavailable, err)
	}
	defer f.Close()

	db, err := Read(f)
	if err != nil {
		log.Printf("[endgame] failed to read %s: %v", path, err)
		return nil, err
	}
	log.Printf("[endgame] loaded %s: K=%d, %d bytes", path, db.k, len(db.payload))
	return db, nil
}

// Read parses an endgame database from any reader: the text header
// (signature line, Key:Value lines, blank line) followed by the
// binary payload.
func Read(r io.Reader) (*Database, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: reading signature: %v", owareerr.ErrDatabaseCorrupt, err)
	}
	if !strings.HasPrefix(line, signature) {
		return nil, fmt.Errorf("%w: bad signature %q", owareerr.ErrDatabaseCorrupt, line)
	}

	headers := map[string]string{}
	for {
		line, err = br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: reading header: %v", owareerr.ErrDatabaseCorrupt, err)
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}
		parts := strings.SplitN(trimmed, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed header line %q", owareerr.ErrDatabaseCorrupt, trimmed)
		}
		headers[parts[0]] = parts[1]
	}

	k, err := strconv.Atoi(headers["K"])
	if err != nil || k < 0 || k > 15 {
		return nil, fmt.Errorf("%w: invalid or missing K header", owareerr.ErrDatabaseCorrupt)
	}

	want := int(lengths[k]) + 1
	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading payload: %v", owareerr.ErrDatabaseCorrupt, err)
	}
	if len(payload) != want {
		return nil, fmt.Errorf("%w: payload length %d, want %d", owareerr.ErrDatabaseCorrupt, len(payload), want)
	}

	if sum, ok := headers["Checksum"]; ok {
		want, err := strconv.ParseUint(sum, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed Checksum header", owareerr.ErrDatabaseCorrupt)
		}
		if xxhash.Sum64(payload) != want {
			return nil, fmt.Errorf("%w: checksum mismatch", owareerr.ErrDatabaseCorrupt)
		}
	}

	return &Database{k: k, payload: payload}, nil
}

// southIndex ranks houses 11 down to 0 with a running seed count
// starting from n0, per §4.6's south-to-move indexing.
func southIndex(g *game.Game, n0 int) uint64 {
	var rank uint64
	n := n0
	for i := board.NorthRight; i >= board.SouthLeft; i-- {
		rank += board.Coeff(n, i)
		n += g.Seeds(i)
	}
	return rank
}

// northIndex walks the rival half first (south's pits, using columns
// shifted by +6) then the mover's own half (north's pits, columns
// shifted by -6), halving the table by reusing the same coefficient
// columns for both halves (§4.6's north-to-move indexing).
func northIndex(g *game.Game, n0 int) uint64 {
	var rank uint64
	n := n0
	for i := board.SouthRight; i >= board.SouthLeft; i-- {
		rank += board.Coeff(n, i+6)
		n += g.Seeds(i)
	}
	for i := board.NorthRight; i >= board.NorthLeft; i-- {
		rank += board.Coeff(n, i-6)
		n += g.Seeds(i)
	}
	return rank
}

// Find probes the database for the current position, returning the
// exact score from the side-to-move's perspective and whether an
// entry applies. A miss (false) means the caller should fall back to
// the heuristic or continue searching.
func (p *Prober) Find(g *game.Game) (score int, ok bool) {
	if p == nil || p.db == nil {
		return 0, false
	}
	db := p.db

	south := g.Seeds(board.SouthStore)
	north := g.Seeds(board.NorthStore)
	captured := south + north
	if captured < board.SeedCount-db.k {
		return 0, false
	}

	n0 := (15 - db.k) + captured
	var idx uint64
	mover := g.Turn()
	if mover == board.South {
		idx = southIndex(g, n0)
	} else {
		idx = northIndex(g, n0)
	}
	if idx >= uint64(len(db.payload)) {
		return 0, false
	}

	raw := db.payload[idx]
	flag := Flag(raw & 3)
	offset := int(raw >> 2)

	if flag == FlagEmpty {
		return 0, false
	}
	lastWasCapture := g.Length() > 0 && g.Length() == g.CaptureIndex()
	if flag == FlagCycle && !lastWasCapture {
		return 0, false
	}

	ownStore := south
	if mover == board.North {
		ownStore = north
	}
	total := offset + ownStore

	if total == board.SeedGoal {
		return 0, true
	}

	favorsMover := total > board.SeedGoal
	switch flag {
	case FlagCycle:
		magnitude := captured << 4
		if mover == board.North {
			favorsMover = !favorsMover
		}
		if favorsMover {
			return magnitude, true
		}
		return -magnitude, true
	default: // FlagExact
		if favorsMover {
			return game.MaxScore, true
		}
		return -game.MaxScore, true
	}
}
