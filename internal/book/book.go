// Package book implements the read-only opening-book reader (§6's
// opening-book file format): a sorted on-disk table of per-move
// scores, probed at the search root by exact hash lookup.
package book

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/game"
	"github.com/joansalasoler/oware-sub000/internal/owareerr"
)

const signature = "Oware Opening Book "

// NoData is the sentinel score meaning "no data for this move",
// Short.MIN in the source format.
const NoData = -32768

const recordSize = 20

// record is one 20-byte entry: a position hash and six per-move
// scores, one per side-of-board move slot (A-F or a-f).
type record struct {
	hash   uint64
	scores [6]int16
}

// Book is a loaded opening book, its records sorted by hash ascending
// to support binary search.
type Book struct {
	records []record
}

// Load reads and validates an opening book file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[book] failed to open %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", owareerr.ErrDatabaseUnavailable, err)
	}
	defer f.Close()

	b, err := Read(f)
	if err != nil {
		log.Printf("[book] failed to read %s: %v", path, err)
		return nil, err
	}
	log.Printf("[book] loaded %s: %d records", path, len(b.records))
	return b, nil
}

// Read parses an opening book from any reader: the text header
// (signature line, Key:Value lines, blank line) followed by the
// sorted sequence of 20-byte binary records.
func Read(r io.Reader) (*Book, error) {
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

	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading payload: %v", owareerr.ErrDatabaseCorrupt, err)
	}
	if len(payload)%recordSize != 0 {
		return nil, fmt.Errorf("%w: payload length %d is not a multiple of %d", owareerr.ErrDatabaseCorrupt, len(payload), recordSize)
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

	count := len(payload) / recordSize
	records := make([]record, count)
	for i := 0; i < count; i++ {
		buf := payload[i*recordSize : (i+1)*recordSize]
		rec := record{hash: binary.BigEndian.Uint64(buf[0:8])}
		for s := 0; s < 6; s++ {
			off := 8 + s*2
			rec.scores[s] = int16(binary.BigEndian.Uint16(buf[off : off+2]))
		}
		records[i] = rec
	}

	if !sort.SliceIsSorted(records, func(i, j int) bool { return records[i].hash < records[j].hash }) {
		return nil, fmt.Errorf("%w: records are not sorted by hash", owareerr.ErrDatabaseCorrupt)
	}

	return &Book{records: records}, nil
}

// find performs a binary search for the record matching hash,
// returning nil if none exists.
func (b *Book) find(hash uint64) *record {
	i := sort.Search(len(b.records), func(i int) bool { return b.records[i].hash >= hash })
	if i < len(b.records) && b.records[i].hash == hash {
		return &b.records[i]
	}
	return nil
}

// RootMove picks the best-scored legal move for the position, or
// board.NullMove if the book has no entry for this hash or no
// legal move carries a score.
func (b *Book) RootMove(g *game.Game) int {
	rec := b.find(uint64(g.Hash()))
	if rec == nil {
		return board.NullMove
	}

	left, _ := board.LeftRight(g.Turn())
	best := board.NullMove
	bestScore := int16(NoData)
	for _, m := range g.LegalMoves() {
		slot := m - left
		score := rec.scores[slot]
		if score == NoData {
			continue
		}
		if best == board.NullMove || score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best
}
