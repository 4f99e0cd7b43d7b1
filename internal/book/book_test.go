package book

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/game"
)

func buildRecord(hash uint64, scores [6]int16) []byte {
	buf := make([]byte, recordSize)
	binary.BigEndian.PutUint64(buf[0:8], hash)
	for i, s := range scores {
		binary.BigEndian.PutUint16(buf[8+i*2:10+i*2], uint16(s))
	}
	return buf
}

func buildFile(records [][]byte, withChecksum bool) []byte {
	var payload bytes.Buffer
	for _, r := range records {
		payload.Write(r)
	}

	var buf bytes.Buffer
	buf.WriteString(signature + "\n")
	if withChecksum {
		fmt.Fprintf(&buf, "Checksum:%x\n", xxhash.Sum64(payload.Bytes()))
	}
	buf.WriteString("\n")
	buf.Write(payload.Bytes())
	return buf.Bytes()
}

func TestRootMoveFindsStartPosition(t *testing.T) {
	g := game.New()
	hash := uint64(g.Hash())
	scores := [6]int16{10, NoData, 30, NoData, -5, 0}

	data := buildFile([][]byte{buildRecord(hash, scores)}, true)
	b, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	move := b.RootMove(g)
	if move != board.SouthLeft+2 {
		t.Fatalf("RootMove = %d, want house %d (highest score)", move, board.SouthLeft+2)
	}
}

func TestRootMoveMissesUnknownPosition(t *testing.T) {
	data := buildFile(nil, false)
	b, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	g := game.New()
	if move := b.RootMove(g); move != board.NullMove {
		t.Fatalf("RootMove on empty book = %d, want NullMove", move)
	}
}

func TestReadRejectsUnsortedRecords(t *testing.T) {
	data := buildFile([][]byte{
		buildRecord(2, [6]int16{}),
		buildRecord(1, [6]int16{}),
	}, false)
	if _, err := Read(bytes.NewReader(data)); err == nil {
		t.Fatalf("Read should reject unsorted records")
	}
}
