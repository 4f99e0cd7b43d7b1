package endgame

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/joansalasoler/oware-sub000/internal/game"
)

func buildFile(k int, payload []byte, withChecksum bool) []byte {
	var buf bytes.Buffer
	buf.WriteString(signature + "\n")
	fmt.Fprintf(&buf, "K:%d\n", k)
	if withChecksum {
		fmt.Fprintf(&buf, "Checksum:%x\n", xxhash.Sum64(payload))
	}
	buf.WriteString("\n")
	buf.Write(payload)
	return buf.Bytes()
}

func TestReadRejectsShortPayload(t *testing.T) {
	data := buildFile(0, make([]byte, lengths[0]+1), false)
	if _, err := Read(bytes.NewReader(data)); err != nil {
		t.Fatalf("Read valid K=0 file: %v", err)
	}

	bad := buildFile(0, []byte{}, false)
	if _, err := Read(bytes.NewReader(bad)); err == nil {
		t.Fatalf("Read should reject an empty payload for K=0")
	}
}

func TestReadValidatesChecksum(t *testing.T) {
	payload := make([]byte, lengths[0]+1)
	data := buildFile(0, payload, true)
	if _, err := Read(bytes.NewReader(data)); err != nil {
		t.Fatalf("Read with valid checksum: %v", err)
	}

	corrupted := buildFile(0, payload, true)
	corrupted[len(corrupted)-1] ^= 0xFF
	if _, err := Read(bytes.NewReader(corrupted)); err == nil {
		t.Fatalf("Read should reject a corrupted payload with checksum mismatch")
	}
}

func TestFindMissesWhenTooManySeedsRemain(t *testing.T) {
	payload := make([]byte, lengths[5]+1)
	data := buildFile(5, payload, false)
	db, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	p := NewProber(db)
	g := game.New()
	if _, ok := p.Find(g); ok {
		t.Fatalf("Find should miss: start position has 48 seeds on board, K=5")
	}
}
