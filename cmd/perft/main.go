// Command perft counts leaf nodes reachable from a position to a
// given depth, for validating the move generator and make/unmake
// pair against known node counts. It is a debug entry point, not a
// protocol dispatcher.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joansalasoler/oware-sub000/internal/board"
	"github.com/joansalasoler/oware-sub000/internal/game"
)

func main() {
	position := flag.String("position", "", "starting position notation (default: the game's opening position)")
	depth := flag.Int("depth", 6, "perft depth")
	flag.Parse()

	g := game.New()
	if *position != "" {
		p, err := board.ParsePosition(*position)
		if err != nil {
			log.Fatalf("parsing position: %v", err)
		}
		if err := g.SetBoard(p); err != nil {
			log.Fatalf("setting position: %v", err)
		}
	}

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		nodes := g.Perft(d)
		elapsed := time.Since(start)
		fmt.Printf("depth %2d: %12d nodes in %s\n", d, nodes, elapsed)
	}
}
