package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joansalasoler/oware-sub000/internal/owareerr"
)

// Position is the external, immutable representation of a game state:
// the fourteen house counts and the side to move. It carries no
// derived bookkeeping (empty mask, cursor, history) — that belongs to
// the runtime game state in package game.
type Position struct {
	Houses [14]int
	Turn   Side
}

// Start returns the Oware Abapa starting position: south to move.
func Start() Position {
	return Position{Houses: StartHouses, Turn: South}
}

// Validate checks the invariants required of any position: exactly
// SeedCount seeds distributed over the fourteen houses, none negative,
// and a turn in {South, North}.
func (p Position) Validate() error {
	if p.Turn != South && p.Turn != North {
		return fmt.Errorf("%w: turn must be +1 or -1, got %d", owareerr.ErrInvalidTurn, p.Turn)
	}
	total := 0
	for i, seeds := range p.Houses {
		if seeds < 0 {
			return fmt.Errorf("%w: house %d has negative seeds (%d)", owareerr.ErrInvalidPosition, i, seeds)
		}
		total += seeds
	}
	if total != SeedCount {
		return fmt.Errorf("%w: total seeds is %d, want %d", owareerr.ErrInvalidPosition, total, SeedCount)
	}
	return nil
}

// String renders the position in wire notation: fourteen dash
// separated decimal house counts followed by "-S" or "-N".
func (p Position) String() string {
	parts := make([]string, 0, 15)
	for _, seeds := range p.Houses {
		parts = append(parts, strconv.Itoa(seeds))
	}
	if p.Turn == South {
		parts = append(parts, "S")
	} else {
		parts = append(parts, "N")
	}
	return strings.Join(parts, "-")
}

// ParsePosition parses the wire notation produced by Position.String,
// e.g. "4-4-4-4-4-4-4-4-4-4-4-4-0-0-S".
func ParsePosition(notation string) (Position, error) {
	fields := strings.Split(notation, "-")
	if len(fields) != 15 {
		return Position{}, fmt.Errorf("%w: expected 15 fields, got %d", owareerr.ErrInvalidPosition, len(fields))
	}

	var pos Position
	for i := 0; i < 14; i++ {
		seeds, err := strconv.Atoi(fields[i])
		if err != nil {
			return Position{}, fmt.Errorf("%w: house %d is not a number: %q", owareerr.ErrInvalidPosition, i, fields[i])
		}
		if seeds < 0 || seeds > SeedCount {
			return Position{}, fmt.Errorf("%w: house %d out of range [0,%d]: %d", owareerr.ErrInvalidPosition, i, SeedCount, seeds)
		}
		pos.Houses[i] = seeds
	}

	switch fields[14] {
	case "S":
		pos.Turn = South
	case "N":
		pos.Turn = North
	default:
		return Position{}, fmt.Errorf("%w: turn must be S or N, got %q", owareerr.ErrInvalidPosition, fields[14])
	}

	if err := pos.Validate(); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// southLetters and northLetters map pit index (0..5) to its move
// character for each side.
const southLetters = "ABCDEF"
const northLetters = "abcdef"

// MoveString renders a single house index as its one-character move
// notation: A-F for south's pits left to right, a-f for north's.
func MoveString(house int) string {
	if house == NullMove {
		return "-"
	}
	if house <= SouthRight {
		return string(southLetters[house])
	}
	return string(northLetters[house-NorthLeft])
}

// ParseMoveChar parses a single move character into a house index.
func ParseMoveChar(c byte) (int, error) {
	if idx := strings.IndexByte(southLetters, c); idx >= 0 {
		return idx, nil
	}
	if idx := strings.IndexByte(northLetters, c); idx >= 0 {
		return NorthLeft + idx, nil
	}
	return 0, fmt.Errorf("%w: unrecognized move character %q", owareerr.ErrInvalidMove, c)
}

// ParseMoveSequence parses a string of concatenated move characters,
// validating that case alternates starting with the given side to
// move, per §6's move-notation contract.
func ParseMoveSequence(notation string, turn Side) ([]int, error) {
	moves := make([]int, 0, len(notation))
	side := turn
	for i := 0; i < len(notation); i++ {
		c := notation[i]
		house, err := ParseMoveChar(c)
		if err != nil {
			return nil, err
		}
		if HouseSide(house) != side {
			return nil, fmt.Errorf("%w: move %d (%q) is not %s's turn", owareerr.ErrInvalidMove, i, string(c), side)
		}
		moves = append(moves, house)
		side = side.Opponent()
	}
	return moves, nil
}
