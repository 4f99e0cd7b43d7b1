// Package owareerr defines the sentinel error kinds shared across the
// engine's components (§7 of the specification). Collaborators wrap
// one of these with fmt.Errorf's %w verb so callers can recover the
// kind with errors.Is while still getting a descriptive message.
package owareerr

import "errors"

var (
	// ErrInvalidPosition marks a position with the wrong seed total,
	// a negative house, the wrong number of houses, or unparseable
	// position notation.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidMove marks unparseable move notation or a move that
	// is not a member of the current legal set.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidTurn marks a turn value outside {+1, -1}.
	ErrInvalidTurn = errors.New("invalid turn")

	// ErrCapacityExceeded marks a history stack that would grow past
	// its maximum capacity.
	ErrCapacityExceeded = errors.New("history capacity exceeded")

	// ErrDatabaseUnavailable marks a database that could not be
	// opened or read at startup.
	ErrDatabaseUnavailable = errors.New("database unavailable")

	// ErrDatabaseCorrupt marks a database whose header or payload
	// failed validation (short read, index out of bounds, checksum
	// mismatch).
	ErrDatabaseCorrupt = errors.New("database corrupt")

	// ErrAborted marks a search cancelled before completion. The
	// search package never returns this to its caller (§7); it is
	// exported for embedders that want to distinguish a cancelled
	// probe from other failures in their own collaborators.
	ErrAborted = errors.New("computation aborted")

	// ErrConfigInvalid marks a configuration file that could not be
	// parsed as TOML or failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")
)
