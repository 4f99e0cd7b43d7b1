// Package config loads the engine's tunable options from a TOML file
// (§9's open questions: contempt, evaluation weights, cache size,
// aspiration delta, and the endgame/book file paths), falling back to
// compiled-in defaults when no file is given.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/joansalasoler/oware-sub000/internal/game"
	"github.com/joansalasoler/oware-sub000/internal/owareerr"
	"github.com/joansalasoler/oware-sub000/internal/search"
)

// Options is the engine's full tunable surface, as read from a TOML
// document. Every field has a sensible default so a missing or
// partial file still produces a usable configuration.
type Options struct {
	Contempt        int `toml:"contempt"`
	AspirationDelta int `toml:"aspiration_delta"`
	CacheSizeBytes  int `toml:"cache_size_bytes"`
	EndgameMaxSeeds int `toml:"endgame_max_seeds"`

	StoreFactor     int `toml:"store_factor"`
	BigPitBonus     int `toml:"big_pit_bonus"`
	EmptyPitPenalty int `toml:"empty_pit_penalty"`
	LowPitPenalty   int `toml:"low_pit_penalty"`

	BookPath    string `toml:"book_path"`
	EndgamePath string `toml:"endgame_path"`
}

// Default returns the compiled-in configuration, matching the
// defaults already hardcoded in the game and search packages.
func Default() Options {
	return Options{
		Contempt:        search.DefaultOptions.Contempt,
		AspirationDelta: search.DefaultOptions.AspirationDelta,
		CacheSizeBytes:  64 << 20,
		EndgameMaxSeeds: 0,

		StoreFactor:     game.DefaultWeights.StoreFactor,
		BigPitBonus:     game.DefaultWeights.BigPitBonus,
		EmptyPitPenalty: game.DefaultWeights.EmptyPitPenalty,
		LowPitPenalty:   game.DefaultWeights.LowPitPenalty,
	}
}

// Load reads options from a TOML file at path, starting from Default
// and overriding whichever fields the file sets.
func Load(path string) (Options, error) {
	opts := Default()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return opts, fmt.Errorf("%w: %v", owareerr.ErrConfigInvalid, err)
	}
	return opts, nil
}

// Weights extracts the evaluation weights embedded in these options.
func (o Options) Weights() game.Weights {
	return game.Weights{
		StoreFactor:     o.StoreFactor,
		BigPitBonus:     o.BigPitBonus,
		EmptyPitPenalty: o.EmptyPitPenalty,
		LowPitPenalty:   o.LowPitPenalty,
	}
}

// SearchOptions extracts the search tunables embedded in these
// options.
func (o Options) SearchOptions() search.Options {
	return search.Options{
		Contempt:        o.Contempt,
		AspirationDelta: o.AspirationDelta,
	}
}
