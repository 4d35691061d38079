// Package config collects the environment-variable-driven settings that sit
// alongside the command-line flags: table capacities and the transcript log
// path.
package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/mjhale/govol/internal/store"
)

// Config holds everything that can be tuned without a recompile.
type Config struct {
	Atoms   int    `env:"GOVOL_ATOM_CAPACITY" envDefault:"1000"`
	Numbers int    `env:"GOVOL_NUMBER_CAPACITY" envDefault:"1000"`
	Cells   int    `env:"GOVOL_LIST_CAPACITY" envDefault:"6000"`
	LogPath string `env:"GOVOL_LOG_PATH" envDefault:"lisp.log"`
}

// Load reads Config from the environment, falling back to the documented
// defaults for anything unset.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StoreConfig adapts Config to the subset store.NewTables needs.
func (c Config) StoreConfig() store.Config {
	return store.Config{AtomCapacity: c.Atoms, NumberCapacity: c.Numbers, ListCapacity: c.Cells}
}
