package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigPath overrides the default config file location.
	EnvConfigPath = "BATTLEDEX_CONFIG"

	defaultPath       = "config.toml"
	defaultAPIBaseURL = "https://pokeapi.co/api/v2"
)

type Config struct {
	Discord struct {
		Token           string `toml:"token"`
		ResourceGuildID string `toml:"resource_guild_id"`
	} `toml:"discord"`
	DB struct {
		Path string `toml:"path"`
	} `toml:"database"`
	PokeAPI struct {
		// BaseURL of the reference API used when a Pokemon or move is
		// missing from the local database. Empty disables the fallback.
		BaseURL string `toml:"base_url"`
		Enabled bool   `toml:"enabled"`
	} `toml:"pokeapi"`
}

// Read loads the bot configuration from the path in $BATTLEDEX_CONFIG,
// falling back to ./config.toml.
func Read() (*Config, error) {
	path, ok := os.LookupEnv(EnvConfigPath)
	if !ok {
		path = defaultPath
	}

	cfg := Config{}
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode config file %q: %w", path, err)
	}

	if cfg.PokeAPI.Enabled && cfg.PokeAPI.BaseURL == "" {
		cfg.PokeAPI.BaseURL = defaultAPIBaseURL
	}

	return &cfg, nil
}
