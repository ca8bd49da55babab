package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
	t.Setenv(EnvConfigPath, path)
}

func TestRead(t *testing.T) {
	writeConfig(t, `
[discord]
token = "abc123"
resource_guild_id = "42"

[database]
path = "pokedex.sqlite3"

[pokeapi]
enabled = true
`)

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if cfg.Discord.Token != "abc123" {
		t.Errorf("token = %q, want %q", cfg.Discord.Token, "abc123")
	}
	if cfg.DB.Path != "pokedex.sqlite3" {
		t.Errorf("database path = %q, want %q", cfg.DB.Path, "pokedex.sqlite3")
	}
	if cfg.PokeAPI.BaseURL != defaultAPIBaseURL {
		t.Errorf("base URL = %q, want default %q", cfg.PokeAPI.BaseURL, defaultAPIBaseURL)
	}
}

func TestReadExplicitBaseURL(t *testing.T) {
	writeConfig(t, `
[pokeapi]
enabled = true
base_url = "http://localhost:8080/api/v2"
`)

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if cfg.PokeAPI.BaseURL != "http://localhost:8080/api/v2" {
		t.Errorf("base URL = %q, want explicit value", cfg.PokeAPI.BaseURL)
	}
}

func TestReadMissingFile(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.toml"))

	if _, err := Read(); err == nil {
		t.Fatal("Read succeeded on a missing config file")
	}
}
