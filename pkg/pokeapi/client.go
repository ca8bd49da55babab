package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"battledex/pkg/battle"
)

// ErrNotFound marks a name or dex number the reference API does not know.
var ErrNotFound = errors.New("resource not found")

// Client fetches Pokemon and move data from the public reference API.
// Responses are cached in memory for the lifetime of the client; the cache
// is unbounded and never evicts, so a resource is fetched at most once.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	pokemon map[string]*Pokemon
	moves   map[string]*Move
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		pokemon: make(map[string]*Pokemon),
		moves:   make(map[string]*Move),
	}
}

// Pokemon is the subset of the API's pokemon schema the bot consumes.
type Pokemon struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

// BaseStat returns the base value of the named stat, or 0 when the stat is
// absent from the response.
func (p *Pokemon) BaseStat(name string) int {
	for _, s := range p.Stats {
		if s.Stat.Name == name {
			return s.BaseStat
		}
	}

	return 0
}

// TypeNames returns the Pokemon's type names in slot order.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, t := range p.Types {
		names[i] = t.Type.Name
	}

	return names
}

// CombatProfile converts the API response into a battle profile.
func (p *Pokemon) CombatProfile() battle.Profile {
	types := make([]battle.ElementType, len(p.Types))
	for i, t := range p.Types {
		types[i] = battle.ElementType(t.Type.Name)
	}

	return battle.Profile{
		Attack:  p.BaseStat("attack"),
		Defense: p.BaseStat("defense"),
		Types:   types,
	}
}

// Move is the subset of the API's move schema the bot consumes.
type Move struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Power    *int   `json:"power"`
	Accuracy *int   `json:"accuracy"`
	PP       *int   `json:"pp"`
	Type     struct {
		Name string `json:"name"`
	} `json:"type"`
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("could not build request for %q: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %q failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%q: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %q for %q", resp.Status, path)
	}

	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("could not decode response for %q: %w", path, err)
	}

	return nil
}

func (c *Client) cachedPokemon(key string) (*Pokemon, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.pokemon[key]

	return p, ok
}

func (c *Client) fetchPokemon(ctx context.Context, key string) (*Pokemon, error) {
	if p, ok := c.cachedPokemon(key); ok {
		return p, nil
	}

	var p Pokemon
	err := c.get(ctx, "pokemon/"+key, &p)
	if err != nil {
		return nil, fmt.Errorf("could not fetch pokemon %q: %w", key, err)
	}

	c.mu.Lock()
	c.pokemon[key] = &p
	c.pokemon[p.Name] = &p
	c.pokemon[strconv.Itoa(p.ID)] = &p
	c.mu.Unlock()

	return &p, nil
}

// Pokemon fetches a Pokemon by name.
func (c *Client) Pokemon(ctx context.Context, name string) (*Pokemon, error) {
	return c.fetchPokemon(ctx, strings.ToLower(strings.TrimSpace(name)))
}

// PokemonByID fetches a Pokemon by national dex number.
func (c *Client) PokemonByID(ctx context.Context, id int) (*Pokemon, error) {
	return c.fetchPokemon(ctx, strconv.Itoa(id))
}

// Move fetches a move by name.
func (c *Client) Move(ctx context.Context, name string) (*Move, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	c.mu.RLock()
	m, ok := c.moves[key]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	var move Move
	err := c.get(ctx, "move/"+key, &move)
	if err != nil {
		return nil, fmt.Errorf("could not fetch move %q: %w", key, err)
	}

	c.mu.Lock()
	c.moves[key] = &move
	c.moves[move.Name] = &move
	c.mu.Unlock()

	return &move, nil
}
