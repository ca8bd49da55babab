package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"battledex/pkg/battle"
	"battledex/pkg/pokeapi"
)

// Model serves combat profiles, moves and dex entries from a read-only
// sqlite mirror of the reference API database (pokemon_v2_* tables). When a
// remote client is attached, lookups that miss the local mirror fall back
// to the API.
type Model struct {
	db     *sqlx.DB
	remote *pokeapi.Client
}

func New(ctx context.Context, dbPath string) (*Model, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to read from database: %w", err)
	}

	return &Model{db: db}, nil
}

func (m *Model) Close() error {
	return m.db.Close()
}

// SetRemote attaches a reference API client used when a Pokemon or move is
// missing from the local database.
func (m *Model) SetRemote(client *pokeapi.Client) {
	m.remote = client
}

var (
	ErrUnknownPokemon = errors.New("no matching pokemon")
	ErrUnknownMove    = errors.New("no matching move")
)

func (m *Model) localPokemonByName(ctx context.Context, name string) (*Pokemon, error) {
	pokemon := Pokemon{model: m, local: true}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, name, pokemon_species_id
		FROM pokemon_v2_pokemon
		WHERE name = ?
	`, name).StructScan(&pokemon)
	if err != nil {
		return nil, fmt.Errorf("pokemon %q not found: %w", name, err)
	}

	return &pokemon, nil
}

func (m *Model) remotePokemon(fetch func(*pokeapi.Client) (*pokeapi.Pokemon, error)) (*Pokemon, error) {
	if m.remote == nil {
		return nil, ErrUnknownPokemon
	}

	p, err := fetch(m.remote)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, ErrUnknownPokemon
		}
		return nil, fmt.Errorf("remote pokemon lookup failed: %w", err)
	}

	types := make([]battle.ElementType, len(p.Types))
	for i, t := range p.Types {
		types[i] = battle.ElementType(t.Type.Name)
	}

	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}

	return &Pokemon{
		model: m,
		ID:    p.ID,
		Name:  p.Name,
		types: types,
		stats: stats,
	}, nil
}

// PokemonByName finds a Pokemon by (normalized) name, consulting the remote
// API when the local mirror has no entry.
func (m *Model) PokemonByName(ctx context.Context, name string) (*Pokemon, error) {
	normalized := NormalizeName(name)

	pokemon, err := m.localPokemonByName(ctx, normalized)
	if err == nil {
		return pokemon, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error while querying pokemon %q: %w", normalized, err)
	}

	return m.remotePokemon(func(c *pokeapi.Client) (*pokeapi.Pokemon, error) {
		return c.Pokemon(ctx, normalized)
	})
}

// PokemonByID finds a Pokemon by national dex number.
func (m *Model) PokemonByID(ctx context.Context, id int) (*Pokemon, error) {
	pokemon := Pokemon{model: m, local: true}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, name, pokemon_species_id
		FROM pokemon_v2_pokemon
		WHERE id = ?
	`, id).StructScan(&pokemon)
	if err == nil {
		return &pokemon, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error while querying pokemon %d: %w", id, err)
	}

	return m.remotePokemon(func(c *pokeapi.Client) (*pokeapi.Pokemon, error) {
		return c.PokemonByID(ctx, id)
	})
}

// SearchPokemon returns up to limit Pokemon whose names start with the
// given prefix, for autocompletion.
func (m *Model) SearchPokemon(ctx context.Context, prefix string, limit int) ([]*Pokemon, error) {
	pattern := fmt.Sprintf("%s%%", NormalizeName(prefix))
	var ps []*Pokemon
	err := m.db.SelectContext(ctx, &ps,
		/* sql */ `
		SELECT id, name, pokemon_species_id
		FROM pokemon_v2_pokemon
		WHERE name LIKE ?
		ORDER BY name ASC
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("error while getting pokemon with prefix: %w", err)
	}

	for i := range ps {
		ps[i].model = m
		ps[i].local = true
	}

	return ps, nil
}

func (m *Model) pokemonTypes(ctx context.Context, pokemon *Pokemon) ([]battle.ElementType, error) {
	var names []string
	err := m.db.SelectContext(ctx, &names,
		/* sql */ `
		SELECT t.name
		FROM pokemon_v2_pokemontype pt
		JOIN pokemon_v2_type t
			ON pt.type_id = t.id
		WHERE pt.pokemon_id = ?
		ORDER BY pt.slot ASC
	`, pokemon.ID)
	if err != nil {
		return nil, fmt.Errorf("error while getting types for pokemon %q: %w", pokemon.Name, err)
	}

	types := make([]battle.ElementType, len(names))
	for i, name := range names {
		types[i] = battle.ElementType(name)
	}

	return types, nil
}

func (m *Model) pokemonStats(ctx context.Context, pokemon *Pokemon) (map[string]int, error) {
	rows := []struct {
		Name     string `db:"name"`
		BaseStat int    `db:"base_stat"`
	}{}
	err := m.db.SelectContext(ctx, &rows,
		/* sql */ `
		SELECT s.name, ps.base_stat
		FROM pokemon_v2_pokemonstat ps
		JOIN pokemon_v2_stat s
			ON ps.stat_id = s.id
		WHERE ps.pokemon_id = ?
	`, pokemon.ID)
	if err != nil {
		return nil, fmt.Errorf("error while getting stats for pokemon %q: %w", pokemon.Name, err)
	}

	stats := make(map[string]int, len(rows))
	for _, row := range rows {
		stats[row.Name] = row.BaseStat
	}

	return stats, nil
}

func (m *Model) pokemonAbilities(ctx context.Context, pokemon *Pokemon) ([]Ability, error) {
	var abilities []Ability
	err := m.db.SelectContext(ctx, &abilities,
		/* sql */ `
		SELECT a.name, pa.is_hidden
		FROM pokemon_v2_pokemonability pa
		JOIN pokemon_v2_ability a
			ON pa.ability_id = a.id
		WHERE pa.pokemon_id = ?
		ORDER BY pa.slot ASC
	`, pokemon.ID)
	if err != nil {
		return nil, fmt.Errorf("error while getting abilities for pokemon %q: %w", pokemon.Name, err)
	}

	return abilities, nil
}

func (m *Model) localMoveByName(ctx context.Context, name string) (*Move, error) {
	move := Move{model: m, local: true}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, power, pp, accuracy, type_id, name
		FROM pokemon_v2_move
		WHERE name = ?
	`, name).StructScan(&move)
	if err != nil {
		return nil, fmt.Errorf("move %q not found: %w", name, err)
	}

	return &move, nil
}

// MoveByName finds a move by (normalized) name, consulting the remote API
// when the local mirror has no entry.
func (m *Model) MoveByName(ctx context.Context, name string) (*Move, error) {
	normalized := NormalizeName(name)

	move, err := m.localMoveByName(ctx, normalized)
	if err == nil {
		return move, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error while querying move %q: %w", normalized, err)
	}

	if m.remote == nil {
		return nil, ErrUnknownMove
	}

	remote, err := m.remote.Move(ctx, normalized)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, ErrUnknownMove
		}
		return nil, fmt.Errorf("remote move lookup failed: %w", err)
	}

	return &Move{
		model:    m,
		ID:       remote.ID,
		Name:     remote.Name,
		Power:    remote.Power,
		PP:       remote.PP,
		Accuracy: remote.Accuracy,
		typ:      battle.ElementType(remote.Type.Name),
	}, nil
}

// SearchMoves returns up to limit moves whose names start with the given
// prefix, for autocompletion.
func (m *Model) SearchMoves(ctx context.Context, prefix string, limit int) ([]*Move, error) {
	pattern := fmt.Sprintf("%s%%", NormalizeName(prefix))
	var moves []*Move
	err := m.db.SelectContext(ctx, &moves,
		/* sql */ `
		SELECT id, power, pp, accuracy, type_id, name
		FROM pokemon_v2_move
		WHERE name LIKE ?
		ORDER BY name ASC
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("error while getting moves with prefix: %w", err)
	}

	for i := range moves {
		moves[i].model = m
		moves[i].local = true
	}

	return moves, nil
}

func (m *Model) typeNameByID(ctx context.Context, id int) (battle.ElementType, error) {
	var name string
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT name
		FROM pokemon_v2_type
		WHERE id = ?
	`, id).Scan(&name)
	if err != nil {
		return "", fmt.Errorf("no matching type for id %d: %w", id, err)
	}

	return battle.ElementType(name), nil
}

func (m *Model) moveByID(ctx context.Context, id int) (*Move, error) {
	move := Move{model: m, local: true}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, power, pp, accuracy, type_id, name
		FROM pokemon_v2_move
		WHERE id = ?
	`, id).StructScan(&move)
	if err != nil {
		return nil, fmt.Errorf("no matching move for id %d: %w", id, err)
	}

	return &move, nil
}

// levelUpMoves lists a Pokemon's level-up learnset from its most recent
// version group, lowest learn level first. The extra row beyond limit
// signals whether another page exists.
func (m *Model) levelUpMoves(ctx context.Context, pokemon *Pokemon, maxLevel *int, limit, offset int) ([]PokemonMove, bool, error) {
	lvl := battle.MaxLevel
	if maxLevel != nil {
		lvl = *maxLevel
	}

	var pms []PokemonMove
	err := m.db.SelectContext(ctx, &pms,
		/* sql */ `
		SELECT MIN(pm.id) as id, pm.level, pm.move_id
		FROM pokemon_v2_pokemonmove pm
		JOIN pokemon_v2_movelearnmethod lm
			ON pm.move_learn_method_id = lm.id
		WHERE pm.pokemon_id = ? AND lm.name = 'level-up' AND pm.level <= ?
			AND pm.version_group_id = (
				SELECT MAX(version_group_id)
				FROM pokemon_v2_pokemonmove
				WHERE pokemon_id = ?
			)
		GROUP BY pm.move_id
		ORDER BY pm.level ASC, pm.move_id ASC
		LIMIT ? OFFSET ?
	`, pokemon.ID, lvl, pokemon.ID, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("error while getting level-up moves for pokemon %q: %w", pokemon.Name, err)
	}

	for i := range pms {
		pms[i].model = m
	}

	hasNext := false
	if len(pms) == limit+1 {
		pms = pms[:limit]
		hasNext = true
	}

	return pms, hasNext, nil
}
