package model

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"battledex/pkg/battle"
	"battledex/pkg/pokeapi"
)

const testSchema = `
CREATE TABLE pokemon_v2_pokemon (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	pokemon_species_id INTEGER NOT NULL
);
CREATE TABLE pokemon_v2_type (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE pokemon_v2_pokemontype (
	pokemon_id INTEGER NOT NULL,
	type_id INTEGER NOT NULL,
	slot INTEGER NOT NULL
);
CREATE TABLE pokemon_v2_stat (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE pokemon_v2_pokemonstat (
	pokemon_id INTEGER NOT NULL,
	stat_id INTEGER NOT NULL,
	base_stat INTEGER NOT NULL
);
CREATE TABLE pokemon_v2_ability (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE pokemon_v2_pokemonability (
	pokemon_id INTEGER NOT NULL,
	ability_id INTEGER NOT NULL,
	is_hidden BOOLEAN NOT NULL,
	slot INTEGER NOT NULL
);
CREATE TABLE pokemon_v2_move (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	power INTEGER,
	pp INTEGER,
	accuracy INTEGER,
	type_id INTEGER NOT NULL
);
CREATE TABLE pokemon_v2_movelearnmethod (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE pokemon_v2_pokemonmove (
	id INTEGER PRIMARY KEY,
	pokemon_id INTEGER NOT NULL,
	move_id INTEGER NOT NULL,
	level INTEGER NOT NULL,
	move_learn_method_id INTEGER NOT NULL,
	version_group_id INTEGER NOT NULL
);
`

const testSeed = `
INSERT INTO pokemon_v2_pokemon VALUES (1, 'bulbasaur', 1), (6, 'charizard', 6);

INSERT INTO pokemon_v2_type VALUES
	(3, 'flying'), (4, 'poison'), (10, 'fire'), (12, 'grass');

INSERT INTO pokemon_v2_pokemontype VALUES
	(1, 12, 1), (1, 4, 2),
	(6, 10, 1), (6, 3, 2);

INSERT INTO pokemon_v2_stat VALUES
	(1, 'hp'), (2, 'attack'), (3, 'defense'),
	(4, 'special-attack'), (5, 'special-defense'), (6, 'speed');

INSERT INTO pokemon_v2_pokemonstat VALUES
	(1, 1, 45), (1, 2, 49), (1, 3, 49),
	(6, 1, 78), (6, 2, 84), (6, 3, 78);

INSERT INTO pokemon_v2_ability VALUES (65, 'overgrow'), (34, 'chlorophyll');
INSERT INTO pokemon_v2_pokemonability VALUES (1, 65, 0, 1), (1, 34, 1, 3);

INSERT INTO pokemon_v2_move VALUES
	(33, 'tackle', 40, 35, 100, 1),
	(22, 'vine-whip', 45, 25, 100, 12),
	(73, 'leech-seed', NULL, 10, 90, 12),
	(75, 'razor-leaf', 55, 25, 95, 12);

INSERT INTO pokemon_v2_type VALUES (1, 'normal');

INSERT INTO pokemon_v2_movelearnmethod VALUES (1, 'level-up'), (2, 'egg');

INSERT INTO pokemon_v2_pokemonmove VALUES
	(1, 1, 33, 1, 1, 20),
	(2, 1, 22, 3, 1, 20),
	(3, 1, 73, 7, 1, 20),
	(4, 1, 75, 12, 1, 20),
	(5, 1, 75, 15, 1, 19),
	(6, 1, 33, 0, 2, 20);
`

func testModel(t *testing.T) *Model {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("could not open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("could not create schema: %v", err)
	}
	if _, err := db.Exec(testSeed); err != nil {
		t.Fatalf("could not seed data: %v", err)
	}

	return &Model{db: db}
}

func TestPokemonByName(t *testing.T) {
	mdl := testModel(t)
	ctx := context.Background()

	pokemon, err := mdl.PokemonByName(ctx, "Bulbasaur")
	if err != nil {
		t.Fatalf("PokemonByName returned error: %v", err)
	}

	if pokemon.ID != 1 {
		t.Errorf("id = %d, want 1", pokemon.ID)
	}

	types, err := pokemon.Types(ctx)
	if err != nil {
		t.Fatalf("Types returned error: %v", err)
	}
	if len(types) != 2 || types[0] != battle.Grass || types[1] != battle.Poison {
		t.Errorf("types = %v, want [grass poison]", types)
	}
}

func TestPokemonByNameUnknown(t *testing.T) {
	mdl := testModel(t)

	_, err := mdl.PokemonByName(context.Background(), "missingno")
	if !errors.Is(err, ErrUnknownPokemon) {
		t.Fatalf("error = %v, want ErrUnknownPokemon", err)
	}
}

func TestCombatProfile(t *testing.T) {
	mdl := testModel(t)
	ctx := context.Background()

	pokemon, err := mdl.PokemonByID(ctx, 6)
	if err != nil {
		t.Fatalf("PokemonByID returned error: %v", err)
	}

	profile, err := pokemon.CombatProfile(ctx)
	if err != nil {
		t.Fatalf("CombatProfile returned error: %v", err)
	}

	if profile.Attack != 84 || profile.Defense != 78 {
		t.Errorf("stats = %d/%d, want 84/78", profile.Attack, profile.Defense)
	}
	if len(profile.Types) != 2 || profile.Types[0] != battle.Fire || profile.Types[1] != battle.Flying {
		t.Errorf("types = %v, want [fire flying]", profile.Types)
	}
}

func TestSearchPokemon(t *testing.T) {
	mdl := testModel(t)

	results, err := mdl.SearchPokemon(context.Background(), "Bulb", 10)
	if err != nil {
		t.Fatalf("SearchPokemon returned error: %v", err)
	}

	if len(results) != 1 || results[0].Name != "bulbasaur" {
		t.Fatalf("results = %v, want [bulbasaur]", results)
	}
}

func TestAbilities(t *testing.T) {
	mdl := testModel(t)
	ctx := context.Background()

	pokemon, err := mdl.PokemonByName(ctx, "bulbasaur")
	if err != nil {
		t.Fatalf("PokemonByName returned error: %v", err)
	}

	abilities, err := pokemon.Abilities(ctx)
	if err != nil {
		t.Fatalf("Abilities returned error: %v", err)
	}

	if len(abilities) != 2 {
		t.Fatalf("got %d abilities, want 2", len(abilities))
	}
	if abilities[0].Name != "overgrow" || abilities[0].IsHidden {
		t.Errorf("first ability = %+v, want visible overgrow", abilities[0])
	}
	if abilities[1].Name != "chlorophyll" || !abilities[1].IsHidden {
		t.Errorf("second ability = %+v, want hidden chlorophyll", abilities[1])
	}
}

func TestMoveByName(t *testing.T) {
	mdl := testModel(t)
	ctx := context.Background()

	move, err := mdl.MoveByName(ctx, "Vine Whip")
	if err != nil {
		t.Fatalf("MoveByName returned error: %v", err)
	}

	spec, err := move.Spec(ctx)
	if err != nil {
		t.Fatalf("Spec returned error: %v", err)
	}

	if spec.Power != 45 || spec.Type != battle.Grass {
		t.Errorf("spec = %+v, want power 45 grass", spec)
	}
}

func TestMoveSpecWithoutPower(t *testing.T) {
	mdl := testModel(t)
	ctx := context.Background()

	move, err := mdl.MoveByName(ctx, "leech-seed")
	if err != nil {
		t.Fatalf("MoveByName returned error: %v", err)
	}

	_, err = move.Spec(ctx)
	if !errors.Is(err, battle.ErrInvalidMove) {
		t.Fatalf("error = %v, want battle.ErrInvalidMove", err)
	}
}

func TestLevelUpMoves(t *testing.T) {
	mdl := testModel(t)
	ctx := context.Background()

	pokemon, err := mdl.PokemonByName(ctx, "bulbasaur")
	if err != nil {
		t.Fatalf("PokemonByName returned error: %v", err)
	}

	// Only rows from the newest version group (20) and the level-up method
	// should appear; the egg move and the group-19 duplicate are filtered.
	pms, hasNext, err := pokemon.LevelUpMoves(ctx, nil, 10, 0)
	if err != nil {
		t.Fatalf("LevelUpMoves returned error: %v", err)
	}

	if hasNext {
		t.Error("hasNext = true, want false")
	}
	if len(pms) != 4 {
		t.Fatalf("got %d moves, want 4", len(pms))
	}
	if pms[0].Level != 1 || pms[0].MoveID != 33 {
		t.Errorf("first move = %+v, want tackle at level 1", pms[0])
	}
	if pms[3].Level != 12 || pms[3].MoveID != 75 {
		t.Errorf("last move = %+v, want razor-leaf at level 12", pms[3])
	}
}

func TestLevelUpMovesMaxLevelAndPaging(t *testing.T) {
	mdl := testModel(t)
	ctx := context.Background()

	pokemon, err := mdl.PokemonByName(ctx, "bulbasaur")
	if err != nil {
		t.Fatalf("PokemonByName returned error: %v", err)
	}

	maxLevel := 7
	pms, hasNext, err := pokemon.LevelUpMoves(ctx, &maxLevel, 2, 0)
	if err != nil {
		t.Fatalf("LevelUpMoves returned error: %v", err)
	}

	if !hasNext {
		t.Error("hasNext = false, want true")
	}
	if len(pms) != 2 {
		t.Fatalf("got %d moves, want 2", len(pms))
	}

	pms, hasNext, err = pokemon.LevelUpMoves(ctx, &maxLevel, 2, 2)
	if err != nil {
		t.Fatalf("LevelUpMoves returned error: %v", err)
	}

	if hasNext {
		t.Error("hasNext = true, want false")
	}
	if len(pms) != 1 || pms[0].MoveID != 73 {
		t.Fatalf("second page = %+v, want [leech-seed]", pms)
	}
}

func TestRemoteFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/mewtwo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 150,
			"name": "mewtwo",
			"stats": [
				{"base_stat": 110, "stat": {"name": "attack"}},
				{"base_stat": 90, "stat": {"name": "defense"}}
			],
			"types": [{"slot": 1, "type": {"name": "psychic"}}]
		}`))
	})
	mux.HandleFunc("/", http.NotFound)
	server := httptest.NewServer(mux)
	defer server.Close()

	mdl := testModel(t)
	mdl.SetRemote(pokeapi.New(server.URL))
	ctx := context.Background()

	pokemon, err := mdl.PokemonByName(ctx, "Mewtwo")
	if err != nil {
		t.Fatalf("PokemonByName returned error: %v", err)
	}

	if pokemon.ID != 150 {
		t.Errorf("id = %d, want 150", pokemon.ID)
	}

	profile, err := pokemon.CombatProfile(ctx)
	if err != nil {
		t.Fatalf("CombatProfile returned error: %v", err)
	}
	if profile.Attack != 110 || profile.Defense != 90 {
		t.Errorf("stats = %d/%d, want 110/90", profile.Attack, profile.Defense)
	}
	if len(profile.Types) != 1 || profile.Types[0] != battle.Psychic {
		t.Errorf("types = %v, want [psychic]", profile.Types)
	}

	// Remote entries have no local learnset or abilities.
	if abilities, err := pokemon.Abilities(ctx); err != nil || abilities != nil {
		t.Errorf("Abilities = %v, %v, want nil, nil", abilities, err)
	}

	// Misses that also miss remotely surface as unknown.
	if _, err := mdl.PokemonByName(ctx, "missingno"); !errors.Is(err, ErrUnknownPokemon) {
		t.Errorf("error = %v, want ErrUnknownPokemon", err)
	}
}
