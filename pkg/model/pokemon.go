package model

import (
	"context"
	"fmt"

	"battledex/pkg/battle"
)

// Pokemon is one dex entry. Entries loaded from the local database resolve
// their types and stats lazily; entries built from a remote API response
// arrive with both preloaded.
type Pokemon struct {
	model *Model

	ID        int    `db:"id"`
	Name      string `db:"name"`
	SpeciesID int    `db:"pokemon_species_id"`

	local     bool
	types     []battle.ElementType
	stats     map[string]int
	abilities []Ability
}

// Types returns the Pokemon's 1-2 element types in slot order.
func (pokemon *Pokemon) Types(ctx context.Context) ([]battle.ElementType, error) {
	if pokemon.types == nil {
		types, err := pokemon.model.pokemonTypes(ctx, pokemon)
		if err != nil {
			return nil, fmt.Errorf("could not get types for pokemon: %w", err)
		}
		pokemon.types = types
	}

	return pokemon.types, nil
}

// BaseStat returns the base value of the named stat ("attack", "defense",
// "hp", ...), or 0 when the Pokemon has no such stat.
func (pokemon *Pokemon) BaseStat(ctx context.Context, name string) (int, error) {
	if pokemon.stats == nil {
		stats, err := pokemon.model.pokemonStats(ctx, pokemon)
		if err != nil {
			return 0, fmt.Errorf("could not get stats for pokemon: %w", err)
		}
		pokemon.stats = stats
	}

	return pokemon.stats[name], nil
}

// CombatProfile assembles the battle profile the damage calculator
// consumes: base attack, base defense and the type combination.
func (pokemon *Pokemon) CombatProfile(ctx context.Context) (battle.Profile, error) {
	attack, err := pokemon.BaseStat(ctx, "attack")
	if err != nil {
		return battle.Profile{}, fmt.Errorf("could not get attack stat: %w", err)
	}

	defense, err := pokemon.BaseStat(ctx, "defense")
	if err != nil {
		return battle.Profile{}, fmt.Errorf("could not get defense stat: %w", err)
	}

	types, err := pokemon.Types(ctx)
	if err != nil {
		return battle.Profile{}, fmt.Errorf("could not get types: %w", err)
	}

	return battle.Profile{
		Attack:  attack,
		Defense: defense,
		Types:   types,
	}, nil
}

// Abilities lists the Pokemon's abilities. Remote-only entries have none.
func (pokemon *Pokemon) Abilities(ctx context.Context) ([]Ability, error) {
	if !pokemon.local {
		return nil, nil
	}

	if pokemon.abilities == nil {
		abilities, err := pokemon.model.pokemonAbilities(ctx, pokemon)
		if err != nil {
			return nil, fmt.Errorf("could not get abilities for pokemon: %w", err)
		}
		pokemon.abilities = abilities
	}

	return pokemon.abilities, nil
}

// LevelUpMoves pages through the Pokemon's level-up learnset. Remote-only
// entries have no learnset data.
func (pokemon *Pokemon) LevelUpMoves(ctx context.Context, maxLevel *int, limit, offset int) ([]PokemonMove, bool, error) {
	if !pokemon.local {
		return nil, false, nil
	}

	return pokemon.model.levelUpMoves(ctx, pokemon, maxLevel, limit, offset)
}
