package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/battle"
	"battledex/pkg/model"
)

// autocompleteLimit is the maximum number of choices discord accepts in a
// single autocompletion response.
const autocompleteLimit = 25

type searcher[T any] interface {
	Search(ctx context.Context, mdl *model.Model, prefix string, limit int) ([]T, error)
	Name(T) string
	Value(T) any
}

func completions[T any](
	ctx context.Context,
	mdl *model.Model,
	s searcher[T],
	prefix string,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	results, err := s.Search(ctx, mdl, prefix, autocompleteLimit)
	if err != nil {
		return nil, fmt.Errorf("error while searching for %q: %w", prefix, err)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(results))
	for i, result := range results {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  s.Name(result),
			Value: s.Value(result),
		}
	}

	return choices, nil
}

type pokemonSearcher struct{}

func (pokemonSearcher) Search(ctx context.Context, mdl *model.Model, prefix string, limit int) ([]*model.Pokemon, error) {
	return mdl.SearchPokemon(ctx, prefix, limit)
}

func (pokemonSearcher) Name(pokemon *model.Pokemon) string {
	return pokemon.Name
}

func (pokemonSearcher) Value(pokemon *model.Pokemon) any {
	return pokemon.Name
}

type moveSearcher struct{}

func (moveSearcher) Search(ctx context.Context, mdl *model.Model, prefix string, limit int) ([]*model.Move, error) {
	return mdl.SearchMoves(ctx, prefix, limit)
}

func (moveSearcher) Name(move *model.Move) string {
	return move.Name
}

func (moveSearcher) Value(move *model.Move) any {
	return move.Name
}

type typeSearcher struct{}

func (typeSearcher) Search(_ context.Context, _ *model.Model, prefix string, limit int) ([]battle.ElementType, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	results := make([]battle.ElementType, 0, limit)
	for _, typ := range battle.AllElementTypes {
		if !strings.HasPrefix(string(typ), prefix) {
			continue
		}

		results = append(results, typ)
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

func (typeSearcher) Name(typ battle.ElementType) string {
	return string(typ)
}

func (typeSearcher) Value(typ battle.ElementType) any {
	return string(typ)
}
