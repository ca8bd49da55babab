package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/battle"
	"battledex/pkg/model"
)

type weakOptions struct {
	Pokemon *discordField[string] `option:"pokemon"`
	Type1   *discordField[string] `option:"type1"`
	Type2   *discordField[string] `option:"type2"`
}

// Weak shows the defensive type chart for a Pokemon or an explicit type
// combination.
func Weak() Command {
	return command[weakOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "weak",
			Description: "Show what a Pokemon or type combination is weak to.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "pokemon",
					Description:  "Defending Pokemon",
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type1",
					Description:  "First defending type",
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type2",
					Description:  "Second defending type",
					Autocomplete: true,
				},
			},
		},
		handle:       handleWeak,
		autocomplete: autocompleteWeak,
	}
}

func handleWeak(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *weakOptions,
) (*discordgo.InteractionResponseData, error) {
	var (
		types []battle.ElementType
		title string
	)

	switch {
	case opt.Pokemon != nil:
		pokemon, err := mdl.PokemonByName(ctx, opt.Pokemon.Value)
		if errors.Is(err, model.ErrUnknownPokemon) {
			return userError("I don't know a Pokemon called %q.", opt.Pokemon.Value), nil
		} else if err != nil {
			return nil, fmt.Errorf("error while looking up pokemon: %w", err)
		}

		types, err = pokemon.Types(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get types: %w", err)
		}
		title = titleCase(pokemon.Name)
	case opt.Type1 != nil || opt.Type2 != nil:
		for _, field := range []*discordField[string]{opt.Type1, opt.Type2} {
			if field == nil {
				continue
			}

			typ := battle.ElementType(model.NormalizeName(field.Value))
			if !typ.IsValid() {
				return userError("%q is not an element type I know.", field.Value), nil
			}
			types = append(types, typ)
		}
		title = badgeList(types)
	default:
		return userError("Give me a Pokemon or at least one type."), nil
	}

	fields := multiplierBuckets(battle.DefensiveMultipliers(types))
	if len(fields) == 0 {
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("%s takes neutral damage from everything.", title),
		}, nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Defensive chart: %s", title),
		Description: badgeList(types),
		Fields:      fields,
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, nil
}

func autocompleteWeak(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *weakOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Pokemon != nil && opt.Pokemon.Focused:
		return completions(ctx, mdl, pokemonSearcher{}, opt.Pokemon.Value)
	case opt.Type1 != nil && opt.Type1.Focused:
		return completions(ctx, mdl, typeSearcher{}, opt.Type1.Value)
	case opt.Type2 != nil && opt.Type2.Focused:
		return completions(ctx, mdl, typeSearcher{}, opt.Type2.Value)
	default:
		return nil, fmt.Errorf("no focused option: %w", ErrUnrecognizedInteraction)
	}
}
