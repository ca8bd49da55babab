package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/model"
)

type dexOptions struct {
	Pokemon discordField[string] `option:"pokemon"`
}

var statOrder = []string{
	"hp",
	"attack",
	"defense",
	"special-attack",
	"special-defense",
	"speed",
}

// Dex shows a Pokemon's dex entry: id, types, base stats and abilities.
func Dex() Command {
	return command[dexOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "dex",
			Description: "Look up a Pokemon's dex entry.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "pokemon",
					Description:  "Pokemon to look up",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		handle:       handleDex,
		autocomplete: autocompleteDex,
	}
}

func statBlock(ctx context.Context, pokemon *model.Pokemon) (string, error) {
	lines := make([]string, 0, len(statOrder))
	for _, stat := range statOrder {
		value, err := pokemon.BaseStat(ctx, stat)
		if err != nil {
			return "", fmt.Errorf("could not get stat %q: %w", stat, err)
		}

		lines = append(lines, fmt.Sprintf("%-16s%4d", titleCase(stat), value))
	}

	return fmt.Sprintf("```\n%s\n```", strings.Join(lines, "\n")), nil
}

func handleDex(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *dexOptions,
) (*discordgo.InteractionResponseData, error) {
	pokemon, err := mdl.PokemonByName(ctx, opt.Pokemon.Value)
	if errors.Is(err, model.ErrUnknownPokemon) {
		return userError("I don't know a Pokemon called %q.", opt.Pokemon.Value), nil
	} else if err != nil {
		return nil, fmt.Errorf("error while looking up pokemon: %w", err)
	}

	types, err := pokemon.Types(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get types: %w", err)
	}

	stats, err := statBlock(ctx, pokemon)
	if err != nil {
		return nil, err
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:  "Types",
			Value: badgeList(types),
		},
		{
			Name:  "Base Stats",
			Value: stats,
		},
	}

	abilities, err := pokemon.Abilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get abilities: %w", err)
	}
	if len(abilities) > 0 {
		names := make([]string, len(abilities))
		for i, ability := range abilities {
			names[i] = titleCase(ability.Name)
			if ability.IsHidden {
				names[i] += " (hidden)"
			}
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Abilities",
			Value: strings.Join(names, "\n"),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("#%d %s", pokemon.ID, titleCase(pokemon.Name)),
		Fields: fields,
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, nil
}

func autocompleteDex(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *dexOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if !opt.Pokemon.Focused {
		return nil, fmt.Errorf("no focused option: %w", ErrUnrecognizedInteraction)
	}

	return completions(ctx, mdl, pokemonSearcher{}, opt.Pokemon.Value)
}
