package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/model"
)

type compareOptions struct {
	First  discordField[string] `option:"first"`
	Second discordField[string] `option:"second"`
}

// Compare shows two Pokemon's base stats side by side.
func Compare() Command {
	return command[compareOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "compare",
			Description: "Compare the base stats of two Pokemon.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "first",
					Description:  "First Pokemon",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "second",
					Description:  "Second Pokemon",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		handle:       handleCompare,
		autocomplete: autocompleteCompare,
	}
}

func handleCompare(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *compareOptions,
) (*discordgo.InteractionResponseData, error) {
	first, err := mdl.PokemonByName(ctx, opt.First.Value)
	if errors.Is(err, model.ErrUnknownPokemon) {
		return userError("I don't know a Pokemon called %q.", opt.First.Value), nil
	} else if err != nil {
		return nil, fmt.Errorf("error while looking up pokemon: %w", err)
	}

	second, err := mdl.PokemonByName(ctx, opt.Second.Value)
	if errors.Is(err, model.ErrUnknownPokemon) {
		return userError("I don't know a Pokemon called %q.", opt.Second.Value), nil
	} else if err != nil {
		return nil, fmt.Errorf("error while looking up pokemon: %w", err)
	}

	var (
		lines       = make([]string, 0, len(statOrder)+1)
		totalFirst  int
		totalSecond int
	)
	lines = append(lines, fmt.Sprintf("%-16s%6s%6s", "", abbreviate(first.Name), abbreviate(second.Name)))
	for _, stat := range statOrder {
		a, err := first.BaseStat(ctx, stat)
		if err != nil {
			return nil, fmt.Errorf("could not get stat %q: %w", stat, err)
		}
		b, err := second.BaseStat(ctx, stat)
		if err != nil {
			return nil, fmt.Errorf("could not get stat %q: %w", stat, err)
		}

		totalFirst += a
		totalSecond += b
		lines = append(lines, fmt.Sprintf("%-16s%6d%6d", titleCase(stat), a, b))
	}
	lines = append(lines, fmt.Sprintf("%-16s%6d%6d", "Total", totalFirst, totalSecond))

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s vs %s", titleCase(first.Name), titleCase(second.Name)),
		Description: fmt.Sprintf("```\n%s\n```", strings.Join(lines, "\n")),
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, nil
}

// abbreviate fits a name into the comparison table's numeric columns.
func abbreviate(name string) string {
	name = titleCase(name)
	if len(name) > 5 {
		name = name[:5]
	}

	return name
}

func autocompleteCompare(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *compareOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.First.Focused:
		return completions(ctx, mdl, pokemonSearcher{}, opt.First.Value)
	case opt.Second.Focused:
		return completions(ctx, mdl, pokemonSearcher{}, opt.Second.Value)
	default:
		return nil, fmt.Errorf("no focused option: %w", ErrUnrecognizedInteraction)
	}
}
