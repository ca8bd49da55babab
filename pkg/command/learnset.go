package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/model"
)

type learnsetOptions struct {
	Pokemon  discordField[string] `option:"pokemon"`
	MaxLevel *int                 `option:"max-level"`
}

// Learnset pages through a Pokemon's level-up moves.
func Learnset() Command {
	limit := moveLimit

	return command[learnsetOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "learnset",
			Description: "List the moves a Pokemon learns by leveling up.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "pokemon",
					Description:  "Pokemon to look up",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "max-level",
					Description: "Only show moves learned at or below this level",
					MinValue:    float64Ptr(1),
				},
			},
		},
		paginate:     paginateLearnset,
		autocomplete: autocompleteLearnset,
		limit:        &limit,
	}
}

func paginateLearnset(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	p paginator[learnsetOptions],
) (*discordgo.InteractionResponseData, error) {
	pokemon, err := mdl.PokemonByName(ctx, p.Options.Pokemon.Value)
	if errors.Is(err, model.ErrUnknownPokemon) {
		return userError("I don't know a Pokemon called %q.", p.Options.Pokemon.Value), nil
	} else if err != nil {
		return nil, fmt.Errorf("error while looking up pokemon: %w", err)
	}

	moves, hasNext, err := pokemon.LevelUpMoves(ctx, p.Options.MaxLevel, p.Page.Limit, p.Page.Offset)
	if err != nil {
		return nil, fmt.Errorf("error while getting level-up moves: %w", err)
	}

	if len(moves) == 0 && p.Page.Offset == 0 {
		return userError("I have no level-up data for %s.", titleCase(pokemon.Name)), nil
	}

	lines := make([]string, len(moves))
	for i, pm := range moves {
		move, err := pm.Move(ctx)
		if err != nil {
			return nil, fmt.Errorf("error while resolving move: %w", err)
		}

		lines[i] = fmt.Sprintf("Lv. %2d  %s", pm.Level, titleCase(move.Name))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Learnset: %s", titleCase(pokemon.Name)),
		Description: fmt.Sprintf("```\n%s\n```", strings.Join(lines, "\n")),
	}

	components, err := pageButtons(p, "learnset", hasNext)
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}, nil
}

// pageButtons builds prev/next buttons whose custom IDs carry the full
// pagination state, so a button press can rebuild the page without any
// server-side session.
func pageButtons[T any](p paginator[T], name string, hasNext bool) ([]discordgo.MessageComponent, error) {
	prev := p
	prev.Page.Offset -= p.Page.Limit
	if prev.Page.Offset < 0 {
		prev.Page.Offset = 0
	}
	prevID, err := prev.customID(name)
	if err != nil {
		return nil, fmt.Errorf("could not encode previous page: %w", err)
	}

	next := p
	next.Page.Offset += p.Page.Limit
	nextID, err := next.customID(name)
	if err != nil {
		return nil, fmt.Errorf("could not encode next page: %w", err)
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: prevID,
					Disabled: p.Page.Offset == 0,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: nextID,
					Disabled: !hasNext,
				},
			},
		},
	}, nil
}

func autocompleteLearnset(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *learnsetOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if !opt.Pokemon.Focused {
		return nil, fmt.Errorf("no focused option: %w", ErrUnrecognizedInteraction)
	}

	return completions(ctx, mdl, pokemonSearcher{}, opt.Pokemon.Value)
}
