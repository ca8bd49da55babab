package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/battle"
	"battledex/pkg/model"
)

type coverageOptions struct {
	Type discordField[string] `option:"type"`
}

// Coverage shows the offensive type chart for an attacking type.
func Coverage() Command {
	return command[coverageOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "coverage",
			Description: "Show what an attacking type hits well.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "type",
					Description:  "Attacking type",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		handle:       handleCoverage,
		autocomplete: autocompleteCoverage,
	}
}

func handleCoverage(
	_ context.Context,
	_ *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *coverageOptions,
) (*discordgo.InteractionResponseData, error) {
	typ := battle.ElementType(model.NormalizeName(opt.Type.Value))
	if !typ.IsValid() {
		return userError("%q is not an element type I know.", opt.Type.Value), nil
	}

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Offensive chart: %s", badge(typ)),
		Fields: multiplierBuckets(battle.OffensiveMultipliers(typ)),
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, nil
}

func autocompleteCoverage(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *coverageOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if !opt.Type.Focused {
		return nil, fmt.Errorf("no focused option: %w", ErrUnrecognizedInteraction)
	}

	return completions(ctx, mdl, typeSearcher{}, opt.Type.Value)
}
