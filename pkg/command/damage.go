package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/battle"
	"battledex/pkg/model"
)

type damageMoveOptions struct {
	Attacker discordField[string] `option:"attacker"`
	Defender discordField[string] `option:"defender"`
	Move     discordField[string] `option:"move"`
	Level    *int                 `option:"level"`
}

type damageCustomOptions struct {
	Attacker discordField[string] `option:"attacker"`
	Defender discordField[string] `option:"defender"`
	MoveType discordField[string] `option:"move-type"`
	Power    int                  `option:"power"`
	Level    *int                 `option:"level"`
}

type damageOptions struct {
	Move   *damageMoveOptions   `option:"move"`
	Custom *damageCustomOptions `option:"custom"`
}

// Damage estimates the damage one Pokemon's move deals to another.
func Damage() Command {
	levelOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "level",
		Description: fmt.Sprintf("Attacker level (default %d)", defaultLevel),
		MinValue:    float64Ptr(battle.MinLevel),
		MaxValue:    battle.MaxLevel,
	}

	return command[damageOptions]{
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "damage",
			Description: "Estimate the damage a move deals.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "move",
					Description: "Use a real move's power and type.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "attacker",
							Description:  "Attacking Pokemon",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "defender",
							Description:  "Defending Pokemon",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "move",
							Description:  "Move used by the attacker",
							Required:     true,
							Autocomplete: true,
						},
						levelOption,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "custom",
					Description: "Use an explicit move type and power.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "attacker",
							Description:  "Attacking Pokemon",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "defender",
							Description:  "Defending Pokemon",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "move-type",
							Description:  "Element type of the move",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "power",
							Description: "Base power of the move",
							Required:    true,
							MinValue:    float64Ptr(1),
						},
						levelOption,
					},
				},
			},
		},
		handle:       handleDamage,
		autocomplete: autocompleteDamage,
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

func handleDamage(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *damageOptions,
) (*discordgo.InteractionResponseData, error) {
	switch {
	case opt.Move != nil:
		return damageWithMove(ctx, mdl, opt.Move)
	case opt.Custom != nil:
		return damageWithCustomMove(ctx, mdl, opt.Custom)
	default:
		return nil, fmt.Errorf("no subcommand given: %w", ErrUnrecognizedInteraction)
	}
}

func damageWithMove(ctx context.Context, mdl *model.Model, opt *damageMoveOptions) (*discordgo.InteractionResponseData, error) {
	attacker, defender, resp, err := damageParticipants(ctx, mdl, opt.Attacker.Value, opt.Defender.Value)
	if resp != nil || err != nil {
		return resp, err
	}

	move, err := mdl.MoveByName(ctx, opt.Move.Value)
	if errors.Is(err, model.ErrUnknownMove) {
		return userError("I don't know a move called %q.", opt.Move.Value), nil
	} else if err != nil {
		return nil, fmt.Errorf("error while looking up move: %w", err)
	}

	spec, err := move.Spec(ctx)
	if errors.Is(err, battle.ErrInvalidMove) {
		return userError("%s has no base power, so it deals no direct damage.", titleCase(move.Name)), nil
	} else if err != nil {
		return nil, fmt.Errorf("error while resolving move: %w", err)
	}

	return damageResponse(ctx, attacker, defender, spec, titleCase(move.Name), opt.Level)
}

func damageWithCustomMove(ctx context.Context, mdl *model.Model, opt *damageCustomOptions) (*discordgo.InteractionResponseData, error) {
	attacker, defender, resp, err := damageParticipants(ctx, mdl, opt.Attacker.Value, opt.Defender.Value)
	if resp != nil || err != nil {
		return resp, err
	}

	typ := battle.ElementType(model.NormalizeName(opt.MoveType.Value))
	if !typ.IsValid() {
		return userError("%q is not an element type I know.", opt.MoveType.Value), nil
	}

	spec := battle.Move{
		Power: opt.Power,
		Type:  typ,
	}
	name := fmt.Sprintf("%s %d BP", titleCase(string(typ)), opt.Power)

	return damageResponse(ctx, attacker, defender, spec, name, opt.Level)
}

func damageParticipants(
	ctx context.Context,
	mdl *model.Model,
	attackerName, defenderName string,
) (attacker, defender *model.Pokemon, resp *discordgo.InteractionResponseData, err error) {
	attacker, err = mdl.PokemonByName(ctx, attackerName)
	if errors.Is(err, model.ErrUnknownPokemon) {
		return nil, nil, userError("I don't know a Pokemon called %q.", attackerName), nil
	} else if err != nil {
		return nil, nil, nil, fmt.Errorf("error while looking up attacker: %w", err)
	}

	defender, err = mdl.PokemonByName(ctx, defenderName)
	if errors.Is(err, model.ErrUnknownPokemon) {
		return nil, nil, userError("I don't know a Pokemon called %q.", defenderName), nil
	} else if err != nil {
		return nil, nil, nil, fmt.Errorf("error while looking up defender: %w", err)
	}

	return attacker, defender, nil, nil
}

func damageResponse(
	ctx context.Context,
	attacker, defender *model.Pokemon,
	spec battle.Move,
	moveName string,
	level *int,
) (*discordgo.InteractionResponseData, error) {
	attackerProfile, err := attacker.CombatProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not build attacker profile: %w", err)
	}

	defenderProfile, err := defender.CombatProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not build defender profile: %w", err)
	}

	lvl := defaultLevel
	if level != nil {
		lvl = *level
	}

	result, err := battle.Calculate(battle.Parameters{
		Attacker: attackerProfile,
		Defender: defenderProfile,
		Move:     spec,
		Level:    lvl,
	})
	if errors.Is(err, battle.ErrInvalidMove) || errors.Is(err, battle.ErrInvalidProfile) {
		return userError("Those stats don't make a valid calculation: %v", err), nil
	} else if err != nil {
		return nil, fmt.Errorf("error while calculating damage: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s → %s", titleCase(attacker.Name), titleCase(defender.Name)),
		Description: fmt.Sprintf("%s %s at level %d",
			badge(spec.Type), moveName, lvl),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Damage",
				Value:  fmt.Sprintf("%d", result.Damage),
				Inline: true,
			},
			{
				Name:   "Multiplier",
				Value:  formatMultiplier(result.Multiplier),
				Inline: true,
			},
			{
				Name:   "Effectiveness",
				Value:  titleCase(string(result.Effectiveness)),
				Inline: true,
			},
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, nil
}

func autocompleteDamage(
	ctx context.Context,
	mdl *model.Model,
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	opt *damageOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Move != nil:
		switch {
		case opt.Move.Attacker.Focused:
			return completions(ctx, mdl, pokemonSearcher{}, opt.Move.Attacker.Value)
		case opt.Move.Defender.Focused:
			return completions(ctx, mdl, pokemonSearcher{}, opt.Move.Defender.Value)
		case opt.Move.Move.Focused:
			return completions(ctx, mdl, moveSearcher{}, opt.Move.Move.Value)
		}
	case opt.Custom != nil:
		switch {
		case opt.Custom.Attacker.Focused:
			return completions(ctx, mdl, pokemonSearcher{}, opt.Custom.Attacker.Value)
		case opt.Custom.Defender.Focused:
			return completions(ctx, mdl, pokemonSearcher{}, opt.Custom.Defender.Value)
		case opt.Custom.MoveType.Focused:
			return completions(ctx, mdl, typeSearcher{}, opt.Custom.MoveType.Value)
		}
	}

	return nil, fmt.Errorf("no focused option: %w", ErrUnrecognizedInteraction)
}

func userError(format string, args ...any) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf(format, args...),
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}
