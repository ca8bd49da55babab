package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/command"
	"battledex/pkg/config"
	"battledex/pkg/model"
	"battledex/pkg/pokeapi"
)

type Bot struct {
	config   config.Config
	session  *discordgo.Session
	commands map[string]command.Command
	model    *model.Model
}

func New(ctx context.Context, cfg config.Config) (*Bot, error) {
	mdl, err := model.New(ctx, cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("error while instantiating model: %w", err)
	}

	if cfg.PokeAPI.Enabled {
		mdl.SetRemote(pokeapi.New(cfg.PokeAPI.BaseURL))
	}

	return &Bot{
		config:   cfg,
		commands: command.Map(),
		model:    mdl,
	}, nil
}

func (bot *Bot) Close() {
	log.Println("Shutting down.")
	err := bot.model.Close()
	if err != nil {
		log.Printf("error while closing model: %v", err)
	}
	err = bot.session.Close()
	if err != nil {
		log.Printf("error while closing discord session: %v", err)
	}
}

func (bot *Bot) handleInteraction(ctx context.Context, sess *discordgo.Session, interaction *discordgo.InteractionCreate) error {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		data := interaction.ApplicationCommandData()
		cmd, ok := bot.commands[data.Name]
		if !ok {
			return fmt.Errorf("unknown command %q: %w", data.Name, command.ErrUnrecognizedInteraction)
		}

		log.Printf("COMMAND %q", cmd.Name())
		return cmd.Handle(ctx, bot.model, sess, interaction)
	case discordgo.InteractionApplicationCommandAutocomplete:
		data := interaction.ApplicationCommandData()
		cmd, ok := bot.commands[data.Name]
		if !ok {
			return fmt.Errorf("unknown command %q: %w", data.Name, command.ErrUnrecognizedInteraction)
		}

		return cmd.Autocomplete(ctx, bot.model, sess, interaction)
	case discordgo.InteractionMessageComponent:
		name, state, err := command.CustomIDName(interaction.MessageComponentData().CustomID)
		if err != nil {
			return fmt.Errorf("error while routing component: %w", err)
		}

		cmd, ok := bot.commands[name]
		if !ok {
			return fmt.Errorf("unknown command %q for component: %w", name, command.ErrUnrecognizedInteraction)
		}

		return cmd.Paginate(ctx, bot.model, sess, interaction, state)
	default:
		return fmt.Errorf("unhandled interaction type %q: %w", interaction.Type, command.ErrUnrecognizedInteraction)
	}
}

func (bot *Bot) initialize(ctx context.Context) error {
	sess, err := discordgo.New("Bot " + bot.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to instantiate discord bot: %w", err)
	}
	bot.session = sess

	err = bot.session.Open()
	if err != nil {
		return fmt.Errorf("failed to start discord session: %w", err)
	}

	bot.session.AddHandler(func(sess *discordgo.Session, interaction *discordgo.InteractionCreate) {
		err := bot.handleInteraction(ctx, sess, interaction)
		if err != nil {
			log.Printf("error while handling interaction: %v", err)
		}
	})

	err = bot.registerCommands()
	if err != nil {
		return fmt.Errorf("error while registering commands: %w", err)
	}

	return nil
}

func (bot *Bot) Run(ctx context.Context) error {
	err := bot.initialize(ctx)
	if err != nil {
		return fmt.Errorf("error while initializing bot: %w", err)
	}

	log.Println("Hosting battledex bot.")
	defer bot.Close()
	<-ctx.Done()

	return nil
}

func (bot *Bot) registerCommands() error {
	for _, cmd := range bot.commands {
		_, err := bot.session.ApplicationCommandCreate(
			bot.session.State.User.ID,
			bot.config.Discord.ResourceGuildID,
			cmd.ApplicationCommand(),
		)
		if err != nil {
			return fmt.Errorf("failed to create command %q: %w", cmd.Name(), err)
		}
	}

	return nil
}
