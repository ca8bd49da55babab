package command

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bwmarrin/discordgo"

	"battledex/pkg/model"
)

type (
	// Page is one window into a paginated result set.
	Page struct {
		Limit  int `json:"l"`
		Offset int `json:"o"`
	}

	// Command is one registered slash command.
	Command interface {
		ApplicationCommand() *discordgo.ApplicationCommand
		Handle(context.Context, *model.Model, *discordgo.Session, *discordgo.InteractionCreate) error
		Autocomplete(context.Context, *model.Model, *discordgo.Session, *discordgo.InteractionCreate) error
		Paginate(context.Context, *model.Model, *discordgo.Session, *discordgo.InteractionCreate, string) error
		Name() string
	}

	handler[S any, T any] func(context.Context, *model.Model, *discordgo.Session, *discordgo.InteractionCreate, S) (T, error)

	// paginator carries a command's decoded options plus the requested page
	// through a button's custom ID, so paging needs no server-side state.
	paginator[T any] struct {
		Options T    `json:"q"`
		Page    Page `json:"p"`
	}

	command[T any] struct {
		applicationCommand *discordgo.ApplicationCommand
		handle             handler[*T, *discordgo.InteractionResponseData]
		autocomplete       handler[*T, []*discordgo.ApplicationCommandOptionChoice]
		paginate           handler[paginator[T], *discordgo.InteractionResponseData]
		limit              *int
	}
)

func (cmd command[T]) ApplicationCommand() *discordgo.ApplicationCommand {
	return cmd.applicationCommand
}

func (cmd command[T]) Name() string {
	return cmd.applicationCommand.Name
}

var ErrUnrecognizedInteraction = errors.New("could not handle interaction")

// CustomIDName extracts the owning command's name from a component custom
// ID, so the bot can route button presses.
func CustomIDName(customID string) (name, state string, err error) {
	name, state, ok := strings.Cut(customID, ":")
	if !ok {
		return "", "", fmt.Errorf("malformed custom ID %q: %w", customID, ErrUnrecognizedInteraction)
	}

	return name, state, nil
}

func (p paginator[T]) customID(name string) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal pagination state: %w", err)
	}

	return fmt.Sprintf("%s:%s", name, base64.RawURLEncoding.EncodeToString(data)), nil
}

func decodePaginator[T any](state string) (*paginator[T], error) {
	data, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pagination state: %w", err)
	}

	var p paginator[T]
	err = json.Unmarshal(data, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal pagination state: %w", err)
	}

	return &p, nil
}

func (cmd command[T]) responseBody(
	ctx context.Context,
	mdl *model.Model,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt T,
) (*discordgo.InteractionResponseData, error) {
	switch {
	case cmd.handle != nil:
		body, err := cmd.handle(ctx, mdl, sess, interaction, &opt)
		if err != nil {
			return nil, fmt.Errorf("error while calling handler: %w", err)
		}
		return body, nil
	case cmd.paginate != nil && cmd.limit != nil:
		p := paginator[T]{
			Options: opt,
			Page: Page{
				Limit:  *cmd.limit,
				Offset: 0,
			},
		}
		body, err := cmd.paginate(ctx, mdl, sess, interaction, p)
		if err != nil {
			return nil, fmt.Errorf("error while calling pagination handler: %w", err)
		}
		return body, nil
	default:
		return nil, fmt.Errorf("no handler for command: %w", ErrUnrecognizedInteraction)
	}
}

func (cmd command[T]) Handle(
	ctx context.Context,
	mdl *model.Model,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	data := interaction.ApplicationCommandData()

	var structure T
	err := decodeOptions(data.Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for command %q: %w", data.Name, err)
	}

	body, err := cmd.responseBody(ctx, mdl, sess, interaction, structure)
	if err != nil {
		return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: body,
	})
	if err != nil {
		return fmt.Errorf("error while responding to command %q: %w", cmd.Name(), err)
	}

	return nil
}

func (cmd command[T]) Paginate(
	ctx context.Context,
	mdl *model.Model,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	state string,
) error {
	if cmd.paginate == nil {
		return fmt.Errorf("command %q does not paginate: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}

	p, err := decodePaginator[T](state)
	if err != nil {
		return fmt.Errorf("error while deserializing pagination data: %w", err)
	}

	body, err := cmd.paginate(ctx, mdl, sess, interaction, *p)
	if err != nil {
		return fmt.Errorf("error while calling pagination handler: %w", err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: body,
	})
	if err != nil {
		return fmt.Errorf("failed to update message for command %q: %w", cmd.Name(), err)
	}

	return nil
}

func (cmd command[T]) Autocomplete(
	ctx context.Context,
	mdl *model.Model,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	var structure T
	err := decodeOptions(interaction.ApplicationCommandData().Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for autocomplete: %w", err)
	}

	choices, err := cmd.autocomplete(ctx, mdl, sess, interaction, &structure)
	if err != nil {
		return fmt.Errorf("error while calling autocompletion handler: %w", err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		return fmt.Errorf("error while sending autocompletions: %w", err)
	}

	return nil
}

var ErrDecodeOption = errors.New("error while decoding options")

type discordValue interface {
	string | int | bool
}

// discordField records an option's value along with whether the user's
// cursor is focused on it, which autocompletion handlers need.
type discordField[T discordValue] struct {
	Value   T    `json:"v"`
	Focused bool `json:"-"`
}

var fieldTypes = map[reflect.Type]bool{
	reflect.TypeOf(discordField[string]{}): true,
	reflect.TypeOf(discordField[int]{}):    true,
	reflect.TypeOf(discordField[bool]{}):   true,
}

func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption, structure any) (ret error) {
	defer func() {
		r := recover()
		if err, ok := r.(reflect.ValueError); ok {
			ret = fmt.Errorf("reflection error while decoding options: %v", err.Error())
		} else if r != nil {
			panic(r)
		}
	}()

	value := reflect.Indirect(reflect.ValueOf(structure))
	if !value.CanAddr() {
		return fmt.Errorf("value is not addressable: %w", ErrDecodeOption)
	}

	m := make(map[string]reflect.Value, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		tfield := value.Type().Field(i)
		option := tfield.Tag.Get("option")
		if option == "" {
			continue
		}

		if !field.CanSet() {
			return fmt.Errorf("field %q cannot be set: %w", tfield.Name, ErrDecodeOption)
		}
		m[option] = field
	}

	for _, option := range options {
		field, ok := m[option.Name]
		if !ok {
			return fmt.Errorf("unexpected option name %q: %w", option.Name, ErrDecodeOption)
		}

		if field.Kind() == reflect.Pointer {
			ptr := reflect.New(field.Type().Elem())
			field.Set(ptr)

			field = ptr.Elem()
		}
		if field.Kind() == reflect.Struct && fieldTypes[field.Type()] {
			backing := field.FieldByName("Value")
			backing.Set(reflect.Zero(backing.Type()))
			focused := field.FieldByName("Focused")
			focused.SetBool(option.Focused)

			field = backing
		}

		switch option.Type {
		case discordgo.ApplicationCommandOptionString:
			if field.Kind() == reflect.String {
				field.SetString(option.StringValue())
				continue
			}
		case discordgo.ApplicationCommandOptionInteger:
			if field.Kind() == reflect.Int {
				field.SetInt(option.IntValue())
				continue
			}
		case discordgo.ApplicationCommandOptionBoolean:
			if field.Kind() == reflect.Bool {
				field.SetBool(option.BoolValue())
				continue
			}
		case discordgo.ApplicationCommandOptionSubCommand:
			if field.Kind() == reflect.Struct {
				err := decodeOptions(option.Options, field.Addr().Interface())
				if err != nil {
					return fmt.Errorf("error while decoding options for subcommand %q: %w", option.Name, err)
				}

				continue
			}
		default:
			return fmt.Errorf("unsupported type %v for option %q: %w", option.Type, option.Name, ErrDecodeOption)
		}
		return fmt.Errorf("unexpected type %v for option %q: %w", option.Type, option.Name, ErrDecodeOption)
	}

	return nil
}
