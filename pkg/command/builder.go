package command

const (
	// defaultLevel is the attacker level assumed when a damage calculation
	// does not name one.
	defaultLevel = 50

	// moveLimit is the number of learnset rows shown per page.
	moveLimit = 15
)

var commandFuncs = []func() Command{
	Damage,
	Weak,
	Coverage,
	Dex,
	Compare,
	Learnset,
}

// All constructs every registered command.
func All() []Command {
	commands := make([]Command, len(commandFuncs))
	for i, f := range commandFuncs {
		commands[i] = f()
	}

	return commands
}

// Map indexes every registered command by name for interaction routing.
func Map() map[string]Command {
	m := make(map[string]Command, len(commandFuncs))
	for _, f := range commandFuncs {
		cmd := f()
		m[cmd.Name()] = cmd
	}

	return m
}
