package args

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	"github.com/Guerrilla-Interactive/totonoe/app/export"
	"github.com/Guerrilla-Interactive/totonoe/app/flow"
	"go.uber.org/zap"
)

// ArgDef is an alias for cli.ArgDef.
type ArgDef = cli.ArgDef

// FlagDef is an alias for cli.FlagDef.
type FlagDef = cli.FlagDef

// Env carries what a command needs to run.
type Env struct {
	Flow      *flow.Controller
	Stdin     io.Reader
	Stdout    io.Writer
	Clipboard export.Sink
	Log       *zap.Logger
}

// Command represents a CLI command that can be executed directly.
type Command interface {
	// Name returns the command's name (e.g., "config apply").
	Name() string
	// Description returns a brief help description for the command.
	Description() string
	// Execute runs the command logic with the parsed arguments.
	Execute(ctx context.Context, env *Env, args cli.CommandArgs) error
	// Usage returns a brief usage string (e.g., "<file> [--dry-run]").
	Usage() string
	// ExpectedArgs returns definitions for expected positional arguments.
	ExpectedArgs() []ArgDef
	// ExpectedFlags returns definitions for expected flags.
	ExpectedFlags() []FlagDef
}

// commandRegistry holds all registered CLI commands by name.
var commandRegistry = make(map[string]Command)

// RegisterCommand adds a command to the registry. It is called from init()
// in each command's file; registering a name twice is a programming error.
func RegisterCommand(cmd Command) {
	if _, exists := commandRegistry[cmd.Name()]; exists {
		panic(fmt.Sprintf("Command already registered: %s", cmd.Name()))
	}
	commandRegistry[cmd.Name()] = cmd
}

// GetCommand retrieves a command from the registry by its name.
func GetCommand(name string) (Command, bool) {
	cmd, found := commandRegistry[name]
	return cmd, found
}

// CommandExists checks if a command with the given name is registered.
func CommandExists(name string) bool {
	_, found := commandRegistry[name]
	return found
}

// Lookup adapts the registry to cli.CommandLookup.
type Lookup struct{}

func (Lookup) CommandExists(name string) bool { return CommandExists(name) }

// GetAllCommands returns every registered command sorted by name.
func GetAllCommands() []Command {
	cmds := make([]Command, 0, len(commandRegistry))
	for _, cmd := range commandRegistry {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

// Run normalizes args against cmd's flag definitions, checks required
// positional arguments and executes cmd.
func Run(ctx context.Context, cmd Command, env *Env, args cli.CommandArgs) error {
	args = normalizeFlags(cmd, args)
	if err := checkArgs(cmd, args); err != nil {
		return err
	}
	return cmd.Execute(ctx, env, args)
}

// normalizeFlags turns "--copy out.txt" back into a boolean flag and a
// positional argument when the command declares copy as valueless.
func normalizeFlags(cmd Command, args cli.CommandArgs) cli.CommandArgs {
	flags := make(map[string]string, len(args.Flags))
	bools := make(map[string]bool, len(args.BoolFlags))
	for k, v := range args.BoolFlags {
		bools[k] = v
	}
	var recovered []string
	for name, value := range args.Flags {
		if isBoolFlag(cmd, name) {
			bools[name] = true
			recovered = append(recovered, value)
			continue
		}
		flags[name] = value
	}
	sort.Strings(recovered)
	args.Flags = flags
	args.BoolFlags = bools
	args.Variables = append(recovered, args.Variables...)
	return args
}

func isBoolFlag(cmd Command, name string) bool {
	for _, f := range cmd.ExpectedFlags() {
		if !f.HasValue && (f.Name == name || (f.ShortName != "" && f.ShortName == name)) {
			return true
		}
	}
	return false
}

// checkArgs verifies required positional arguments are present.
func checkArgs(cmd Command, args cli.CommandArgs) error {
	required := 0
	for _, a := range cmd.ExpectedArgs() {
		if a.Required {
			required++
		}
	}
	if len(args.Variables) < required {
		return fmt.Errorf("%s: missing required argument(s); usage: totonoe %s %s", cmd.Name(), cmd.Name(), cmd.Usage())
	}
	return nil
}
