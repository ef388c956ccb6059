package args

import (
	"context"
	"fmt"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
)

// ConfigShowCommand prints the active configuration document.
type ConfigShowCommand struct{}

func init() {
	RegisterCommand(&ConfigShowCommand{})
}

func (c *ConfigShowCommand) Name() string { return "config show" }

func (c *ConfigShowCommand) Description() string {
	return "Prints the active configuration as the JSON edited in the Code Lab."
}

func (c *ConfigShowCommand) Usage() string { return "" }

func (c *ConfigShowCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *ConfigShowCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *ConfigShowCommand) Execute(_ context.Context, env *Env, _ cli.CommandArgs) error {
	_, err := fmt.Fprintln(env.Stdout, env.Flow.Configuration().Document())
	return err
}
