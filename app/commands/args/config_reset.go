package args

import (
	"context"
	"fmt"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	"github.com/Guerrilla-Interactive/totonoe/app/lab"
)

// ConfigResetCommand applies the fixed template.
type ConfigResetCommand struct{}

func init() {
	RegisterCommand(&ConfigResetCommand{})
}

func (c *ConfigResetCommand) Name() string { return "config reset" }

func (c *ConfigResetCommand) Description() string {
	return "Restores the built-in questions, UI options and behavior flags."
}

func (c *ConfigResetCommand) Usage() string { return "--yes" }

func (c *ConfigResetCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *ConfigResetCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "yes", ShortName: "y", Description: "Confirm replacing the current configuration.", Required: true},
	}
}

func (c *ConfigResetCommand) Execute(ctx context.Context, env *Env, args cli.CommandArgs) error {
	if !args.Bool("yes", "y") {
		return fmt.Errorf("config reset replaces your questions; re-run with --yes to confirm")
	}
	if err := env.Flow.ApplyDocument(ctx, lab.DefaultTemplate()); err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, "Configuration reset to the built-in template.")
	return nil
}
