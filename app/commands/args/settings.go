package args

import (
	"context"
	"fmt"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	config "github.com/Guerrilla-Interactive/totonoe/internal"
)

// SettingsGetCommand prints one process setting.
type SettingsGetCommand struct{}

// SettingsSetCommand changes one process setting in settings.json.
type SettingsSetCommand struct{}

// SettingsListCommand prints every process setting.
type SettingsListCommand struct{}

func init() {
	RegisterCommand(&SettingsGetCommand{})
	RegisterCommand(&SettingsSetCommand{})
	RegisterCommand(&SettingsListCommand{})
}

func (c *SettingsGetCommand) Name() string { return "settings get" }

func (c *SettingsGetCommand) Description() string {
	return "Prints a setting from settings.json (store_backend, log_level, log_file)."
}

func (c *SettingsGetCommand) Usage() string { return "<key>" }

func (c *SettingsGetCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "key", Description: "The setting to read.", Required: true},
	}
}

func (c *SettingsGetCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *SettingsGetCommand) Execute(_ context.Context, env *Env, args cli.CommandArgs) error {
	if err := checkArgs(c, args); err != nil {
		return err
	}
	cfg, err := config.LoadSettingsFile()
	if err != nil {
		return err
	}
	v, err := cfg.Get(args.Variables[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, v)
	return nil
}

func (c *SettingsSetCommand) Name() string { return "settings set" }

func (c *SettingsSetCommand) Description() string {
	return "Sets a setting in settings.json. Environment variables still take precedence."
}

func (c *SettingsSetCommand) Usage() string { return "<key> <value>" }

func (c *SettingsSetCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "key", Description: "The setting to change.", Required: true},
		{Name: "value", Description: "The value to assign to the key.", Required: true},
	}
}

func (c *SettingsSetCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *SettingsSetCommand) Execute(_ context.Context, env *Env, args cli.CommandArgs) error {
	if err := checkArgs(c, args); err != nil {
		return err
	}
	cfg, err := config.LoadSettingsFile()
	if err != nil {
		return err
	}
	key, value := args.Variables[0], args.Variables[1]
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "%s = %s\n", key, value)
	return nil
}

func (c *SettingsListCommand) Name() string { return "settings list" }

func (c *SettingsListCommand) Description() string {
	return "Lists the effective settings, including environment overrides."
}

func (c *SettingsListCommand) Usage() string { return "" }

func (c *SettingsListCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *SettingsListCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *SettingsListCommand) Execute(_ context.Context, env *Env, _ cli.CommandArgs) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "%-14s %s\n", "state_dir", cfg.StateDir)
	for _, key := range config.Keys() {
		v, _ := cfg.Get(key)
		fmt.Fprintf(env.Stdout, "%-14s %s\n", key, v)
	}
	fmt.Fprintf(env.Stdout, "%-14s %s\n", "log_path", cfg.LogPath())
	return nil
}
