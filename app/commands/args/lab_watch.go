package args

import (
	"context"
	"fmt"
	"time"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	"github.com/Guerrilla-Interactive/totonoe/app/labwatch"
)

// LabWatchCommand applies a configuration file every time it is saved.
type LabWatchCommand struct{}

func init() {
	RegisterCommand(&LabWatchCommand{})
}

func (c *LabWatchCommand) Name() string { return "lab watch" }

func (c *LabWatchCommand) Description() string {
	return "Watches a JSON file and applies it on every save until interrupted."
}

func (c *LabWatchCommand) Usage() string { return "<file>" }

func (c *LabWatchCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "file", Description: "Configuration document to watch.", Required: true},
	}
}

func (c *LabWatchCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *LabWatchCommand) Execute(ctx context.Context, env *Env, args cli.CommandArgs) error {
	if err := checkArgs(c, args); err != nil {
		return err
	}
	notify := func(path string, err error) {
		stamp := time.Now().Format("15:04:05")
		if err != nil {
			fmt.Fprintf(env.Stdout, "%s rejected %s: %v\n", stamp, path, err)
			return
		}
		fmt.Fprintf(env.Stdout, "%s applied %s (%d questions)\n", stamp, path, len(env.Flow.Configuration().Questions))
	}
	w, err := labwatch.New(args.Variables[0], env.Flow.ApplyDocument, notify, env.Log)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, "Watching for changes, press Ctrl+C to stop.")
	return w.Run(ctx)
}
