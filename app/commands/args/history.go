package args

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	"github.com/Guerrilla-Interactive/totonoe/app/history"
)

// HistoryCommand lists completed sessions.
type HistoryCommand struct{}

// HistoryClearCommand removes every completed session.
type HistoryClearCommand struct{}

func init() {
	RegisterCommand(&HistoryCommand{})
	RegisterCommand(&HistoryClearCommand{})
}

func (c *HistoryCommand) Name() string { return "history" }

func (c *HistoryCommand) Description() string {
	return "Lists completed sessions, newest first."
}

func (c *HistoryCommand) Usage() string { return "[--format text|json|yaml] [--limit N]" }

func (c *HistoryCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *HistoryCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "format", ShortName: "f", Description: "Output format: text, json or yaml.", HasValue: true},
		{Name: "limit", ShortName: "l", Description: "Show at most N entries.", HasValue: true},
	}
}

func (c *HistoryCommand) Execute(_ context.Context, env *Env, args cli.CommandArgs) error {
	f, _ := args.Flag("format", "f")
	format, err := history.ParseFormat(f)
	if err != nil {
		return err
	}

	entries := env.Flow.History()
	if v, ok := args.Flag("limit", "l"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return fmt.Errorf("--limit must be a non-negative integer, got %q", v)
		}
		if limit < len(entries) {
			entries = entries[:limit]
		}
	}
	if len(entries) == 0 && format == history.FormatText {
		fmt.Fprintln(env.Stdout, "No completed sessions yet.")
		return nil
	}
	return history.Encode(env.Stdout, entries, format)
}

func (c *HistoryClearCommand) Name() string { return "history clear" }

func (c *HistoryClearCommand) Description() string {
	return "Deletes every completed session."
}

func (c *HistoryClearCommand) Usage() string { return "--yes" }

func (c *HistoryClearCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *HistoryClearCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "yes", ShortName: "y", Description: "Confirm deletion.", Required: true},
	}
}

func (c *HistoryClearCommand) Execute(ctx context.Context, env *Env, args cli.CommandArgs) error {
	if !args.Bool("yes", "y") {
		return fmt.Errorf("history clear deletes %d session(s); re-run with --yes to confirm", len(env.Flow.History()))
	}
	env.Flow.ClearHistory(ctx)
	fmt.Fprintln(env.Stdout, "History cleared.")
	return nil
}
