package args

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	"github.com/Guerrilla-Interactive/totonoe/app/export"
	"github.com/Guerrilla-Interactive/totonoe/app/format"
	"github.com/Guerrilla-Interactive/totonoe/app/history"
)

var errNoHistory = errors.New("no completed sessions yet; finish one in the interactive mode first")

// SummaryCommand prints the summary of the newest completed session.
type SummaryCommand struct{}

// PromptCommand prints or exports the assistant prompt of the newest session.
type PromptCommand struct{}

func init() {
	RegisterCommand(&SummaryCommand{})
	RegisterCommand(&PromptCommand{})
}

// latest returns the newest entry with its question texts. Entries recorded
// without questions fall back to the active configuration.
func latest(env *Env) (history.Entry, []string, error) {
	e, ok := env.Flow.LatestEntry()
	if !ok {
		return history.Entry{}, nil, errNoHistory
	}
	questions := e.Questions
	if len(questions) == 0 {
		questions = env.Flow.Configuration().Questions
	}
	return e, questions, nil
}

func (c *SummaryCommand) Name() string { return "summary" }

func (c *SummaryCommand) Description() string {
	return "Prints the summary of the most recent completed session."
}

func (c *SummaryCommand) Usage() string { return "" }

func (c *SummaryCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *SummaryCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *SummaryCommand) Execute(_ context.Context, env *Env, _ cli.CommandArgs) error {
	e, questions, err := latest(env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(env.Stdout, format.BuildSummary(questions, e.Answers))
	return err
}

func (c *PromptCommand) Name() string { return "prompt" }

func (c *PromptCommand) Description() string {
	return "Prints the AI prompt of the most recent session, or copies/writes it."
}

func (c *PromptCommand) Usage() string { return "[--copy] [--out FILE]" }

func (c *PromptCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *PromptCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "copy", ShortName: "c", Description: "Copy the prompt to the clipboard."},
		{Name: "out", ShortName: "o", Description: "Write the prompt to FILE.", HasValue: true},
	}
}

func (c *PromptCommand) Execute(_ context.Context, env *Env, args cli.CommandArgs) error {
	e, questions, err := latest(env)
	if err != nil {
		return err
	}
	text := format.BuildPrompt(questions, e.Answers)

	exported := false
	if path, ok := args.Flag("out", "o"); ok {
		if err := (export.File{Path: path}).Export(text); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "Prompt written to %s.\n", path)
		exported = true
	}
	if args.Bool("copy", "c") {
		if err := env.Clipboard.Export(text); err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, "Prompt copied to the clipboard.")
		exported = true
	}
	if !exported {
		_, err = fmt.Fprint(env.Stdout, text)
	}
	return err
}
