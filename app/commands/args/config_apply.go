package args

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	"github.com/Guerrilla-Interactive/totonoe/app/lab"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ConfigApplyCommand reconciles a configuration document and saves it.
type ConfigApplyCommand struct{}

func init() {
	RegisterCommand(&ConfigApplyCommand{})
}

func (c *ConfigApplyCommand) Name() string { return "config apply" }

func (c *ConfigApplyCommand) Description() string {
	return "Validates a configuration document and applies it (same rules as the Code Lab)."
}

func (c *ConfigApplyCommand) Usage() string { return "<file|-> [--dry-run]" }

func (c *ConfigApplyCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "file", Description: "JSON document to apply, or - for stdin.", Required: true},
	}
}

func (c *ConfigApplyCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "dry-run", ShortName: "n", Description: "Show what would change without saving."},
	}
}

func (c *ConfigApplyCommand) Execute(ctx context.Context, env *Env, args cli.CommandArgs) error {
	if err := checkArgs(c, args); err != nil {
		return err
	}
	dryRun := args.Bool("dry-run", "n")

	raw, err := readDocument(env.Stdin, args.Variables[0])
	if err != nil {
		return err
	}

	current := env.Flow.Configuration()
	if dryRun {
		next, err := lab.Reconcile(raw, current)
		if err != nil {
			return fmt.Errorf("document rejected: %w", err)
		}
		fmt.Fprint(env.Stdout, lineDiff(current.Document(), next.Document()))
		return nil
	}

	if err := env.Flow.ApplyDocument(ctx, raw); err != nil {
		return fmt.Errorf("document rejected: %w", err)
	}
	fmt.Fprintf(env.Stdout, "Applied: %d question(s).\n", len(env.Flow.Configuration().Questions))
	return nil
}

func readDocument(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// lineDiff renders a unified-style line diff; unchanged lines get two spaces.
func lineDiff(oldText, newText string) string {
	if oldText == newText {
		return "No changes.\n"
	}
	dmp := diffmatchpatch.New()
	rOld, rNew, lines := dmp.DiffLinesToRunes(oldText+"\n", newText+"\n")
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(rOld, rNew, false))

	var b strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, r := range d.Text {
			idx := int(r)
			if idx < 0 || idx >= len(lines) {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(lines[idx])
		}
	}
	return b.String()
}
