package cli

import (
	"fmt"
	"strings"
)

// CommandLookup reports whether a (possibly two-word) command name exists.
// It keeps this package independent of the command registry.
type CommandLookup interface {
	CommandExists(name string) bool
}

// ArgDef describes an expected positional argument.
type ArgDef struct {
	Name        string // e.g., "file"
	Description string // Help text for the argument
	Required    bool
}

// FlagDef describes an expected flag.
type FlagDef struct {
	Name        string // Long name (e.g., "format")
	ShortName   string // Short name (e.g., "f"), empty if none
	Description string
	HasValue    bool // true for --flag=v, false for --flag
	Required    bool
}

// CommandArgs holds structured information parsed from command-line arguments.
type CommandArgs struct {
	RawArgs          []string
	CommandName      string            // e.g., "history", "config apply"
	Variables        []string          // Positional arguments after the command name
	Flags            map[string]string // --limit=5 -> map["limit"]="5"
	BoolFlags        map[string]bool   // --copy -> map["copy"]=true
	HelpRequested    bool
	VersionRequested bool
	DebugRequested   bool
	Errors           []error
}

// Flag returns the value of a valued flag under its long or short name.
func (a CommandArgs) Flag(long, short string) (string, bool) {
	if v, ok := a.Flags[long]; ok {
		return v, true
	}
	if short != "" {
		if v, ok := a.Flags[short]; ok {
			return v, true
		}
	}
	return "", false
}

// Bool reports whether a boolean flag was given under its long or short name.
func (a CommandArgs) Bool(long, short string) bool {
	return a.BoolFlags[long] || (short != "" && a.BoolFlags[short])
}

var debugEnabled bool

// SetDebugEnabled enables or disables debug logging for this process.
func SetDebugEnabled(on bool) { debugEnabled = on }

// IsDebugEnabled reports whether --debug was given.
func IsDebugEnabled() bool { return debugEnabled }

// ParseCommandLineArgs splits rawArgs into a command name, positional
// variables and flags. The first two non-flag words form a command name when
// lookup knows the pair, otherwise the first word alone is tried.
func ParseCommandLineArgs(rawArgs []string, lookup CommandLookup) CommandArgs {
	parsed := CommandArgs{
		RawArgs:   rawArgs,
		Variables: make([]string, 0),
		Flags:     make(map[string]string),
		BoolFlags: make(map[string]bool),
		Errors:    make([]error, 0),
	}

	// Global flags are honoured wherever they appear.
	for _, arg := range rawArgs {
		switch arg {
		case "--help", "-h":
			parsed.HelpRequested = true
		case "--version":
			parsed.VersionRequested = true
		case "--debug":
			parsed.DebugRequested = true
		}
	}

	var rest []string
	parsed.CommandName, rest = splitCommand(rawArgs, lookup)
	parseFlags(rest, &parsed)
	return parsed
}

// splitCommand finds the command name and returns the remaining arguments.
func splitCommand(args []string, lookup CommandLookup) (string, []string) {
	words := make([]int, 0, 2)
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			words = append(words, i)
			if len(words) == 2 {
				break
			}
		}
	}

	without := func(skip ...int) []string {
		out := make([]string, 0, len(args))
		for i, arg := range args {
			keep := true
			for _, s := range skip {
				if i == s {
					keep = false
				}
			}
			if keep {
				out = append(out, arg)
			}
		}
		return out
	}

	if len(words) == 2 {
		if name := args[words[0]] + " " + args[words[1]]; lookup.CommandExists(name) {
			return name, without(words[0], words[1])
		}
	}
	if len(words) >= 1 && lookup.CommandExists(args[words[0]]) {
		return args[words[0]], without(words[0])
	}
	return "", without()
}

func parseFlags(args []string, parsed *CommandArgs) {
	next := func(i int) (string, bool) {
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			return args[i+1], true
		}
		return "", false
	}
	setValue := func(prefix, name, value string) {
		if _, exists := parsed.Flags[name]; exists {
			parsed.Errors = append(parsed.Errors, fmt.Errorf("flag provided more than once: %s%s", prefix, name))
		}
		parsed.Flags[name] = value
	}
	setBool := func(prefix, name string) {
		if _, exists := parsed.BoolFlags[name]; exists {
			parsed.Errors = append(parsed.Errors, fmt.Errorf("boolean flag provided more than once: %s%s", prefix, name))
		}
		parsed.BoolFlags[name] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--version" || arg == "--debug":
			continue

		case arg == "-":
			// A lone dash names stdin.
			parsed.Variables = append(parsed.Variables, arg)

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
			if !hasValue {
				value, hasValue = next(i)
				if hasValue {
					i++
				}
			}
			if hasValue {
				setValue("--", name, value)
			} else {
				setBool("--", name)
			}

		case strings.HasPrefix(arg, "-"):
			chars := []rune(strings.TrimPrefix(arg, "-"))
			value, hasValue := next(i)
			for j, c := range chars {
				if j == len(chars)-1 && hasValue {
					setValue("-", string(c), value)
					i++
				} else {
					setBool("-", string(c))
				}
			}

		default:
			parsed.Variables = append(parsed.Variables, arg)
		}
	}
}
