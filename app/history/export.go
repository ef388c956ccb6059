package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format selects how Encode writes entries.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown history format %q (want text, json or yaml)", s)
}

// Encode writes entries to w in the requested format.
func Encode(w io.Writer, entries []Entry, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, Line(e, 48)); err != nil {
				return err
			}
		}
		return nil
	}
}

// Line is a one-line description of e with the first answer cut to width cells.
func Line(e Entry, width int) string {
	outcome := "○"
	if e.Outcome == No {
		outcome = "×"
	}
	return fmt.Sprintf("%s %s loops=%d  %s",
		e.Timestamp.Local().Format("2006-01-02 15:04"), outcome, e.LoopCount, Preview(e, width))
}

// Preview returns the first non-empty answer, truncated to width display cells.
func Preview(e Entry, width int) string {
	for _, a := range e.Answers {
		a = strings.Join(strings.Fields(a), " ")
		if a != "" {
			return runewidth.Truncate(a, width, "…")
		}
	}
	return "-"
}
