package shared

import (
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app"
)

// Footer joins key hints with a consistent separator and applies the global
// help style for footers.
func Footer(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	return app.HelpStyle.Render(strings.Join(parts, "  •  "))
}

// Status renders the model's notification line, or nothing.
func Status(m app.Model) string {
	if m.Status == "" {
		return ""
	}
	if m.StatusIsError {
		return app.ErrorStyle.Render(m.Status)
	}
	return app.SuccessStyle.Render(m.Status)
}
