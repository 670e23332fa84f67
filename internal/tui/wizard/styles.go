package wizard

import (
	"sort"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

// inputStyles builds textinput styles from the current theme.
func inputStyles() textinput.Styles {
	t := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Tertiary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgOverlay)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// newInput creates a themed single-line input.
func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "> "
	in.SetStyles(inputStyles())
	in.SetWidth(width)
	return in
}

// renderField renders a labelled control with its error, if any.
func renderField(label, view, errMsg string) string {
	s := theme.Current().S()
	out := s.Label.Render(label) + "\n" + view
	if errMsg != "" {
		out += "\n" + s.Error.Render("✗ "+errMsg)
	}
	return out
}

// renderErrors lists step errors in a stable order.
func renderErrors(errs map[core.Field]string) string {
	if len(errs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	s := theme.Current().S()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, s.Error.Render("✗ "+errs[core.Field(k)]))
	}
	return strings.Join(lines, "\n")
}

// renderOption renders one selectable row.
func renderOption(label string, cursor, selected bool) string {
	s := theme.Current().S()
	mark := "  "
	if selected {
		mark = "● "
	}
	if cursor {
		return s.Selected.Render("▸ " + mark + label)
	}
	if selected {
		return "  " + s.Success.Render(mark+label)
	}
	return "  " + s.Text.Render(mark+label)
}

// renderCheck renders a boolean toggle row.
func renderCheck(label string, cursor, checked bool) string {
	box := "[ ] "
	if checked {
		box = "[x] "
	}
	if cursor {
		return theme.Current().S().Selected.Render("▸ " + box + label)
	}
	return "  " + box + label
}
