package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonID identifies what a button does.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonSave
	ButtonNext
	ButtonSubmit
	ButtonCancel
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with keyboard focus.
type ButtonBar struct {
	buttons []Button
	focused int // -1 when no button has focus
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetButtons replaces the buttons, keeping focus on the same ID when it is
// still enabled.
func (b *ButtonBar) SetButtons(buttons []Button) {
	var prev ButtonID = -1
	if btn, ok := b.FocusedButton(); ok {
		prev = btn.ID
	}
	b.buttons = buttons
	b.focused = -1
	if prev < 0 {
		return
	}
	for i, btn := range buttons {
		if btn.ID == prev && btn.State != ButtonDisabled {
			b.focused = i
			return
		}
	}
	b.FocusFirst()
}

// Buttons returns the buttons with their current states.
func (b *ButtonBar) Buttons() []Button {
	out := make([]Button, len(b.buttons))
	for i, btn := range b.buttons {
		if i == b.focused {
			btn.State = ButtonFocused
		}
		out[i] = btn
	}
	return out
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() bool {
	b.focused = -1
	return b.FocusNext()
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() bool {
	b.focused = len(b.buttons)
	return b.FocusPrev()
}

// FocusNext moves focus right. It returns false when it runs off the end.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focused + 1; i < len(b.buttons); i++ {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// FocusPrev moves focus left. It returns false when it runs off the start.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focused - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

// FocusedButton returns the focused button.
func (b *ButtonBar) FocusedButton() (Button, bool) {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return Button{}, false
	}
	return b.buttons[b.focused], true
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()
	base := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)
	normalStyle := base.
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0))
	disabledStyle := base.
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle))
	focusedStyle := base.
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Tertiary)).
		Bold(true)

	var rendered []string
	for _, btn := range b.Buttons() {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, disabledStyle.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, focusedStyle.Render(btn.Label))
		default:
			rendered = append(rendered, normalStyle.Render(btn.Label))
		}
	}

	return lipgloss.PlaceHorizontal(b.width, lipgloss.Center, strings.Join(rendered, ""))
}

// NavigationButtons builds the Back / Save draft / Next (or Submit) set.
// backEnabled: whether Back button is enabled
// nextEnabled: whether the step is complete
// last: whether the forward button submits
func NavigationButtons(backEnabled, nextEnabled, last, saving bool) []Button {
	state := func(enabled bool) ButtonState {
		if enabled && !saving {
			return ButtonNormal
		}
		return ButtonDisabled
	}

	back := Button{ID: ButtonBack, Label: "← Back", State: state(backEnabled)}
	if !backEnabled {
		back = Button{ID: ButtonCancel, Label: "Cancel", State: state(true)}
	}
	forward := Button{ID: ButtonNext, Label: "Next →", State: state(nextEnabled)}
	if last {
		forward = Button{ID: ButtonSubmit, Label: "Submit", State: state(nextEnabled)}
	}
	return []Button{
		back,
		{ID: ButtonSave, Label: "Save draft", State: state(true)},
		forward,
	}
}
