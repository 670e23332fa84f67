package wizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/tui"
	core "github.com/mark3labs/listr/internal/wizard"
)

var contactFields = []struct {
	field       core.Field
	label       string
	placeholder string
}{
	{core.FieldLocation, "Location", "Street, city"},
	{core.FieldPhone, "Phone", "+1 555 0100"},
	{core.FieldEmail, "Email", "hello@example.com"},
	{core.FieldWebsite, "Website", "example.com"},
}

// ContactStep edits location and contact details.
type ContactStep struct {
	wiz        *core.Wizard
	inputs     []textinput.Model
	focusIndex int
	touched    map[core.Field]bool
	width      int
	height     int
}

// NewContactStep creates the step from the wizard's form.
func NewContactStep(wiz *core.Wizard) *ContactStep {
	form := wiz.Form()
	values := map[core.Field]string{
		core.FieldLocation: form.Location,
		core.FieldPhone:    form.Phone,
		core.FieldEmail:    form.Email,
		core.FieldWebsite:  form.Website,
	}

	c := &ContactStep{wiz: wiz, touched: map[core.Field]bool{}, width: 60, height: 10}
	for _, f := range contactFields {
		in := newInput(f.placeholder, 50)
		in.SetValue(values[f.field])
		c.inputs = append(c.inputs, in)
		// Prefilled values are checked right away.
		if values[f.field] != "" {
			c.touched[f.field] = true
		}
	}
	return c
}

// SetSize updates the dimensions for the step.
func (c *ContactStep) SetSize(width, height int) {
	c.width = width
	c.height = height
	for i := range c.inputs {
		c.inputs[i].SetWidth(max(20, width-4))
	}
}

// Focus gives focus to the first input.
func (c *ContactStep) Focus() tea.Cmd { return c.focus(0) }

// FocusLast gives focus to the last input.
func (c *ContactStep) FocusLast() tea.Cmd { return c.focus(len(c.inputs) - 1) }

// Blur removes focus from all inputs.
func (c *ContactStep) Blur() {
	for i := range c.inputs {
		c.inputs[i].Blur()
	}
}

func (c *ContactStep) focus(i int) tea.Cmd {
	c.Blur()
	c.focusIndex = i
	return c.inputs[i].Focus()
}

// Update handles messages for the step.
func (c *ContactStep) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "tab", "enter", "down":
			c.touched[contactFields[c.focusIndex].field] = true
			if c.focusIndex == len(c.inputs)-1 {
				if keyMsg.String() == "down" {
					return nil
				}
				return func() tea.Msg { return TabExitForwardMsg{} }
			}
			return c.focus(c.focusIndex + 1)
		case "shift+tab", "up":
			c.touched[contactFields[c.focusIndex].field] = true
			if c.focusIndex == 0 {
				if keyMsg.String() == "up" {
					return nil
				}
				return func() tea.Msg { return TabExitBackwardMsg{} }
			}
			return c.focus(c.focusIndex - 1)
		}
	}

	var cmd tea.Cmd
	c.inputs[c.focusIndex], cmd = c.inputs[c.focusIndex].Update(msg)
	_ = c.wiz.UpdateField(contactFields[c.focusIndex].field, strings.TrimSpace(c.inputs[c.focusIndex].Value()))
	return cmd
}

// View renders the step.
func (c *ContactStep) View() string {
	errs := c.wiz.FieldErrors(core.StepContact)
	var parts []string
	for i, f := range contactFields {
		errMsg := ""
		if c.touched[f.field] {
			errMsg = errs[f.field]
		}
		label := f.label
		if f.field == core.FieldLocation {
			label += " *"
		}
		parts = append(parts, renderField(label, c.inputs[i].View(), errMsg), "")
	}
	parts = append(parts, tui.RenderHintBar(
		"tab/↑↓", "move",
		"tab", "buttons",
		"esc", "back",
	))
	return strings.Join(parts, "\n")
}
