package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

const (
	serviceName = iota
	servicePrice
	serviceDescription
	serviceList
	serviceFocusCount
)

// ServicesStep edits the offerings of a services listing: three inputs to
// add a service and a list to remove them.
type ServicesStep struct {
	wiz        *core.Wizard
	inputs     [serviceList]textinput.Model
	focusIndex int
	cursor     int
	err        string
	width      int
	height     int
}

// NewServicesStep creates the step.
func NewServicesStep(wiz *core.Wizard) *ServicesStep {
	st := &ServicesStep{wiz: wiz, width: 60, height: 10}
	st.inputs[serviceName] = newInput("Service name", 40)
	st.inputs[servicePrice] = newInput("Price (optional), e.g. $80/hr", 40)
	st.inputs[serviceDescription] = newInput("Short description (optional)", 40)
	return st
}

// SetSize updates the dimensions for the step.
func (st *ServicesStep) SetSize(width, height int) {
	st.width = width
	st.height = height
	for i := range st.inputs {
		st.inputs[i].SetWidth(max(20, width-4))
	}
}

// Focus focuses the name input.
func (st *ServicesStep) Focus() tea.Cmd { return st.focus(serviceName) }

// FocusLast focuses the service list.
func (st *ServicesStep) FocusLast() tea.Cmd { return st.focus(serviceList) }

// Blur removes focus from every control.
func (st *ServicesStep) Blur() {
	for i := range st.inputs {
		st.inputs[i].Blur()
	}
	st.focusIndex = -1
}

func (st *ServicesStep) focus(i int) tea.Cmd {
	st.Blur()
	st.focusIndex = i
	if i < serviceList {
		return st.inputs[i].Focus()
	}
	return nil
}

func (st *ServicesStep) services() []listing.Service {
	return st.wiz.Form().Services
}

// add appends the service typed into the inputs.
func (st *ServicesStep) add() {
	name := strings.TrimSpace(st.inputs[serviceName].Value())
	if name == "" {
		st.err = "Service name is required"
		return
	}
	services := append(st.services(), listing.Service{
		Name:        name,
		Price:       strings.TrimSpace(st.inputs[servicePrice].Value()),
		Description: strings.TrimSpace(st.inputs[serviceDescription].Value()),
	})
	_ = st.wiz.UpdateField(core.FieldServices, services)
	for i := range st.inputs {
		st.inputs[i].SetValue("")
	}
	st.err = ""
	st.cursor = len(services) - 1
}

func (st *ServicesStep) remove() {
	services := st.services()
	if st.cursor < 0 || st.cursor >= len(services) {
		return
	}
	services = append(services[:st.cursor:st.cursor], services[st.cursor+1:]...)
	_ = st.wiz.UpdateField(core.FieldServices, services)
	if st.cursor >= len(services) {
		st.cursor = max(0, len(services)-1)
	}
}

// Update handles messages for the step.
func (st *ServicesStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if ok {
		switch key.String() {
		case "tab":
			if st.focusIndex == serviceList {
				return func() tea.Msg { return TabExitForwardMsg{} }
			}
			return st.focus(st.focusIndex + 1)
		case "shift+tab":
			if st.focusIndex == serviceName {
				return func() tea.Msg { return TabExitBackwardMsg{} }
			}
			return st.focus(st.focusIndex - 1)
		case "enter":
			if st.focusIndex < serviceList {
				st.add()
				return st.focus(serviceName)
			}
		}

		if st.focusIndex == serviceList {
			switch key.String() {
			case "up", "k":
				if st.cursor > 0 {
					st.cursor--
				}
			case "down", "j":
				if st.cursor < len(st.services())-1 {
					st.cursor++
				}
			case "d", "delete", "backspace":
				st.remove()
			}
			return nil
		}
	}

	if st.focusIndex < 0 || st.focusIndex >= serviceList {
		return nil
	}
	var cmd tea.Cmd
	st.inputs[st.focusIndex], cmd = st.inputs[st.focusIndex].Update(msg)
	return cmd
}

// View renders the step.
func (st *ServicesStep) View() string {
	s := theme.Current().S()
	parts := []string{
		renderField("Name", st.inputs[serviceName].View(), st.err),
		renderField("Price", st.inputs[servicePrice].View(), ""),
		renderField("Description", st.inputs[serviceDescription].View(), ""),
		"",
	}

	title := s.PanelTitle
	if st.focusIndex == serviceList {
		title = s.PanelTitleFocused
	}
	services := st.services()
	parts = append(parts, title.Render(fmt.Sprintf("Services (%d)", len(services))))
	if len(services) == 0 {
		parts = append(parts, s.Muted.Italic(true).Render("No services yet. Type a name and press enter."))
	}
	for i, svc := range services {
		line := svc.Name
		if svc.Price != "" {
			line += " · " + svc.Price
		}
		if st.focusIndex == serviceList && i == st.cursor {
			parts = append(parts, s.Selected.Render("▸ "+line))
		} else {
			parts = append(parts, "  "+line)
		}
	}

	parts = append(parts, "", tui.RenderHintBar(
		"enter", "add",
		"tab", "next",
		"d", "remove (in list)",
	))
	return strings.Join(parts, "\n")
}
