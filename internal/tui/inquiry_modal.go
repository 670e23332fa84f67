package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// InquirySender records a contact request for a listing.
type InquirySender interface {
	AddInquiry(ctx context.Context, listingID string, params listing.InquiryParams) (*listing.Inquiry, error)
}

// InquirySentMsg reports the outcome of sending an inquiry.
type InquirySentMsg struct {
	Inquiry *listing.Inquiry
	Err     error
}

const (
	inquiryName = iota
	inquiryEmail
	inquiryPhone
	inquiryMessage
	inquiryFieldCount
)

// InquiryModal is the contact form shown over a listing page.
type InquiryModal struct {
	listingID string
	sender    InquirySender

	inputs  [inquiryMessage]textinput.Model
	message textarea.Model
	focus   int
	errors  map[string]string
	sending bool
	visible bool
	width   int
}

// NewInquiryModal creates a hidden contact form for listingID.
func NewInquiryModal(listingID string, sender InquirySender) *InquiryModal {
	m := &InquiryModal{listingID: listingID, sender: sender, width: 60}

	t := theme.Current()
	styles := textinput.Styles{
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
	for i, placeholder := range []string{"Your name", "you@example.com", "Phone (optional)"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Prompt = "> "
		in.SetStyles(styles)
		in.SetWidth(m.width - 10)
		m.inputs[i] = in
	}

	m.message = textarea.New()
	m.message.Placeholder = "What would you like to know?"
	m.message.ShowLineNumbers = false
	m.message.SetWidth(m.width - 8)
	m.message.SetHeight(4)
	return m
}

// Open shows the form with empty fields.
func (m *InquiryModal) Open() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.message.SetValue("")
	m.errors = nil
	m.sending = false
	m.visible = true
	return m.setFocus(inquiryName)
}

// Close hides the form.
func (m *InquiryModal) Close() {
	m.visible = false
	m.blurAll()
}

// IsVisible returns whether the form is showing.
func (m *InquiryModal) IsVisible() bool { return m.visible }

// Params returns the current field values.
func (m *InquiryModal) Params() listing.InquiryParams {
	return listing.InquiryParams{
		Name:    strings.TrimSpace(m.inputs[inquiryName].Value()),
		Email:   strings.TrimSpace(m.inputs[inquiryEmail].Value()),
		Phone:   strings.TrimSpace(m.inputs[inquiryPhone].Value()),
		Message: strings.TrimSpace(m.message.Value()),
	}
}

// Errors returns the validation messages from the last submit attempt.
func (m *InquiryModal) Errors() map[string]string { return m.errors }

func (m *InquiryModal) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.message.Blur()
}

func (m *InquiryModal) setFocus(i int) tea.Cmd {
	m.blurAll()
	m.focus = (i + inquiryFieldCount) % inquiryFieldCount
	if m.focus == inquiryMessage {
		return m.message.Focus()
	}
	return m.inputs[m.focus].Focus()
}

// Update handles input while the form is visible.
func (m *InquiryModal) Update(msg tea.Msg) tea.Cmd {
	if !m.visible {
		return nil
	}

	switch msg := msg.(type) {
	case InquirySentMsg:
		m.sending = false
		if msg.Err != nil {
			return nil
		}
		m.Close()
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			m.Close()
			return nil
		case "tab", "down":
			if msg.String() == "down" && m.focus == inquiryMessage {
				break
			}
			return m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			if msg.String() == "up" && m.focus == inquiryMessage {
				break
			}
			return m.setFocus(m.focus - 1)
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus != inquiryMessage {
				if m.focus == inquiryPhone {
					return m.setFocus(inquiryMessage)
				}
				return m.setFocus(m.focus + 1)
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == inquiryMessage {
		m.message, cmd = m.message.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return cmd
}

// submit validates the form and sends it in a command.
func (m *InquiryModal) submit() tea.Cmd {
	if m.sending {
		return nil
	}
	params := m.Params()
	m.errors = params.Validate()
	if len(m.errors) > 0 {
		return nil
	}
	m.sending = true

	sender, id := m.sender, m.listingID
	return func() tea.Msg {
		inq, err := sender.AddInquiry(context.Background(), id, params)
		if err != nil {
			return InquirySentMsg{Err: fmt.Errorf("failed to send inquiry: %w", err)}
		}
		return InquirySentMsg{Inquiry: inq}
	}
}

// Draw renders the form centered in area.
func (m *InquiryModal) Draw(scr uv.Screen, area uv.Rectangle) {
	if !m.visible {
		return
	}
	s := theme.Current().S()

	field := func(label, key, view string) string {
		out := s.Label.Render(label) + "\n" + view
		if msg, ok := m.errors[key]; ok {
			out += "\n" + s.Error.Render(msg)
		}
		return out
	}

	sections := []string{
		s.ModalTitle.Width(m.width - 6).Render("Contact the business"),
		"",
		field("Name", "name", m.inputs[inquiryName].View()),
		field("Email", "email", m.inputs[inquiryEmail].View()),
		field("Phone", "phone", m.inputs[inquiryPhone].View()),
		field("Message", "message", m.message.View()),
		"",
	}
	if m.sending {
		sections = append(sections, s.Muted.Render("Sending..."))
	} else {
		sections = append(sections, RenderHintBar(KeyTab, "next field", "ctrl+s", "send", KeyEsc, "cancel"))
	}

	box := s.ModalContainer.Width(m.width).Render(strings.Join(sections, "\n"))
	DrawCentered(scr, area, box)
}
