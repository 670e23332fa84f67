package wizard

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/tui"
	core "github.com/mark3labs/listr/internal/wizard"
)

// BasicInfoStep edits the business name and the description. The
// description can also be written in $EDITOR.
type BasicInfoStep struct {
	wiz         *core.Wizard
	name        textinput.Model
	description textarea.Model
	focusIndex  int // 0=name, 1=description
	touched     map[core.Field]bool
	tmpFile     string // Path to temp file while $EDITOR is open
	width       int
	height      int
}

// NewBasicInfoStep creates the step from the wizard's form.
func NewBasicInfoStep(wiz *core.Wizard) *BasicInfoStep {
	form := wiz.Form()

	name := newInput("Business name", 50)
	name.CharLimit = 120
	name.SetValue(form.BusinessName)

	desc := textarea.New()
	desc.Placeholder = "Describe the business. Markdown is supported."
	desc.ShowLineNumbers = false
	desc.CharLimit = 5000
	desc.SetWidth(56)
	desc.SetHeight(6)
	desc.SetValue(form.Description)

	return &BasicInfoStep{
		wiz:         wiz,
		name:        name,
		description: desc,
		touched:     map[core.Field]bool{},
		width:       60,
		height:      12,
	}
}

// SetSize updates the dimensions for the step.
func (b *BasicInfoStep) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.name.SetWidth(max(20, width-4))
	b.description.SetWidth(max(20, width-2))
	b.description.SetHeight(min(15, max(4, height-8)))
}

// Focus focuses the name input.
func (b *BasicInfoStep) Focus() tea.Cmd {
	b.focusIndex = 0
	b.description.Blur()
	return b.name.Focus()
}

// FocusLast focuses the description.
func (b *BasicInfoStep) FocusLast() tea.Cmd {
	b.focusIndex = 1
	b.name.Blur()
	return b.description.Focus()
}

// Blur removes focus from both controls.
func (b *BasicInfoStep) Blur() {
	b.name.Blur()
	b.description.Blur()
}

// Update handles input for the focused control.
func (b *BasicInfoStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DescriptionEditedMsg:
		content := strings.TrimRight(msg.Content, "\n")
		b.description.SetValue(content)
		b.touched[core.FieldDescription] = true
		_ = b.wiz.UpdateField(core.FieldDescription, content)
		if b.tmpFile != "" {
			_ = os.Remove(b.tmpFile)
			b.tmpFile = ""
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if b.focusIndex == 0 {
				b.touched[core.FieldBusinessName] = true
				return b.FocusLast()
			}
			b.touched[core.FieldDescription] = true
			return func() tea.Msg { return TabExitForwardMsg{} }
		case "shift+tab":
			if b.focusIndex == 1 {
				b.touched[core.FieldDescription] = true
				return b.Focus()
			}
			return func() tea.Msg { return TabExitBackwardMsg{} }
		case "enter":
			if b.focusIndex == 0 {
				b.touched[core.FieldBusinessName] = true
				return b.FocusLast()
			}
		case "ctrl+e":
			return b.openEditor()
		}
	}

	var cmd tea.Cmd
	if b.focusIndex == 0 {
		b.name, cmd = b.name.Update(msg)
		_ = b.wiz.UpdateField(core.FieldBusinessName, b.name.Value())
	} else {
		b.description, cmd = b.description.Update(msg)
		_ = b.wiz.UpdateField(core.FieldDescription, b.description.Value())
	}
	return cmd
}

// openEditor launches $EDITOR with the current description.
func (b *BasicInfoStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "listr_description_*.md")
	if err != nil {
		logger.Warn("Failed to create temp file for editor: %v", err)
		return nil
	}
	if _, err := tmpfile.WriteString(b.description.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()
	b.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("listr", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		b.tmpFile = ""
		return nil
	}

	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			logger.Warn("Editor exited with error: %v", err)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		return DescriptionEditedMsg{Content: string(content)}
	})
}

// View renders the step.
func (b *BasicInfoStep) View() string {
	errs := b.wiz.FieldErrors(core.StepBasicInfo)
	errFor := func(f core.Field) string {
		if !b.touched[f] {
			return ""
		}
		return errs[f]
	}

	hints := []string{"tab", "next", "ctrl+e", "edit in $EDITOR"}
	if os.Getenv("EDITOR") == "" {
		hints = []string{"tab", "next"}
	}
	return strings.Join([]string{
		renderField("Business name", b.name.View(), errFor(core.FieldBusinessName)),
		"",
		renderField("Description", b.description.View(), errFor(core.FieldDescription)),
		"",
		tui.RenderHintBar(hints...),
	}, "\n")
}
