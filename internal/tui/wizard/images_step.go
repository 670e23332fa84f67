package wizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

// ImagesStep adds local files through a picker and manages the combined
// list of uploaded and pending images.
type ImagesStep struct {
	wiz     *core.Wizard
	picker  *FilePicker
	pane    int // 0=picker, 1=list, -1=blurred
	cursor  int
	deleted map[string]bool // uploaded images with a delete in flight
	width   int
	height  int
}

// NewImagesStep creates the step with the picker rooted at dir.
func NewImagesStep(wiz *core.Wizard, dir string) *ImagesStep {
	return &ImagesStep{
		wiz:     wiz,
		picker:  NewFilePicker(dir),
		pane:    -1,
		deleted: map[string]bool{},
		width:   60,
		height:  12,
	}
}

// Picker exposes the file picker.
func (im *ImagesStep) Picker() *FilePicker { return im.picker }

// SetSize updates the dimensions for the step.
func (im *ImagesStep) SetSize(width, height int) {
	im.width = width
	im.height = height
	im.picker.SetSize(width/2-2, max(3, height-6))
}

// Focus focuses the picker.
func (im *ImagesStep) Focus() tea.Cmd {
	im.pane = 0
	return nil
}

// FocusLast focuses the image list.
func (im *ImagesStep) FocusLast() tea.Cmd {
	im.pane = 1
	return nil
}

// Blur removes focus.
func (im *ImagesStep) Blur() { im.pane = -1 }

// Update handles messages for the step.
func (im *ImagesStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ImagePickedMsg:
		im.wiz.Images().AddPending(msg.Path)
		im.cursor = im.wiz.Images().Len() - 1
		return nil

	case imageDeletedMsg:
		delete(im.deleted, msg.id)
		im.clampCursor()
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if im.pane == 0 {
				im.pane = 1
				return nil
			}
			return func() tea.Msg { return TabExitForwardMsg{} }
		case "shift+tab":
			if im.pane == 1 {
				im.pane = 0
				return nil
			}
			return func() tea.Msg { return TabExitBackwardMsg{} }
		case "v":
			if im.wiz.Images().Len() == 0 {
				return nil
			}
			start := 0
			if im.pane == 1 {
				start = im.cursor
			}
			return func() tea.Msg { return PreviewImagesMsg{Start: start} }
		}

		switch im.pane {
		case 0:
			return im.picker.Update(msg)
		case 1:
			return im.updateList(msg)
		}
	}
	return nil
}

func (im *ImagesStep) updateList(key tea.KeyPressMsg) tea.Cmd {
	all := im.wiz.Images().All()
	switch key.String() {
	case "up", "k":
		if im.cursor > 0 {
			im.cursor--
		}
	case "down", "j":
		if im.cursor < len(all)-1 {
			im.cursor++
		}
	case "p", "enter":
		if im.cursor < len(all) {
			im.wiz.Images().SetPrimary(all[im.cursor].ID)
		}
	case "d", "delete", "backspace":
		if im.cursor >= len(all) {
			return nil
		}
		img := all[im.cursor]
		if img.Pending {
			im.wiz.Images().RemovePending(img.ID)
			im.clampCursor()
			return nil
		}
		if im.deleted[img.ID] {
			return nil
		}
		im.deleted[img.ID] = true
		return func() tea.Msg { return DeleteImageMsg{ID: img.ID} }
	}
	return nil
}

func (im *ImagesStep) clampCursor() {
	if n := im.wiz.Images().Len(); im.cursor >= n {
		im.cursor = max(0, n-1)
	}
}

// View renders the picker and the image list side by side.
func (im *ImagesStep) View() string {
	s := theme.Current().S()
	all := im.wiz.Images().All()

	title := func(text string, pane int) string {
		if im.pane == pane {
			return s.PanelTitleFocused.Render(text)
		}
		return s.PanelTitle.Render(text)
	}

	list := []string{title(fmt.Sprintf("Images (%d)", len(all)), 1)}
	if len(all) == 0 {
		list = append(list, s.Muted.Italic(true).Render("No images yet. Pick files on the left."))
	}
	for i, img := range all {
		line := img.Label
		if img.IsPrimary {
			line = "★ " + line
		} else {
			line = "  " + line
		}
		switch {
		case im.deleted[img.ID]:
			line += s.Muted.Render(" (deleting)")
		case img.Pending:
			line += s.Warning.Render(" (pending)")
		}
		if im.pane == 1 && i == im.cursor {
			line = s.Selected.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		list = append(list, line)
	}
	if errs := im.wiz.FieldErrors(core.StepImages); len(errs) > 0 {
		list = append(list, "", renderErrors(errs))
	}

	colWidth := max(24, im.width/2-1)
	left := title("Add files", 0) + "\n" + im.picker.View()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colWidth).Render(left),
		lipgloss.NewStyle().Width(colWidth).PaddingLeft(2).Render(strings.Join(list, "\n")),
	)

	return body + "\n\n" + tui.RenderHintBar(
		"tab", "switch pane",
		"p", "primary",
		"d", "remove",
		"v", "preview",
	)
}
