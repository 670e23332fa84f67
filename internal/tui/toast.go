package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// toastDuration is how long a toast stays on screen.
const toastDuration = 3 * time.Second

// ToastDismissMsg is sent when the toast should be dismissed.
type ToastDismissMsg struct {
	seq int
}

// ShowToastMsg is sent to show a toast notification.
type ShowToastMsg struct {
	Text  string
	Error bool
}

// Toast is a minimal toast notification component.
// Shows a message in the bottom-right corner that auto-dismisses.
type Toast struct {
	message string
	isError bool
	visible bool
	seq     int
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays a toast with the given message.
func (t *Toast) Show(msg string) tea.Cmd {
	return t.show(msg, false)
}

// ShowError displays a toast styled as an error.
func (t *Toast) ShowError(msg string) tea.Cmd {
	return t.show(msg, true)
}

func (t *Toast) show(msg string, isError bool) tea.Cmd {
	t.message = msg
	t.isError = isError
	t.visible = true
	t.seq++
	seq := t.seq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return ToastDismissMsg{seq: seq}
	})
}

// Update handles messages for the toast component. A dismissal scheduled
// by an older toast does not hide a newer one.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ShowToastMsg:
		return t.show(msg.Text, msg.Error)
	case ToastDismissMsg:
		if msg.seq != t.seq {
			return nil
		}
		t.visible = false
		t.message = ""
	}
	return nil
}

// View renders the toast content, or "" when hidden.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	th := theme.Current()
	style := th.S().Toast
	if t.isError {
		style = style.Background(lipgloss.Color(th.Error))
	}

	content := style.Render(t.message)
	if lipgloss.Width(content) > width-2 && width > 2 {
		content = style.Width(width - 2).Render(t.message)
	}
	return content
}

// Draw places the toast in the bottom-right corner of area, one row above
// the hint bar.
func (t *Toast) Draw(scr uv.Screen, area uv.Rectangle) {
	content := t.View(area.Dx())
	if content == "" {
		return
	}
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	y := area.Max.Y - 1 - h
	if y < area.Min.Y {
		y = area.Min.Y
	}
	x := area.Max.X - 1 - w
	if x < area.Min.X {
		x = area.Min.X
	}
	uv.NewStyledString(content).Draw(scr, uv.Rect(x, y, w, h))
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// GetMessage returns the current toast message (empty if not visible).
func (t *Toast) GetMessage() string {
	if !t.visible {
		return ""
	}
	return t.message
}
