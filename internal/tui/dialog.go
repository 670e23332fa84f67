package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// ConfirmDialog asks a yes/no question in a centered overlay.
type ConfirmDialog struct {
	title     string
	message   string
	visible   bool
	onConfirm func() tea.Cmd

	yesArea uv.Rectangle
	noArea  uv.Rectangle
}

// NewConfirmDialog creates a hidden dialog.
func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{}
}

// Show displays the dialog. onConfirm runs when the user accepts.
func (d *ConfirmDialog) Show(title, message string, onConfirm func() tea.Cmd) {
	d.title = title
	d.message = message
	d.onConfirm = onConfirm
	d.visible = true
}

// Hide closes the dialog without confirming.
func (d *ConfirmDialog) Hide() {
	d.visible = false
	d.onConfirm = nil
}

// IsVisible returns whether the dialog is visible.
func (d *ConfirmDialog) IsVisible() bool {
	return d.visible
}

// Update handles dialog input: y or enter confirms, n or esc cancels.
func (d *ConfirmDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.visible {
		return nil
	}
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "y", "enter":
			return d.confirm()
		case "n", "esc":
			d.Hide()
		}
	}
	return nil
}

func (d *ConfirmDialog) confirm() tea.Cmd {
	fn := d.onConfirm
	d.Hide()
	if fn != nil {
		return fn()
	}
	return nil
}

// HandleClick confirms or cancels when a button is clicked. Clicks elsewhere
// are swallowed.
func (d *ConfirmDialog) HandleClick(x, y int) tea.Cmd {
	if !d.visible {
		return nil
	}
	switch {
	case inside(d.yesArea, x, y):
		return d.confirm()
	case inside(d.noArea, x, y):
		d.Hide()
	}
	return nil
}

// Draw renders the dialog centered on screen.
func (d *ConfirmDialog) Draw(scr uv.Screen, area uv.Rectangle) {
	if !d.visible {
		return
	}

	t := theme.Current()
	s := t.S()
	contentWidth := max(lipgloss.Width(d.message), lipgloss.Width(d.title), 24)

	yes := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Error)).
		Padding(0, 2).
		Render("Yes")
	no := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0)).
		Padding(0, 2).
		Render("No")
	buttons := yes + "  " + no

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		s.ModalTitle.Width(contentWidth).Render(d.title),
		"",
		s.Text.Width(contentWidth).Align(lipgloss.Center).Render(d.message),
		"",
		lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(buttons),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Error)).
		Padding(1, 3).
		Render(content)
	rect := DrawCentered(scr, area, box)

	// Buttons sit on the last content row: border (1) + padding (1) below.
	row := rect.Max.Y - 3
	left := rect.Min.X + 4 + (contentWidth-lipgloss.Width(buttons))/2
	d.yesArea = uv.Rect(left, row, lipgloss.Width(yes), 1)
	d.noArea = uv.Rect(left+lipgloss.Width(yes)+2, row, lipgloss.Width(no), 1)
}
