package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	PanelTitle        lipgloss.Style
	PanelTitleFocused lipgloss.Style
	PanelRule         lipgloss.Style
	PanelRuleFocused  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	Text      lipgloss.Style
	Muted     lipgloss.Style
	Label     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Toast     lipgloss.Style
	Indicator lipgloss.Style

	ThumbNormal   lipgloss.Style
	ThumbSelected lipgloss.Style
	ThumbPrimary  lipgloss.Style

	StepDone    lipgloss.Style
	StepCurrent lipgloss.Style
	StepTodo    lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		HeaderSubtitle: lipgloss.NewStyle().Foreground(c(t.FgMuted)),

		PanelTitle:        lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		PanelTitleFocused: lipgloss.NewStyle().Foreground(c(t.Tertiary)).Bold(true),
		PanelRule:         lipgloss.NewStyle().Foreground(c(t.BgSurface1)),
		PanelRuleFocused:  lipgloss.NewStyle().Foreground(c(t.Tertiary)),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface2)),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Tertiary)).
			Background(c(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true).
			Align(lipgloss.Center),

		Text:      lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:     lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Label:     lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(c(t.Error)),
		Success:   lipgloss.NewStyle().Foreground(c(t.Success)),
		Warning:   lipgloss.NewStyle().Foreground(c(t.Warning)),
		Selected:  lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Tertiary)).Bold(true),
		Cursor:    lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Toast:     lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Warning)).Padding(0, 1).Bold(true),
		Indicator: lipgloss.NewStyle().Foreground(c(t.FgMuted)).Background(c(t.BgSurface0)),

		ThumbNormal: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(c(t.BgSurface1)).
			Foreground(c(t.FgMuted)),
		ThumbSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(c(t.Primary)).
			Foreground(c(t.FgBase)),
		ThumbPrimary: lipgloss.NewStyle().Foreground(c(t.Warning)),

		StepDone:    lipgloss.NewStyle().Foreground(c(t.Success)),
		StepCurrent: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true).Underline(true),
		StepTodo:    lipgloss.NewStyle().Foreground(c(t.BgSurface2)),
	}
}

// StatusBadge renders a listing status as a colored badge.
func (t *Theme) StatusBadge(status string) string {
	bg := t.BadgeDraft
	switch status {
	case "pending":
		bg = t.BadgePending
	case "approved":
		bg = t.BadgeApproved
	case "rejected":
		bg = t.BadgeRejected
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Render(status)
}
