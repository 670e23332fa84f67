package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// DrawPanel renders a panel with a "Title ────" header and returns the
// inner content area. Focus is indicated by the header color.
func DrawPanel(scr uv.Screen, area uv.Rectangle, title string, focused bool) uv.Rectangle {
	headerHeight := 0

	if title != "" {
		headerHeight = 1
		s := theme.Current().S()
		titleStyle, ruleStyle := s.PanelTitle, s.PanelRule
		if focused {
			titleStyle, ruleStyle = s.PanelTitleFocused, s.PanelRuleFocused
		}

		styledTitle := titleStyle.Render(title)
		ruleWidth := area.Dx() - lipgloss.Width(styledTitle) - 1
		if ruleWidth < 0 {
			ruleWidth = 0
		}
		header := styledTitle + " " + ruleStyle.Render(strings.Repeat("─", ruleWidth))
		uv.NewStyledString(header).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
	}

	innerHeight := area.Dy() - headerHeight
	if innerHeight < 0 {
		innerHeight = 0
	}
	return uv.Rect(area.Min.X, area.Min.Y+headerHeight, area.Dx(), innerHeight)
}

// DrawCentered draws pre-rendered content centered in area and returns the
// rectangle it occupies.
func DrawCentered(scr uv.Screen, area uv.Rectangle, content string) uv.Rectangle {
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	x := area.Min.X + (area.Dx()-w)/2
	y := area.Min.Y + (area.Dy()-h)/2
	if x < area.Min.X {
		x = area.Min.X
	}
	if y < area.Min.Y {
		y = area.Min.Y
	}
	rect := uv.Rect(x, y, w, h)
	uv.NewStyledString(content).Draw(scr, rect)
	return rect
}

// inside reports whether the cell (x, y) falls within r.
func inside(r uv.Rectangle, x, y int) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}
