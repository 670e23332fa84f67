package wizard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

// hoursStepMinutes is how far +/- moves a time.
const hoursStepMinutes = 30

// HoursStep edits the weekly schedule: one row per day with an opening and
// a closing time.
type HoursStep struct {
	wiz     *core.Wizard
	row     int
	col     int // 0=open, 1=close
	focused bool
	width   int
	height  int
}

// NewHoursStep creates the step.
func NewHoursStep(wiz *core.Wizard) *HoursStep {
	return &HoursStep{wiz: wiz, width: 60, height: 10}
}

// SetSize updates the dimensions for the step.
func (h *HoursStep) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Focus puts the cursor on Monday.
func (h *HoursStep) Focus() tea.Cmd {
	h.focused = true
	h.row, h.col = 0, 0
	return nil
}

// FocusLast puts the cursor on Sunday.
func (h *HoursStep) FocusLast() tea.Cmd {
	h.focused = true
	h.row, h.col = len(listing.Weekdays)-1, 1
	return nil
}

// Blur removes the cursor.
func (h *HoursStep) Blur() { h.focused = false }

// shiftClock moves an "HH:MM" time by delta minutes, wrapping at midnight.
// An unset time starts at 09:00.
func shiftClock(clock string, delta int) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "09:00"
	}
	minutes := (t.Hour()*60 + t.Minute() + delta + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (h *HoursStep) apply(hours []listing.DayHours) {
	_ = h.wiz.UpdateField(core.FieldBusinessHours, hours)
}

// Update handles the schedule keys.
func (h *HoursStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !h.focused {
		return nil
	}
	hours := append([]listing.DayHours(nil), h.wiz.Form().BusinessHours...)
	if len(hours) == 0 {
		return nil
	}
	day := &hours[h.row]

	switch key.String() {
	case "up", "k":
		if h.row > 0 {
			h.row--
		}
	case "down", "j":
		if h.row < len(hours)-1 {
			h.row++
		}
	case "left", "h":
		h.col = 0
	case "right", "l":
		h.col = 1
	case "space", " ", "c":
		day.IsClosed = !day.IsClosed
		if !day.IsClosed && day.OpenTime == "" {
			day.OpenTime, day.CloseTime = "09:00", "17:00"
		}
		h.apply(hours)
	case "+", "=", "-", "_":
		if day.IsClosed {
			return nil
		}
		delta := hoursStepMinutes
		if key.String() == "-" || key.String() == "_" {
			delta = -delta
		}
		if h.col == 0 {
			day.OpenTime = shiftClock(day.OpenTime, delta)
		} else {
			day.CloseTime = shiftClock(day.CloseTime, delta)
		}
		h.apply(hours)
	case "w":
		// Copy Monday to Tuesday..Friday.
		for i := 1; i < 5 && i < len(hours); i++ {
			hours[i].OpenTime = hours[0].OpenTime
			hours[i].CloseTime = hours[0].CloseTime
			hours[i].IsClosed = hours[0].IsClosed
		}
		h.apply(hours)
	case "tab":
		return func() tea.Msg { return TabExitForwardMsg{} }
	case "shift+tab":
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}
	return nil
}

// View renders the schedule table.
func (h *HoursStep) View() string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(s.Label.Render(fmt.Sprintf("%-12s %-8s %-8s", "Day", "Opens", "Closes")))
	b.WriteString("\n")
	for i, day := range h.wiz.Form().BusinessHours {
		cell := func(col int, value string) string {
			text := fmt.Sprintf("%-6s", value)
			if h.focused && i == h.row && col == h.col {
				return s.Selected.Render(text)
			}
			return s.Text.Render(text)
		}

		prefix := "  "
		if h.focused && i == h.row {
			prefix = s.Cursor.Render("▸ ")
		}
		b.WriteString(prefix)
		b.WriteString(fmt.Sprintf("%-10s ", day.Day))
		if day.IsClosed {
			b.WriteString(s.Muted.Render("Closed"))
		} else {
			open, closing := day.OpenTime, day.CloseTime
			if open == "" {
				open = "--:--"
			}
			if closing == "" {
				closing = "--:--"
			}
			b.WriteString(cell(0, open) + "   " + cell(1, closing))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.RenderHintBar(
		"↑↓←→", "move",
		"+/-", "30 min",
		"space", "open/closed",
		"w", "copy Monday to weekdays",
	))
	return b.String()
}
