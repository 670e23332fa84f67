package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

// CategoryStep picks the category and subcategory from two lists.
type CategoryStep struct {
	wiz     *core.Wizard
	column  int // 0=categories, 1=subcategories
	catIdx  int
	subIdx  int
	focused bool
	width   int
	height  int
}

// NewCategoryStep creates the step with the cursor on the current choice.
func NewCategoryStep(wiz *core.Wizard) *CategoryStep {
	c := &CategoryStep{wiz: wiz, width: 60, height: 10}
	form := wiz.Form()
	for i, cat := range listing.Categories {
		if cat == form.Category {
			c.catIdx = i
			c.column = 1
		}
	}
	for i, sub := range listing.Subcategories(form.Category) {
		if sub == form.Subcategory {
			c.subIdx = i
		}
	}
	return c
}

// SetSize updates the dimensions for the step.
func (c *CategoryStep) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Focus gives focus to the first list.
func (c *CategoryStep) Focus() tea.Cmd {
	c.focused = true
	return nil
}

// FocusLast gives focus to the subcategory list.
func (c *CategoryStep) FocusLast() tea.Cmd {
	c.focused = true
	if c.wiz.Form().Category != listing.CategoryNone {
		c.column = 1
	}
	return nil
}

// Blur removes focus.
func (c *CategoryStep) Blur() { c.focused = false }

func (c *CategoryStep) subcategories() []string {
	return listing.Subcategories(c.wiz.Form().Category)
}

// Update handles list navigation and selection.
func (c *CategoryStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.focused {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if c.column == 0 && c.catIdx > 0 {
			c.catIdx--
		} else if c.column == 1 && c.subIdx > 0 {
			c.subIdx--
		}
	case "down", "j":
		if c.column == 0 && c.catIdx < len(listing.Categories)-1 {
			c.catIdx++
		} else if c.column == 1 && c.subIdx < len(c.subcategories())-1 {
			c.subIdx++
		}
	case "left", "h":
		c.column = 0
	case "right", "l":
		if c.wiz.Form().Category != listing.CategoryNone {
			c.column = 1
		}
	case "enter", "space", " ":
		if c.column == 0 {
			cat := listing.Categories[c.catIdx]
			if cat != c.wiz.Form().Category {
				_ = c.wiz.UpdateField(core.FieldCategory, cat)
				c.subIdx = 0
			}
			c.column = 1
			return nil
		}
		subs := c.subcategories()
		if c.subIdx < len(subs) {
			_ = c.wiz.UpdateField(core.FieldSubcategory, subs[c.subIdx])
		}
	case "tab":
		if c.column == 0 && c.wiz.Form().Category != listing.CategoryNone {
			c.column = 1
			return nil
		}
		return func() tea.Msg { return TabExitForwardMsg{} }
	case "shift+tab":
		if c.column == 1 {
			c.column = 0
			return nil
		}
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}
	return nil
}

// View renders both lists side by side.
func (c *CategoryStep) View() string {
	s := theme.Current().S()
	form := c.wiz.Form()

	title := func(text string, active bool) string {
		if active && c.focused {
			return s.PanelTitleFocused.Render(text)
		}
		return s.PanelTitle.Render(text)
	}

	var left []string
	left = append(left, title("Category", c.column == 0))
	for i, cat := range listing.Categories {
		left = append(left, renderOption(cat.Label(), c.focused && c.column == 0 && i == c.catIdx, cat == form.Category))
	}

	var right []string
	right = append(right, title("Subcategory", c.column == 1))
	subs := c.subcategories()
	if len(subs) == 0 {
		right = append(right, s.Muted.Italic(true).Render("Choose a category first"))
	}
	for i, sub := range subs {
		right = append(right, renderOption(sub, c.focused && c.column == 1 && i == c.subIdx, sub == form.Subcategory))
	}

	colWidth := max(20, c.width/2-2)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colWidth).Render(strings.Join(left, "\n")),
		lipgloss.NewStyle().Width(colWidth).Render(strings.Join(right, "\n")),
	)

	parts := []string{body}
	if errs := renderErrors(c.wiz.FieldErrors(core.StepCategory)); errs != "" && form.Category != listing.CategoryNone {
		parts = append(parts, "", errs)
	}
	parts = append(parts, "", tui.RenderHintBar(
		"↑↓", "move",
		"←→", "switch list",
		"enter", "choose",
		"tab", "buttons",
	))
	return strings.Join(parts, "\n")
}
