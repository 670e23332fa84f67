package wizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

// DealershipStep edits dealership details: vehicle type toggles, two
// service flags and a comma separated brand list.
type DealershipStep struct {
	wiz    *core.Wizard
	brands textinput.Model
	row    int // -1 when blurred
	width  int
	height int
}

// NewDealershipStep creates the step from the wizard's form.
func NewDealershipStep(wiz *core.Wizard) *DealershipStep {
	d := &DealershipStep{wiz: wiz, row: -1, width: 60, height: 12}
	d.brands = newInput("Toyota, Ford, Honda", 40)
	if cur := wiz.Form().AutoDealershipDetails; cur != nil {
		d.brands.SetValue(strings.Join(cur.Brands, ", "))
	}
	return d
}

func (d *DealershipStep) financingRow() int { return len(listing.VehicleTypes) }
func (d *DealershipStep) serviceRow() int   { return len(listing.VehicleTypes) + 1 }
func (d *DealershipStep) brandsRow() int    { return len(listing.VehicleTypes) + 2 }

func (d *DealershipStep) details() listing.AutoDealershipDetails {
	var out listing.AutoDealershipDetails
	if cur := d.wiz.Form().AutoDealershipDetails; cur != nil {
		out = *cur
		out.VehicleTypes = append([]string(nil), cur.VehicleTypes...)
		out.Brands = append([]string(nil), cur.Brands...)
	}
	return out
}

// SetSize updates the dimensions for the step.
func (d *DealershipStep) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.brands.SetWidth(max(20, width-4))
}

// Focus focuses the first vehicle type.
func (d *DealershipStep) Focus() tea.Cmd { return d.focus(0) }

// FocusLast focuses the brands input.
func (d *DealershipStep) FocusLast() tea.Cmd { return d.focus(d.brandsRow()) }

// Blur removes focus.
func (d *DealershipStep) Blur() {
	d.brands.Blur()
	d.row = -1
}

func (d *DealershipStep) focus(row int) tea.Cmd {
	d.Blur()
	d.row = row
	if row == d.brandsRow() {
		return d.brands.Focus()
	}
	return nil
}

// toggle flips the row under the cursor.
func (d *DealershipStep) toggle() {
	det := d.details()
	switch {
	case d.row < len(listing.VehicleTypes):
		vt := listing.VehicleTypes[d.row]
		if containsString(det.VehicleTypes, vt) {
			det.VehicleTypes = removeString(det.VehicleTypes, vt)
		} else {
			// Keep the canonical order.
			var ordered []string
			for _, known := range listing.VehicleTypes {
				if known == vt || containsString(det.VehicleTypes, known) {
					ordered = append(ordered, known)
				}
			}
			det.VehicleTypes = ordered
		}
	case d.row == d.financingRow():
		det.OffersFinancing = !det.OffersFinancing
	case d.row == d.serviceRow():
		det.HasServiceCenter = !det.HasServiceCenter
	}
	_ = d.wiz.UpdateField(core.FieldAutoDealershipDetails, det)
}

// Update handles messages for the step.
func (d *DealershipStep) Update(msg tea.Msg) tea.Cmd {
	if d.row < 0 {
		return nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab":
			if d.row == d.brandsRow() {
				return func() tea.Msg { return TabExitForwardMsg{} }
			}
			return d.focus(d.brandsRow())
		case "shift+tab":
			if d.row == d.brandsRow() {
				return d.focus(0)
			}
			return func() tea.Msg { return TabExitBackwardMsg{} }
		case "up":
			if d.row > 0 {
				return d.focus(d.row - 1)
			}
			return nil
		case "down":
			if d.row < d.brandsRow() {
				return d.focus(d.row + 1)
			}
			return nil
		}
		if d.row != d.brandsRow() {
			switch key.String() {
			case "k":
				if d.row > 0 {
					return d.focus(d.row - 1)
				}
			case "j":
				return d.focus(d.row + 1)
			case "space", " ", "enter", "x":
				d.toggle()
			}
			return nil
		}
	}

	if d.row != d.brandsRow() {
		return nil
	}
	var cmd tea.Cmd
	d.brands, cmd = d.brands.Update(msg)
	det := d.details()
	det.Brands = nil
	for _, b := range strings.Split(d.brands.Value(), ",") {
		if b = strings.TrimSpace(b); b != "" {
			det.Brands = append(det.Brands, b)
		}
	}
	_ = d.wiz.UpdateField(core.FieldAutoDealershipDetails, det)
	return cmd
}

// View renders the step.
func (d *DealershipStep) View() string {
	s := theme.Current().S()
	det := d.details()

	lines := []string{s.Label.Render("Vehicle types")}
	for i, vt := range listing.VehicleTypes {
		lines = append(lines, renderCheck(vt, d.row == i, containsString(det.VehicleTypes, vt)))
	}
	lines = append(lines,
		"",
		renderCheck("Offers financing", d.row == d.financingRow(), det.OffersFinancing),
		renderCheck("Has a service center", d.row == d.serviceRow(), det.HasServiceCenter),
		"",
		renderField("Brands", d.brands.View(), ""),
	)
	if d.wiz.Form().AutoDealershipDetails != nil {
		if errs := renderErrors(d.wiz.FieldErrors(core.StepAutoDealershipDetails)); errs != "" {
			lines = append(lines, "", errs)
		}
	}
	lines = append(lines, "", tui.RenderHintBar(
		"↑↓", "move",
		"space", "toggle",
		"tab", "next",
	))
	return strings.Join(lines, "\n")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
