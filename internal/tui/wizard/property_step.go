package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
	core "github.com/mark3labs/listr/internal/wizard"
)

// Rows of the property form. The first two cycle through fixed choices, the
// rest are text inputs.
const (
	propType = iota
	propListingType
	propPrice
	propBedrooms
	propBathrooms
	propArea
	propAmenities
	propRowCount
)

var propertyLabels = [propRowCount]string{
	"Property type", "Listing type", "Price", "Bedrooms", "Bathrooms", "Area (sq ft)", "Amenities",
}

// PropertyStep edits the property details of a property listing.
type PropertyStep struct {
	wiz    *core.Wizard
	inputs [propRowCount]textinput.Model // only propPrice.. are used
	row    int
	errs   map[int]string
	width  int
	height int
}

// NewPropertyStep creates the step from the wizard's form.
func NewPropertyStep(wiz *core.Wizard) *PropertyStep {
	p := &PropertyStep{wiz: wiz, errs: map[int]string{}, width: 60, height: 12, row: -1}
	placeholders := map[int]string{
		propPrice:     "350000",
		propBedrooms:  "3",
		propBathrooms: "2",
		propArea:      "1800",
		propAmenities: "Garage, Garden",
	}
	for i := propPrice; i < propRowCount; i++ {
		p.inputs[i] = newInput(placeholders[i], 30)
	}

	d := p.details()
	if d.Price > 0 {
		p.inputs[propPrice].SetValue(strconv.FormatFloat(d.Price, 'f', -1, 64))
	}
	if d.Bedrooms > 0 {
		p.inputs[propBedrooms].SetValue(strconv.Itoa(d.Bedrooms))
	}
	if d.Bathrooms > 0 {
		p.inputs[propBathrooms].SetValue(strconv.Itoa(d.Bathrooms))
	}
	if d.AreaSqFt > 0 {
		p.inputs[propArea].SetValue(strconv.Itoa(d.AreaSqFt))
	}
	p.inputs[propAmenities].SetValue(strings.Join(d.Amenities, ", "))
	return p
}

// details returns a copy of the current details, with listing type
// defaulting to sale.
func (p *PropertyStep) details() listing.PropertyDetails {
	var d listing.PropertyDetails
	if cur := p.wiz.Form().PropertyDetails; cur != nil {
		d = *cur
		d.Amenities = append([]string(nil), cur.Amenities...)
	}
	if d.ListingType == "" {
		d.ListingType = listing.ListingTypes[0]
	}
	return d
}

// SetSize updates the dimensions for the step.
func (p *PropertyStep) SetSize(width, height int) {
	p.width = width
	p.height = height
	for i := propPrice; i < propRowCount; i++ {
		p.inputs[i].SetWidth(max(20, width-20))
	}
}

// Focus focuses the first row.
func (p *PropertyStep) Focus() tea.Cmd { return p.focus(propType) }

// FocusLast focuses the last row.
func (p *PropertyStep) FocusLast() tea.Cmd { return p.focus(propAmenities) }

// Blur removes focus.
func (p *PropertyStep) Blur() {
	for i := propPrice; i < propRowCount; i++ {
		p.inputs[i].Blur()
	}
	p.row = -1
}

func (p *PropertyStep) focus(row int) tea.Cmd {
	p.Blur()
	p.row = row
	if row >= propPrice {
		return p.inputs[row].Focus()
	}
	return nil
}

func cycle(options []string, current string, delta int) string {
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
		}
	}
	if idx < 0 {
		if delta < 0 {
			return options[len(options)-1]
		}
		return options[0]
	}
	return options[(idx+delta+len(options))%len(options)]
}

// commit parses the text inputs into the details. Invalid numbers are
// reported and leave the previous value.
func (p *PropertyStep) commit(d listing.PropertyDetails) {
	p.errs = map[int]string{}
	parseInt := func(row int, dst *int) {
		v := strings.TrimSpace(p.inputs[row].Value())
		if v == "" {
			*dst = 0
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			p.errs[row] = "Enter a whole number"
			return
		}
		*dst = n
	}

	if v := strings.TrimSpace(strings.ReplaceAll(p.inputs[propPrice].Value(), ",", "")); v == "" {
		d.Price = 0
	} else if f, err := strconv.ParseFloat(v, 64); err != nil || f < 0 {
		p.errs[propPrice] = "Enter a price"
	} else {
		d.Price = f
	}
	parseInt(propBedrooms, &d.Bedrooms)
	parseInt(propBathrooms, &d.Bathrooms)
	parseInt(propArea, &d.AreaSqFt)

	d.Amenities = nil
	for _, a := range strings.Split(p.inputs[propAmenities].Value(), ",") {
		if a = strings.TrimSpace(a); a != "" {
			d.Amenities = append(d.Amenities, a)
		}
	}
	_ = p.wiz.UpdateField(core.FieldPropertyDetails, d)
}

// Update handles messages for the step.
func (p *PropertyStep) Update(msg tea.Msg) tea.Cmd {
	if p.row < 0 {
		return nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab", "down", "enter":
			if p.row == propAmenities {
				if key.String() == "down" {
					return nil
				}
				return func() tea.Msg { return TabExitForwardMsg{} }
			}
			return p.focus(p.row + 1)
		case "shift+tab", "up":
			if p.row == propType {
				if key.String() == "up" {
					return nil
				}
				return func() tea.Msg { return TabExitBackwardMsg{} }
			}
			return p.focus(p.row - 1)
		}

		if p.row < propPrice {
			delta := 0
			switch key.String() {
			case "right", "l", "space", " ":
				delta = 1
			case "left", "h":
				delta = -1
			}
			if delta != 0 {
				d := p.details()
				if p.row == propType {
					d.PropertyType = cycle(listing.PropertyTypes, d.PropertyType, delta)
				} else {
					d.ListingType = cycle(listing.ListingTypes, d.ListingType, delta)
				}
				_ = p.wiz.UpdateField(core.FieldPropertyDetails, d)
			}
			return nil
		}
	}

	if p.row < propPrice {
		return nil
	}
	var cmd tea.Cmd
	p.inputs[p.row], cmd = p.inputs[p.row].Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		p.commit(p.details())
	}
	return cmd
}

// View renders the step.
func (p *PropertyStep) View() string {
	s := theme.Current().S()
	d := p.details()
	var lines []string

	selector := func(row int, value string) string {
		if value == "" {
			value = "choose"
		}
		text := fmt.Sprintf("‹ %s ›", value)
		if row == p.row {
			return s.Selected.Render(text)
		}
		return s.Text.Render(text)
	}

	for row := 0; row < propRowCount; row++ {
		label := s.Label.Render(fmt.Sprintf("%-14s", propertyLabels[row]))
		var control string
		switch row {
		case propType:
			control = selector(row, d.PropertyType)
		case propListingType:
			control = selector(row, "for "+d.ListingType)
		default:
			control = p.inputs[row].View()
		}
		lines = append(lines, label+" "+control)
		if msg, ok := p.errs[row]; ok {
			lines = append(lines, strings.Repeat(" ", 15)+s.Error.Render("✗ "+msg))
		}
	}

	if errs := p.wiz.FieldErrors(core.StepPropertyDetails); len(errs) > 0 && p.wiz.Form().PropertyDetails != nil {
		lines = append(lines, "", renderErrors(errs))
	}
	lines = append(lines, "", tui.RenderHintBar(
		"↑↓", "move",
		"←→", "change",
		"tab", "next",
	))
	return strings.Join(lines, "\n")
}
