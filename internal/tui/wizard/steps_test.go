package wizard

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/tui/testfixtures"
	core "github.com/mark3labs/listr/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonBar_Focus(t *testing.T) {
	bar := NewButtonBar(NavigationButtons(false, false, false, false))

	buttons := bar.Buttons()
	require.Len(t, buttons, 3)
	assert.Equal(t, ButtonCancel, buttons[0].ID)
	assert.Equal(t, ButtonDisabled, buttons[2].State, "next is disabled until the step is complete")

	require.True(t, bar.FocusFirst())
	btn, ok := bar.FocusedButton()
	require.True(t, ok)
	assert.Equal(t, ButtonCancel, btn.ID)

	require.True(t, bar.FocusNext())
	btn, _ = bar.FocusedButton()
	assert.Equal(t, ButtonSave, btn.ID)

	assert.False(t, bar.FocusNext(), "disabled next is skipped")
	_, ok = bar.FocusedButton()
	assert.False(t, ok)

	require.True(t, bar.FocusLast())
	btn, _ = bar.FocusedButton()
	assert.Equal(t, ButtonSave, btn.ID)
	assert.Equal(t, ButtonFocused, bar.Buttons()[1].State)
}

func TestButtonBar_SetButtonsKeepsFocus(t *testing.T) {
	bar := NewButtonBar(NavigationButtons(true, true, false, false))
	bar.FocusLast()
	btn, _ := bar.FocusedButton()
	require.Equal(t, ButtonNext, btn.ID)

	bar.SetButtons(NavigationButtons(true, true, true, false))
	btn, ok := bar.FocusedButton()
	require.True(t, ok)
	assert.Equal(t, ButtonBack, btn.ID, "next became submit so focus falls back to the first button")

	bar.FocusLast()
	bar.SetButtons(NavigationButtons(true, true, true, false))
	btn, _ = bar.FocusedButton()
	assert.Equal(t, ButtonSubmit, btn.ID)
}

func TestNavigationButtons_Saving(t *testing.T) {
	for _, btn := range NavigationButtons(true, true, true, true) {
		assert.Equal(t, ButtonDisabled, btn.State, btn.Label)
	}
	buttons := NavigationButtons(true, true, true, false)
	assert.Equal(t, "← Back", buttons[0].Label)
	assert.Equal(t, "Submit", buttons[2].Label)
}

func TestFilePicker_ListsImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "shop"), 0o755))
	for _, name := range []string{"b.jpg", "a.png", "notes.txt", ".hidden.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shop", "front.webp"), []byte("x"), 0o644))

	fp := NewFilePicker(dir)
	require.Equal(t, dir, fp.Dir())

	var names []string
	for _, item := range fp.items {
		names = append(names, item.name)
	}
	assert.Equal(t, []string{"..", "shop", "a.png", "b.jpg"}, names)

	fp.Update(keyDown)
	fp.Update(keyDown)
	assert.Equal(t, filepath.Join(dir, "a.png"), fp.SelectedPath())
	msg := msgOf(t, fp.Update(keyEnter))
	assert.Equal(t, ImagePickedMsg{Path: filepath.Join(dir, "a.png")}, msg)

	fp.Update(keyUp)
	assert.Nil(t, fp.Update(keyEnter), "entering a directory emits nothing")
	assert.Equal(t, filepath.Join(dir, "shop"), fp.Dir())

	fp.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, filepath.Clean(dir), filepath.Clean(fp.Dir()))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("front.JPG"))
	assert.True(t, IsImageFile("x.webp"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("png"))
}

func TestCategoryStep_SelectionRederivesSteps(t *testing.T) {
	wiz := newCore()
	step := NewCategoryStep(wiz)
	step.Focus()

	// Property is first in the list.
	step.Update(keyEnter)
	require.Equal(t, listing.CategoryProperty, wiz.Form().Category)
	assert.Contains(t, wiz.Steps(), core.StepPropertyDetails)
	assert.NotContains(t, wiz.Steps(), core.StepHours)

	step.Update(keyEnter)
	assert.Equal(t, "Residential", wiz.Form().Subcategory)
	assert.True(t, wiz.IsStepComplete(0))

	step.Update(keyLeft)
	step.Update(keyDown)
	step.Update(keyDown)
	step.Update(keyEnter)
	assert.Equal(t, listing.CategoryStore, wiz.Form().Category)
	assert.Empty(t, wiz.Form().Subcategory, "a subcategory of another category is cleared")
	assert.Contains(t, wiz.Steps(), core.StepHours)
	assert.False(t, wiz.IsStepComplete(0))

	step.Update(keyDown)
	step.Update(keySpace)
	assert.Equal(t, "Clothing", wiz.Form().Subcategory)

	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
}

func TestCategoryStep_IgnoresKeysWhenBlurred(t *testing.T) {
	wiz := newCore()
	step := NewCategoryStep(wiz)
	assert.Nil(t, step.Update(keyEnter))
	assert.Equal(t, listing.CategoryNone, wiz.Form().Category)
}

func TestBasicInfoStep_TypingUpdatesForm(t *testing.T) {
	wiz := newCore()
	step := NewBasicInfoStep(wiz)
	step.Focus()

	typeInto(step.Update, "Corner Grocer")
	assert.Equal(t, "Corner Grocer", wiz.Form().BusinessName)
	assert.False(t, wiz.IsStepComplete(1))
	assert.Contains(t, step.View(), "Business name")

	step.Update(keyTab)
	assert.Equal(t, 1, step.focusIndex)

	step.Update(DescriptionEditedMsg{Content: "Fresh produce every morning.\n\n"})
	assert.Equal(t, "Fresh produce every morning.", wiz.Form().Description)
	assert.True(t, wiz.IsStepComplete(1))

	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
	step.Focus()
	assert.IsType(t, TabExitBackwardMsg{}, msgOf(t, step.Update(keyShiftTab)))
}

func TestContactStep_ShowsErrorsForTouchedFields(t *testing.T) {
	wiz := newCore()
	step := NewContactStep(wiz)
	step.Focus()

	assert.NotContains(t, step.View(), "Location is required")
	step.Update(keyTab)
	assert.Contains(t, step.View(), "Location is required")

	step.Update(keyShiftTab)
	typeInto(step.Update, "  12 Main St ")
	assert.Equal(t, "12 Main St", wiz.Form().Location)

	step.Update(keyTab)
	step.Update(keyTab)
	typeInto(step.Update, "not-an-email")
	assert.False(t, wiz.IsStepComplete(2))
	assert.NotContains(t, step.View(), "Enter a valid email address")
	step.Update(keyTab)
	assert.Contains(t, step.View(), "Enter a valid email address")

	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
	assert.Nil(t, step.Update(keyDown), "down on the last field stays put")
}

func TestContactStep_PrefilledValuesAreChecked(t *testing.T) {
	wiz := newCore()
	require.NoError(t, wiz.UpdateField(core.FieldPhone, "call me"))
	step := NewContactStep(wiz)
	assert.Contains(t, step.View(), "Enter a valid phone number")
}

func TestShiftClock(t *testing.T) {
	cases := []struct {
		clock string
		delta int
		want  string
	}{
		{"09:00", 30, "09:30"},
		{"09:00", -30, "08:30"},
		{"23:30", 30, "00:00"},
		{"00:00", -30, "23:30"},
		{"", 30, "09:00"},
		{"nine", -30, "09:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, shiftClock(tc.clock, tc.delta), "%s %+d", tc.clock, tc.delta)
	}
}

func TestHoursStep_EditsSchedule(t *testing.T) {
	wiz := newCore()
	step := NewHoursStep(wiz)
	step.Focus()

	step.Update(char('+'))
	step.Update(keyRight)
	step.Update(char('-'))
	hours := wiz.Form().BusinessHours
	assert.Equal(t, "09:30", hours[0].OpenTime)
	assert.Equal(t, "16:30", hours[0].CloseTime)
	assert.Equal(t, "09:00", hours[1].OpenTime, "other days are untouched")

	step.Update(char('w'))
	hours = wiz.Form().BusinessHours
	for i := 1; i < 5; i++ {
		assert.Equal(t, "09:30", hours[i].OpenTime, hours[i].Day)
		assert.Equal(t, "16:30", hours[i].CloseTime, hours[i].Day)
	}
	assert.True(t, hours[5].IsClosed, "the weekend is not copied")

	for i := 0; i < 5; i++ {
		step.Update(keyDown)
	}
	step.Update(keySpace)
	sat := wiz.Form().BusinessHours[5]
	assert.False(t, sat.IsClosed)
	assert.NotEmpty(t, sat.OpenTime)
	assert.NotEmpty(t, sat.CloseTime)

	step.Update(char('c'))
	assert.True(t, wiz.Form().BusinessHours[5].IsClosed)
	step.Update(char('+'))
	assert.True(t, wiz.Form().BusinessHours[5].IsClosed, "closed days ignore time changes")

	assert.Contains(t, step.View(), "Closed")
	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
}

func TestHoursStep_DoesNotShareFormSlice(t *testing.T) {
	wiz := newCore()
	before := wiz.Form().BusinessHours
	step := NewHoursStep(wiz)
	step.Focus()
	step.Update(char('+'))
	assert.Equal(t, "09:00", before[0].OpenTime)
}

func TestServicesStep_AddAndRemove(t *testing.T) {
	wiz := newCore()
	require.NoError(t, wiz.UpdateField(core.FieldCategory, listing.CategoryServices))
	step := NewServicesStep(wiz)
	step.Focus()

	step.Update(keyEnter)
	assert.Contains(t, step.View(), "Service name is required")
	assert.Empty(t, wiz.Form().Services)

	typeInto(step.Update, "Leak repair")
	step.Update(keyTab)
	typeInto(step.Update, "$80/hr")
	step.Update(keyEnter)
	typeInto(step.Update, "Boiler service")
	step.Update(keyEnter)

	services := wiz.Form().Services
	require.Len(t, services, 2)
	assert.Equal(t, listing.Service{Name: "Leak repair", Price: "$80/hr"}, services[0])
	assert.Equal(t, "Boiler service", services[1].Name)
	assert.NotContains(t, step.View(), "Service name is required")

	step.FocusLast()
	step.Update(keyUp)
	step.Update(char('d'))
	services = wiz.Form().Services
	require.Len(t, services, 1)
	assert.Equal(t, "Boiler service", services[0].Name)

	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
}

func TestPropertyStep_SelectorsAndNumbers(t *testing.T) {
	wiz := newCore()
	require.NoError(t, wiz.UpdateField(core.FieldCategory, listing.CategoryProperty))
	step := NewPropertyStep(wiz)
	step.Focus()

	step.Update(keyRight)
	require.NotNil(t, wiz.Form().PropertyDetails)
	assert.Equal(t, "House", wiz.Form().PropertyDetails.PropertyType)
	step.Update(keyLeft)
	assert.Equal(t, "Land", wiz.Form().PropertyDetails.PropertyType, "cycling wraps around")

	step.Update(keyDown)
	step.Update(keyRight)
	assert.Equal(t, "rent", wiz.Form().PropertyDetails.ListingType)

	step.Update(keyDown)
	typeInto(step.Update, "350,000")
	assert.Equal(t, 350000.0, wiz.Form().PropertyDetails.Price)

	step.Update(keyDown)
	typeInto(step.Update, "3x")
	assert.Contains(t, step.View(), "Enter a whole number")

	step.FocusLast()
	typeInto(step.Update, "Garage, , Garden")
	assert.Equal(t, []string{"Garage", "Garden"}, wiz.Form().PropertyDetails.Amenities)
	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b", "c"}
	assert.Equal(t, "b", cycle(opts, "a", 1))
	assert.Equal(t, "a", cycle(opts, "c", 1))
	assert.Equal(t, "c", cycle(opts, "a", -1))
	assert.Equal(t, "a", cycle(opts, "", 1))
	assert.Equal(t, "c", cycle(opts, "", -1))
}

func TestDealershipStep_Toggles(t *testing.T) {
	wiz := newCore()
	require.NoError(t, wiz.UpdateField(core.FieldCategory, listing.CategoryAutoDealership))
	step := NewDealershipStep(wiz)
	step.Focus()

	step.Update(keyDown)
	step.Update(keySpace) // SUV
	step.Update(keyUp)
	step.Update(char('x')) // Sedan
	det := wiz.Form().AutoDealershipDetails
	require.NotNil(t, det)
	assert.Equal(t, []string{"Sedan", "SUV"}, det.VehicleTypes, "canonical order is kept")

	step.Update(keySpace)
	assert.Equal(t, []string{"SUV"}, wiz.Form().AutoDealershipDetails.VehicleTypes)

	for i := 0; i < len(listing.VehicleTypes); i++ {
		step.Update(keyDown)
	}
	step.Update(keyEnter)
	assert.True(t, wiz.Form().AutoDealershipDetails.OffersFinancing)

	step.Update(keyTab)
	typeInto(step.Update, "Toyota, Ford ,")
	assert.Equal(t, []string{"Toyota", "Ford"}, wiz.Form().AutoDealershipDetails.Brands)
	assert.Equal(t, []string{"SUV"}, wiz.Form().AutoDealershipDetails.VehicleTypes)
	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
}

func TestImagesStep_ManagesPendingImages(t *testing.T) {
	wiz := newCore()
	step := NewImagesStep(wiz, t.TempDir())
	step.Focus()

	assert.Nil(t, step.Update(char('v')), "nothing to preview")
	assert.Contains(t, step.View(), "No images yet")

	step.Update(ImagePickedMsg{Path: "/photos/front.png"})
	step.Update(ImagePickedMsg{Path: "/photos/aisle.png"})
	all := wiz.Images().All()
	require.Len(t, all, 2)
	assert.True(t, all[0].IsPrimary, "the first image becomes primary")
	assert.Equal(t, 1, step.cursor)

	step.Update(keyTab)
	step.Update(char('p'))
	id, ok := wiz.Images().Primary()
	require.True(t, ok)
	assert.Equal(t, all[1].ID, id)

	preview := msgOf(t, step.Update(char('v')))
	assert.Equal(t, PreviewImagesMsg{Start: 1}, preview)

	assert.Nil(t, step.Update(char('d')), "pending files are removed locally")
	assert.Equal(t, 1, wiz.Images().Len())
	assert.Equal(t, 0, step.cursor)
	id, _ = wiz.Images().Primary()
	assert.Equal(t, all[0].ID, id, "primary moves to the remaining image")

	assert.Contains(t, step.View(), "(pending)")
	assert.IsType(t, TabExitForwardMsg{}, msgOf(t, step.Update(keyTab)))
}

func TestImagesStep_UploadedDeleteIsRequested(t *testing.T) {
	wiz := core.Edit(testfixtures.StoreListing(), core.Options{Listings: testfixtures.NewMockListings()})
	step := NewImagesStep(wiz, t.TempDir())
	step.FocusLast()

	msg := msgOf(t, step.Update(char('d')))
	assert.Equal(t, DeleteImageMsg{ID: "img-1"}, msg)
	assert.Equal(t, 3, wiz.Images().Len(), "removal waits for the remote delete")
	assert.Contains(t, step.View(), "(deleting)")
	assert.Nil(t, step.Update(char('d')), "no second request while one is in flight")

	step.Update(imageDeletedMsg{id: "img-1"})
	assert.NotContains(t, step.View(), "(deleting)")
}
