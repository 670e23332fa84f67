package wizard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/media"
	"github.com/mark3labs/listr/internal/tui/testfixtures"
	core "github.com/mark3labs/listr/internal/wizard"
	"github.com/stretchr/testify/require"
)

var (
	keyTab      = tea.KeyPressMsg{Code: tea.KeyTab}
	keyShiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	keyEnter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc      = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyUp       = tea.KeyPressMsg{Code: tea.KeyUp}
	keyDown     = tea.KeyPressMsg{Code: tea.KeyDown}
	keyLeft     = tea.KeyPressMsg{Code: tea.KeyLeft}
	keyRight    = tea.KeyPressMsg{Code: tea.KeyRight}
	keySpace    = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

// char returns the key press for a printable rune.
func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func alt(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModAlt}
}

// typeInto sends s one rune at a time to update.
func typeInto(update func(tea.Msg) tea.Cmd, s string) {
	for _, r := range s {
		update(char(r))
	}
}

// msgOf runs cmd and returns its single message.
func msgOf(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msgs := testfixtures.RunCmd(t, cmd)
	require.Len(t, msgs, 1)
	return msgs[0]
}

func newCore() *core.Wizard {
	listings := testfixtures.NewMockListings()
	return core.New(core.Options{
		Listings: listings,
		Images:   testfixtures.NewMockImages(listings),
		Previews: media.NewPreviewRegistry(),
		OwnerID:  testfixtures.FixedOwnerID,
	})
}

// fillStore completes every form step of a store listing.
func fillStore(t *testing.T, wiz *core.Wizard) {
	t.Helper()
	require.NoError(t, wiz.UpdateField(core.FieldCategory, listing.CategoryStore))
	require.NoError(t, wiz.UpdateField(core.FieldSubcategory, "Grocery"))
	require.NoError(t, wiz.UpdateField(core.FieldBusinessName, "Corner Grocer"))
	require.NoError(t, wiz.UpdateField(core.FieldDescription, "Fresh produce every morning."))
	require.NoError(t, wiz.UpdateField(core.FieldLocation, "12 Main St"))
}
