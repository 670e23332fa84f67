package tui

import (
	"strings"
	"testing"

	"github.com/mark3labs/listr/internal/tui/testfixtures"
	"github.com/stretchr/testify/require"
)

func TestToast_ShowDisplaysMessage(t *testing.T) {
	toast := NewToast()

	cmd := toast.Show("Listing saved")

	require.True(t, toast.IsVisible())
	require.Equal(t, "Listing saved", toast.GetMessage())
	require.NotNil(t, cmd, "Show returns the dismissal timer")
}

func TestToast_ViewEmptyWhenHidden(t *testing.T) {
	require.Empty(t, NewToast().View(80))
}

func TestToast_DismissHidesToast(t *testing.T) {
	toast := NewToast()
	toast.Show("Listing saved")

	require.Nil(t, toast.Update(ToastDismissMsg{seq: 1}))
	require.False(t, toast.IsVisible())
	require.Empty(t, toast.GetMessage())
}

func TestToast_StaleDismissKeepsNewerToast(t *testing.T) {
	toast := NewToast()
	toast.Show("first")
	toast.Show("second")

	toast.Update(ToastDismissMsg{seq: 1})
	require.True(t, toast.IsVisible())
	require.Equal(t, "second", toast.GetMessage())

	toast.Update(ToastDismissMsg{seq: 2})
	require.False(t, toast.IsVisible())
}

func TestToast_ShowToastMsg(t *testing.T) {
	toast := NewToast()
	cmd := toast.Update(ShowToastMsg{Text: "upload failed", Error: true})
	require.NotNil(t, cmd)
	require.Equal(t, "upload failed", toast.GetMessage())
}

func TestToast_DrawBottomRight(t *testing.T) {
	toast := NewToast()
	toast.Show("2 of 3 images uploaded")

	out := testfixtures.Render(toast.Draw)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, testfixtures.TestTermHeight)
	require.Contains(t, lines[testfixtures.TestTermHeight-2], "2 of 3 images uploaded")
}
