package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAndFormatHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	require.Equal(t, uint8(0xcb), r)
	require.Equal(t, uint8(0xa6), g)
	require.Equal(t, uint8(0xf7), b)
	require.Equal(t, "#cba6f7", FormatHexColor(r, g, b))

	r, g, b = ParseHexColor("bogus")
	require.Zero(t, r)
	require.Zero(t, g)
	require.Zero(t, b)
}

func TestInterpolateColor(t *testing.T) {
	require.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	require.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	require.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
	require.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 3), "position is clamped")
}

func TestGradient(t *testing.T) {
	require.Nil(t, Gradient("#000000", "#ffffff", 0))
	require.Equal(t, []string{"#000000"}, Gradient("#000000", "#ffffff", 1))

	g := Gradient("#000000", "#ffffff", 3)
	require.Len(t, g, 3)
	require.Equal(t, "#000000", g[0])
	require.Equal(t, "#ffffff", g[2])
}

func TestCurrentThemeStyles(t *testing.T) {
	th := Current()
	require.Equal(t, "catppuccin-mocha", th.Name)
	require.Same(t, th.S(), th.S(), "styles are built once")
	require.Contains(t, th.StatusBadge("pending"), "pending")

	other := NewCatppuccinMocha()
	other.Name = "custom"
	SetCurrent(other)
	t.Cleanup(func() { SetCurrent(th) })
	require.Equal(t, "custom", Current().Name)
}
