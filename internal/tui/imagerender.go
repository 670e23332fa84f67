package tui

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// renderHalfBlocks draws img into a cols x rows cell grid using upper half
// blocks, two pixels per cell. The image keeps its aspect ratio and is
// centered. When zoomed, the middle half of the image fills the grid.
func renderHalfBlocks(img image.Image, cols, rows int, zoomed bool) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	src := img.Bounds()
	if zoomed {
		dx, dy := src.Dx()/4, src.Dy()/4
		src = image.Rect(src.Min.X+dx, src.Min.Y+dy, src.Max.X-dx, src.Max.Y-dy)
	}
	if src.Dx() <= 0 || src.Dy() <= 0 {
		return ""
	}

	// Target size in pixels, fitted inside cols x rows*2.
	pw, ph := cols, rows*2
	if src.Dx()*ph > src.Dy()*pw {
		ph = max(1, src.Dy()*pw/src.Dx())
	} else {
		pw = max(1, src.Dx()*ph/src.Dy())
	}
	padX := (cols - pw) / 2
	padY := (rows - (ph+1)/2) / 2

	sample := func(x, y int) string {
		if y >= ph {
			return theme.Current().BgBase
		}
		sx := src.Min.X + x*src.Dx()/pw
		sy := src.Min.Y + y*src.Dy()/ph
		r, g, b, _ := img.At(sx, sy).RGBA()
		return theme.FormatHexColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		y := (row - padY) * 2
		if y < 0 || y >= ph {
			sb.WriteString(strings.Repeat(" ", cols))
			continue
		}
		sb.WriteString(strings.Repeat(" ", padX))
		for x := 0; x < pw; x++ {
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(sample(x, y))).
				Background(lipgloss.Color(sample(x, y+1))).
				Render("▀"))
		}
		sb.WriteString(strings.Repeat(" ", cols-pw-padX))
	}
	return sb.String()
}
