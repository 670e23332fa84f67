package tui

import (
	"github.com/mark3labs/listr/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyLeftRight = "←/→"
	KeyUpDown    = "↑/↓"
	KeyEsc       = "esc"
	KeyTab       = "tab"
	KeyDigits    = "1-9"
)

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Example: RenderHintBar("z", "zoom", "esc", "close")
// Returns: "z zoom . esc close"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string

	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + s.HintSeparator.Render(".") + " "
		}
		result += s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1])
	}

	return result
}

// HintGallery returns hints for the open gallery.
func HintGallery(canNavigate bool) string {
	if !canNavigate {
		return RenderHintBar("z", "zoom", "i", "info", KeyEsc, "close")
	}
	return RenderHintBar(KeyLeftRight, "browse", KeyDigits, "jump", "z", "zoom", "i", "info", KeyEsc, "close")
}

// HintDetail returns hints for the listing detail page. Owner actions are
// only advertised to the owner.
func HintDetail(owner bool) string {
	pairs := []string{KeyUpDown, "scroll", "g", "gallery", "c", "contact"}
	if owner {
		pairs = append(pairs, "e", "edit", "d", "delete")
	}
	pairs = append(pairs, "q", "quit")
	return RenderHintBar(pairs...)
}
