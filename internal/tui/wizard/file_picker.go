package wizard

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/listr/internal/tui"
	"github.com/mark3labs/listr/internal/tui/theme"
)

// imageExtensions are the file types the picker offers.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsImageFile reports whether name has a supported image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// FileItem represents a file or directory in the file picker.
type FileItem struct {
	name  string // Name of file/directory
	path  string // Full path
	isDir bool   // True if directory
}

// Render returns the display line for the item.
func (f *FileItem) Render(width int) string {
	icon := "🖼 "
	if f.isDir {
		icon = "📁"
	}
	display := icon + " " + f.name
	if width > 5 && len(display) > width-2 {
		display = display[:width-5] + "..."
	}
	return display
}

// FilePicker browses the local filesystem for image files.
type FilePicker struct {
	currentPath string      // Current directory path
	items       []*FileItem // All items in current directory
	selectedIdx int         // Index of selected item
	offset      int         // First visible item
	err         string
	width       int
	height      int
}

// NewFilePicker creates a picker rooted at dir, or the working directory
// when dir is empty.
func NewFilePicker(dir string) *FilePicker {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		dir = cwd
	}
	fp := &FilePicker{width: 60, height: 10}
	if err := fp.loadDirectory(dir); err != nil {
		fp.currentPath = dir
		fp.err = err.Error()
	}
	return fp
}

// loadDirectory lists directories and image files under path.
func (f *FilePicker) loadDirectory(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	f.items = f.items[:0]
	absPath, err := filepath.Abs(path)
	if err == nil && absPath != filepath.Dir(absPath) {
		f.items = append(f.items, &FileItem{name: "..", path: filepath.Dir(absPath), isDir: true})
	}

	var dirs, files []*FileItem
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fullPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, &FileItem{name: entry.Name(), path: fullPath, isDir: true})
		} else if IsImageFile(entry.Name()) {
			files = append(files, &FileItem{name: entry.Name(), path: fullPath})
		}
	}

	byName := func(items []*FileItem) {
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].name) < strings.ToLower(items[j].name)
		})
	}
	byName(dirs)
	byName(files)

	f.items = append(f.items, dirs...)
	f.items = append(f.items, files...)
	f.currentPath = path
	f.selectedIdx = 0
	f.offset = 0
	f.err = ""
	return nil
}

// SetSize updates the dimensions for the file picker.
func (f *FilePicker) SetSize(width, height int) {
	f.width = width
	f.height = max(3, height)
}

// Dir returns the directory being shown.
func (f *FilePicker) Dir() string { return f.currentPath }

// Update handles navigation keys. Choosing a file emits ImagePickedMsg.
func (f *FilePicker) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if f.selectedIdx > 0 {
			f.selectedIdx--
		}
	case "down", "j":
		if f.selectedIdx < len(f.items)-1 {
			f.selectedIdx++
		}
	case "enter":
		if f.selectedIdx < 0 || f.selectedIdx >= len(f.items) {
			return nil
		}
		item := f.items[f.selectedIdx]
		if item.isDir {
			if err := f.loadDirectory(item.path); err != nil {
				f.err = err.Error()
			}
			return nil
		}
		return func() tea.Msg { return ImagePickedMsg{Path: item.path} }
	case "backspace":
		parentPath := filepath.Dir(f.currentPath)
		if parentPath != f.currentPath {
			if err := f.loadDirectory(parentPath); err != nil {
				f.err = err.Error()
			}
		}
	}
	f.scrollToSelection()
	return nil
}

func (f *FilePicker) scrollToSelection() {
	if f.selectedIdx < f.offset {
		f.offset = f.selectedIdx
	}
	if f.selectedIdx >= f.offset+f.height {
		f.offset = f.selectedIdx - f.height + 1
	}
}

// SelectedPath returns the highlighted file path, empty for directories.
func (f *FilePicker) SelectedPath() string {
	if f.selectedIdx >= 0 && f.selectedIdx < len(f.items) && !f.items[f.selectedIdx].isDir {
		return f.items[f.selectedIdx].path
	}
	return ""
}

// View renders the file picker.
func (f *FilePicker) View() string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(s.Muted.Render(f.currentPath))
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(s.Error.Render("✗ " + f.err))
		b.WriteString("\n")
	}

	hasFiles := false
	for _, item := range f.items {
		if !item.isDir {
			hasFiles = true
			break
		}
	}
	if !hasFiles {
		b.WriteString(s.Muted.Italic(true).Render("No images in this directory"))
		b.WriteString("\n")
	}

	end := min(len(f.items), f.offset+f.height)
	for i := f.offset; i < end; i++ {
		line := f.items[i].Render(f.width)
		if i == f.selectedIdx {
			line = s.Selected.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(tui.RenderHintBar(
		"↑↓/j/k", "navigate",
		"enter", "open/add",
		"backspace", "up",
	))
	return b.String()
}

// ImagePickedMsg is sent when an image file is chosen.
type ImagePickedMsg struct {
	Path string
}
