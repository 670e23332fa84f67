package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mark3labs/listr/internal/logger"
)

// FileName is the UI state file inside the data directory.
const FileName = "ui-state.json"

// UIState holds persistent UI preferences that carry across runs.
type UIState struct {
	Gallery GalleryState `json:"gallery"`
}

// GalleryState holds gallery preferences.
type GalleryState struct {
	// ShowInfo keeps the image info panel open.
	ShowInfo bool `json:"show_info"`
}

// DefaultUIState returns the state used before anything is saved.
func DefaultUIState() *UIState {
	return &UIState{}
}

// Path returns the state file location for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the UI state for dataDir. A missing or unreadable file yields
// the defaults.
func Load(dataDir string) *UIState {
	data, err := os.ReadFile(Path(dataDir))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return DefaultUIState()
	case err != nil:
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	s := DefaultUIState()
	if err := json.Unmarshal(data, s); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}
	return s
}

// Save writes s for dataDir, creating the directory when needed. The file is
// replaced atomically.
func Save(dataDir string, s *UIState) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	tmp, err := os.CreateTemp(dataDir, FileName+".*")
	if err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing UI state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), Path(dataDir)); err != nil {
		return fmt.Errorf("replacing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", Path(dataDir))
	return nil
}

// SaveGalleryInfo records the info panel preference, keeping the rest of
// the stored state.
func SaveGalleryInfo(dataDir string, visible bool) error {
	s := Load(dataDir)
	s.Gallery.ShowInfo = visible
	return Save(dataDir, s)
}
