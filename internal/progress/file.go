package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vovakirdan/upball/internal/config"
)

// Load reads a store from path. A missing file yields defaults and no error.
// A truncated or invalid file yields defaults and an error wrapping
// ErrCorruptSave, so callers can warn and keep playing.
func Load(path string) (*Store, error) {
	s := NewStore()

	resolved, err := config.ExpandPath(path)
	if err != nil {
		return s, err
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("progress: cannot read %s: %w", resolved, err)
	}

	if err := s.UnmarshalBinary(data); err != nil {
		return s, fmt.Errorf("progress: %s: %w", resolved, err)
	}
	return s, nil
}

// FileSaver writes the store to a single save file.
type FileSaver struct {
	Path string
}

// NewFileSaver returns a saver for path (a leading ~ is expanded on save).
func NewFileSaver(path string) *FileSaver {
	return &FileSaver{Path: path}
}

// Save writes the store through a temporary file and renames it into place,
// so an interrupted write never leaves a truncated save behind.
func (f *FileSaver) Save(s *Store) error {
	path, err := config.ExpandPath(f.Path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progress: cannot create directory %s: %w", dir, err)
	}

	data, err := s.MarshalBinary()
	if err != nil {
		return fmt.Errorf("progress: cannot encode save: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("progress: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("progress: cannot write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("progress: cannot write save: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("progress: cannot replace %s: %w", path, err)
	}
	return nil
}
