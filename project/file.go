package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arunpranav-at/atap"
)

// Save writes doc to path atomically: the project is encoded into a
// temporary file in the same directory, synced and renamed over path. A
// failed save leaves any existing file untouched.
func Save(path string, doc *atap.Document, opts ...Option) error {
	return SaveSnapshot(path, doc.Snapshot(), opts...)
}

// SaveSnapshot is Save for an existing snapshot.
func SaveSnapshot(path string, s *atap.Snapshot, opts ...Option) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("project: save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmp.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
				atap.Logger().Warn("project: cannot remove temp file", "path", tmp.Name(), "err", rmErr)
			}
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = Encode(bw, s, opts...); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("project: save: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("project: save: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("project: save: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("project: save: %w", err)
	}

	atap.Logger().Info("project: saved", "path", path, "id", s.ID,
		"frames", len(s.Frames), "width", s.Width, "height", s.Height)
	return nil
}

// Load reads a project file into a new document with empty history.
// opts are passed to atap.FromSnapshot.
func Load(path string, opts ...atap.DocumentOption) (*atap.Document, error) {
	s, err := LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	doc, err := atap.FromSnapshot(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptProject, err)
	}
	return doc, nil
}

// LoadSnapshot reads a project file without building a document.
func LoadSnapshot(path string) (*atap.Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("project: load: %w", err)
	}
	defer f.Close()

	s, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	atap.Logger().Info("project: loaded", "path", path, "id", s.ID,
		"frames", len(s.Frames), "fps", s.FPS)
	return s, nil
}
