package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stepone/internal/modules/progress/domain"
	progressout "stepone/internal/modules/progress/port/out"
	apperrors "stepone/internal/platform/errors"
)

// FileProgressStore keeps the record in one JSON file. Writes go to a sibling
// temp file first so a crash never leaves a half-written record behind.
type FileProgressStore struct {
	path string
}

func NewFileProgressStore(path string) progressout.Store {
	return &FileProgressStore{path: path}
}

func (s *FileProgressStore) Load(_ context.Context) (domain.UserProgress, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.UserProgress{}, apperrors.ErrNoProgress
		}
		return domain.UserProgress{}, fmt.Errorf("read progress: %w", err)
	}
	return decodeProgress(payload)
}

func (s *FileProgressStore) Save(_ context.Context, progress domain.UserProgress) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	payload, err := encodeProgress(progress)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp progress: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp progress: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace progress: %w", err)
	}
	return nil
}

func (s *FileProgressStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
