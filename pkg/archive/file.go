package archive

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matzehuels/bingocards/pkg/errors"
)

// FileStore keeps one JSON file per record.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, it defaults to $XDG_DATA_HOME/bingocards/strips or
// ~/.local/share/bingocards/strips.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(dir, "strips")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func defaultDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "bingocards"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "bingocards"), nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, r *Record) error {
	prepare(r)
	if err := errors.ValidateStripID(r.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(s.recordPath(r.ID), data, 0600); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateStripID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "strip %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return &r, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	var out []Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		out = append(out, r)
	}

	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding record files.
func (s *FileStore) Path() string { return s.baseDir }

var _ Store = (*FileStore)(nil)
