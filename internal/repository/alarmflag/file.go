package alarmflag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Rakesh-Biswal/reminder-service/internal/config"
	"github.com/Rakesh-Biswal/reminder-service/internal/domain/alarm"
)

// FileRepository persists the alarm flag to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON slot file.
	path string
	// mu protects concurrent access to the slot file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Set overwrites the slot with the provided flag.
func (r *FileRepository) Set(_ context.Context, flag alarm.Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(flag)
	if err != nil {
		return fmt.Errorf("encode alarm flag: %w", err)
	}

	if err := os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write alarm flag file: %w", err)
	}

	return nil
}

// Get reads the slot from disk.
func (r *FileRepository) Get(_ context.Context) (alarm.Flag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return alarm.Flag{}, ErrNotFound
		}

		return alarm.Flag{}, fmt.Errorf("read alarm flag file: %w", err)
	}

	var flag alarm.Flag
	if err := json.Unmarshal(contents, &flag); err != nil {
		return alarm.Flag{}, fmt.Errorf("decode alarm flag file: %w", err)
	}

	return flag, nil
}
