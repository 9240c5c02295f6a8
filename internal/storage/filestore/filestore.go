// Package filestore implements storage.Store as one JSON file per key in a
// directory, with fsnotify-based change notification for hand edits.
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/focus-tui/internal/logger"
	"github.com/j-veylop/focus-tui/internal/storage"
)

const (
	fileExt          = ".json"
	debounceInterval = 100 * time.Millisecond
)

// Store keeps each record in <dir>/<key>.json.
type Store struct {
	mu          sync.Mutex
	dir         string
	lastWritten map[string][]byte
}

// New creates the directory if needed and returns a store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{
		dir:         dir,
		lastWritten: make(map[string][]byte),
	}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file that holds key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid store key %q", key)
	}
	return nil
}

// Get reads the file for key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put writes value to a temp file and renames it over the record.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(key)
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, value, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.lastWritten[key] = append([]byte(nil), value...)
	return nil
}

// Watch reports keys whose files were changed by someone other than this
// store. Rapid successive writes to one key are debounced into one event.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory so atomic renames are seen.
	if err := watcher.Add(s.dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	out := make(chan string, 16)
	go s.watchLoop(ctx, watcher, out)
	return out, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- string) {
	var (
		timersMu sync.Mutex
		timers   = make(map[string]*time.Timer)
		wg       sync.WaitGroup
	)

	defer func() {
		timersMu.Lock()
		for _, t := range timers {
			if t.Stop() {
				wg.Done()
			}
		}
		timersMu.Unlock()
		wg.Wait()
		if err := watcher.Close(); err != nil {
			logger.Error("failed to close watcher", "error", err)
		}
		close(out)
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, fileExt) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			key := strings.TrimSuffix(name, fileExt)

			timersMu.Lock()
			if t, ok := timers[key]; ok && t.Stop() {
				wg.Done()
			}
			wg.Add(1)
			timers[key] = time.AfterFunc(debounceInterval, func() {
				defer wg.Done()
				if s.changedExternally(key) {
					select {
					case out <- key:
					case <-ctx.Done():
					}
				}
			})
			timersMu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("store watcher error", "dir", s.dir, "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// changedExternally reports whether the file content differs from what this
// store last wrote, so our own Puts are not echoed back.
func (s *Store) changedExternally(key string) bool {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.lastWritten[key]
	if ok && bytes.Equal(last, data) {
		return false
	}
	s.lastWritten[key] = data
	return true
}
