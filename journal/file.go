package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/rustyeddy/fibjournal/logger"
	"github.com/sirupsen/logrus"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore keeps one JSON file per key under a directory.
type FileStore struct {
	dir string
	log logrus.FieldLogger
	mu  sync.Mutex
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string, log logrus.FieldLogger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	if log == nil {
		log = logger.Discard().Logger
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid journal key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStore) Load(key string) ([]Entry, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return decodeEntries(data, key, s.log), nil
}

// Save writes to a temp file in the same directory then renames it over
// the old one.
func (s *FileStore) Save(key string, entries []Entry) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("replace %s: %w", p, err)
	}
	return nil
}

// Keys lists the keys that have a file in the store directory, in name
// order.
func (s *FileStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range matches {
		key := strings.TrimSuffix(filepath.Base(m), ".json")
		if keyPattern.MatchString(key) {
			out = append(out, key)
		}
	}
	return out, nil
}

func (s *FileStore) Close() error { return nil }
