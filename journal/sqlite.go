package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/fibjournal/logger"
	"github.com/sirupsen/logrus"
)

// SQLiteStore keeps each key's encoded entry list in one row.
type SQLiteStore struct {
	db  *sql.DB
	log logrus.FieldLogger
	mu  sync.Mutex
}

func NewSQLite(path string, log logrus.FieldLogger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if log == nil {
		log = logger.Discard().Logger
	}
	log.WithField("path", path).Debug("sqlite journal opened")
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Load(key string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM journal_kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", key, err)
	}
	return decodeEntries([]byte(value), key, s.log), nil
}

func (s *SQLiteStore) Save(key string, entries []Entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO journal_kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC(),
	)
	return err
}

// Keys lists the stored keys in name order.
func (s *SQLiteStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT key FROM journal_kv ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
