package teiichi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrNotFound is returned when a key has no value
var ErrNotFound = errors.New("key not found")

// Store is a small key-value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps every key in a single JSON object on disk
type FileStore struct {
	filename string
	lock     sync.Mutex
}

// NewFileStore returns a store backed by filename
// The file is created on the first Put.
func NewFileStore(filename string) *FileStore {
	return &FileStore{filename: filename}
}

// NOTE: caller must hold the lock
func (f *FileStore) read() (map[string]string, error) {
	b, err := os.ReadFile(f.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}

		return nil, err
	}

	values := make(map[string]string)
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", f.filename, err)
	}

	return values, nil
}

// NOTE: caller must hold the lock
func (f *FileStore) write(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.filename + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}

	return os.Rename(tmp, f.filename)
}

// Get returns the value for key
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return nil, err
	}

	value, found := values[key]
	if !found {
		return nil, ErrNotFound
	}

	return []byte(value), nil
}

// Put sets the value for key
func (f *FileStore) Put(_ context.Context, key string, value []byte) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}

	values[key] = string(value)
	return f.write(values)
}

// Delete removes key, a missing key is not an error
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}

	if _, found := values[key]; !found {
		return nil
	}

	delete(values, key)
	return f.write(values)
}

// PGStore keeps keys in the kv_store table
type PGStore struct {
	db *sql.DB
}

// NewPGStore returns a store backed by postgres
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

// Get returns the value for key
func (p *PGStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv_store WHERE key = $1`

	var value string
	if err := p.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return []byte(value), nil
}

// Put sets the value for key
func (p *PGStore) Put(ctx context.Context, key string, value []byte) error {
	const query = `
INSERT INTO kv_store (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated = NOW()`

	_, err := p.db.ExecContext(ctx, query, key, string(value))
	return err
}

// Delete removes key
func (p *PGStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_store WHERE key = $1`

	_, err := p.db.ExecContext(ctx, query, key)
	return err
}
