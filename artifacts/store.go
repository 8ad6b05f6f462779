// Package artifacts loads the exported scaler and model from a store and
// publishes them as an immutable ml.Runtime.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gpapredict/db"
	"gpapredict/ml"
)

// Store returns the raw bytes of a named artifact. A missing artifact is
// reported as ml.ErrArtifactMissing.
type Store interface {
	Open(ctx context.Context, name string) ([]byte, error)
	Describe() string
}

// FileStore reads artifacts from a directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *FileStore) Open(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Path(name)
	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ml.ErrArtifactMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return payload, nil
}

func (s *FileStore) Describe() string { return "file:" + s.Dir }

// SQLiteStore reads artifacts from the artifacts table.
type SQLiteStore struct {
	db   *db.DB
	path string
}

func NewSQLiteStore(database *db.DB, path string) *SQLiteStore {
	return &SQLiteStore{db: database, path: path}
}

func (s *SQLiteStore) Open(ctx context.Context, name string) ([]byte, error) {
	artifact, err := s.db.LoadArtifact(ctx, name)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s in %s", ml.ErrArtifactMissing, name, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return artifact.Payload, nil
}

func (s *SQLiteStore) Describe() string { return "sqlite:" + s.path }
