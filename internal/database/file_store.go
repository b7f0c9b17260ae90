package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/models"

	"github.com/rs/zerolog"
)

// FileStore keeps the document in one JSON file. The file is re-read on
// every operation so external edits are picked up; there is no cross-process
// locking.
type FileStore struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// OpenFile opens the store at path. A missing file is created with the
// default document. A file that cannot be read or parsed is an error; the
// caller decides whether to fall back to memory.
func OpenFile(path string, log zerolog.Logger) (*FileStore, error) {
	s := &FileStore{path: path, log: log}

	doc, changed, err := s.load()
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.write(doc); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("data file initialized")
	}
	return s, nil
}

func (s *FileStore) Path() string { return s.path }

// Read re-parses the file into a fresh document.
func (s *FileStore) Read(ctx context.Context) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, changed, err := s.load()
	if err != nil {
		return nil, apperr.LoadFailed(err)
	}
	if changed {
		// keep hashed passwords and filled-in defaults so the next read is cheap
		if err := s.write(doc); err != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("normalized data file could not be written back")
		}
	}
	return doc, nil
}

// Write replaces the file with doc.
func (s *FileStore) Write(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(doc); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

func (s *FileStore) View(ctx context.Context, fn func(doc *models.Document) error) error {
	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *FileStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.load()
	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("data file could not be read")
		return apperr.LoadFailed(err)
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := s.write(doc); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("data file could not be written")
		return apperr.Persistence(err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// load parses the file. A missing file yields the default document with
// changed=true.
func (s *FileStore) load() (*models.Document, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := DefaultDocument()
		if _, err := Normalize(doc); err != nil {
			return nil, false, err
		}
		return doc, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", s.path, err)
	}
	changed, err := Normalize(&doc)
	if err != nil {
		return nil, false, err
	}
	return &doc, changed, nil
}

// write goes through a temp file and a rename so a crash mid-write leaves
// the previous file intact.
func (s *FileStore) write(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
