// Package disk stores uploaded files in a local directory. A file only ever
// appears under its final name once its bytes are fully on disk.
package disk

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"uploadgate/internal/domain/entity"
	"uploadgate/pkg/logger"
	"uploadgate/pkg/utils"
)

var (
	ErrPersistence = errors.New("persistence failed")
	ErrInvalidName = utils.ErrInvalidFilename
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
	tempPrefix      = ".upload-"
	indexFile       = "index.html"
)

type Store struct {
	cfg *Config
}

func New(cfg *Config) *Store {
	if cfg.FileMode == 0 {
		cfg.FileMode = defaultFileMode
	}

	if cfg.DirMode == 0 {
		cfg.DirMode = defaultDirMode
	}

	return &Store{cfg: cfg}
}

func (s *Store) Dir() string {
	return s.cfg.Dir
}

// Save writes content to a hidden temporary file next to its destination,
// syncs it, and renames it over name. The temporary name has a fixed length
// so any name the directory accepts can be saved. The temporary file is
// removed on every failure path.
func (s *Store) Save(ctx context.Context, name string, content []byte) (entity.StoredFile, error) {
	clean, err := utils.SanitizeFilename(name)
	if err != nil {
		return entity.StoredFile{}, err
	}

	if err := ctx.Err(); err != nil {
		return entity.StoredFile{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := os.MkdirAll(s.cfg.Dir, fs.FileMode(s.cfg.DirMode)); err != nil {
		return entity.StoredFile{}, fmt.Errorf("%w: create upload dir: %w", ErrPersistence, err)
	}

	dst := filepath.Join(s.cfg.Dir, clean)
	tmp := filepath.Join(s.cfg.Dir, tempPrefix+uuid.NewString())

	if err := s.writeTemp(tmp, content); err != nil {
		removeTemp(tmp)

		return entity.StoredFile{}, err
	}

	if err := ctx.Err(); err != nil {
		removeTemp(tmp)

		return entity.StoredFile{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		removeTemp(tmp)

		return entity.StoredFile{}, fmt.Errorf("%w: rename: %w", ErrPersistence, err)
	}

	return entity.StoredFile{
		Name: clean,
		Size: int64(len(content)),
		Path: dst,
	}, nil
}

func (s *Store) writeTemp(tmp string, content []byte) error {
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fs.FileMode(s.cfg.FileMode))
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrPersistence, err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()

		return fmt.Errorf("%w: write: %w", ErrPersistence, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()

		return fmt.Errorf("%w: sync: %w", ErrPersistence, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrPersistence, err)
	}

	return nil
}

func removeTemp(tmp string) {
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("can't remove temp file", "path", tmp, "err", err)
	}
}

// List returns the names of stored files, sorted. Directories, index.html
// and hidden entries (in-flight temporaries included) are skipped. A missing
// upload directory lists as empty.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || e.Name() == indexFile || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		names = append(names, e.Name())
	}

	sort.Strings(names)

	return names, nil
}

// Remove deletes a stored file by its sanitized name.
func (s *Store) Remove(ctx context.Context, name string) error {
	clean, err := utils.SanitizeFilename(name)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.cfg.Dir, clean)); err != nil {
		return fmt.Errorf("%w: remove: %w", ErrPersistence, err)
	}

	return nil
}

// Digest returns the hex sha256 of a stored file.
func (s *Store) Digest(ctx context.Context, name string) (string, error) {
	clean, err := utils.SanitizeFilename(name)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(filepath.Join(s.cfg.Dir, clean))
	if err != nil {
		return "", fmt.Errorf("open stored file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read stored file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
