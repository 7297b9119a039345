package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/djherbis/times"
)

// LocalStorage implements Storage for a directory on the local filesystem.
// All operations are confined to baseDir to prevent path traversal attacks.
type LocalStorage struct {
	baseDir    string // Absolute path
	extensions []string
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithExtensions restricts listed keys to files with the given extensions.
func WithExtensions(exts ...string) LocalOption {
	return func(s *LocalStorage) {
		s.extensions = normalizeExtensions(exts)
	}
}

// NewLocalStorage creates a storage rooted at baseDir. The directory must exist.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	info, err := os.Stat(absBaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, baseDir)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, baseDir)
	}

	s := &LocalStorage{baseDir: absBaseDir}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Keys walks the base directory recursively and returns the keys of matching files.
// Hidden files and directories are skipped.
func (s *LocalStorage) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(s.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Allow cancellation during large directory walks
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == s.baseDir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || !matchExtension(d.Name(), s.extensions) {
			return nil
		}

		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		keys = append(keys, KeyFromPath(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	slices.Sort(keys)
	return keys, nil
}

// Content reads the file stored under key.
func (s *LocalStorage) Content(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	absPath, err := s.resolveKey(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", s.classify(err, key)
	}

	return string(data), nil
}

// Metadata returns the size and timestamps of the file stored under key.
func (s *LocalStorage) Metadata(ctx context.Context, key string) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolveKey(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, s.classify(err, key)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, key)
	}

	meta := &Metadata{
		Key:        key,
		Size:       info.Size(),
		CreatedAt:  info.ModTime(),
		ModifiedAt: info.ModTime(),
	}

	ts := times.Get(info)
	switch {
	case ts.HasBirthTime():
		meta.CreatedAt = ts.BirthTime()
	case ts.HasChangeTime():
		meta.CreatedAt = ts.ChangeTime()
	}

	return meta, nil
}

func (s *LocalStorage) classify(err error, key string) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s", ErrFileNotFound, key)
	case errors.Is(err, syscall.EISDIR):
		return fmt.Errorf("%w: %s", ErrIsDirectory, key)
	default:
		return fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
}

func (s *LocalStorage) resolveKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidPath)
	}
	return s.resolvePath(filepath.FromSlash(PathFromKey(key)))
}

// resolvePath validates and resolves a path within the base directory.
// Ensures all resolved paths stay within baseDir bounds using string prefix checking.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
