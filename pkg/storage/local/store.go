package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
)

// Store keeps uploaded media files on the local disk and maps them to the
// stable served paths persisted in media rows.
type Store struct {
	dir         string
	servePrefix string
	logg        *logger.Logger
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewStore ensures the upload directory exists and returns a store bound to it.
func NewStore(cfg config.UploadsConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("uploads dir is required")
	}
	prefix := cfg.ServePrefix
	if prefix == "" {
		prefix = "/uploads"
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &Store{dir: cfg.Dir, servePrefix: strings.TrimRight(prefix, "/"), logg: logg}, nil
}

// Dir returns the backing directory, used to mount the static file route.
func (s *Store) Dir() string {
	return s.dir
}

// Save moves a temporary upload into the store under a generated name and
// returns the served path recorded on the media row. The original name only
// contributes its extension; stored names are timestamp plus random suffix.
func (s *Store) Save(ctx context.Context, tempPath, originalName string) (string, error) {
	if tempPath == "" {
		return "", errors.New("temp path is required")
	}

	storedName := s.storedName(originalName)
	dest := filepath.Join(s.dir, storedName)

	if err := os.Rename(tempPath, dest); err != nil {
		// Rename fails across filesystems; fall back to copy+remove.
		if copyErr := copyFile(tempPath, dest); copyErr != nil {
			return "", fmt.Errorf("storing upload: %w", copyErr)
		}
		if rmErr := os.Remove(tempPath); rmErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "leftover temp upload not removed")
		}
	}

	return s.servePrefix + "/" + storedName, nil
}

// Remove deletes the physical file behind a served path. A missing file is
// not an error; the row may outlive the file.
func (s *Store) Remove(ctx context.Context, servedPath string) error {
	full, err := s.resolve(servedPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("removing %s: %w", full, err)
	}
	return nil
}

// Discard deletes a temporary upload that was never registered.
func (s *Store) Discard(ctx context.Context, tempPath string) error {
	if tempPath == "" {
		return nil
	}
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("discarding %s: %w", tempPath, err)
	}
	return nil
}

// Exists reports whether the physical file behind a served path is present.
func (s *Store) Exists(servedPath string) bool {
	full, err := s.resolve(servedPath)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(full)
	return statErr == nil
}

// Ping verifies the upload directory is still writable.
func (s *Store) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("uploads dir unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("uploads path %s is not a directory", s.dir)
	}
	return nil
}

// resolve maps a served path back to a file inside the store, rejecting
// anything that escapes the upload directory.
func (s *Store) resolve(servedPath string) (string, error) {
	if servedPath == "" {
		return "", errors.New("served path is required")
	}
	base := path.Base(servedPath)
	if base == "." || base == "/" || base == ".." {
		return "", fmt.Errorf("invalid served path %q", servedPath)
	}
	return filepath.Join(s.dir, base), nil
}

func (s *Store) storedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(path.Base(originalName)))
	return fmt.Sprintf("media-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
