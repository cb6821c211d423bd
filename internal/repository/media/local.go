package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/metrics"
)

// PublicPrefix is the URL path the local upload directory is served under
const PublicPrefix = "/uploads/"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LocalStore writes attachments to a directory served by the API itself
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory files are written to
func (s *LocalStore) Dir() string {
	return s.dir
}

// Store writes the file under a collision-free name and returns its public path
func (s *LocalStore) Store(ctx context.Context, file domain.MediaFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + "-" + sanitizeName(file.Name)
	if err := os.WriteFile(filepath.Join(s.dir, name), file.Data, 0o644); err != nil {
		metrics.MediaStoredTotal.WithLabelValues("local", "error").Inc()
		return "", fmt.Errorf("%w: failed to write media: %v", domain.ErrUpstreamUnavailable, err)
	}

	metrics.MediaStoredTotal.WithLabelValues("local", "success").Inc()
	return PublicPrefix + name, nil
}

// Remove deletes a file previously returned by Store. Paths outside the
// upload prefix are ignored.
func (s *LocalStore) Remove(_ context.Context, path string) error {
	if !strings.HasPrefix(path, PublicPrefix) {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(path, PublicPrefix))
	if name == "." || name == "/" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func sanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "upload"
	}
	return base
}
