// Package local stores pictures on the filesystem and serves them under a
// base URL. Intended for development and tests.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/pkg/idx"
)

// MediaPrefix is the route prefix Handler is mounted on.
const MediaPrefix = "/media/"

type Host struct {
	dir     string
	baseURL string
}

// New creates dir if needed. baseURL is prepended to the object key to form
// the public URL, e.g. http://localhost:8080/media.
func New(dir, baseURL string) (*Host, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local: create media dir: %w", err)
	}
	return &Host{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (h *Host) Upload(ctx context.Context, f imagehost.File, folder string) (domain.Image, error) {
	if err := ctx.Err(); err != nil {
		return domain.Image{}, err
	}

	format := imagehost.Format(f.Name)
	name := idx.New().String()
	if format != "" {
		name += "." + format
	}
	key := imagehost.Key(folder, name)

	full, err := h.resolve(key)
	if err != nil {
		return domain.Image{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return domain.Image{}, fmt.Errorf("local: create folder: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return domain.Image{}, fmt.Errorf("local: create file: %w", err)
	}
	n, err := io.Copy(dst, f.Body)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return domain.Image{}, fmt.Errorf("local: write file: %w", err)
	}

	url := h.baseURL + "/" + key
	return domain.Image{
		PublicID:  key,
		URL:       url,
		SecureURL: url,
		Format:    format,
		Bytes:     n,
	}, nil
}

func (h *Host) Destroy(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := h.resolve(publicID)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return imagehost.ErrNotFound
		}
		return fmt.Errorf("local: remove: %w", err)
	}
	return nil
}

// Handler serves stored files; mount it on MediaPrefix.
func (h *Host) Handler() http.Handler {
	return http.StripPrefix(MediaPrefix, http.FileServer(http.Dir(h.dir)))
}

// resolve maps a key to a path inside dir, rejecting anything that escapes it.
func (h *Host) resolve(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("local: invalid key %q", key)
	}
	return filepath.Join(h.dir, rel), nil
}
