// Package blob stores uploaded files (day images) and hands back a public
// URL for each.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DefaultFolder is used when an upload does not name a folder.
const DefaultFolder = "uploads"

// Upload describes a stored file.
type Upload struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Uploader stores a file and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (Upload, error)
}

// DiskStore keeps uploads under a root directory. Files are served by the
// API under PublicPrefix, so URL = baseURL + PublicPrefix + path.
type DiskStore struct {
	root    string
	baseURL string
}

// PublicPrefix is the URL path the API serves DiskStore files from.
const PublicPrefix = "/files/"

// NewDiskStore returns a store rooted at dir. baseURL is the externally
// visible origin of the API, e.g. "https://trips.example.com".
func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{root: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root returns the directory files are written to.
func (s *DiskStore) Root() string {
	return s.root
}

// Upload writes r to <folder>/<uuid>_<filename>. Folder segments must be
// plain names; anything that would escape the root is rejected.
func (s *DiskStore) Upload(ctx context.Context, r io.Reader, filename, folder string) (Upload, error) {
	rel, err := ObjectPath(folder, filename)
	if err != nil {
		return Upload{}, err
	}
	if err := ctx.Err(); err != nil {
		return Upload{}, fmt.Errorf("blob.DiskStore.Upload: %w", err)
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Upload{}, fmt.Errorf("blob.DiskStore.Upload: mkdir: %w", err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Upload{}, fmt.Errorf("blob.DiskStore.Upload: create: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return Upload{}, fmt.Errorf("blob.DiskStore.Upload: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return Upload{}, fmt.Errorf("blob.DiskStore.Upload: close: %w", err)
	}

	return Upload{URL: s.publicURL(rel), Path: rel}, nil
}

func (s *DiskStore) publicURL(rel string) string {
	segs := strings.Split(rel, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return s.baseURL + PublicPrefix + strings.Join(segs, "/")
}

// ObjectPath builds the slash-separated storage path for an upload:
// folder (default DefaultFolder) + "/" + a unique token + "_" + the base
// name of filename.
func ObjectPath(folder, filename string) (string, error) {
	raw := strings.ReplaceAll(folder, `\`, "/")
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: invalid folder %q", domain.ErrValidation, folder)
		}
	}
	folder = strings.Trim(path.Clean("/"+raw), "/")
	if folder == "" {
		folder = DefaultFolder
	}

	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", fmt.Errorf("%w: invalid filename %q", domain.ErrValidation, filename)
	}
	return folder + "/" + uuid.NewString() + "_" + name, nil
}
