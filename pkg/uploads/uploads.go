// Package uploads stores posted images on the local filesystem. The
// persistence layer never calls into this package; it only ever receives
// the final URL string after the file is fully on disk.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"threadb/pkg/logger"
)

// ErrUnsupportedType is returned for uploads that are not JPEG files.
var ErrUnsupportedType = errors.New("only JPEG images are allowed")

// ErrTooLarge is returned when an upload exceeds the configured cap.
var ErrTooLarge = errors.New("image exceeds maximum upload size")

// Store writes JPEG uploads into a directory and hands back their public
// URLs.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore returns a Store rooted at dir, rejecting files larger than
// maxBytes.
func NewStore(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Accepts reports whether filename has a JPEG extension. An empty filename
// means the form field was submitted without a file and is not an error.
func Accepts(filename string) bool {
	l := strings.ToLower(filename)
	return strings.HasSuffix(l, ".jpg") || strings.HasSuffix(l, ".jpeg")
}

// Save streams r into a freshly named file under the store directory and
// returns the relative URL for the saved image. The file is synced before
// the URL is returned, so a record referencing it never points at a
// partial write.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	if !Accepts(filename) {
		return "", ErrUnsupportedType
	}
	name := uuid.New().String() + ".jpg"
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err == nil && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	logger.Info("image_saved", "file", name, "bytes", n)
	return "/uploads/" + name, nil
}
