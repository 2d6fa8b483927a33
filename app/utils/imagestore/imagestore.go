package imagestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
	log "github.com/sirupsen/logrus"
)

// Subdirectories under the upload root, one per entity kind.
const (
	DirCategories = "categories"
	DirBangles    = "bangles"
	DirVariants   = "variants"
)

// URLPrefix is where the upload root is mounted by the HTTP router.
const URLPrefix = "/images"

const maxUploadBytes = 5 << 20

var fieldSanitizer = regexp.MustCompile(`\W+`)

// Store writes uploaded images below a single root directory and hands back
// web-relative paths of the form /images/<dir>/<file>. Deletions are
// fire-and-forget: failures are logged and never surfaced to callers.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Save persists one uploaded image under dir and returns its stored relative
// path. The field name seeds the filename so files on disk remain traceable
// to the form field that produced them.
func (s *Store) Save(dir, field string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadBytes {
		return "", apperr.Validationf("Image '%s' exceeds the %dMB upload limit.", fh.Filename, maxUploadBytes>>20)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
	}
	defer src.Close()

	sniff := make([]byte, 512)
	n, err := src.Read(sniff)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read uploaded file %s: %w", fh.Filename, err)
	}
	if !strings.HasPrefix(http.DetectContentType(sniff[:n]), "image/") {
		return "", apperr.Validationf("Not an image! Please upload only images.")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file %s: %w", fh.Filename, err)
	}

	targetDir := filepath.Join(s.root, dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", targetDir, err)
	}

	name := fieldSanitizer.ReplaceAllString(field, "-") + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	targetPath := filepath.Join(targetDir, name)

	dst, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", targetPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(targetPath)
		return "", fmt.Errorf("failed to write %s: %w", targetPath, err)
	}

	return URLPrefix + "/" + dir + "/" + name, nil
}

// Remove deletes the file behind a stored relative path. Missing files and
// IO failures are logged only.
func (s *Store) Remove(relPath string) {
	if relPath == "" {
		return
	}

	fullPath := s.DiskPath(relPath)
	if err := os.Remove(fullPath); err != nil {
		log.Printf("ImageStore: failed to delete image %s: %v", fullPath, err)
		return
	}
	log.Printf("ImageStore: deleted image %s", fullPath)
}

func (s *Store) RemoveAll(relPaths []string) {
	for _, p := range relPaths {
		s.Remove(p)
	}
}

// DiskPath maps a stored relative path back onto the filesystem.
func (s *Store) DiskPath(relPath string) string {
	trimmed := strings.TrimPrefix(relPath, URLPrefix)
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(trimmed, "/")))
}
