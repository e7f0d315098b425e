package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// LocalStore persists uploaded files on the local filesystem under a
// single upload directory. Writes are blocking synchronous copies.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store rooted at dir. The directory is
// created lazily on the first write.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Save copies src to disk and returns the stored file name: a
// millisecond timestamp prefix plus the original name with whitespace
// stripped. A nameless upload gets a generated one.
func (s *LocalStore) Save(name string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	cleaned := stripWhitespace(filepath.Base(name))
	if cleaned == "" || cleaned == "." {
		cleaned = uuid.New().String()
	}
	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), cleaned)

	dst, err := os.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return fileName, nil
}

// Read returns the contents of a stored file. The name is reduced to
// its base so a crafted path cannot escape the upload directory.
// os.IsNotExist on the returned error distinguishes a missing file
// from a read failure.
func (s *LocalStore) Read(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
