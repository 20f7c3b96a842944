package invoice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// safeFileName matches the names this package generates. Anything else,
// in particular path separators and dot-dot sequences, is rejected
// before the filesystem is touched.
var safeFileName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*\.(pdf|html)$`)

// Storage writes generated invoice documents to a single flat directory
type Storage struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewStorage creates the invoice storage, creating the output directory
// if it does not exist
func NewStorage(dir, baseURL string, logger *zap.Logger) (*Storage, error) {
	if dir == "" {
		dir = "./invoices"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create invoice directory: %s", dir), err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{dir: dir, baseURL: baseURL, logger: logger}, nil
}

// FileName builds a deterministic invoice file name for an order
func FileName(orderID uuid.UUID, ext string) string {
	return fmt.Sprintf("invoice-%s-%d.%s", orderID, time.Now().Unix(), ext)
}

// Save writes an invoice file and returns its bare file name
func (s *Storage) Save(fileName string, data []byte) (string, error) {
	if !safeFileName.MatchString(fileName) {
		return "", NewRenderError(ErrCodeStorageFailed, "invalid invoice file name: "+fileName, nil)
	}
	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to write invoice file", err)
	}
	s.logger.Info("invoice stored",
		zap.String("file", fileName),
		zap.Int("bytes", len(data)))
	return fileName, nil
}

// Open returns a reader for a stored invoice. The name must match the
// generated-name pattern; traversal attempts never reach the filesystem.
func (s *Storage) Open(fileName string) (io.ReadCloser, error) {
	if !safeFileName.MatchString(fileName) {
		s.logger.Warn("blocked invoice path", zap.String("file", fileName))
		return nil, NewRenderError(ErrCodeStorageFailed, "invalid invoice file name", nil)
	}
	file, err := os.Open(filepath.Join(s.dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewRenderError(ErrCodeStorageFailed, "invoice not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open invoice file", err)
	}
	return file, nil
}

// Delete removes a stored invoice; a missing file is not an error
func (s *Storage) Delete(fileName string) error {
	if !safeFileName.MatchString(fileName) {
		return NewRenderError(ErrCodeStorageFailed, "invalid invoice file name", nil)
	}
	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !os.IsNotExist(err) {
		return NewRenderError(ErrCodeStorageFailed, "failed to delete invoice file", err)
	}
	return nil
}

// URL returns the public download URL for a stored invoice
func (s *Storage) URL(fileName string) string {
	return s.baseURL + "/" + fileName
}
