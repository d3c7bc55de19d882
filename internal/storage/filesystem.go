package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore implements ObjectStore on the local filesystem. It is intended
// for development and test environments where an object storage service is
// not available. Objects live under basePath/{bucket}/{key}; metadata is
// not persisted and content types are sniffed on download.
type FileStore struct {
	basePath string
	bucket   string
}

// NewFileStore initializes a FileStore rooted at basePath with the given
// default bucket for new uploads.
func NewFileStore(basePath, bucket string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath, bucket: bucket}, nil
}

// Bucket returns the bucket new uploads are filed under.
func (s *FileStore) Bucket() string {
	return s.bucket
}

// Download reads the blob at ref and sniffs its content type.
func (s *FileStore) Download(ctx context.Context, ref ObjectRef) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	full, err := s.fullPath(ref)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s/%s", ErrObjectNotFound, ref.Bucket, ref.Key)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return data, http.DetectContentType(data), nil
}

// Upload writes the blob at ref, overwriting any existing file. Metadata is
// accepted for interface parity and discarded.
func (s *FileStore) Upload(ctx context.Context, ref ObjectRef, data []byte, contentType string, metadata map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.fullPath(ref)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// PresignPut is not supported by the filesystem driver.
func (s *FileStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (*url.URL, error) {
	return nil, ErrPresignUnsupported
}

func (s *FileStore) fullPath(ref ObjectRef) (string, error) {
	key, err := sanitizeKey(ref.Key)
	if err != nil {
		return "", err
	}
	bucket, err := sanitizeKey(ref.Bucket)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(bucket), filepath.FromSlash(key)), nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}

var _ ObjectStore = (*FileStore)(nil)
