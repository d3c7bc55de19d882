package storage

import (
	"context"
	"errors"
	"net/url"
	"time"
)

var (
	// ErrObjectNotFound is returned when the requested blob does not exist.
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrUnavailable is returned for transient backend failures. Callers do
	// not retry; the failure surfaces as an operation error.
	ErrUnavailable = errors.New("storage: backend unavailable")
	// ErrPresignUnsupported is returned by drivers that cannot issue signed
	// upload URLs.
	ErrPresignUnsupported = errors.New("storage: presigned uploads not supported")
)

// ObjectStore is the blob-store boundary consumed by the ingest pipeline
// and the object-serving handlers. Implementations treat object keys as
// opaque coordinates.
type ObjectStore interface {
	// Download fetches the blob and its stored content type.
	Download(ctx context.Context, ref ObjectRef) ([]byte, string, error)
	// Upload writes the blob under ref, overwriting any existing object,
	// and attaches the given user metadata.
	Upload(ctx context.Context, ref ObjectRef, data []byte, contentType string, metadata map[string]string) error
	// PresignPut issues a time-limited write-only URL for a direct client
	// upload of a new object.
	PresignPut(ctx context.Context, key string, expiry time.Duration) (*url.URL, error)
}
