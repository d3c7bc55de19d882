package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig carries the connection settings for the MinIO driver.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinioStore implements ObjectStore over a MinIO (or any S3-compatible)
// backend.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the backend and ensures the configured bucket
// exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connect minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// Bucket returns the bucket new uploads are filed under.
func (s *MinioStore) Bucket() string {
	return s.bucket
}

// Download fetches the blob and its stored content type.
func (s *MinioStore) Download(ctx context.Context, ref ObjectRef) ([]byte, string, error) {
	obj, err := s.client.GetObject(ctx, ref.Bucket, ref.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", s.mapError(ref, err)
	}
	defer obj.Close()

	// GetObject is lazy; Stat surfaces missing-object errors and carries
	// the content type.
	info, err := obj.Stat()
	if err != nil {
		return nil, "", s.mapError(ref, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", s.mapError(ref, err)
	}
	return data, info.ContentType, nil
}

// Upload overwrites the object at ref with the given bytes and metadata.
func (s *MinioStore) Upload(ctx context.Context, ref ObjectRef, data []byte, contentType string, metadata map[string]string) error {
	_, err := s.client.PutObject(ctx, ref.Bucket, ref.Key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return s.mapError(ref, err)
	}
	return nil
}

// PresignPut issues a time-limited write-only URL for a new object in the
// configured bucket.
func (s *MinioStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (*url.URL, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		return nil, fmt.Errorf("storage: presign upload %q: %w", key, err)
	}
	return u, nil
}

func (s *MinioStore) mapError(ref ObjectRef, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return fmt.Errorf("%w: %s/%s", ErrObjectNotFound, ref.Bucket, ref.Key)
	}
	return fmt.Errorf("%w: %s/%s: %v", ErrUnavailable, ref.Bucket, ref.Key, err)
}

var _ ObjectStore = (*MinioStore)(nil)
