package storage

import (
	"errors"
	"net/url"
	"strings"
)

// ObjectPathPrefix is the application-facing namespace under which stored
// images are served. Every persisted image reference starts with it; the
// normalizer, resolver and fallback below are the only code that interprets
// the scheme.
const ObjectPathPrefix = "/objects/"

// uploadMarker is the key segment freshly uploaded objects are filed under.
// The fallback extractor keys off it when a URL does not parse cleanly.
const uploadMarker = "uploads"

// ErrInvalidPath is returned when a path or URL does not match the
// /objects/{bucket}/{key} addressing scheme.
var ErrInvalidPath = errors.New("storage: path does not match object scheme")

// ObjectRef locates a stored blob. Key is opaque beyond locating the
// object; it is unique within Bucket.
type ObjectRef struct {
	Bucket string
	Key    string
}

// PathFor derives the stable application-facing path for a stored object.
// ResolvePath is its exact inverse.
func PathFor(ref ObjectRef) string {
	return ObjectPathPrefix + ref.Bucket + "/" + ref.Key
}

// ResolvePath recovers the (bucket, key) pair from an application path.
func ResolvePath(p string) (ObjectRef, error) {
	if !strings.HasPrefix(p, ObjectPathPrefix) {
		return ObjectRef{}, ErrInvalidPath
	}
	rest := strings.TrimPrefix(p, ObjectPathPrefix)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return ObjectRef{}, ErrInvalidPath
	}
	return ObjectRef{Bucket: bucket, Key: key}, nil
}

// NormalizeUploadURL maps a signed upload URL onto the stable application
// path for the object it created. Signing query parameters and the host are
// discarded, so the same object always normalizes to the same path no
// matter which signed URL wrote it.
func NormalizeUploadURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidPath
	}
	trimmed := strings.Trim(u.Path, "/")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return "", ErrInvalidPath
	}
	return PathFor(ObjectRef{Bucket: bucket, Key: key}), nil
}

// FallbackPath is the last-resort extraction used when NormalizeUploadURL
// rejects a URL: it scans the raw path for the uploads marker segment and
// takes the following segment as the object id. The reported path keeps the
// upload flow usable; it is not guaranteed to resolve.
func FallbackPath(raw, bucket string) (string, bool) {
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if seg == uploadMarker && i+1 < len(segments) && segments[i+1] != "" {
			return PathFor(ObjectRef{Bucket: bucket, Key: uploadMarker + "/" + segments[i+1]}), true
		}
	}
	return "", false
}
