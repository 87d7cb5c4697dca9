package ports

import (
	"context"
	"io"
)

// BlobStore persists upload payloads under opaque keys.
type BlobStore interface {
	Save(key string, r io.Reader) (int64, error)
	Remove(key string) error
}

// DurationProber extracts the playing time of a stored audio blob.
// Implementations return (0, nil) when they cannot tell; a failed probe is
// never a reason to fail an upload.
type DurationProber interface {
	Probe(ctx context.Context, key string) (int, error)
}
