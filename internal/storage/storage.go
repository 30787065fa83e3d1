package storage

import (
	"context"
	"time"
)

// Package storage contains object storage abstractions for S3-compatible
// backends. The server never proxies document bytes itself: clients upload
// and download directly against presigned URLs, so the interface is limited
// to issuing scoped, time-bounded authorizations.

// Storage is a reusable, S3-compatible object storage client interface.
// Implementations must be safe for concurrent use by multiple goroutines.
type Storage interface {
	// PresignPut returns a time-limited URL authorizing a single HTTP PUT of
	// the exact key named (not a prefix). contentType, when non-empty, is
	// bound into the signature so the client must send it on upload.
	PresignPut(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error)
	// PresignGet returns a time-limited URL that can be used to download the
	// object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
