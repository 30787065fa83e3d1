package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"clinicdocs/internal/config"
)

// minioStorage implements the Storage interface using an S3-compatible
// backend (MinIO, AWS S3, etc.). It is safe for concurrent use by multiple
// goroutines.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a new S3-compatible storage client. When no endpoint is
// configured the AWS regional endpoint for the configured region is used.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.S3Config) (Storage, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("s3 credentials are required")
	}

	endpoint, secure, err := resolveEndpoint(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve endpoint: %w", err)
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: cfg.RegionName,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.BucketName}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.RegionName}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// resolveEndpoint normalizes a configured endpoint URL to host[:port] plus a
// TLS flag. Accepts "minio:9000" as well as "http(s)://minio:9000". Without
// a configured endpoint, the AWS regional endpoint is used over TLS.
func resolveEndpoint(cfg config.S3Config) (endpoint string, secure bool, err error) {
	raw := strings.TrimSpace(cfg.EndpointURL)
	if raw == "" {
		return fmt.Sprintf("s3.%s.amazonaws.com", cfg.RegionName), true, nil
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint %q", raw)
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	// No scheme provided, treat as host:port (insecure by default for local MinIO).
	return raw, false, nil
}

// PresignPut generates a pre-signed URL for a single-object HTTP PUT. When a
// content type is supplied it is signed into the request headers so the
// authorization covers exactly that upload.
func (m *minioStorage) PresignPut(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error) {
	if contentType == "" {
		u, err := m.client.PresignedPutObject(ctx, m.bucket, key, expiry)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	}

	hdr := http.Header{}
	hdr.Set("Content-Type", contentType)
	u, err := m.client.PresignHeader(ctx, http.MethodPut, m.bucket, key, expiry, url.Values{}, hdr)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PresignGet generates a pre-signed URL for GET with the specified expiry.
func (m *minioStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
