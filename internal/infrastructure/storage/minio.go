package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bookmanager-backend/internal/config"
)

// MinIOStore is the blob-backed CoverStore, for deployments where covers
// should not live on the API host's disk.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinIOStore) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := coverFolder + "/" + uuid.New().String() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", ErrWrite, key, err)
	}

	return fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucket, key), nil
}

func (s *MinIOStore) DeleteIfExists(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	// Accept both bare object keys and the full URLs Save returns.
	key := path
	if idx := strings.Index(path, "/"+s.bucket+"/"); idx >= 0 {
		key = path[idx+len(s.bucket)+2:]
	}

	// RemoveObject on an absent key succeeds, which matches the idempotent
	// delete contract.
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrWrite, key, err)
	}

	return nil
}
