package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"careerhub/internal/config"
	"careerhub/internal/hub"
)

// Environment variables holding static S3 credentials. When unset the AWS
// default credential chain applies.
const (
	EnvS3AccessKeyID     = "CAREERHUB_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "CAREERHUB_S3_SECRET_ACCESS_KEY"
)

// NewStorageFromConfig creates a Storage implementation based on the storage config type.
func NewStorageFromConfig(cfg config.StorageConfig, instanceID string, clock hub.Clock) (hub.Storage, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStorage(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires fs_root to be set")
		}
		s, err := NewFileSystemStorage(instanceID, cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite storage")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := NewSQLiteStorage(filepath.Join(cfg.DataDir, instanceID+".db"), clock)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires postgres_dsn to be set")
		}
		s, err := NewPostgresStorage(cfg.PostgresDSN, clock)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 storage requires s3_bucket to be set")
		}
		s, err := NewS3Storage(context.Background(), S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     os.Getenv(EnvS3AccessKeyID),
			SecretAccessKey: os.Getenv(EnvS3SecretAccessKey),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

