// Package storage persists generated food images and serves back public URLs.
// The local store writes under a static directory served by the HTTP layer;
// the S3 store uploads to a bucket and returns the object location.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/infrastructure/config"
	"github.com/pantrywizard/v2/internal/ports/outbound"
)

// NewStore builds the image store named by the storage provider config
func NewStore(storageCfg config.StorageConfig, awsCfg config.AWSConfig, logger *zap.Logger) (outbound.ImageStore, error) {
	switch storageCfg.Provider {
	case "s3":
		return NewS3Store(awsCfg, logger)
	case "local":
		return NewLocalStore(storageCfg.LocalPath, storageCfg.BaseURL, logger)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", storageCfg.Provider)
	}
}

// LocalStore writes image files to a directory on the local filesystem
type LocalStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewLocalStore creates the target directory if it does not exist yet
func NewLocalStore(dir, baseURL string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.Named("local-store"),
	}, nil
}

// Save writes the image bytes and returns the URL the file is served under.
// Saving the same filename again overwrites the previous image.
func (s *LocalStore) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Debug("image stored",
		zap.String("filename", filename),
		zap.Int("bytes", len(data)))

	return s.baseURL + "/" + filename, nil
}
