package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/infrastructure/config"
)

// S3Store uploads image files to an S3 bucket
type S3Store struct {
	uploader *s3manager.Uploader
	bucket   string
	logger   *zap.Logger
}

// NewS3Store builds an uploader from the AWS config. Credentials fall back
// to the default provider chain when none are configured explicitly; a
// custom endpoint switches the client to path-style addressing so that
// S3-compatible stores like MinIO work.
func NewS3Store(cfg config.AWSConfig, logger *zap.Logger) (*S3Store, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Store{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3Bucket,
		logger:   logger.Named("s3-store"),
	}, nil
}

// Save uploads the image and returns the object location
func (s *S3Store) Save(ctx context.Context, filename string, data []byte) (string, error) {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String("images/" + filename),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		s.logger.Error("S3 upload failed",
			zap.String("filename", filename),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	s.logger.Debug("image uploaded",
		zap.String("filename", filename),
		zap.String("location", result.Location))

	return result.Location, nil
}
