package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/config"
	"github.com/activity-portal/internal/domain/repository"
)

// s3Storage stores image blobs in S3 and serves them back by public URL.
type s3Storage struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (repository.StorageRepository, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}

	return &s3Storage{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: awsCfg.Region,
		prefix: strings.Trim(cfg.KeyPrefix, "/"),
		logger: logger,
	}, nil
}

// progressReader reports cumulative bytes read through it.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	progress repository.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.progress != nil {
			p.progress(p.read, p.total)
		}
	}
	return n, err
}

func (s *s3Storage) Upload(ctx context.Context, key, contentType string, data []byte, progress repository.ProgressFunc) (string, error) {
	fullKey := key
	if s.prefix != "" {
		fullKey = s.prefix + "/" + key
	}

	body := &progressReader{
		r:        bytes.NewReader(data),
		total:    int64(len(data)),
		progress: progress,
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(fullKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: int64(len(data)),
	})
	if err != nil {
		s.logger.Error("S3 upload failed",
			zap.String("bucket", s.bucket),
			zap.String("key", fullKey),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey)
	s.logger.Debug("S3 upload complete",
		zap.String("key", fullKey),
		zap.Int("size", len(data)))
	return publicURL, nil
}

func (s *s3Storage) Delete(ctx context.Context, publicURL string) error {
	key, err := s.keyFromURL(publicURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("S3 delete failed",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// keyFromURL recovers the object key from the public URL form produced by
// Upload.
func (s *s3Storage) keyFromURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse object URL: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("object URL %q has no key", publicURL)
	}
	return key, nil
}
