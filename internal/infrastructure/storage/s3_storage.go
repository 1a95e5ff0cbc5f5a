package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/infrastructure/metrics"
	appconfig "media-publisher/internal/pkg/config"
	"media-publisher/internal/pkg/fileutils"
	apperrors "media-publisher/pkg/errors"
	"media-publisher/pkg/file"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type S3Storage struct {
	client     *s3.Client
	bucketName string
	region     string
	prefix     string
	publicBase string
	log        *zap.Logger
	metrics    *metrics.Metrics
}

func NewS3Storage(ctx context.Context, cfg appconfig.S3Config, log *zap.Logger, m *metrics.Metrics) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("AWS config yüklenemedi: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3StorageWithClient(client, cfg, log, m), nil
}

func NewS3StorageWithClient(client *s3.Client, cfg appconfig.S3Config, log *zap.Logger, m *metrics.Metrics) *S3Storage {
	return &S3Storage{
		client:     client,
		bucketName: cfg.Bucket,
		region:     cfg.Region,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		log:        log.With(zap.String("component", "s3_storage")),
		metrics:    m,
	}
}

func (s *S3Storage) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Storage) publicURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	// URL region alanından okunuyor
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key)
}

func (s *S3Storage) Publish(ctx context.Context, localPath, remoteName string) (string, error) {
	name := fileutils.SanitizeName(remoteName)
	if name == "" {
		return "", apperrors.ErrPublish(fmt.Errorf("empty remote name for %s", localPath))
	}
	f, err := os.Open(localPath)
	if err != nil {
		return "", apperrors.ErrPublish(err)
	}
	defer f.Close()

	key := s.key(name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(file.GetMimeTypeFromExtension(name)),
	})
	s.metrics.PublishAttempt("s3", err)
	if err != nil {
		s.log.Warn("S3 upload hatası", zap.String("key", key), zap.Error(err))
		return "", apperrors.ErrRemoteRejected(fmt.Errorf("S3 upload hatası: %w", err))
	}

	return s.publicURL(key), nil
}

func (s *S3Storage) List(ctx context.Context) ([]dto.RemoteObject, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucketName)}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix + "/")
	}
	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, apperrors.ErrPublish(fmt.Errorf("S3 list hatası: %w", err))
	}

	objects := make([]dto.RemoteObject, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if key == "" || strings.HasSuffix(key, "/") {
			continue
		}
		objects = append(objects, dto.RemoteObject{Name: path.Base(key), URL: s.publicURL(key)})
	}
	return objects, nil
}
