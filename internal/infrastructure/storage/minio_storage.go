package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/pkg/config"
	"media-publisher/internal/pkg/fileutils"
	apperrors "media-publisher/pkg/errors"
	"media-publisher/pkg/file"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinioStorage struct {
	client     *minio.Client
	bucket     string
	prefix     string
	publicBase string
	log        *zap.Logger
	metrics    *metrics.Metrics
}

func NewMinioStorage(cfg config.MinioConfig, log *zap.Logger, m *metrics.Metrics) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client oluşturulamadı: %w", err)
	}

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStorage{
		client:     client,
		bucket:     cfg.Bucket,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		publicBase: publicBase,
		log:        log.With(zap.String("component", "minio_storage")),
		metrics:    m,
	}, nil
}

func (s *MinioStorage) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *MinioStorage) Publish(ctx context.Context, localPath, remoteName string) (string, error) {
	name := fileutils.SanitizeName(remoteName)
	if name == "" {
		return "", apperrors.ErrPublish(fmt.Errorf("empty remote name for %s", localPath))
	}

	key := s.key(name)
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: file.GetMimeTypeFromExtension(name),
	})
	s.metrics.PublishAttempt("minio", err)
	if err != nil {
		s.log.Warn("minio upload failed", zap.String("key", key), zap.Error(err))
		return "", apperrors.ErrRemoteRejected(err)
	}
	return s.publicBase + "/" + key, nil
}

func (s *MinioStorage) List(ctx context.Context) ([]dto.RemoteObject, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var objects []dto.RemoteObject
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, apperrors.ErrPublish(obj.Err)
		}
		objects = append(objects, dto.RemoteObject{Name: path.Base(obj.Key), URL: s.publicBase + "/" + obj.Key})
	}
	return objects, nil
}
