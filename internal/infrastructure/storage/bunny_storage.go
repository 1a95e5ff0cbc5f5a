package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/pkg/config"
	"media-publisher/internal/pkg/fileutils"
	apperrors "media-publisher/pkg/errors"

	"go.uber.org/zap"
)

// BunnyStorage publishes files to a Bunny edge storage zone.
type BunnyStorage struct {
	cfg     config.BunnyStorageConfig
	client  *http.Client
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewBunnyStorage(cfg config.BunnyStorageConfig, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *BunnyStorage {
	return &BunnyStorage{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		log:     log.With(zap.String("component", "bunny_storage")),
		metrics: m,
	}
}

func (b *BunnyStorage) zoneURL(name string) string {
	return strings.TrimRight(b.cfg.Endpoint, "/") + "/" + url.PathEscape(b.cfg.ZoneName) + "/" + name
}

func (b *BunnyStorage) publicURL(name string) string {
	return fmt.Sprintf("https://%s/%s", b.cfg.CDNHost, name)
}

func (b *BunnyStorage) Publish(ctx context.Context, localPath, remoteName string) (string, error) {
	name := fileutils.SanitizeName(remoteName)
	if name == "" {
		return "", apperrors.ErrPublish(fmt.Errorf("empty remote name for %s", localPath))
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", apperrors.ErrPublish(err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", apperrors.ErrPublish(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.zoneURL(name), f)
	if err != nil {
		return "", apperrors.ErrPublish(err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("AccessKey", b.cfg.AccessKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := b.client.Do(req)
	if err != nil {
		b.metrics.PublishAttempt("bunny_storage", err)
		return "", apperrors.ErrPublish(err)
	}
	defer resp.Body.Close()

	// Bunny acknowledges a stored object with 201 only.
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("bunny storage returned %d: %s", resp.StatusCode, fileutils.StripControl(string(body)))
		b.metrics.PublishAttempt("bunny_storage", err)
		b.log.Warn("upload rejected", zap.String("name", name), zap.Int("status", resp.StatusCode))
		return "", apperrors.ErrRemoteRejected(err)
	}
	b.metrics.PublishAttempt("bunny_storage", nil)

	return b.publicURL(name), nil
}

type bunnyObject struct {
	ObjectName  string `json:"ObjectName"`
	IsDirectory bool   `json:"IsDirectory"`
}

func (b *BunnyStorage) List(ctx context.Context) ([]dto.RemoteObject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.zoneURL(""), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("AccessKey", b.cfg.AccessKey)
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, apperrors.ErrPublish(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrRemoteRejected(fmt.Errorf("bunny storage list returned %d", resp.StatusCode))
	}

	var objects []bunnyObject
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("bunny storage list decode: %w", err)
	}

	out := make([]dto.RemoteObject, 0, len(objects))
	for _, o := range objects {
		if o.IsDirectory {
			continue
		}
		out = append(out, dto.RemoteObject{Name: o.ObjectName, URL: b.publicURL(o.ObjectName)})
	}
	return out, nil
}
