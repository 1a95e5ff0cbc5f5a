package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/pkg/fileutils"
	apperrors "media-publisher/pkg/errors"
)

// LocalStorage publishes into a directory served by the HTTP server. It is
// meant for development without remote credentials.
type LocalStorage struct {
	BasePath  string
	PublicURL string
}

func NewLocalStorage(basePath, publicURL string) *LocalStorage {
	return &LocalStorage{BasePath: basePath, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (l *LocalStorage) Publish(ctx context.Context, localPath, remoteName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.ErrPublish(err)
	}
	name := fileutils.SanitizeName(remoteName)
	if name == "" {
		return "", apperrors.ErrPublish(fmt.Errorf("empty remote name for %s", localPath))
	}

	if err := fileutils.CopyFile(localPath, filepath.Join(l.BasePath, name)); err != nil {
		return "", apperrors.ErrPublish(fmt.Errorf("dosya yazılamadı: %w", err))
	}
	return l.PublicURL + "/" + name, nil
}

func (l *LocalStorage) List(ctx context.Context) ([]dto.RemoteObject, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RemoteObject, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".part") {
			continue
		}
		out = append(out, dto.RemoteObject{Name: e.Name(), URL: l.PublicURL + "/" + e.Name()})
	}
	return out, nil
}
