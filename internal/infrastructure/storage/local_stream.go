package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/pkg/fileutils"
	consts "media-publisher/pkg/constants"

	"github.com/google/uuid"
)

const (
	localVideoFile = "video.mp4"
	localTitleFile = "title.txt"
)

// LocalStream stores each video in its own directory under BasePath.
type LocalStream struct {
	BasePath  string
	PublicURL string
}

func NewLocalStream(basePath, publicURL string) *LocalStream {
	return &LocalStream{BasePath: basePath, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (l *LocalStream) CreateResource(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	dir := filepath.Join(l.BasePath, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("klasör oluşturulamadı: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, localTitleFile), []byte(title), 0644); err != nil {
		return "", err
	}
	return id, nil
}

func (l *LocalStream) UploadBody(ctx context.Context, resourceID, localPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Join(l.BasePath, resourceID)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("video %s not created: %w", resourceID, err)
	}
	return fileutils.CopyFile(localPath, filepath.Join(dir, localVideoFile))
}

func (l *LocalStream) List(ctx context.Context) ([]dto.VideoItem, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VideoItem, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.BasePath, e.Name(), localVideoFile)); err != nil {
			continue
		}
		title, _ := os.ReadFile(filepath.Join(l.BasePath, e.Name(), localTitleFile))
		out = append(out, dto.VideoItem{
			Name:   string(title),
			URL:    l.PlaybackURL(e.Name()),
			Poster: l.PosterURL(e.Name()),
			Type:   consts.MediaVideo,
		})
	}
	return out, nil
}

func (l *LocalStream) PlaybackURL(resourceID string) string {
	return l.PublicURL + "/" + resourceID + "/" + localVideoFile
}

// PosterURL is empty; no poster frame is extracted locally.
func (l *LocalStream) PosterURL(string) string {
	return ""
}
