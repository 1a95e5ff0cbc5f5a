package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/pkg/config"
	"media-publisher/internal/pkg/fileutils"
	consts "media-publisher/pkg/constants"
	apperrors "media-publisher/pkg/errors"
)

// BunnyStream talks to a Bunny Stream video library.
type BunnyStream struct {
	cfg          config.StreamConfig
	apiClient    *http.Client
	uploadClient *http.Client
}

func NewBunnyStream(cfg config.StreamConfig, apiTimeout time.Duration) *BunnyStream {
	return &BunnyStream{
		cfg:          cfg,
		apiClient:    &http.Client{Timeout: apiTimeout},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout},
	}
}

func (s *BunnyStream) videosURL() string {
	return fmt.Sprintf("%s/library/%s/videos", strings.TrimRight(s.cfg.APIHost, "/"), s.cfg.LibraryID)
}

func (s *BunnyStream) do(client *http.Client, req *http.Request) (*http.Response, error) {
	req.Header.Set("AccessKey", s.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, apperrors.ErrRemoteRejected(fmt.Errorf("bunny stream %s returned %d: %s",
			req.Method, resp.StatusCode, fileutils.StripControl(string(body))))
	}
	return resp, nil
}

func (s *BunnyStream) CreateResource(ctx context.Context, title string) (string, error) {
	payload, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.videosURL(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(s.apiClient, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var created struct {
		GUID string `json:"guid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("bunny stream create decode: %w", err)
	}
	if created.GUID == "" {
		return "", fmt.Errorf("bunny stream create: empty guid")
	}
	return created.GUID, nil
}

func (s *BunnyStream) UploadBody(ctx context.Context, resourceID, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.videosURL()+"/"+resourceID, f)
	if err != nil {
		return err
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.do(s.uploadClient, req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *BunnyStream) List(ctx context.Context) ([]dto.VideoItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.videosURL(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(s.apiClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var page struct {
		Items []struct {
			GUID  string `json:"guid"`
			Title string `json:"title"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("bunny stream list decode: %w", err)
	}

	out := make([]dto.VideoItem, 0, len(page.Items))
	for _, v := range page.Items {
		out = append(out, dto.VideoItem{
			Name:   v.Title,
			URL:    s.PlaybackURL(v.GUID),
			Poster: s.PosterURL(v.GUID),
			Type:   consts.MediaVideo,
		})
	}
	return out, nil
}

func (s *BunnyStream) PlaybackURL(resourceID string) string {
	return fmt.Sprintf("https://%s/%s/playlist.m3u8", s.cfg.CDNHost, resourceID)
}

func (s *BunnyStream) PosterURL(resourceID string) string {
	return fmt.Sprintf("https://%s/%s/thumbnail.jpg", s.cfg.CDNHost, resourceID)
}
