package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/pkg/config"
	apperrors "media-publisher/pkg/errors"

	"go.uber.org/zap/zaptest"
)

// scriptedBackend fails CreateResource failCreates times before succeeding.
type scriptedBackend struct {
	mu          sync.Mutex
	failCreates int
	uploadErr   error
	creates     int
	created     []string
	uploads     []string
}

func (b *scriptedBackend) CreateResource(_ context.Context, title string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.creates++
	if b.creates <= b.failCreates {
		return "", fmt.Errorf("create attempt %d failed", b.creates)
	}
	id := fmt.Sprintf("res-%d", len(b.created)+1)
	b.created = append(b.created, id)
	return id, nil
}

func (b *scriptedBackend) UploadBody(_ context.Context, id, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, id)
	return b.uploadErr
}

func (b *scriptedBackend) List(context.Context) ([]dto.VideoItem, error) { return nil, nil }
func (b *scriptedBackend) PlaybackURL(id string) string                 { return "play/" + id }
func (b *scriptedBackend) PosterURL(id string) string                   { return "poster/" + id }

func fastRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond}
}

func TestStreamPublisherRetriesCreate(t *testing.T) {
	backend := &scriptedBackend{failCreates: 2}
	p := NewStreamPublisher(backend, fastRetry(), zaptest.NewLogger(t), nil)

	id, err := p.Publish(context.Background(), "video.mp4", "clip")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if backend.creates != 3 {
		t.Fatalf("create attempts = %d, want 3", backend.creates)
	}
	if len(backend.created) != 1 || id != backend.created[0] {
		t.Fatalf("created = %v, id = %q", backend.created, id)
	}
	if len(backend.uploads) != 1 || backend.uploads[0] != id {
		t.Fatalf("uploads = %v", backend.uploads)
	}
}

func TestStreamPublisherGivesUpAfterThreeCreates(t *testing.T) {
	backend := &scriptedBackend{failCreates: 3}
	p := NewStreamPublisher(backend, fastRetry(), zaptest.NewLogger(t), nil)

	_, err := p.Publish(context.Background(), "video.mp4", "clip")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "create attempt 3 failed") {
		t.Fatalf("err = %v, want last attempt's error", err)
	}
	if !apperrors.IsCode(err, apperrors.CodePublish) {
		t.Fatalf("err code = %s", apperrors.CodeOf(err))
	}
	if backend.creates != 3 || len(backend.uploads) != 0 {
		t.Fatalf("creates=%d uploads=%d", backend.creates, len(backend.uploads))
	}
}

func TestStreamPublisherBodyFailureIsNotRetried(t *testing.T) {
	backend := &scriptedBackend{uploadErr: errors.New("connection reset")}
	p := NewStreamPublisher(backend, fastRetry(), zaptest.NewLogger(t), nil)

	_, err := p.Publish(context.Background(), "video.mp4", "clip")
	if err == nil {
		t.Fatal("expected error")
	}
	if backend.creates != 1 || len(backend.uploads) != 1 {
		t.Fatalf("creates=%d uploads=%d", backend.creates, len(backend.uploads))
	}
}

func TestBunnyStreamThroughPublisher(t *testing.T) {
	var mu sync.Mutex
	posts := 0
	var putPath, putBody, title string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Header.Get("AccessKey") != "api-key" {
			t.Errorf("missing access key")
		}
		switch r.Method {
		case http.MethodPost:
			posts++
			if posts < 3 {
				http.Error(w, "temporarily\r\nunavailable", http.StatusServiceUnavailable)
				return
			}
			b, _ := io.ReadAll(r.Body)
			title = string(b)
			_, _ = w.Write([]byte(`{"guid":"abc-123"}`))
		case http.MethodPut:
			putPath = r.URL.Path
			b, _ := io.ReadAll(r.Body)
			putBody = string(b)
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			t.Errorf("unexpected %s", r.Method)
		}
	}))
	defer srv.Close()

	backend := NewBunnyStream(config.StreamConfig{
		APIHost:       srv.URL,
		LibraryID:     "42",
		APIKey:        "api-key",
		CDNHost:       "vz.example.net",
		UploadTimeout: 5 * time.Second,
	}, 5*time.Second)
	p := NewStreamPublisher(backend, fastRetry(), zaptest.NewLogger(t), nil)

	id, err := p.Publish(context.Background(), writeTemp(t, "v.mp4", "mp4-bytes"), "holiday.mp4")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if id != "abc-123" || posts != 3 {
		t.Fatalf("id=%q posts=%d", id, posts)
	}
	if title != `{"title":"holiday.mp4"}` {
		t.Fatalf("create body = %s", title)
	}
	if putPath != "/library/42/videos/abc-123" || putBody != "mp4-bytes" {
		t.Fatalf("put %s %q", putPath, putBody)
	}
	if got := p.PlaybackURL(id); got != "https://vz.example.net/abc-123/playlist.m3u8" {
		t.Fatalf("playback = %s", got)
	}
	if got := p.PosterURL(id); got != "https://vz.example.net/abc-123/thumbnail.jpg" {
		t.Fatalf("poster = %s", got)
	}
}
