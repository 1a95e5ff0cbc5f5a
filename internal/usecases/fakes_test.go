package usecases

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/infrastructure/queue"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []string
	objects   []dto.RemoteObject
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, localPath, remoteName string) (string, error) {
	if _, err := os.Stat(localPath); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.published = append(p.published, remoteName)
	return "https://cdn.test/" + remoteName, nil
}

func (p *recordingPublisher) List(context.Context) ([]dto.RemoteObject, error) {
	return p.objects, p.err
}

// gatedVideo signals started, then waits for release before producing output.
type gatedVideo struct {
	dir     string
	started chan struct{}
	release chan struct{}
	err     error
	panics  bool
}

func (v *gatedVideo) Transcode(ctx context.Context, inputPath string) (string, error) {
	if v.started != nil {
		close(v.started)
	}
	if v.release != nil {
		<-v.release
	}
	if v.panics {
		panic("encoder exploded")
	}
	if v.err != nil {
		return "", v.err
	}
	out := filepath.Join(v.dir, "optimized-test.mp4")
	return out, os.WriteFile(out, []byte("mp4"), 0o644)
}

type gatedStream struct {
	started chan struct{}
	release chan struct{}
	id      string
	err     error
	titles  []string
}

func (s *gatedStream) Publish(_ context.Context, localPath, title string) (string, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if _, err := os.Stat(localPath); err != nil {
		return "", err
	}
	s.titles = append(s.titles, title)
	if s.err != nil {
		return "", s.err
	}
	return s.id, nil
}

func (s *gatedStream) List(context.Context) ([]dto.VideoItem, error) { return nil, nil }
func (s *gatedStream) PlaybackURL(id string) string                 { return "https://vz.test/" + id + "/playlist.m3u8" }
func (s *gatedStream) PosterURL(id string) string                   { return "https://vz.test/" + id + "/thumbnail.jpg" }

// manualQueue holds submitted jobs until the test runs them.
type manualQueue struct {
	mu   sync.Mutex
	jobs []queue.Job
	err  error
}

func (q *manualQueue) Submit(job queue.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type failingImages struct{ called bool }

func (f *failingImages) Transcode(context.Context, string, int64) (*dto.ImageOutput, error) {
	f.called = true
	return nil, errors.New("should not be called")
}

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
