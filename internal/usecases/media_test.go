package usecases

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/infrastructure/processor"
	"media-publisher/internal/infrastructure/repositories"
	"media-publisher/internal/infrastructure/storage"
	"media-publisher/internal/pkg/config"
	consts "media-publisher/pkg/constants"
	apperrors "media-publisher/pkg/errors"

	"go.uber.org/zap/zaptest"
)

type capturingImages struct {
	inner *processor.ImageTranscoder
	out   *dto.ImageOutput
}

func (c *capturingImages) Transcode(ctx context.Context, in string, size int64) (*dto.ImageOutput, error) {
	out, err := c.inner.Transcode(ctx, in, size)
	c.out = out
	return out, err
}

func writeJPEG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1280, 720))
	for x := 0; x < 1280; x += 4 {
		img.Set(x, x%720, color.RGBA{R: 200, A: 255})
	}
	p := filepath.Join(dir, "upload-photo.jpg")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestUploadImagePublishesBoth(t *testing.T) {
	dir := t.TempDir()
	log := zaptest.NewLogger(t)
	images := &capturingImages{inner: processor.NewImageTranscoder(dir, log, nil)}
	pub := &recordingPublisher{}
	svc := NewMediaService(MediaServiceDeps{Images: images, Objects: pub, Log: log, PublishTimeout: time.Second})

	src := writeJPEG(t, dir)
	res, err := svc.Upload(context.Background(), dto.UploadDescriptor{
		Path:         src,
		OriginalName: "photo.jpg",
		Size:         3 * 1024 * 1024,
		MimeType:     "image/jpeg",
		Category:     consts.MediaImage,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if images.out.Quality != 80 {
		t.Fatalf("quality = %d, want 80", images.out.Quality)
	}
	if res.Kind != consts.MediaImage || res.JobID != "" {
		t.Fatalf("result = %+v", res)
	}
	if !strings.HasSuffix(res.AssetURL, ".webp") || !strings.HasSuffix(res.ThumbnailURL, "-thumb.webp") {
		t.Fatalf("urls = %s, %s", res.AssetURL, res.ThumbnailURL)
	}
	if len(pub.published) != 2 {
		t.Fatalf("published %v", pub.published)
	}
	if left := dirEntries(t, dir); len(left) != 0 {
		t.Fatalf("temp files left: %v", left)
	}
}

func TestUploadImagePublishFailureCleansUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	log := zaptest.NewLogger(t)
	bunny := storage.NewBunnyStorage(config.BunnyStorageConfig{
		Endpoint: srv.URL, ZoneName: "zone", AccessKey: "k", CDNHost: "cdn.test",
	}, 5*time.Second, log, nil)
	svc := NewMediaService(MediaServiceDeps{
		Images:  processor.NewImageTranscoder(dir, log, nil),
		Objects: bunny,
		Log:     log,
	})

	_, err := svc.Upload(context.Background(), dto.UploadDescriptor{
		Path: writeJPEG(t, dir), OriginalName: "photo.jpg", Size: 1024, MimeType: "image/jpeg",
	})
	if !apperrors.IsCode(err, apperrors.CodeRemoteRejected) {
		t.Fatalf("err = %v, want remote_rejected", err)
	}
	if left := dirEntries(t, dir); len(left) != 0 {
		t.Fatalf("temp files left: %v", left)
	}
}

func TestUploadImageTranscodeFailure(t *testing.T) {
	dir := t.TempDir()
	log := zaptest.NewLogger(t)
	pub := &recordingPublisher{}
	svc := NewMediaService(MediaServiceDeps{Images: processor.NewImageTranscoder(dir, log, nil), Objects: pub, Log: log})

	_, err := svc.Upload(context.Background(), dto.UploadDescriptor{
		Path: writeFile(t, dir, "fake.png", 64), OriginalName: "fake.png", Size: 64, MimeType: "image/png",
	})
	if !apperrors.IsCode(err, apperrors.CodeTranscode) {
		t.Fatalf("err = %v, want transcode_failed", err)
	}
	if len(pub.published) != 0 {
		t.Fatal("nothing should be published")
	}
	if left := dirEntries(t, dir); len(left) != 0 {
		t.Fatalf("temp files left: %v", left)
	}
}

func TestUploadUnsupportedKind(t *testing.T) {
	tests := []dto.UploadDescriptor{
		{OriginalName: "song.mp3", MimeType: "audio/mpeg", Category: "audio"},
		{OriginalName: "clip.mp4", MimeType: "video/mp4", Category: consts.MediaImage},
	}
	for _, d := range tests {
		t.Run(d.OriginalName, func(t *testing.T) {
			dir := t.TempDir()
			d.Path = writeFile(t, dir, d.OriginalName, 32)
			images := &failingImages{}
			jobs := repositories.NewInMemoryJobRepository()
			svc := NewMediaService(MediaServiceDeps{Images: images, Jobs: jobs, Queue: &manualQueue{}, Log: zaptest.NewLogger(t)})

			_, err := svc.Upload(context.Background(), d)
			if !apperrors.IsCode(err, apperrors.CodeUnsupportedMedia) {
				t.Fatalf("err = %v", err)
			}
			if images.called || jobs.Len() != 0 {
				t.Fatal("work started for unsupported upload")
			}
			if left := dirEntries(t, dir); len(left) != 0 {
				t.Fatalf("temp files left: %v", left)
			}
		})
	}
}

func TestUploadVideoQueueFull(t *testing.T) {
	dir := t.TempDir()
	jobs := repositories.NewInMemoryJobRepository()
	svc := NewMediaService(MediaServiceDeps{
		Jobs:  jobs,
		Queue: &manualQueue{err: context.DeadlineExceeded},
		Log:   zaptest.NewLogger(t),
	})

	_, err := svc.Upload(context.Background(), dto.UploadDescriptor{
		Path: writeFile(t, dir, "v.mp4", 10), OriginalName: "v.mp4", MimeType: "video/mp4",
	})
	if !apperrors.IsCode(err, apperrors.CodeServiceBusy) {
		t.Fatalf("err = %v", err)
	}
	if jobs.Len() != 1 {
		t.Fatalf("jobs = %d", jobs.Len())
	}
	if left := dirEntries(t, dir); len(left) != 0 {
		t.Fatalf("temp files left: %v", left)
	}
}
