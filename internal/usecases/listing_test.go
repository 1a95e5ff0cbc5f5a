package usecases

import (
	"context"
	"testing"

	"media-publisher/internal/domain/dto"

	"go.uber.org/zap/zaptest"
)

func TestPairThumbnails(t *testing.T) {
	objects := []dto.RemoteObject{
		{Name: "optimized-b.webp", URL: "u/b"},
		{Name: "optimized-a-thumb.webp", URL: "u/a-thumb"},
		{Name: "optimized-a.webp", URL: "u/a"},
		{Name: "notes.txt", URL: "u/notes"},
		{Name: "orphan-thumb.webp", URL: "u/orphan-thumb"},
	}

	items := pairThumbnails(objects)
	if len(items) != 2 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Name != "optimized-a.webp" || items[0].ThumbnailURL != "u/a-thumb" {
		t.Fatalf("first = %+v", items[0])
	}
	if items[1].Name != "optimized-b.webp" || items[1].ThumbnailURL != "" {
		t.Fatalf("second = %+v", items[1])
	}
	if items[0].Type != "image" {
		t.Fatalf("type = %q", items[0].Type)
	}
}

func TestListMedia(t *testing.T) {
	svc := NewMediaService(MediaServiceDeps{
		Objects: &recordingPublisher{objects: []dto.RemoteObject{{Name: "x.webp", URL: "u/x"}}},
		Stream:  &gatedStream{},
		Log:     zaptest.NewLogger(t),
	})
	resp, err := svc.ListMedia(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Items.Images) != 1 || resp.Items.Videos == nil {
		t.Fatalf("resp = %+v", resp)
	}
}
