package usecases

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"media-publisher/internal/domain/entities"
	"media-publisher/internal/infrastructure/repositories"

	"go.uber.org/zap/zaptest"
)

func TestCleanupOldTempFiles(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "old.mp4", 1)
	fresh := writeFile(t, dir, "fresh.jpg", 1)
	oldDir := filepath.Join(dir, "stale")
	if err := os.Mkdir(oldDir, 0o755); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour)
	for _, p := range []string{old, oldDir} {
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewCleanupService(dir, repositories.NewInMemoryJobRepository(), zaptest.NewLogger(t))
	n, err := svc.CleanupOldTempFiles(24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh file removed: %v", err)
	}
}

func TestEvictExpiredJobs(t *testing.T) {
	ctx := context.Background()
	jobs := repositories.NewInMemoryJobRepository()
	_ = jobs.Create(ctx, entities.NewJob("done", "a.mp4", "q", time.Now()))
	_, _ = jobs.Update(ctx, "done", entities.Transition{To: entities.JobFailed, Message: "x"})
	_ = jobs.Create(ctx, entities.NewJob("running", "b.mp4", "q", time.Now()))

	svc := NewCleanupService(t.TempDir(), jobs, zaptest.NewLogger(t)).(*cleanupService)
	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	n, err := svc.EvictExpiredJobs(ctx, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("evicted %d", n)
	}
	if _, ok, _ := jobs.Lookup(ctx, "running"); !ok {
		t.Fatal("running job evicted")
	}
}
