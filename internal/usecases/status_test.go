package usecases

import (
	"context"
	"testing"

	"media-publisher/internal/infrastructure/repositories"
	consts "media-publisher/pkg/constants"
)

func TestJobStatusUnknownID(t *testing.T) {
	svc := NewStatusService(repositories.NewInMemoryJobRepository(), &gatedStream{})

	for _, id := range []string{"nope", "", "../../etc"} {
		st, err := svc.JobStatus(context.Background(), id)
		if err != nil {
			t.Fatalf("JobStatus(%q): %v", id, err)
		}
		if st.Status != consts.StatusNotFound || st.Message != "Job not found" {
			t.Fatalf("JobStatus(%q) = %+v", id, st)
		}
	}
}
