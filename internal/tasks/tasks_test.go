package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
	itesting "github.com/tubegrow/clipforge/internal/testing"
)

type fakeCache struct {
	replaced map[string][]models.ClipCandidate
	err      error
}

func (f *fakeCache) ReplaceForVideo(videoID string, candidates []models.ClipCandidate) error {
	if f.err != nil {
		return f.err
	}
	if f.replaced == nil {
		f.replaced = make(map[string][]models.ClipCandidate)
	}
	f.replaced[videoID] = candidates
	return nil
}

type fakeJobs struct {
	created []models.RenderJob
	updates []models.JobStatus
}

func (f *fakeJobs) Create(job *models.RenderJob) error {
	f.created = append(f.created, *job)
	return nil
}

func (f *fakeJobs) UpdateStatus(id string, status models.JobStatus, outputURL, errMessage string, completedAt *time.Time) error {
	f.updates = append(f.updates, status)
	return nil
}

func drainUpdates(progress chan ProgressUpdate) []ProgressUpdate {
	var updates []ProgressUpdate
	for {
		select {
		case u := <-progress:
			updates = append(updates, u)
		default:
			return updates
		}
	}
}

func TestSyncSuggestions(t *testing.T) {
	candidates := []models.ClipCandidate{
		{ID: "cand_1", VideoID: "vid_1", OriginalStart: 100, OriginalEnd: 115, Score: 0.9},
		{ID: "cand_2", VideoID: "vid_1", OriginalStart: 200, OriginalEnd: 220, Score: 0.7},
	}

	t.Run("fetches and caches", func(t *testing.T) {
		svc := &itesting.MockService{Candidates: map[string][]models.ClipCandidate{"vid_1": candidates}}
		cache := &fakeCache{}
		engine := NewClipEngine(svc, cache, nil)

		progress := make(chan ProgressUpdate, 10)
		got, err := engine.SyncSuggestions(context.Background(), progress, "vid_1")
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(got))
		}
		if len(cache.replaced["vid_1"]) != 2 {
			t.Errorf("expected cache replaced, got %+v", cache.replaced)
		}

		updates := drainUpdates(progress)
		if len(updates) == 0 {
			t.Fatal("expected progress updates")
		}
		if updates[0].Phase != FetchSuggestions {
			t.Errorf("expected fetch phase first, got %v", updates[0].Phase)
		}
	})

	t.Run("backend error aborts", func(t *testing.T) {
		svc := &itesting.MockService{Err: errors.New("backend down")}
		engine := NewClipEngine(svc, &fakeCache{}, nil)

		if _, err := engine.SyncSuggestions(context.Background(), nil, "vid_1"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("cache failure does not block review", func(t *testing.T) {
		svc := &itesting.MockService{Candidates: map[string][]models.ClipCandidate{"vid_1": candidates}}
		cache := &fakeCache{err: errors.New("disk full")}
		engine := NewClipEngine(svc, cache, nil)

		got, err := engine.SyncSuggestions(context.Background(), nil, "vid_1")
		if err != nil {
			t.Fatalf("sync should survive cache failure: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected candidates despite cache failure, got %d", len(got))
		}
	})

	t.Run("nil service", func(t *testing.T) {
		engine := NewClipEngine(nil, nil, nil)
		if _, err := engine.SyncSuggestions(context.Background(), nil, "vid_1"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("full progress channel never blocks", func(t *testing.T) {
		svc := &itesting.MockService{Candidates: map[string][]models.ClipCandidate{"vid_1": candidates}}
		engine := NewClipEngine(svc, &fakeCache{}, nil)

		progress := make(chan ProgressUpdate) // unbuffered, nobody reading
		done := make(chan struct{})
		go func() {
			defer close(done)
			engine.SyncSuggestions(context.Background(), progress, "vid_1")
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("sync blocked on progress channel")
		}
	})
}

func TestSubmit(t *testing.T) {
	req := models.RenderRequest{
		CandidateID: "cand_1",
		VideoID:     "vid_1",
		StartTime:   98.5,
		EndTime:     112,
		Aspect:      models.AspectVertical,
	}

	t.Run("submits and records", func(t *testing.T) {
		svc := &itesting.MockService{}
		jobs := &fakeJobs{}
		engine := NewClipEngine(svc, nil, jobs)

		job, err := engine.Submit(context.Background(), nil, req)
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if job.Status != models.JobQueued {
			t.Errorf("expected queued job, got %s", job.Status)
		}
		if len(svc.Submitted) != 1 || svc.Submitted[0].StartTime != 98.5 {
			t.Errorf("unexpected submitted requests: %+v", svc.Submitted)
		}
		if len(jobs.created) != 1 {
			t.Errorf("expected job recorded locally, got %d", len(jobs.created))
		}
	})

	t.Run("backend error not recorded", func(t *testing.T) {
		svc := &itesting.MockService{Err: errors.New("rate limited")}
		jobs := &fakeJobs{}
		engine := NewClipEngine(svc, nil, jobs)

		if _, err := engine.Submit(context.Background(), nil, req); err == nil {
			t.Fatal("expected error")
		}
		if len(jobs.created) != 0 {
			t.Errorf("failed submission should not be recorded, got %+v", jobs.created)
		}
	})
}

func TestWatchJobs(t *testing.T) {
	t.Run("polls until terminal", func(t *testing.T) {
		svc := &itesting.MockService{
			Jobs: map[string]*models.RenderJob{
				"job_1": {ID: "job_1", VideoID: "vid_1", Status: models.JobCompleted, OutputURL: "https://cdn.tubegrow.app/clips/1.mp4"},
				"job_2": {ID: "job_2", VideoID: "vid_1", Status: models.JobFailed, Error: "encode error"},
			},
		}
		jobs := &fakeJobs{}
		engine := NewClipEngine(svc, nil, jobs)

		progress := make(chan ProgressUpdate, 10)
		got, err := engine.WatchJobs(context.Background(), progress, []string{"job_1", "job_2"}, WatchOpts{Interval: time.Millisecond, RateLimit: 1000})
		if err != nil {
			t.Fatalf("watch failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 jobs, got %d", len(got))
		}
		if got[0].ID != "job_1" || got[0].Status != models.JobCompleted {
			t.Errorf("unexpected first job: %+v", got[0])
		}
		if len(jobs.updates) != 2 {
			t.Errorf("expected one status mirror per job, got %v", jobs.updates)
		}
	})

	t.Run("context cancellation stops polling", func(t *testing.T) {
		svc := &itesting.MockService{
			Jobs: map[string]*models.RenderJob{
				"job_1": {ID: "job_1", VideoID: "vid_1", Status: models.JobProcessing},
			},
		}
		engine := NewClipEngine(svc, nil, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		got, err := engine.WatchJobs(ctx, nil, []string{"job_1"}, WatchOpts{Interval: 5 * time.Millisecond, RateLimit: 1000})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
		if len(got) != 1 || got[0].Status != models.JobProcessing {
			t.Errorf("expected last observed state returned, got %+v", got)
		}
	})

	t.Run("no ids returns immediately", func(t *testing.T) {
		engine := NewClipEngine(&itesting.MockService{}, nil, nil)
		got, err := engine.WatchJobs(context.Background(), nil, nil, WatchOpts{})
		if err != nil {
			t.Fatalf("watch failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no jobs, got %+v", got)
		}
	})
}
