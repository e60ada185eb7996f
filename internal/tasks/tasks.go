// package tasks orchestrates suggestion syncs and render job tracking against the TubeGrow backend.
//
// The core abstraction is [ClipEngine], which fetches clip suggestions into the
// local cache, submits render jobs, and polls them to completion. Operations
// emit progress updates via channels for non-blocking status reporting to
// CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/services"
	"github.com/tubegrow/clipforge/internal/shared"
	"golang.org/x/time/rate"
)

// CandidateCacher persists fetched suggestions; implemented by repositories.CandidateRepository.
type CandidateCacher interface {
	ReplaceForVideo(videoID string, candidates []models.ClipCandidate) error
}

// JobRecorder tracks submitted jobs locally; implemented by repositories.RenderJobRepository.
type JobRecorder interface {
	Create(job *models.RenderJob) error
	UpdateStatus(id string, status models.JobStatus, outputURL, errMessage string, completedAt *time.Time) error
}

// ClipEngine coordinates backend calls with the local cache.
type ClipEngine struct {
	svc   services.Service
	cache CandidateCacher
	jobs  JobRecorder
}

// NewClipEngine creates an engine. cache and jobs may be nil when persistence
// is unavailable; operations then skip recording.
func NewClipEngine(svc services.Service, cache CandidateCacher, jobs JobRecorder) *ClipEngine {
	return &ClipEngine{svc: svc, cache: cache, jobs: jobs}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ClipEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// SyncSuggestions fetches a video's clip candidates and replaces the local
// cache with the fresh set. Cache write failures are swallowed so a broken
// local database never blocks review.
func (e *ClipEngine) SyncSuggestions(ctx context.Context, progress chan<- ProgressUpdate, videoID string) ([]models.ClipCandidate, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchSuggestionsUpdate(videoID))
	candidates, err := e.svc.GetSuggestions(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	if e.cache != nil {
		e.sendProgress(progress, cacheSuggestionsUpdate(len(candidates)))
		e.cache.ReplaceForVideo(videoID, candidates)
	}

	e.sendProgress(progress, suggestionsSyncedUpdate(videoID, candidates))
	return candidates, nil
}

// Submit queues a render on the backend and records the resulting job locally.
func (e *ClipEngine) Submit(ctx context.Context, progress chan<- ProgressUpdate, req models.RenderRequest) (*models.RenderJob, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, submitRenderUpdate(req))
	job, err := e.svc.SubmitRender(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit render: %w", err)
	}

	if e.jobs != nil {
		e.jobs.Create(job)
	}

	e.sendProgress(progress, renderQueuedUpdate(job))
	return job, nil
}

// WatchOpts configures job polling.
type WatchOpts struct {
	Interval  time.Duration // Delay between poll rounds (default: 2s)
	RateLimit float64       // Requests per second across all jobs (default: 5)
}

// WatchJobs polls the given render jobs until every one reaches a terminal
// state or the context is cancelled, mirroring each status change into the
// local job records.
func (e *ClipEngine) WatchJobs(ctx context.Context, progress chan<- ProgressUpdate, ids []string, opts WatchOpts) ([]models.RenderJob, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	pending := make(map[string]bool, len(ids))
	for _, id := range ids {
		pending[id] = true
	}
	latest := make(map[string]models.RenderJob, len(ids))

	for len(pending) > 0 {
		for id := range pending {
			if err := limiter.Wait(ctx); err != nil {
				return collectJobs(ids, latest), err
			}

			job, err := e.svc.GetRenderJob(ctx, id)
			if err != nil {
				e.sendProgress(progress, pollFailedUpdate(id, err))
				continue
			}

			prev, seen := latest[id]
			latest[id] = *job
			if !seen || prev.Status != job.Status {
				e.sendProgress(progress, jobStatusUpdate(job, len(ids)-len(pending)+1, len(ids)))
				if e.jobs != nil {
					e.jobs.UpdateStatus(job.ID, job.Status, job.OutputURL, job.Error, job.CompletedAt)
				}
			}
			if job.Terminal() {
				delete(pending, id)
			}
		}

		if len(pending) == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return collectJobs(ids, latest), ctx.Err()
		case <-time.After(opts.Interval):
		}
	}

	return collectJobs(ids, latest), nil
}

func collectJobs(ids []string, latest map[string]models.RenderJob) []models.RenderJob {
	jobs := make([]models.RenderJob, 0, len(latest))
	for _, id := range ids {
		if job, ok := latest[id]; ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}
