package tasks

import (
	"fmt"

	"github.com/tubegrow/clipforge/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSuggestions Phase = iota
	CacheSuggestions
	SubmitRender
	PollJobs
)

func (p Phase) String() string {
	switch p {
	case FetchSuggestions:
		return "fetch_suggestions"
	case CacheSuggestions:
		return "cache_suggestions"
	case SubmitRender:
		return "submit_render"
	case PollJobs:
		return "poll_jobs"
	default:
		return ""
	}
}

func fetchSuggestionsUpdate(videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSuggestions,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Fetching clip suggestions for %s...", videoID),
	}
}

func cacheSuggestionsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheSuggestions,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Caching %d candidates...", count),
	}
}

func suggestionsSyncedUpdate(videoID string, candidates []models.ClipCandidate) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheSuggestions,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Found %d clip candidates for %s", len(candidates), videoID),
		Data:    candidates,
	}
}

func submitRenderUpdate(req models.RenderRequest) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SubmitRender,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Submitting render %.1fs-%.1fs (%s)...", req.StartTime, req.EndTime, req.Aspect),
	}
}

func renderQueuedUpdate(job *models.RenderJob) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SubmitRender,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Render queued (job %s)", job.ID),
		Data:    job,
	}
}

func jobStatusUpdate(job *models.RenderJob, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PollJobs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] job %s: %s", step, total, job.ID, job.Status),
		Data:    job,
	}
}

func pollFailedUpdate(id string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PollJobs,
		Message: fmt.Sprintf("job %s: poll failed: %v", id, err),
	}
}
