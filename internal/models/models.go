// package models defines the data model for the clip review & render tooling
package models

import (
	"fmt"
	"time"
)

// AspectRatio is the output framing for a rendered clip.
type AspectRatio string

const (
	AspectVertical AspectRatio = "9:16" // vertical short-form framing (default)
	AspectSquare   AspectRatio = "1:1"  // square framing
)

// ParseAspectRatio validates and returns an [AspectRatio] from its string form.
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch AspectRatio(s) {
	case AspectVertical:
		return AspectVertical, nil
	case AspectSquare:
		return AspectSquare, nil
	default:
		return "", fmt.Errorf("invalid aspect ratio: %q", s)
	}
}

// Toggle returns the other supported aspect ratio.
func (a AspectRatio) Toggle() AspectRatio {
	if a == AspectVertical {
		return AspectSquare
	}
	return AspectVertical
}

// Video represents a creator's uploaded video as reported by the backend.
type Video struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Duration    float64 `json:"duration"` // Duration in seconds
	ViewCount   int64   `json:"view_count"`
	PublishedAt string  `json:"published_at"`
}

// ClipCandidate is an AI-suggested [start, end] window in a source video
// considered worth rendering as a short clip.
//
// OriginalStart and OriginalEnd are seconds into the source video and are
// immutable for an editing session; the editor derives its adjustable range
// from them.
type ClipCandidate struct {
	ID            string  `json:"id"`
	VideoID       string  `json:"video_id"`
	Title         string  `json:"title"`
	Summary       string  `json:"summary"`
	OriginalStart float64 `json:"start_sec"`
	OriginalEnd   float64 `json:"end_sec"`
	Score         float64 `json:"score"` // virality score from the suggestion model, 0..1
}

// Duration returns the suggested window length in seconds.
func (c ClipCandidate) Duration() float64 {
	return c.OriginalEnd - c.OriginalStart
}

// Validate checks the candidate's window is well-formed.
func (c ClipCandidate) Validate() error {
	if c.VideoID == "" {
		return fmt.Errorf("candidate missing video id")
	}
	if c.OriginalStart < 0 {
		return fmt.Errorf("candidate start %.2f is negative", c.OriginalStart)
	}
	if c.OriginalEnd <= c.OriginalStart {
		return fmt.Errorf("candidate end %.2f not after start %.2f", c.OriginalEnd, c.OriginalStart)
	}
	return nil
}

// RenderRequest is the final trim triple handed to a renderer.
type RenderRequest struct {
	CandidateID string      `json:"candidate_id,omitempty"`
	VideoID     string      `json:"video_id"`
	StartTime   float64     `json:"start_sec"`
	EndTime     float64     `json:"end_sec"`
	Aspect      AspectRatio `json:"aspect_ratio"`
}

// Validate checks the request describes a renderable range.
func (r RenderRequest) Validate() error {
	if r.VideoID == "" {
		return fmt.Errorf("render request missing video id")
	}
	if r.EndTime <= r.StartTime {
		return fmt.Errorf("render range %.2f-%.2f is empty", r.StartTime, r.EndTime)
	}
	if _, err := ParseAspectRatio(string(r.Aspect)); err != nil {
		return err
	}
	return nil
}

// JobStatus enumerates render job states reported by the backend.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// RenderJob tracks a submitted render through the backend's pipeline.
type RenderJob struct {
	ID          string      `json:"id"`
	CandidateID string      `json:"candidate_id,omitempty"`
	VideoID     string      `json:"video_id"`
	StartTime   float64     `json:"start_sec"`
	EndTime     float64     `json:"end_sec"`
	Aspect      AspectRatio `json:"aspect_ratio"`
	Status      JobStatus   `json:"status"`
	OutputURL   string      `json:"output_url,omitempty"`
	Error       string      `json:"error,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// Terminal reports whether the job has finished (successfully or not).
func (j RenderJob) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}
