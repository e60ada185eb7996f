// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tubegrow/clipforge/internal/models"
)

// MockService is a configurable test double for [services.Service].
type MockService struct {
	Videos     []models.Video
	Candidates map[string][]models.ClipCandidate
	Jobs       map[string]*models.RenderJob
	Err        error

	// Submitted records every render request passed to SubmitRender.
	Submitted []models.RenderRequest
}

func (m *MockService) ListVideos(ctx context.Context, limit int) ([]models.Video, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Videos) {
		return m.Videos[:limit], nil
	}
	return m.Videos, nil
}

func (m *MockService) GetSuggestions(ctx context.Context, videoID string) ([]models.ClipCandidate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates[videoID], nil
}

func (m *MockService) SubmitRender(ctx context.Context, req models.RenderRequest) (*models.RenderJob, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Submitted = append(m.Submitted, req)
	job := &models.RenderJob{
		ID:          fmt.Sprintf("job_%d", len(m.Submitted)),
		CandidateID: req.CandidateID,
		VideoID:     req.VideoID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Aspect:      req.Aspect,
		Status:      models.JobQueued,
	}
	if m.Jobs == nil {
		m.Jobs = make(map[string]*models.RenderJob)
	}
	m.Jobs[job.ID] = job
	return job, nil
}

func (m *MockService) GetRenderJob(ctx context.Context, jobID string) (*models.RenderJob, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	job, ok := m.Jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("render job not found: %s", jobID)
	}
	return job, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// DrainBody reads and closes a response body, for round-trip assertions.
func DrainBody(r io.ReadCloser) []byte {
	if r == nil {
		return nil
	}
	defer r.Close()
	data, _ := io.ReadAll(r)
	return data
}
