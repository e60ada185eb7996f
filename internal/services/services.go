// package services implements clients for the TubeGrow backend API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.tubegrow.app"

// errNotFound marks a backend 404; callers map it to the entity they asked for.
var errNotFound = fmt.Errorf("not found")

// Service defines the backend operations the CLI and TUI depend on.
type Service interface {
	// ListVideos retrieves the authenticated creator's videos, newest first.
	ListVideos(ctx context.Context, limit int) ([]models.Video, error)

	// GetSuggestions retrieves AI-suggested clip candidates for a video.
	GetSuggestions(ctx context.Context, videoID string) ([]models.ClipCandidate, error)

	// SubmitRender queues a clip render on the backend.
	SubmitRender(ctx context.Context, req models.RenderRequest) (*models.RenderJob, error)

	// GetRenderJob retrieves a previously submitted render job.
	GetRenderJob(ctx context.Context, jobID string) (*models.RenderJob, error)

	// Name returns the service name for logging and output.
	Name() string
}

// TubeGrowService implements [Service] against the TubeGrow REST API.
//
// Requests carry a bearer token from an [oauth2.TokenSource] and are paced by
// a [rate.Limiter] so interactive polling never trips the backend's limits.
type TubeGrowService struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
}

// NewTubeGrowService creates a backend client. An empty baseURL falls back to
// the production API; requestsPerSecond <= 0 disables pacing.
func NewTubeGrowService(baseURL, token string, client *http.Client, requestsPerSecond float64) *TubeGrowService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &TubeGrowService{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		limiter:    limiter,
	}
}

// Name returns the service name.
func (s *TubeGrowService) Name() string {
	return "TubeGrow"
}

// apiCandidate mirrors the backend's clip suggestion payload.
type apiCandidate struct {
	ID       string  `json:"id"`
	VideoID  string  `json:"video_id"`
	Title    string  `json:"title"`
	Summary  string  `json:"summary"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Score    float64 `json:"score"`
}

type videosResponse struct {
	Videos []models.Video `json:"videos"`
}

type suggestionsResponse struct {
	Candidates []apiCandidate `json:"candidates"`
}

func (s *TubeGrowService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := s.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMissingToken, err)
	}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned %d: %s", shared.ErrAPIRequest, endpoint, resp.StatusCode, string(data))
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListVideos retrieves the creator's videos from the backend.
func (s *TubeGrowService) ListVideos(ctx context.Context, limit int) ([]models.Video, error) {
	endpoint := "/v1/videos"
	if limit > 0 {
		endpoint += fmt.Sprintf("?limit=%d", limit)
	}

	var payload videosResponse
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Videos, nil
}

// GetSuggestions retrieves clip candidates for the given video, dropping any
// suggestion with a malformed window rather than failing the whole fetch.
func (s *TubeGrowService) GetSuggestions(ctx context.Context, videoID string) ([]models.ClipCandidate, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("/v1/videos/%s/suggestions", url.PathEscape(videoID))
	var payload suggestionsResponse
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
		}
		return nil, err
	}

	candidates := make([]models.ClipCandidate, 0, len(payload.Candidates))
	for _, c := range payload.Candidates {
		candidate := models.ClipCandidate{
			ID:            c.ID,
			VideoID:       c.VideoID,
			Title:         c.Title,
			Summary:       c.Summary,
			OriginalStart: c.StartSec,
			OriginalEnd:   c.EndSec,
			Score:         c.Score,
		}
		if candidate.VideoID == "" {
			candidate.VideoID = videoID
		}
		if err := candidate.Validate(); err != nil {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// SubmitRender queues a render job on the backend.
func (s *TubeGrowService) SubmitRender(ctx context.Context, req models.RenderRequest) (*models.RenderJob, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var job models.RenderJob
	if err := s.doRequest(ctx, http.MethodPost, "/v1/renders", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetRenderJob retrieves a render job's current status.
func (s *TubeGrowService) GetRenderJob(ctx context.Context, jobID string) (*models.RenderJob, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id", shared.ErrMissingArgument)
	}

	var job models.RenderJob
	endpoint := fmt.Sprintf("/v1/renders/%s", url.PathEscape(jobID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &job); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, jobID)
		}
		return nil, err
	}
	return &job, nil
}
