package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

func TestTubeGrowService(t *testing.T) {
	t.Run("GetSuggestions", func(t *testing.T) {
		t.Run("decodes and validates candidates", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/videos/vid_1/suggestions" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok_123" {
					t.Errorf("unexpected auth header %q", got)
				}
				json.NewEncoder(w).Encode(map[string]any{
					"candidates": []map[string]any{
						{"id": "c1", "video_id": "vid_1", "title": "Hook", "start_sec": 100, "end_sec": 115, "score": 0.91},
						{"id": "c2", "start_sec": 40, "end_sec": 52.5},
						{"id": "bad", "video_id": "vid_1", "start_sec": 90, "end_sec": 80},
					},
				})
			}))
			defer srv.Close()

			svc := NewTubeGrowService(srv.URL, "tok_123", srv.Client(), 0)
			candidates, err := svc.GetSuggestions(context.Background(), "vid_1")
			if err != nil {
				t.Fatalf("GetSuggestions failed: %v", err)
			}

			if len(candidates) != 2 {
				t.Fatalf("expected 2 valid candidates, got %d", len(candidates))
			}
			if candidates[0].OriginalStart != 100 || candidates[0].OriginalEnd != 115 {
				t.Errorf("unexpected window: %+v", candidates[0])
			}
			if candidates[1].VideoID != "vid_1" {
				t.Errorf("expected video id fallback, got %q", candidates[1].VideoID)
			}
		})

		t.Run("maps 404 to video not found", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer srv.Close()

			svc := NewTubeGrowService(srv.URL, "tok", srv.Client(), 0)
			_, err := svc.GetSuggestions(context.Background(), "missing")
			if !errors.Is(err, shared.ErrVideoNotFound) {
				t.Errorf("expected ErrVideoNotFound, got %v", err)
			}
		})

		t.Run("requires a video id", func(t *testing.T) {
			svc := NewTubeGrowService("http://unused", "tok", nil, 0)
			if _, err := svc.GetSuggestions(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("ListVideos", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "25" {
				t.Errorf("expected limit 25, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"videos": []map[string]any{
					{"id": "vid_1", "title": "How I grew my channel", "duration": 1260.0},
				},
			})
		}))
		defer srv.Close()

		svc := NewTubeGrowService(srv.URL, "tok", srv.Client(), 0)
		videos, err := svc.ListVideos(context.Background(), 25)
		if err != nil {
			t.Fatalf("ListVideos failed: %v", err)
		}
		if len(videos) != 1 || videos[0].Title != "How I grew my channel" {
			t.Errorf("unexpected videos: %+v", videos)
		}
	})

	t.Run("SubmitRender", func(t *testing.T) {
		t.Run("posts the trim triple", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/v1/renders" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				var req models.RenderRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if req.StartTime != 98.5 || req.EndTime != 112 || req.Aspect != models.AspectVertical {
					t.Errorf("unexpected request body: %+v", req)
				}
				json.NewEncoder(w).Encode(models.RenderJob{
					ID: "job_1", VideoID: req.VideoID, Status: models.JobQueued,
				})
			}))
			defer srv.Close()

			svc := NewTubeGrowService(srv.URL, "tok", srv.Client(), 0)
			job, err := svc.SubmitRender(context.Background(), models.RenderRequest{
				VideoID:   "vid_1",
				StartTime: 98.5,
				EndTime:   112,
				Aspect:    models.AspectVertical,
			})
			if err != nil {
				t.Fatalf("SubmitRender failed: %v", err)
			}
			if job.ID != "job_1" || job.Status != models.JobQueued {
				t.Errorf("unexpected job: %+v", job)
			}
		})

		t.Run("rejects invalid requests locally", func(t *testing.T) {
			svc := NewTubeGrowService("http://unused", "tok", nil, 0)
			_, err := svc.SubmitRender(context.Background(), models.RenderRequest{
				VideoID:   "vid_1",
				StartTime: 50,
				EndTime:   40,
				Aspect:    models.AspectVertical,
			})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("GetRenderJob maps 404 to job not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		svc := NewTubeGrowService(srv.URL, "tok", srv.Client(), 0)
		if _, err := svc.GetRenderJob(context.Background(), "gone"); !errors.Is(err, shared.ErrJobNotFound) {
			t.Errorf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("non-2xx surfaces as API error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		svc := NewTubeGrowService(srv.URL, "tok", srv.Client(), 0)
		if _, err := svc.ListVideos(context.Background(), 0); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestAPIService(t *testing.T) {
	t.Run("Get decodes JSON bodies", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		}))
		defer srv.Close()

		api := NewAPIService(srv.URL, "tok", srv.Client())
		resp, err := api.Get(context.Background(), "/v1/health")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !resp.IsJSON {
			t.Error("expected JSON response")
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("unexpected status %d", resp.StatusCode)
		}
	})

	t.Run("Post sends the payload through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["video_id"] != "vid_1" {
				t.Errorf("unexpected body: %v", body)
			}
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		api := NewAPIService(srv.URL, "tok", srv.Client())
		resp, err := api.Post(context.Background(), "/v1/renders", []byte(`{"video_id":"vid_1"}`))
		if err != nil {
			t.Fatalf("Post failed: %v", err)
		}
		if resp.StatusCode != http.StatusAccepted {
			t.Errorf("unexpected status %d", resp.StatusCode)
		}
	})
}
