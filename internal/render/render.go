// Package render submits final trim triples for clip rendering.
//
// The editor hands a [models.RenderRequest] to a [Renderer] and walks away;
// job lifecycle is the renderer's concern. [API] queues the render on the
// TubeGrow backend (the product's normal path), while [FFmpeg] cuts a local
// source file directly for offline work.
package render

import (
	"context"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/services"
)

// Renderer turns a trim triple into a render job.
type Renderer interface {
	Render(ctx context.Context, req models.RenderRequest) (*models.RenderJob, error)
}

// API renders by queueing a job on the TubeGrow backend.
type API struct {
	svc services.Service
}

// NewAPI creates a backend-delegating renderer.
func NewAPI(svc services.Service) *API {
	return &API{svc: svc}
}

// Render submits the request and returns the queued job.
func (a *API) Render(ctx context.Context, req models.RenderRequest) (*models.RenderJob, error) {
	return a.svc.SubmitRender(ctx, req)
}
