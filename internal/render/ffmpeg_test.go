package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

func TestRenderArgs(t *testing.T) {
	req := models.RenderRequest{
		VideoID:   "source.mp4",
		StartTime: 98.5,
		EndTime:   112,
		Aspect:    models.AspectVertical,
	}

	args := renderArgs("source.mp4", req, "out.mp4")
	joined := strings.Join(args, " ")

	t.Run("trims with millisecond precision", func(t *testing.T) {
		if !strings.Contains(joined, "-ss 98.500") {
			t.Errorf("missing start: %v", joined)
		}
		if !strings.Contains(joined, "-to 112.000") {
			t.Errorf("missing end: %v", joined)
		}
	})

	t.Run("crops vertical framing", func(t *testing.T) {
		if !strings.Contains(joined, "crop=ih*9/16:ih") {
			t.Errorf("missing vertical crop: %v", joined)
		}
	})

	t.Run("crops square framing", func(t *testing.T) {
		req := req
		req.Aspect = models.AspectSquare
		square := strings.Join(renderArgs("source.mp4", req, "out.mp4"), " ")
		if !strings.Contains(square, "crop=ih:ih") {
			t.Errorf("missing square crop: %v", square)
		}
	})

	t.Run("output is the final argument", func(t *testing.T) {
		if args[len(args)-1] != "out.mp4" {
			t.Errorf("expected output last, got %v", args)
		}
	})
}

func TestFFmpegRender(t *testing.T) {
	t.Run("rejects invalid requests", func(t *testing.T) {
		f := NewFFmpeg("", t.TempDir(), FileInput("source.mp4"))
		_, err := f.Render(context.Background(), models.RenderRequest{
			VideoID:   "vid_1",
			StartTime: 50,
			EndTime:   40,
			Aspect:    models.AspectVertical,
		})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("requires a resolvable source", func(t *testing.T) {
		f := NewFFmpeg("", t.TempDir(), nil)
		_, err := f.Render(context.Background(), models.RenderRequest{
			VideoID:   "/nonexistent/source.mp4",
			StartTime: 10,
			EndTime:   20,
			Aspect:    models.AspectSquare,
		})
		if !errors.Is(err, shared.ErrVideoNotFound) {
			t.Errorf("expected ErrVideoNotFound, got %v", err)
		}
	})
}
