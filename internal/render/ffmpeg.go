package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

// FFmpeg cuts clips from a local source file with the ffmpeg binary.
type FFmpeg struct {
	path      string
	outputDir string
	// resolve maps a request's video id to the source file on disk.
	resolve func(videoID string) (string, error)
}

// NewFFmpeg creates a local renderer. An empty path uses "ffmpeg" from PATH;
// the default resolver expects video ids to be file paths.
func NewFFmpeg(path, outputDir string, resolve func(string) (string, error)) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	if outputDir == "" {
		outputDir = "."
	}
	if resolve == nil {
		resolve = func(videoID string) (string, error) {
			if _, err := os.Stat(videoID); err != nil {
				return "", fmt.Errorf("%w: no local source for %s", shared.ErrVideoNotFound, videoID)
			}
			return videoID, nil
		}
	}
	return &FFmpeg{path: path, outputDir: outputDir, resolve: resolve}
}

// FileInput returns a resolver that always cuts from the given source file.
func FileInput(path string) func(string) (string, error) {
	return func(string) (string, error) { return path, nil }
}

// aspectFilter returns the video filter chain producing the requested framing,
// cropping around the frame center.
func aspectFilter(a models.AspectRatio) string {
	switch a {
	case models.AspectVertical:
		return "crop=ih*9/16:ih"
	case models.AspectSquare:
		return "crop=ih:ih"
	default:
		return ""
	}
}

// renderArgs builds the ffmpeg invocation for a trim request.
func renderArgs(input string, req models.RenderRequest, output string) []string {
	args := []string{
		"-y",
		"-ss", formatSeconds(req.StartTime),
		"-to", formatSeconds(req.EndTime),
		"-i", input,
	}
	if filter := aspectFilter(req.Aspect); filter != "" {
		args = append(args, "-vf", filter)
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		output,
	)
	return args
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

// Render cuts the requested range into outputDir and returns a completed job.
func (f *FFmpeg) Render(ctx context.Context, req models.RenderRequest) (*models.RenderJob, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	input, err := f.resolve(req.VideoID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(f.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	id := shared.GenerateID()
	output := filepath.Join(f.outputDir, fmt.Sprintf("clip_%s.mp4", id))
	submitted := time.Now()

	cmd := exec.CommandContext(ctx, f.path, renderArgs(input, req, output)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg render: %w\n%s", err, string(out))
	}

	completed := time.Now()
	return &models.RenderJob{
		ID:          id,
		CandidateID: req.CandidateID,
		VideoID:     req.VideoID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Aspect:      req.Aspect,
		Status:      models.JobCompleted,
		OutputURL:   output,
		SubmittedAt: submitted,
		CompletedAt: &completed,
	}, nil
}
