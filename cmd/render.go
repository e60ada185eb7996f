package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tubegrow/clipforge/internal/formatter"
	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/render"
	"github.com/tubegrow/clipforge/internal/shared"
	"github.com/tubegrow/clipforge/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Render cuts a clip range without the editor, either by submitting to the
// backend render farm or by running ffmpeg locally with --local.
func (r *Runner) Render(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.String("video")
	clipID := cmd.String("clip")
	start := cmd.Float("start")
	end := cmd.Float("end")
	local := cmd.Bool("local")
	input := cmd.String("input")

	aspect, err := models.ParseAspectRatio(cmd.String("aspect"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	db, candidates, jobs, storeErr := r.openStore()
	if storeErr != nil {
		r.logger.Warn("local cache unavailable", "error", storeErr)
	} else {
		defer db.Close()
	}

	req := models.RenderRequest{
		CandidateID: clipID,
		VideoID:     videoID,
		StartTime:   start,
		EndTime:     end,
		Aspect:      aspect,
	}

	// A cached candidate fills in whatever the flags left unset.
	if clipID != "" && candidates != nil {
		candidate, err := candidates.Get(clipID)
		if err != nil {
			return fmt.Errorf("failed to load candidate: %w", err)
		}
		if req.VideoID == "" {
			req.VideoID = candidate.VideoID
		}
		if req.StartTime < 0 {
			req.StartTime = candidate.OriginalStart
		}
		if req.EndTime < 0 {
			req.EndTime = candidate.OriginalEnd
		}
	}

	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if local {
		var resolve func(string) (string, error)
		if input != "" {
			resolve = render.FileInput(input)
		}
		renderer := render.NewFFmpeg(r.config.Render.FFmpegPath, r.config.Render.OutputDir, resolve)

		r.logger.Info("rendering locally", "video", req.VideoID, "start", req.StartTime, "end", req.EndTime)
		job, err := renderer.Render(ctx, req)
		if err != nil {
			return fmt.Errorf("local render failed: %w", err)
		}
		if jobs != nil {
			jobs.Create(job)
		}
		r.writePlain("✓ Clip written to %s\n", job.OutputURL)
		return nil
	}

	renderer := render.NewAPI(r.svc)
	r.logger.Info("submitting render", "video", req.VideoID, "start", req.StartTime, "end", req.EndTime)
	job, err := renderer.Render(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to submit render: %w", err)
	}
	if jobs != nil {
		jobs.Create(job)
	}

	r.writePlain("✓ Render submitted (job %s)\n", job.ID)
	r.writePlain("Run 'clipforge jobs --watch' to follow progress\n")
	return nil
}

// Jobs lists locally recorded render jobs and optionally polls pending ones.
func (r *Runner) Jobs(ctx context.Context, cmd *cli.Command) error {
	watch := cmd.Bool("watch")
	useJSON := cmd.Bool("json")
	exportPath := cmd.String("export")

	db, candidates, jobRepo, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	recorded, err := jobRepo.List()
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	if watch {
		var pending []string
		for _, job := range recorded {
			if !job.Terminal() {
				pending = append(pending, job.ID)
			}
		}

		if len(pending) == 0 {
			r.writePlain("No pending jobs to watch\n")
		} else {
			engine := tasks.NewClipEngine(r.svc, candidates, jobRepo)

			progress := make(chan tasks.ProgressUpdate, 50)
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for update := range progress {
					r.writePlain("%s\n", update.Message)
				}
			}()

			_, watchErr := engine.WatchJobs(ctx, progress, pending, tasks.WatchOpts{})
			close(progress)
			wg.Wait()
			if watchErr != nil {
				return fmt.Errorf("watch interrupted: %w", watchErr)
			}

			if recorded, err = jobRepo.List(); err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}
		}
	}

	if exportPath != "" {
		data, err := formatter.JobsToCSV(recorded)
		if err != nil {
			return fmt.Errorf("failed to format jobs: %w", err)
		}
		if err := os.WriteFile(exportPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		r.writePlain("✓ Wrote %s\n", exportPath)
	}

	if useJSON {
		return r.writeJSON(recorded, true)
	}

	r.writePlain("Render jobs (%d):\n\n", len(recorded))
	for _, job := range recorded {
		line := fmt.Sprintf("%s  %s  %s - %s  [%s]  %s",
			job.ID, job.VideoID,
			shared.FormatTimecode(job.StartTime), shared.FormatTimecode(job.EndTime),
			job.Aspect, job.Status,
		)
		if job.OutputURL != "" {
			line += "  " + job.OutputURL
		}
		r.writePlain("%s\n", line)
	}
	return nil
}
