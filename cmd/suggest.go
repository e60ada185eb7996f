package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tubegrow/clipforge/internal/formatter"
	"github.com/tubegrow/clipforge/internal/shared"
	"github.com/tubegrow/clipforge/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Suggest fetches clip suggestions for a video, caches them locally, and
// optionally exports them for review outside the terminal.
func (r *Runner) Suggest(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("video")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	exportBase := cmd.String("export")
	markdownPath := cmd.String("markdown")

	if videoID == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}

	engine, _, closeStore := r.storeEngine()
	defer closeStore()

	progress := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()

	candidates, err := engine.SyncSuggestions(ctx, progress, videoID)
	close(progress)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	if exportBase != "" {
		result, err := formatter.WriteCandidateExport(videoID, candidates, exportBase)
		if err != nil {
			return fmt.Errorf("failed to export candidates: %w", err)
		}
		r.writePlain("✓ Exported %s and %s\n", result.CSVFile, result.ManifestFile)
	}

	if markdownPath != "" {
		data, err := formatter.CandidatesToMarkdown(nil, candidates)
		if err != nil {
			return fmt.Errorf("failed to generate markdown: %w", err)
		}
		if err := os.WriteFile(markdownPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write markdown file: %w", err)
		}
		r.writePlain("✓ Wrote %s\n", markdownPath)
	}

	if useJSON {
		return r.writeJSON(candidates, pretty)
	}

	text, err := formatter.CandidatesToText(candidates)
	if err != nil {
		return fmt.Errorf("failed to format candidates: %w", err)
	}
	return r.writePlain("%s", string(text))
}
