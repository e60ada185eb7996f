package main

import (
	"context"
	"fmt"

	"github.com/tubegrow/clipforge/internal/shared"
	"github.com/urfave/cli/v3"
)

// Videos lists the channel's videos from the backend.
func (r *Runner) Videos(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.svc == nil {
		return fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching videos", "limit", limit)

	videos, err := r.svc.ListVideos(ctx, int(limit))
	if err != nil {
		return fmt.Errorf("failed to list videos: %w", err)
	}

	if useJSON {
		return r.writeJSON(videos, pretty)
	}

	r.writePlain("Videos (%d):\n\n", len(videos))
	for i, v := range videos {
		r.writePlain("%d. %s\n", i+1, v.Title)
		r.writePlain("   ID: %s  Length: %s\n", v.ID, shared.FormatDuration(int(v.Duration)))
	}

	return nil
}
