package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tubegrow/clipforge/internal/editor"
	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/playback"
	"github.com/tubegrow/clipforge/internal/shared"
	"github.com/tubegrow/clipforge/internal/ui"
	"github.com/urfave/cli/v3"
)

// Edit launches the interactive trim editor for a video's clip suggestions.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("video")
	input := cmd.String("input")

	if videoID == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}
	if r.svc == nil {
		return fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/clipforge-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine, _, closeStore := r.storeEngine()
	defer closeStore()

	factory := func(candidate models.ClipCandidate) (editor.Surface, error) {
		opts := playback.Opts{
			MPVPath:   r.config.Playback.MPVPath,
			SocketDir: r.config.Playback.SocketDir,
		}
		if input != "" {
			opts.Resolve = playback.FileResolver(input)
		}
		return playback.New(opts), nil
	}

	model := ui.NewModel(ctx, engine, videoID, factory)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
