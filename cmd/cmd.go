// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// videosCommand lists channel videos from the TubeGrow backend.
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "videos",
		Usage: "List your channel's videos",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of videos to return",
				Value: 50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Videos,
	}
}

// suggestCommand fetches and caches clip suggestions for a video.
func suggestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Fetch AI clip suggestions for a video",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "video",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "export",
				Aliases: []string{"o"},
				Usage:   "Export candidates to {base}_candidates.csv and {base}_manifest.json",
			},
			&cli.StringFlag{
				Name:  "markdown",
				Usage: "Write a Markdown summary to the given file",
			},
		},
		Action: r.Suggest,
	}
}

// editCommand launches the interactive trim editor.
func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "edit",
		Aliases: []string{"tui", "trim"},
		Usage:   "Open the interactive clip editor for a video",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "video",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Preview from a local media file instead of streaming",
			},
		},
		Action: r.Edit,
	}
}

// renderCommand submits or locally produces a render.
func renderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a clip range without opening the editor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "video",
				Usage: "Video ID to cut from",
			},
			&cli.StringFlag{
				Name:  "clip",
				Usage: "Candidate ID; fills video and range from the cached suggestion",
			},
			&cli.FloatFlag{
				Name:  "start",
				Usage: "Clip start in seconds",
				Value: -1,
			},
			&cli.FloatFlag{
				Name:  "end",
				Usage: "Clip end in seconds",
				Value: -1,
			},
			&cli.StringFlag{
				Name:  "aspect",
				Usage: "Output aspect ratio (9:16 or 1:1)",
				Value: "9:16",
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Cut with local ffmpeg instead of submitting to the backend",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Local source file for --local rendering",
			},
		},
		Action: r.Render,
	}
}

// jobsCommand inspects submitted render jobs.
func jobsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "jobs",
		Usage: "List and watch render jobs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Poll pending jobs until they finish",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Write jobs to a CSV file",
			},
		},
		Action: r.Jobs,
	}
}

// apiCommand handles direct calls against the TubeGrow backend
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the TubeGrow backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET request, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}
