// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/musicdb/internal/formatter"
	"github.com/desertthunder/musicdb/internal/tasks"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the album frontend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the album list and detail views over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (default: server.port)",
			},
			&cli.BoolFlag{
				Name:  "dev-proxy",
				Usage: "Forward the proxy prefixes to proxy.target",
			},
		},
		Action: r.Serve,
	}
}

// albumsCommand handles album operations against the backend
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "albums",
		Aliases: []string{"a"},
		Usage:   "Album catalogue operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List albums with title, artist and price",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AlbumsList,
			},
			{
				Name:  "show",
				Usage: "Show one album with its tracklist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AlbumsShow,
			},
			{
				Name:  "export",
				Usage: "Export album details with tracklists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text, json)",
						Value:   string(formatter.Markdown),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Album ID to export (repeatable, default: every album)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent detail fetches",
						Value: tasks.DefaultWorkers,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Detail fetches per second",
						Value: tasks.DefaultRateLimit,
					},
				},
				Action: r.AlbumsExport,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the album backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// browseCommand launches the TUI
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Browse albums in an interactive terminal UI",
		Action: r.Browse,
	}
}

// devapiCommand runs the SQLite-backed fixture backend
func devapiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "devapi",
		Usage: "Local album backend for development",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve /api/albums/ from the local database",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on",
						Value:   8000,
					},
					&cli.BoolFlag{
						Name:  "seed",
						Usage: "Load the sample catalogue when the database is empty",
					},
				},
				Action: r.DevAPIServe,
			},
			{
				Name:  "seed",
				Usage: "Replace the local catalogue with the sample albums",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.DevAPISeed,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config.toml with default settings",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the fixture database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Revert the latest migration after migrating",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
