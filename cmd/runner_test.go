package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/musicdb/internal/models"
	"github.com/desertthunder/musicdb/internal/services"
	"github.com/desertthunder/musicdb/internal/shared"
	tu "github.com/desertthunder/musicdb/internal/testing"
)

func newTestRunner(catalog services.Catalog) (*Runner, *bytes.Buffer) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Catalog: catalog,
		Logger:  shared.NewLogger(io.Discard),
		Output:  output,
	})
	return runner, output
}

func testCatalog() *tu.FakeCatalog {
	return &tu.FakeCatalog{
		Albums: []models.AlbumSummary{
			{ID: "1", Title: "Blue Train", Artist: "John Coltrane", Price: 12.5},
			{ID: "3", Title: "Discovery", Artist: "Daft Punk", Price: 15},
		},
		Details: map[string]*models.Album{
			"1": {ID: "1", Title: "Blue Train", Artist: "John Coltrane"},
			"3": {
				ID:          "3",
				Title:       "Discovery",
				Artist:      "Daft Punk",
				ReleaseYear: 2001,
				Tracks: []models.Track{
					{Key: "30", Position: 1, Title: "One More Time", Duration: tu.IntPtr(320)},
					{Key: "31", Position: 2, Title: "Aerodynamic"},
				},
			},
		},
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			catalog := &tu.FakeCatalog{}
			api := services.NewAPIService("http://backend.test", nil)

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Catalog: catalog,
				API:     api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.engine == nil {
				t.Error("expected export engine to be created")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil api targets configured backend", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.API.BaseURL = "http://backend.test"

			runner := NewRunner(RunnerOpts{Config: config})

			if runner.api == nil || runner.api.BaseURL() != "http://backend.test" {
				t.Errorf("expected api for configured base URL, got %+v", runner.api)
			}
			if runner.catalog == nil {
				t.Error("expected default catalog to be set")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			runner, output := newTestRunner(nil)

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			runner, output := newTestRunner(nil)

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner, _ := newTestRunner(nil)

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			runner, output := newTestRunner(nil)

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := []string{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names = append(names, cmd.Name)
		}

		for _, want := range []string{"setup", "serve", "albums", "api", "browse", "devapi"} {
			if !slices.Contains(names, want) {
				t.Errorf("expected %q command to be registered, got %v", want, names)
			}
		}
	})
}

func TestAlbumsCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("list renders a table", func(t *testing.T) {
		runner, output := newTestRunner(testCatalog())

		if err := albumsCommand(runner).Run(ctx, []string{"albums", "list"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		for _, want := range []string{"Blue Train", "John Coltrane", "$12.50", "Discovery", "$15.00"} {
			if !strings.Contains(result, want) {
				t.Errorf("expected %q in table, got:\n%s", want, result)
			}
		}
	})

	t.Run("list with json flag", func(t *testing.T) {
		runner, output := newTestRunner(testCatalog())

		if err := albumsCommand(runner).Run(ctx, []string{"albums", "list", "--json"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"title": "Blue Train"`) {
			t.Errorf("expected JSON list, got %s", output.String())
		}
	})

	t.Run("list without albums", func(t *testing.T) {
		runner, output := newTestRunner(&tu.FakeCatalog{})

		if err := albumsCommand(runner).Run(ctx, []string{"albums", "list"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "No albums\n" {
			t.Errorf("expected empty message, got %q", output.String())
		}
	})

	t.Run("list failure wraps API error", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.FakeCatalog{Err: errors.New("HTTP 500")})

		err := albumsCommand(runner).Run(ctx, []string{"albums", "list"})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "HTTP 500") {
			t.Errorf("expected status in error, got %v", err)
		}
	})

	t.Run("show prints tracklist", func(t *testing.T) {
		runner, output := newTestRunner(testCatalog())

		if err := albumsCommand(runner).Run(ctx, []string{"albums", "show", "3"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		for _, want := range []string{"Discovery", "Artist: Daft Punk", "Released: 2001", "1. One More Time — 5:20", "2. Aerodynamic\n"} {
			if !strings.Contains(result, want) {
				t.Errorf("expected %q in output, got:\n%s", want, result)
			}
		}
	})

	t.Run("show without tracks", func(t *testing.T) {
		runner, output := newTestRunner(testCatalog())

		if err := albumsCommand(runner).Run(ctx, []string{"albums", "show", "1"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "No tracks") {
			t.Errorf("expected empty tracklist message, got %s", output.String())
		}
		if strings.Contains(output.String(), "Released:") {
			t.Errorf("expected no release line, got %s", output.String())
		}
	})

	t.Run("show requires an id", func(t *testing.T) {
		runner, _ := newTestRunner(testCatalog())

		err := albumsCommand(runner).Run(ctx, []string{"albums", "show"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("export writes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "albums.json")
		runner, output := newTestRunner(testCatalog())

		err := albumsCommand(runner).Run(ctx, []string{"albums", "export", "--format", "json", "--output", path})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected export file, got %v", err)
		}
		if !strings.Contains(string(data), "One More Time") {
			t.Errorf("expected album details in export, got %s", data)
		}
		if !strings.Contains(output.String(), "2 exported, 0 failed") {
			t.Errorf("expected summary, got %s", output.String())
		}
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(testCatalog())

		err := albumsCommand(runner).Run(ctx, []string{"albums", "export", "--format", "xml"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestAPICommand(t *testing.T) {
	ctx := context.Background()
	backend := tu.NewBackend(t, map[string]string{
		"/api/albums/": tu.AlbumListJSON,
		"/api/broken/": "status:503",
	})

	newRunner := func() (*Runner, *bytes.Buffer) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			API:    services.NewAPIService(backend.URL, nil),
			Logger: shared.NewLogger(io.Discard),
			Output: output,
		})
		return runner, output
	}

	t.Run("get prints JSON body", func(t *testing.T) {
		runner, output := newRunner()

		if err := apiCommand(runner).Run(ctx, []string{"api", "get", "api/albums/"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"title": "Blue Train"`) {
			t.Errorf("expected pretty JSON, got %s", output.String())
		}
		if backend.Hits("/api/albums/") != 1 {
			t.Errorf("expected one request, got %d", backend.Hits("/api/albums/"))
		}
	})

	t.Run("get fails on non-2xx", func(t *testing.T) {
		runner, _ := newRunner()

		err := apiCommand(runner).Run(ctx, []string{"api", "get", "/api/broken/"})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "status 503") {
			t.Errorf("expected status in error, got %v", err)
		}
	})
}

func TestFrontendRouter(t *testing.T) {
	t.Run("mounts views without proxy", func(t *testing.T) {
		runner, _ := newTestRunner(testCatalog())

		router, err := runner.frontendRouter(shared.DefaultConfig())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		patterns := router.Patterns()
		if slices.Contains(patterns, "/api/") {
			t.Errorf("expected no proxy routes, got %v", patterns)
		}
		if !slices.Contains(patterns, "/albums/{id}") {
			t.Errorf("expected album detail route, got %v", patterns)
		}
	})

	t.Run("mounts proxy prefixes when enabled", func(t *testing.T) {
		runner, _ := newTestRunner(testCatalog())
		config := shared.DefaultConfig()
		config.Server.DevProxy = true

		router, err := runner.frontendRouter(config)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		patterns := router.Patterns()
		for _, want := range []string{"/api", "/api/", "/media", "/media/"} {
			if !slices.Contains(patterns, want) {
				t.Errorf("expected %q to be proxied, got %v", want, patterns)
			}
		}
	})

	t.Run("rejects invalid proxy target", func(t *testing.T) {
		runner, _ := newTestRunner(testCatalog())
		config := shared.DefaultConfig()
		config.Server.DevProxy = true
		config.Proxy.Target = "::not a url"

		if _, err := runner.frontendRouter(config); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestSetupAndSeed(t *testing.T) {
	ctx := context.Background()
	t.Chdir(t.TempDir())

	t.Run("setup config creates file once", func(t *testing.T) {
		runner, _ := newTestRunner(nil)

		if err := setupCommand(runner).Run(ctx, []string{"setup", "config"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat("config.toml"); err != nil {
			t.Fatalf("expected config.toml, got %v", err)
		}

		if err := setupCommand(runner).Run(ctx, []string{"setup", "config"}); err == nil {
			t.Error("expected error for existing config file")
		}
	})

	t.Run("devapi seed loads sample catalogue", func(t *testing.T) {
		runner, output := newTestRunner(nil)

		if err := devapiCommand(runner).Run(ctx, []string{"devapi", "seed"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Albums: 3") || !strings.Contains(result, "Tracks: 5") {
			t.Errorf("expected seed summary, got %s", result)
		}
		if _, err := os.Stat("musicdb.db"); err != nil {
			t.Errorf("expected database file, got %v", err)
		}
	})
}
