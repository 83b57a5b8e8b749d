package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the album backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	compact := cmd.Bool("json")

	r.logger.Info("GET request", "base_url", r.api.BaseURL(), "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !compact)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
