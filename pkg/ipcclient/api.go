// SPDX-License-Identifier: BSD-3-Clause

package ipcclient

import (
	"context"
	"fmt"

	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// Ping checks whether the daemon is alive. It returns true for a Pong reply
// and false for any other reply body; getting no reply before ctx is done,
// or a closed connection, is returned as an error.
func (c *Client) Ping(ctx context.Context) (bool, error) {
	resp, err := c.Send(ctx, &tuttiapi.Ping{})
	if err != nil {
		return false, err
	}

	_, ok := resp.(*tuttiapi.Pong)
	return ok, nil
}

// Up requests that the named services of project (and their transitive
// dependencies) be started, replacing any previously stored configuration
// snapshot for the project.
func (c *Client) Up(ctx context.Context, project tuttiapi.Project, services []string) error {
	resp, err := c.Send(ctx, &tuttiapi.Up{Project: project, Services: services})
	if err != nil {
		return err
	}

	return asError(resp)
}

// Down requests that every running service of projectID be torn down.
func (c *Client) Down(ctx context.Context, projectID tuttiapi.ProjectID) error {
	resp, err := c.Send(ctx, &tuttiapi.Down{ProjectID: projectID})
	if err != nil {
		return err
	}

	return asError(resp)
}

// Shutdown requests that the daemon drain every project and exit.
func (c *Client) Shutdown(ctx context.Context) error {
	resp, err := c.Send(ctx, &tuttiapi.Shutdown{})
	if err != nil {
		return err
	}

	return asError(resp)
}

// asError translates an Error response body into a Go error, treating any
// other response body as success.
func asError(body tuttiapi.TuttiApi) error {
	if errResp, ok := body.(*tuttiapi.Error); ok {
		return fmt.Errorf("%w: %s", ErrRequestFailed, errResp.Message)
	}

	return nil
}
