// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"

	"github.com/ya7on/tutti/pkg/ipcserver"
	"github.com/ya7on/tutti/pkg/tuttiapi"
)

// Handler returns the ipcserver.Handler that answers unary requests by
// translating each TuttiApi variant into the matching Supervisor call.
func (s *Supervisor) Handler() ipcserver.Handler {
	return func(ctx context.Context, body tuttiapi.TuttiApi) (tuttiapi.TuttiApi, error) {
		switch req := body.(type) {
		case *tuttiapi.Ping:
			return &tuttiapi.Pong{}, nil
		case *tuttiapi.Up:
			if err := s.Up(ctx, req.Project, req.Services); err != nil {
				return &tuttiapi.Error{ProjectID: req.Project.ID, Message: err.Error()}, nil
			}
			return &tuttiapi.Pong{}, nil
		case *tuttiapi.Down:
			if err := s.Down(ctx, req.ProjectID); err != nil {
				return &tuttiapi.Error{ProjectID: req.ProjectID, Message: err.Error()}, nil
			}
			return &tuttiapi.Pong{}, nil
		case *tuttiapi.Shutdown:
			if err := s.Shutdown(ctx); err != nil {
				return &tuttiapi.Error{Message: err.Error()}, nil
			}
			return &tuttiapi.Pong{}, nil
		case *tuttiapi.Subscribe:
			// Every connection implicitly receives the Stream frames
			// forwarded by Server.ForwardEvents; there is nothing
			// further to do for an explicit Subscribe request.
			return &tuttiapi.Pong{}, nil
		default:
			return &tuttiapi.Error{Message: "unsupported request"}, nil
		}
	}
}
