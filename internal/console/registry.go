// Package console turns an authenticated session into an interactive
// dashboard: a role-keyed action registry, the dashboard controller that
// sequences action runs, and the per-role action bodies.
package console

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
)

// Action is a named, independently triggerable operation. Run fetches
// whatever the action needs and returns the full content region; it never
// writes output itself, so the controller can discard stale completions.
type Action struct {
	Label string
	Run   func(ctx context.Context) ([]view.Node, error)
}

// Env carries the collaborators every action body may use.
type Env struct {
	Gateway  ports.Gateway
	Notifier ports.Notifier
	Prompter ports.Prompter
	Log      zerolog.Logger
}

// ActionsFor resolves the ordered action list for a role. Order matters:
// the first action is the default view and controls lay out left to right.
// An unrecognized role yields an empty list; the dashboard substitutes the
// unsupported-role fallback.
func ActionsFor(role domain.Role, env *Env) []Action {
	switch role {
	case domain.RoleAdmin:
		return adminActions(env)
	case domain.RoleHOD:
		return hodActions(env)
	case domain.RoleCourseAdvisor:
		return advisorActions(env)
	case domain.RoleLecturer:
		return lecturerActions(env)
	case domain.RoleStudent:
		return studentActions(env)
	default:
		return nil
	}
}
