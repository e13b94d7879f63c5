package console

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
	"github.com/eduinsight/console-client/internal/metrics"
)

// Control is one dashboard action button. Exactly one control is active at
// any time.
type Control struct {
	Label  string
	Active bool
}

// Dashboard sequences action runs for an authenticated role: it owns the
// active selection, clears the content region before each run, commits the
// result, and surfaces action failures as transient notifications. Each run
// is stamped with a generation; a completion whose generation has been
// superseded is discarded instead of overwriting newer content.
type Dashboard struct {
	role       domain.Role
	actions    []Action
	surface    view.Surface
	notifier   ports.Notifier
	log        zerolog.Logger
	generation atomic.Uint64

	mu     sync.Mutex
	active int
}

func NewDashboard(role domain.Role, actions []Action, surface view.Surface, notifier ports.Notifier, log zerolog.Logger) *Dashboard {
	return &Dashboard{
		role:     role,
		actions:  actions,
		surface:  surface,
		notifier: notifier,
		log:      log,
	}
}

// Controls returns one entry per action, marking the active one.
func (d *Dashboard) Controls() []Control {
	d.mu.Lock()
	defer d.mu.Unlock()

	controls := make([]Control, len(d.actions))
	for i, a := range d.actions {
		controls[i] = Control{Label: a.Label, Active: i == d.active}
	}
	return controls
}

// Open renders the dashboard for the first time: the fallback view for an
// empty action list, otherwise the first action runs immediately with no
// user interaction.
func (d *Dashboard) Open(ctx context.Context) {
	if len(d.actions) == 0 {
		d.surface.Replace([]view.Node{
			view.NewCard("Info", "", view.Text{Body: "Unsupported role: " + d.role.String()}),
		})
		d.log.Warn().Str("role", d.role.String()).Msg("no actions registered for role")
		return
	}
	d.Select(ctx, 0)
}

// Select marks the action at idx active and runs it. The content region is
// cleared before the run; on failure it legitimately stays blank and the
// error message appears as a notification instead.
func (d *Dashboard) Select(ctx context.Context, idx int) {
	d.mu.Lock()
	if idx < 0 || idx >= len(d.actions) {
		d.mu.Unlock()
		return
	}
	d.active = idx
	action := d.actions[idx]
	d.mu.Unlock()

	gen := d.generation.Add(1)

	// Single-view replacement: clear before producing new content.
	d.surface.Replace(nil)

	nodes, err := action.Run(ctx)

	if d.generation.Load() != gen {
		metrics.ActionRunsTotal.WithLabelValues(d.role.String(), action.Label, "stale").Inc()
		d.log.Debug().Str("action", action.Label).Msg("discarding superseded action result")
		return
	}
	if err != nil {
		metrics.ActionRunsTotal.WithLabelValues(d.role.String(), action.Label, "error").Inc()
		d.notifier.Notify(err.Error(), true)
		return
	}

	d.surface.Replace(nodes)
	metrics.ActionRunsTotal.WithLabelValues(d.role.String(), action.Label, "ok").Inc()
}

// Rerun re-executes the currently active action.
func (d *Dashboard) Rerun(ctx context.Context) {
	d.mu.Lock()
	idx := d.active
	d.mu.Unlock()
	d.Select(ctx, idx)
}
