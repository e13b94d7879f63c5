package console

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
	"github.com/eduinsight/console-client/internal/core/service"
)

func adminActions(env *Env) []Action {
	return []Action{
		{Label: "Overview", Run: adminOverview(env)},
		{Label: "Auto Setup", Run: adminAutoSetup(env)},
	}
}

// adminOverview batches system stats and the reference hierarchy, then
// builds the institution summary, trend and structure cards.
func adminOverview(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		var (
			stats     domain.SystemStats
			hierarchy []domain.ReferenceUniversity
		)
		err := batch(ctx,
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/admin/system-stats", &stats)
			},
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/admin/reference-data", &hierarchy)
			},
		)
		if err != nil {
			return nil, err
		}

		summary := view.NewCard("Institution Summary", "",
			view.Metrics{Items: []view.Metric{
				{Label: "Students", Value: itoa(stats.Students)},
				{Label: "Faculties", Value: itoa(stats.Faculties)},
				{Label: "Departments", Value: itoa(stats.Departments)},
				{Label: "Courses", Value: itoa(stats.Courses)},
			}},
		)

		trend := view.NewCard("Performance Trend", "", trendTable(stats.InstitutionTrend))

		structure := view.NewCard("Institution Structure", "", view.Table{
			Columns: []view.Column{
				{Key: "university", Label: "University"},
				{Key: "faculty", Label: "Faculty"},
				{Key: "department", Label: "Department"},
				{Key: "department_id", Label: "Dept ID"},
			},
			Rows: flattenHierarchy(hierarchy),
		})

		return []view.Node{summary, trend, structure}, nil
	}
}

// flattenHierarchy turns the university → faculty → department tree into
// one row per department.
func flattenHierarchy(hierarchy []domain.ReferenceUniversity) []view.Row {
	var rows []view.Row
	for _, u := range hierarchy {
		for _, f := range u.Faculties {
			for _, d := range f.Departments {
				rows = append(rows, view.Row{
					"university":    u.Name,
					"faculty":       f.Name,
					"department":    d.Name,
					"department_id": itoa(d.DepartmentID),
				})
			}
		}
	}
	return rows
}

func trendTable(points []domain.TrendPoint) view.Table {
	rows := make([]view.Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, view.Row{"session": p.Session, "average_score": num(p.AverageScore)})
	}
	return view.Table{
		Columns: []view.Column{
			{Key: "session", Label: "Session"},
			{Key: "average_score", Label: "Average Score"},
		},
		Rows: rows,
	}
}

// adminAutoSetup collects a structured bootstrap payload, validates it
// client-side, posts it, and re-renders the overview.
func adminAutoSetup(env *Env) func(ctx context.Context) ([]view.Node, error) {
	overview := adminOverview(env)
	return func(ctx context.Context) ([]view.Node, error) {
		in, err := collectBootstrapInput(env.Prompter)
		if err != nil {
			return nil, err
		}
		if err := service.ValidateBootstrap(*in); err != nil {
			return nil, err
		}

		res, err := env.Gateway.Call(ctx, http.MethodPost, "/api/admin/bootstrap-structure", ports.CallOptions{Body: in})
		if err != nil {
			return nil, err
		}

		msg := res.Message
		if msg == "" {
			msg = "Institution structure ready"
		}
		env.Notifier.Notify(msg, false)

		return overview(ctx)
	}
}

func collectBootstrapInput(p ports.Prompter) (*ports.BootstrapInput, error) {
	in := &ports.BootstrapInput{}

	fields := []struct {
		label string
		set   func(string) error
	}{
		{"University name (optional)", func(s string) error { in.UniversityName = s; return nil }},
		{"Location (optional)", func(s string) error { in.Location = s; return nil }},
		{"Established year (optional)", func(s string) error {
			if s == "" {
				return nil
			}
			year, err := strconv.Atoi(s)
			if err != nil {
				return &domain.ValidationError{Message: "established year must be a number"}
			}
			in.EstablishedYear = year
			return nil
		}},
		{"Faculty name (optional)", func(s string) error { in.FacultyName = s; return nil }},
		{"Department name (optional)", func(s string) error { in.DepartmentName = s; return nil }},
	}

	for _, f := range fields {
		raw, err := p.Ask(f.label)
		if err != nil {
			return nil, err
		}
		if err := f.set(strings.TrimSpace(raw)); err != nil {
			return nil, err
		}
	}
	return in, nil
}
