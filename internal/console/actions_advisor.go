package console

import (
	"context"

	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
)

func advisorActions(env *Env) []Action {
	return []Action{
		{Label: "Advisory Dashboard", Run: advisorDashboard(env)},
	}
}

func advisorDashboard(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		var (
			students []domain.AdvisorStudent
			atRisk   []domain.AdvisorStudent
		)
		err := batch(ctx,
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/advisor/students", &students)
			},
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/advisor/at-risk", &atRisk)
			},
		)
		if err != nil {
			return nil, err
		}

		summary := view.NewCard("Advisor Summary", "",
			view.Metrics{Items: []view.Metric{
				{Label: "Assigned Students", Value: itoa(len(students))},
				{Label: "At-Risk", Value: itoa(len(atRisk))},
			}},
		)

		rows := make([]view.Row, 0, len(students))
		for _, s := range students {
			rows = append(rows, view.Row{
				"matric_no": s.MatricNo,
				"full_name": s.FullName,
				"level":     itoa(s.Level),
			})
		}
		roster := view.NewCard("Assigned Students", "", view.Table{
			Columns: []view.Column{
				{Key: "matric_no", Label: "Matric No"},
				{Key: "full_name", Label: "Name"},
				{Key: "level", Label: "Level"},
			},
			Rows: rows,
		})

		return []view.Node{summary, roster}, nil
	}
}
