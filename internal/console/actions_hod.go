package console

import (
	"context"

	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
)

func hodActions(env *Env) []Action {
	return []Action{
		{Label: "Department Analytics", Run: hodDepartmentAnalytics(env)},
	}
}

// hodDepartmentAnalytics fetches analytics, lecturers and high-risk courses
// together; nothing renders until all three have settled.
func hodDepartmentAnalytics(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		var (
			analytics   domain.DepartmentAnalytics
			lecturers   []domain.Lecturer
			riskCourses []domain.HighRiskCourse
		)
		err := batch(ctx,
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/hod/department-analytics", &analytics)
			},
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/hod/lecturers", &lecturers)
			},
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/hod/high-risk-courses", &riskCourses)
			},
		)
		if err != nil {
			return nil, err
		}

		summary := view.NewCard("Department Performance", "",
			view.Metrics{Items: []view.Metric{
				{Label: "Average Score", Value: num(analytics.AverageScore)},
				{Label: "Pass Rate %", Value: num(analytics.PassRate)},
				{Label: "High-Risk Courses", Value: itoa(len(analytics.HighRiskCourses))},
				{Label: "Lecturers", Value: itoa(len(lecturers))},
			}},
		)

		lecturerRows := make([]view.Row, 0, len(lecturers))
		for _, l := range lecturers {
			lecturerRows = append(lecturerRows, view.Row{
				"staff_id":  itoa(l.StaffID),
				"full_name": l.FullName,
				"email":     l.Email,
			})
		}
		lecturerCard := view.NewCard("Lecturers", "", view.Table{
			Columns: []view.Column{
				{Key: "staff_id", Label: "ID"},
				{Key: "full_name", Label: "Name"},
				{Key: "email", Label: "Email"},
			},
			Rows: lecturerRows,
		})

		riskRows := make([]view.Row, 0, len(riskCourses))
		for _, c := range riskCourses {
			riskRows = append(riskRows, view.Row{
				"course_code":   c.CourseCode,
				"average_score": num(c.AverageScore),
			})
		}
		riskCard := view.NewCard("High-Risk Courses", "", view.Table{
			Columns: []view.Column{
				{Key: "course_code", Label: "Course"},
				{Key: "average_score", Label: "Average Score"},
			},
			Rows: riskRows,
		})

		return []view.Node{summary, lecturerCard, riskCard}, nil
	}
}
