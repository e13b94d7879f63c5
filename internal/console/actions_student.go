package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
)

func studentActions(env *Env) []Action {
	return []Action{
		{Label: "My Dashboard", Run: studentDashboard(env)},
		{Label: "My Courses", Run: studentCourses(env)},
		{Label: "Personalized Plan", Run: studentPersonalizedPlan(env)},
		{Label: "Download Report", Run: studentDownloadReport(env)},
	}
}

func studentDashboard(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		var (
			dash    domain.StudentDashboard
			courses []domain.EnrolledCourse
		)
		err := batch(ctx,
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/student/dashboard", &dash)
			},
			func(ctx context.Context) error {
				return getJSON(ctx, env.Gateway, "/api/student/courses", &courses)
			},
		)
		if err != nil {
			return nil, err
		}

		riskLevel := dash.RiskLevel
		if riskLevel == "" {
			riskLevel = "N/A"
		}
		summary := view.NewCard("Student Overview", "",
			view.Metrics{Items: []view.Metric{
				{Label: "Matric No", Value: dash.StudentInfo.MatricNo},
				{Label: "Level", Value: itoa(dash.StudentInfo.Level)},
				{Label: "GPA Estimate", Value: num(dash.GPAEstimate)},
				{Label: "Risk Level", Value: riskLevel},
				{Label: "Engagement %", Value: num(dash.EngagementIndex)},
			}},
		)

		outcome := dash.PredictedOutcome
		if outcome == "" {
			outcome = "Insufficient data"
		}
		predictive := view.NewCard("Predictive Learning Insight", "",
			view.Text{Body: outcome},
			view.Chips{Items: []string{
				fmt.Sprintf("LOW: %d", dash.RiskBreakdown["LOW"]),
				fmt.Sprintf("MEDIUM: %d", dash.RiskBreakdown["MEDIUM"]),
				fmt.Sprintf("HIGH: %d", dash.RiskBreakdown["HIGH"]),
			}},
		)

		recommendation := dash.Recommendation
		if recommendation == "" {
			recommendation = "No recommendation yet."
		}
		rec := view.NewCard("Recommendation", "", view.Text{Body: recommendation})

		scoreRows := make([]view.Row, 0, len(dash.Scores))
		for _, s := range dash.Scores {
			scoreRows = append(scoreRows, view.Row{
				"course_code": s.CourseCode,
				"ca_score":    num(s.CAScore),
				"exam_score":  num(s.ExamScore),
				"total_score": num(s.TotalScore),
			})
		}
		scores := view.NewCard("Performance Scores", "", view.Table{
			Columns: []view.Column{
				{Key: "course_code", Label: "Course"},
				{Key: "ca_score", Label: "CA"},
				{Key: "exam_score", Label: "Exam"},
				{Key: "total_score", Label: "Total"},
			},
			Rows: scoreRows,
		})

		trend := view.NewCard("Performance Trend by Session", "", trendTable(dash.PerformanceTrend))
		weak := view.NewCard("Weak Learning Areas", "", standingTable(dash.WeakCourses, true))
		strength := view.NewCard("Strength Areas", "", standingTable(dash.StrengthCourses, false))

		return []view.Node{
			summary,
			predictive,
			rec,
			enrolledCoursesCard(courses),
			scores,
			trend,
			weak,
			strength,
		}, nil
	}
}

func studentCourses(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		var courses []domain.EnrolledCourse
		if err := getJSON(ctx, env.Gateway, "/api/student/courses", &courses); err != nil {
			return nil, err
		}
		return []view.Node{enrolledCoursesCard(courses)}, nil
	}
}

func studentPersonalizedPlan(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		var plan domain.PersonalizedPlan
		if err := getJSON(ctx, env.Gateway, "/api/student/personalized-learning", &plan); err != nil {
			return nil, err
		}

		overview := view.NewCard("Weekly Personalized Study Plan", "",
			view.Metrics{Items: []view.Metric{
				{Label: "Target Hours / Week", Value: num(plan.PersonalizedStudyPlan.WeeklyTargetHours)},
				{Label: "Weak Courses", Value: itoa(len(plan.WeakCourses))},
				{Label: "Strong Courses", Value: itoa(len(plan.StrengthCourses))},
			}},
		)

		scheduleRows := make([]view.Row, 0, len(plan.PersonalizedStudyPlan.WeeklySchedule))
		for _, slot := range plan.PersonalizedStudyPlan.WeeklySchedule {
			scheduleRows = append(scheduleRows, view.Row{
				"day":   slot.Day,
				"focus": slot.Focus,
				"hours": num(slot.Hours),
			})
		}
		timetable := view.NewCard("Study Timetable", "", view.Table{
			Columns: []view.Column{
				{Key: "day", Label: "Day"},
				{Key: "focus", Label: "Learning Focus"},
				{Key: "hours", Label: "Hours"},
			},
			Rows: scheduleRows,
		})

		interventions := view.NewCard("Intervention Recommendations", "",
			view.List{Items: plan.InterventionRecommendations})
		next := view.NewCard("Next Learning Actions", "",
			view.List{Items: plan.NextActions})

		return []view.Node{overview, timetable, interventions, next}, nil
	}
}

// studentDownloadReport asks for the export format and saves the report.
func studentDownloadReport(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		raw, err := env.Prompter.Ask("Format (csv/pdf)")
		if err != nil {
			return nil, err
		}
		format := strings.ToLower(strings.TrimSpace(raw))
		if format == "" {
			format = "csv"
		}
		if format != "csv" && format != "pdf" {
			return nil, &domain.ValidationError{Message: "format must be csv or pdf"}
		}

		saved, err := env.Gateway.Download(ctx,
			"/api/student/personalized-learning-report?format="+format,
			"personalized_report."+format,
		)
		if err != nil {
			return nil, err
		}

		env.Notifier.Notify(strings.ToUpper(format)+" report downloaded", false)

		return []view.Node{
			view.NewCard("Export Personalized Learning Report", "",
				view.Text{Body: "Saved to " + saved}),
		}, nil
	}
}

func enrolledCoursesCard(courses []domain.EnrolledCourse) view.Card {
	rows := make([]view.Row, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, view.Row{
			"course_code":  c.CourseCode,
			"course_title": c.CourseTitle,
			"credit_units": itoa(c.CreditUnits),
			"session":      c.Session,
			"semester":     c.Semester,
		})
	}
	return view.NewCard("Enrolled Courses", "", view.Table{
		Columns: []view.Column{
			{Key: "course_code", Label: "Code"},
			{Key: "course_title", Label: "Course Title"},
			{Key: "credit_units", Label: "Units"},
			{Key: "session", Label: "Session"},
			{Key: "semester", Label: "Semester"},
		},
		Rows: rows,
	})
}

func standingTable(standings []domain.CourseStanding, withStatus bool) view.Table {
	columns := []view.Column{
		{Key: "course_code", Label: "Course"},
		{Key: "course_title", Label: "Title"},
		{Key: "total_score", Label: "Score"},
	}
	if withStatus {
		columns = append(columns, view.Column{Key: "status", Label: "Status"})
	}

	rows := make([]view.Row, 0, len(standings))
	for _, s := range standings {
		row := view.Row{
			"course_code":  s.CourseCode,
			"course_title": s.CourseTitle,
			"total_score":  num(s.TotalScore),
		}
		if withStatus {
			row["status"] = s.Status
		}
		rows = append(rows, row)
	}
	return view.Table{Columns: columns, Rows: rows}
}
