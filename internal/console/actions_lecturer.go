package console

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
)

func lecturerActions(env *Env) []Action {
	return []Action{
		{Label: "Class Dashboard", Run: lecturerClassDashboard(env)},
		{Label: "Upload Results", Run: lecturerUploadResults(env)},
	}
}

func lecturerClassDashboard(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		var rows []domain.ClassAnalytics
		if err := getJSON(ctx, env.Gateway, "/api/lecturer/class-analytics", &rows); err != nil {
			return nil, err
		}

		totalRecords, totalAtRisk := 0, 0
		for _, r := range rows {
			totalRecords += r.Records
			totalAtRisk += r.AtRiskStudents
		}

		summary := view.NewCard("Class Summary", "",
			view.Metrics{Items: []view.Metric{
				{Label: "Courses", Value: itoa(len(rows))},
				{Label: "Total Records", Value: itoa(totalRecords)},
				{Label: "At-Risk Students", Value: itoa(totalAtRisk)},
			}},
		)

		tableRows := make([]view.Row, 0, len(rows))
		for _, r := range rows {
			tableRows = append(tableRows, view.Row{
				"course_code":      r.CourseCode,
				"course_title":     r.CourseTitle,
				"records":          itoa(r.Records),
				"pass_rate":        num(r.PassRate),
				"at_risk_students": itoa(r.AtRiskStudents),
			})
		}
		analytics := view.NewCard("Course Analytics", "", view.Table{
			Columns: []view.Column{
				{Key: "course_code", Label: "Course"},
				{Key: "course_title", Label: "Title"},
				{Key: "records", Label: "Records"},
				{Key: "pass_rate", Label: "Pass Rate %"},
				{Key: "at_risk_students", Label: "At-Risk"},
			},
			Rows: tableRows,
		})

		return []view.Node{summary, analytics}, nil
	}
}

// lecturerUploadResults prompts for the academic session, semester and a CSV
// path, then posts the file as multipart form data. Row-level failures come
// back inside a successful response and render as data, not as an error.
func lecturerUploadResults(env *Env) func(ctx context.Context) ([]view.Node, error) {
	return func(ctx context.Context) ([]view.Node, error) {
		session, err := askRequired(env.Prompter, "Session (e.g. 2025/2026)", "session")
		if err != nil {
			return nil, err
		}
		semester, err := askRequired(env.Prompter, "Semester (e.g. FIRST)", "semester")
		if err != nil {
			return nil, err
		}
		csvPath, err := askRequired(env.Prompter, "CSV file path", "csv file")
		if err != nil {
			return nil, err
		}

		payload, contentType, err := buildUploadPayload(session, semester, csvPath)
		if err != nil {
			return nil, err
		}

		res, err := env.Gateway.Call(ctx, http.MethodPost, "/api/lecturer/upload-results", ports.CallOptions{
			Multipart: &ports.MultipartPayload{ContentType: contentType, Body: payload},
		})
		if err != nil {
			return nil, err
		}

		var report domain.UploadReport
		if err := res.Decode(&report); err != nil {
			return nil, err
		}

		msg := res.Message
		if msg == "" {
			msg = "Upload complete"
		}
		env.Notifier.Notify(msg, false)

		summary := view.NewCard("Upload Summary", "",
			view.Metrics{Items: []view.Metric{
				{Label: "Processed", Value: itoa(report.Processed)},
				{Label: "Enrollments Created", Value: itoa(report.CreatedEnrollments)},
				{Label: "Errors", Value: itoa(len(report.Errors))},
			}},
		)
		nodes := []view.Node{summary}

		if len(report.Errors) > 0 {
			errRows := make([]view.Row, 0, len(report.Errors))
			for _, e := range report.Errors {
				errRows = append(errRows, view.Row{"row": itoa(e.Row), "error": e.Error})
			}
			nodes = append(nodes, view.NewCard("Rejected Rows", "", view.Table{
				Columns: []view.Column{
					{Key: "row", Label: "Row"},
					{Key: "error", Label: "Error"},
				},
				Rows: errRows,
			}))
		}
		return nodes, nil
	}
}

// buildUploadPayload assembles the multipart body: session and semester as
// form fields plus the CSV file. The content type carries the boundary and
// must pass through the gateway untouched.
func buildUploadPayload(session, semester, csvPath string) (*bytes.Buffer, string, error) {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		return nil, "", &domain.ValidationError{Message: fmt.Sprintf("cannot read CSV file: %v", err)}
	}

	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	if err := mw.WriteField("session", session); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("semester", semester); err != nil {
		return nil, "", err
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(csvPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

func askRequired(p ports.Prompter, label, field string) (string, error) {
	raw, err := p.Ask(label)
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", &domain.ValidationError{Message: field + " is required"}
	}
	return value, nil
}
