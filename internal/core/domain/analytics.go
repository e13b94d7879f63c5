package domain

// TrendPoint is one session's average score in a performance trend.
type TrendPoint struct {
	Session      string  `json:"session"`
	AverageScore float64 `json:"average_score"`
}

// SystemStats is the institution-wide summary shown on the admin overview.
type SystemStats struct {
	Students         int          `json:"students"`
	Faculties        int          `json:"faculties"`
	Departments      int          `json:"departments"`
	Courses          int          `json:"courses"`
	InstitutionTrend []TrendPoint `json:"institution_trend"`
}

// ReferenceUniversity is one node of the university → faculty → department
// hierarchy returned by the reference-data endpoint.
type ReferenceUniversity struct {
	UniversityID int                `json:"university_id"`
	Name         string             `json:"name"`
	Faculties    []ReferenceFaculty `json:"faculties"`
}

type ReferenceFaculty struct {
	Name        string                `json:"name"`
	Departments []ReferenceDepartment `json:"departments"`
}

type ReferenceDepartment struct {
	DepartmentID int    `json:"department_id"`
	Name         string `json:"name"`
}

// DepartmentAnalytics summarizes a department's performance for the HOD view.
type DepartmentAnalytics struct {
	AverageScore    float64          `json:"average_score"`
	PassRate        float64          `json:"pass_rate"`
	HighRiskCourses []HighRiskCourse `json:"high_risk_courses"`
}

// HighRiskCourse is a course whose average score sits below the risk line.
type HighRiskCourse struct {
	CourseCode   string  `json:"course_code"`
	AverageScore float64 `json:"average_score"`
}

// Lecturer is a staff entry in the HOD lecturer listing.
type Lecturer struct {
	StaffID  int    `json:"staff_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// AdvisorStudent is a student assigned to a course advisor.
type AdvisorStudent struct {
	MatricNo string `json:"matric_no"`
	FullName string `json:"full_name"`
	Level    int    `json:"level"`
}

// ClassAnalytics is one course row of the lecturer class dashboard.
type ClassAnalytics struct {
	CourseCode     string  `json:"course_code"`
	CourseTitle    string  `json:"course_title"`
	Records        int     `json:"records"`
	PassRate       float64 `json:"pass_rate"`
	AtRiskStudents int     `json:"at_risk_students"`
}

// UploadReport is the outcome of a result-CSV import. Row failures are data,
// not errors: the upload as a whole still succeeds.
type UploadReport struct {
	Processed          int              `json:"processed"`
	CreatedEnrollments int              `json:"created_enrollments"`
	Errors             []UploadRowError `json:"errors"`
}

type UploadRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}
