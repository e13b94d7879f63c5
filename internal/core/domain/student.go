package domain

// StudentInfo identifies the student on their own dashboard.
type StudentInfo struct {
	MatricNo string `json:"matric_no"`
	FullName string `json:"full_name"`
	Level    int    `json:"level"`
}

// CourseScore is one assessed course on the student dashboard.
type CourseScore struct {
	CourseCode string  `json:"course_code"`
	CAScore    float64 `json:"ca_score"`
	ExamScore  float64 `json:"exam_score"`
	TotalScore float64 `json:"total_score"`
}

// CourseStanding places a course among the student's weak or strong areas.
type CourseStanding struct {
	CourseCode  string  `json:"course_code"`
	CourseTitle string  `json:"course_title"`
	TotalScore  float64 `json:"total_score"`
	Status      string  `json:"status,omitempty"`
}

// StudentDashboard is the aggregate payload behind the student default view.
type StudentDashboard struct {
	StudentInfo      StudentInfo      `json:"student_info"`
	GPAEstimate      float64          `json:"GPA_estimate"`
	RiskLevel        string           `json:"risk_level"`
	EngagementIndex  float64          `json:"engagement_index"`
	PredictedOutcome string           `json:"predicted_outcome"`
	RiskBreakdown    map[string]int   `json:"risk_breakdown"`
	Recommendation   string           `json:"recommendation"`
	Scores           []CourseScore    `json:"scores"`
	PerformanceTrend []TrendPoint     `json:"performance_trend"`
	WeakCourses      []CourseStanding `json:"weak_courses"`
	StrengthCourses  []CourseStanding `json:"strength_courses"`
}

// EnrolledCourse is one row of the student's course list.
type EnrolledCourse struct {
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
	CreditUnits int    `json:"credit_units"`
	Session     string `json:"session"`
	Semester    string `json:"semester"`
}

// StudySlot is one scheduled block in the personalized weekly plan.
type StudySlot struct {
	Day   string  `json:"day"`
	Focus string  `json:"focus"`
	Hours float64 `json:"hours"`
}

// StudyPlan is the weekly personalized study plan.
type StudyPlan struct {
	WeeklyTargetHours float64     `json:"weekly_target_hours"`
	WeeklySchedule    []StudySlot `json:"weekly_schedule"`
}

// PersonalizedPlan is the payload behind the personalized learning view.
type PersonalizedPlan struct {
	PersonalizedStudyPlan       StudyPlan        `json:"personalized_study_plan"`
	WeakCourses                 []CourseStanding `json:"weak_courses"`
	StrengthCourses             []CourseStanding `json:"strength_courses"`
	InterventionRecommendations []string         `json:"intervention_recommendations"`
	NextActions                 []string         `json:"next_actions"`
}
