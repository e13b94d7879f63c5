package ports

// LoginInput carries the credentials collected by the login form. All three
// fields are checked client-side before any network call.
type LoginInput struct {
	Identifier   string `validate:"required"`
	Password     string `validate:"required"`
	UniversityID int    `validate:"required,gt=0"`
}

// BootstrapInput is the structured payload for the admin auto-setup action.
// Every field is optional; the server fills in defaults for whatever is
// omitted. EstablishedYear is bounded when present.
type BootstrapInput struct {
	UniversityName  string `json:"university_name,omitempty"`
	Location        string `json:"location,omitempty"`
	EstablishedYear int    `json:"established_year,omitempty" validate:"omitempty,gte=1000,lte=2100"`
	FacultyName     string `json:"faculty_name,omitempty"`
	DepartmentName  string `json:"department_name,omitempty"`
}
