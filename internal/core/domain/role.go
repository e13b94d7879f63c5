package domain

// Role is the dashboard role assigned by the backend.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleHOD           Role = "HOD"
	RoleCourseAdvisor Role = "COURSE_ADVISOR"
	RoleLecturer      Role = "LECTURER"
	RoleStudent       Role = "STUDENT"
)

// KnownRoles lists the closed set of roles the console can dispatch on, in
// no particular order. A tag outside this set is still a valid Role value —
// it simply renders the unsupported-role fallback instead of a dashboard.
var KnownRoles = []Role{RoleAdmin, RoleHOD, RoleCourseAdvisor, RoleLecturer, RoleStudent}

var knownRoles = func() map[Role]struct{} {
	m := make(map[Role]struct{}, len(KnownRoles))
	for _, r := range KnownRoles {
		m[r] = struct{}{}
	}
	return m
}()

// Known reports whether r belongs to the closed role set.
func (r Role) Known() bool {
	_, ok := knownRoles[r]
	return ok
}

// String returns the raw role tag, preserving unrecognized values so the
// fallback view can name them.
func (r Role) String() string {
	return string(r)
}
