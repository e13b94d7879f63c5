package domain

// UserProfile is the identity attached to an authenticated session.
type UserProfile struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	UniversityID   int    `json:"university_id"`
	UniversityName string `json:"university_name"`
}

// Session holds the token, user and role for the duration of a login.
// The three fields are set and cleared together; a partially populated
// session is never persisted.
type Session struct {
	Token string
	User  *UserProfile
	Role  Role
}

// Authenticated reports whether the session carries a full identity.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil && s.Role != ""
}

// University is an entry in the immutable reference list fetched once per
// run. It resolves display names and populates the login selection.
type University struct {
	UniversityID int    `json:"university_id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
}

// ResolveUniversityName looks up id in the reference list. An absent match
// yields an empty name, not an error.
func ResolveUniversityName(list []University, id int) string {
	for _, u := range list {
		if u.UniversityID == id {
			return u.Name
		}
	}
	return ""
}
