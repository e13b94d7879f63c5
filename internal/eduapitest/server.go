// Package eduapitest provides an in-process fake of the EduInsight backend
// for integration tests: real HTTP, real bearer tokens, canned data.
package eduapitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduinsight/console-client/internal/core/domain"
)

// User seeds one login-capable account.
type User struct {
	ID           int
	Name         string
	Identifier   string
	Password     string
	Role         domain.Role
	UniversityID int
}

type userRecord struct {
	User
	passwordHash []byte
}

// Report seeds the binary report endpoint for one format.
type Report struct {
	Filename string
	Payload  []byte
}

// Server is the fake backend. Seed it with universities, users, endpoint
// data and reports before pointing a gateway at URL().
type Server struct {
	t   *testing.T
	srv *httptest.Server

	secret []byte

	mu           sync.Mutex
	universities []domain.University
	users        []*userRecord
	data         map[string]any
	reports      map[string]Report
}

func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		t:       t,
		secret:  []byte("eduapitest-secret"),
		data:    make(map[string]any),
		reports: make(map[string]Report),
	}

	e := echo.New()
	e.HideBanner = true

	e.GET("/api/auth/universities", s.handleUniversities)
	e.POST("/api/auth/login", s.handleLogin)
	e.GET("/api/auth/me", s.handleMe)
	e.GET("/api/student/personalized-learning-report", s.handleReport)

	// Every remaining contract endpoint serves whatever SetData seeded.
	for _, path := range []string{
		"/api/admin/system-stats",
		"/api/admin/reference-data",
		"/api/hod/department-analytics",
		"/api/hod/lecturers",
		"/api/hod/high-risk-courses",
		"/api/advisor/students",
		"/api/advisor/at-risk",
		"/api/lecturer/class-analytics",
		"/api/student/dashboard",
		"/api/student/courses",
		"/api/student/personalized-learning",
	} {
		e.GET(path, s.handleData)
	}
	e.POST("/api/admin/bootstrap-structure", s.handleData)
	e.POST("/api/lecturer/upload-results", s.handleData)

	s.srv = httptest.NewServer(e)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the base URL to point a gateway at.
func (s *Server) URL() string {
	return s.srv.URL
}

func (s *Server) AddUniversity(u domain.University) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.universities = append(s.universities, u)
}

func (s *Server) AddUser(u User) {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
	if err != nil {
		s.t.Fatalf("eduapitest: hash password: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, &userRecord{User: u, passwordHash: hash})
}

// SetData seeds the data field served for path.
func (s *Server) SetData(path string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[path] = data
}

// SetReport seeds the binary report for a format ("csv" or "pdf").
func (s *Server) SetReport(format string, report Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[format] = report
}

// TokenFor mints a valid bearer token for a seeded user, for tests that
// exercise session restore without going through login.
func (s *Server) TokenFor(identifier string) string {
	s.t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Identifier == identifier {
			return s.mintToken(&u.User)
		}
	}
	s.t.Fatalf("eduapitest: no user %q", identifier)
	return ""
}

// ── handlers ─────────────────────────────────────────────────────────────────

type envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleUniversities(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, envelope{Data: s.universities, Message: "Universities fetched"})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req struct {
		Identifier   string `json:"identifier"`
		Password     string `json:"password"`
		UniversityID int    `json:"university_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Message: "malformed request"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Identifier != req.Identifier {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
			break
		}
		if u.UniversityID != req.UniversityID {
			return c.JSON(http.StatusForbidden, envelope{Message: "This account does not belong to the selected university"})
		}
		return c.JSON(http.StatusOK, envelope{
			Message: "Login successful",
			Data: map[string]any{
				"access_token": s.mintToken(&u.User),
				"user": map[string]any{
					"id":              u.ID,
					"name":            u.Name,
					"role":            u.Role,
					"university_id":   u.UniversityID,
					"university_name": domain.ResolveUniversityName(s.universities, u.UniversityID),
				},
			},
		})
	}
	return c.JSON(http.StatusUnauthorized, envelope{Message: "Invalid credentials"})
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := s.authenticate(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: map[string]any{
		"id":            user.ID,
		"full_name":     user.Name,
		"role":          user.Role,
		"university_id": user.UniversityID,
	}})
}

func (s *Server) handleData(c echo.Context) error {
	if _, err := s.authenticate(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[c.Path()]
	if !ok {
		return c.JSON(http.StatusNotFound, envelope{Message: "no data seeded for " + c.Path()})
	}
	return c.JSON(http.StatusOK, envelope{Data: data})
}

func (s *Server) handleReport(c echo.Context) error {
	if _, err := s.authenticate(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[c.QueryParam("format")]
	if !ok {
		return c.JSON(http.StatusBadRequest, envelope{Message: "unsupported format"})
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	return c.Blob(http.StatusOK, "application/octet-stream", report.Payload)
}

// authenticate validates the bearer token and resolves the seeded user.
// Echo's default error handler turns the returned HTTPError into a
// {"message": ...} body, which is envelope-compatible for the client.
func (s *Server) authenticate(c echo.Context) (*User, error) {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	identifier, _ := claims["sub"].(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Identifier == identifier {
			user := u.User
			return &user, nil
		}
	}
	return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown subject")
}

func (s *Server) mintToken(u *User) string {
	claims := jwt.MapClaims{
		"sub":           u.Identifier,
		"role":          u.Role,
		"university_id": u.UniversityID,
		"exp":           time.Now().Add(time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		// Handlers run on server goroutines, so Fatalf is off the table.
		s.t.Errorf("eduapitest: sign token: %v", err)
	}
	return signed
}
