// Package service owns the client-side session state machine. All session
// mutation happens here; every other component reads the session through
// accessors or triggers transitions through Login, Restore and Logout.
package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
)

// State enumerates the session controller states.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateRestoreFailed
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateRestoreFailed:
		return "restore_failed"
	default:
		return "unknown"
	}
}

// SessionService mediates login, logout and session restore, persisting the
// session to the store after every successful change.
type SessionService struct {
	gateway ports.Gateway
	store   ports.SessionStore
	log     zerolog.Logger

	state        State
	session      domain.Session
	universities []domain.University
}

func NewSessionService(gateway ports.Gateway, store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		gateway: gateway,
		store:   store,
		log:     log,
		state:   StateAnonymous,
	}
}

// State returns the current controller state. The dashboard may only be
// rendered for StateAuthenticated; everything else routes to the login form.
func (s *SessionService) State() State {
	return s.state
}

// Current returns a copy of the session.
func (s *SessionService) Current() domain.Session {
	return s.session
}

// Authenticated returns the active session, or ErrNotAuthenticated when no
// full identity is in effect. Callers gating authenticated-only surfaces
// use this instead of inspecting State.
func (s *SessionService) Authenticated() (domain.Session, error) {
	if !s.session.Authenticated() {
		return domain.Session{}, domain.ErrNotAuthenticated
	}
	return s.session, nil
}

// Token supplies the bearer token for the gateway; "" when anonymous.
func (s *SessionService) Token() string {
	return s.session.Token
}

// Universities returns the reference list loaded at startup.
func (s *SessionService) Universities() []domain.University {
	return s.universities
}

// LoadUniversities fetches the immutable university reference list. Called
// once per run, before restore, so profile reconstruction can join against it.
func (s *SessionService) LoadUniversities(ctx context.Context) ([]domain.University, error) {
	env, err := s.gateway.Call(ctx, http.MethodGet, "/api/auth/universities", ports.CallOptions{})
	if err != nil {
		return nil, err
	}
	var list []domain.University
	if err := env.Decode(&list); err != nil {
		return nil, err
	}
	s.universities = list
	return list, nil
}

// mePayload is the shape of the who-am-I endpoint response.
type mePayload struct {
	ID           int         `json:"id"`
	FullName     string      `json:"full_name"`
	Role         domain.Role `json:"role"`
	UniversityID int         `json:"university_id"`
}

// Restore resumes a persisted session. No stored token ends in Anonymous.
// A stored token is validated against the who-am-I endpoint; any failure
// (network, 401, malformed payload) clears both the store and the in-memory
// session immediately and returns ErrSessionRestoreFailed. Callers must not
// surface that error to the user: an expired token on startup is simply
// "not logged in".
func (s *SessionService) Restore(ctx context.Context) error {
	token, ok := s.store.Get(ports.StoreKeyToken)
	if !ok || token == "" {
		s.state = StateAnonymous
		return nil
	}

	// The token goes into the in-memory session first so the gateway
	// attaches it to the validation call.
	s.session = domain.Session{Token: token}

	env, err := s.gateway.Call(ctx, http.MethodGet, "/api/auth/me", ports.CallOptions{})
	if err != nil {
		s.failRestore(err)
		return domain.ErrSessionRestoreFailed
	}

	var me mePayload
	if err := env.Decode(&me); err != nil || me.Role == "" {
		s.failRestore(err)
		return domain.ErrSessionRestoreFailed
	}

	profile := &domain.UserProfile{
		ID:           me.ID,
		Name:         me.FullName,
		Role:         me.Role,
		UniversityID: me.UniversityID,
		// Absent match yields an empty name, not an error.
		UniversityName: domain.ResolveUniversityName(s.universities, me.UniversityID),
	}
	s.session = domain.Session{Token: token, User: profile, Role: me.Role}
	s.persist()
	s.state = StateAuthenticated

	if !me.Role.Known() {
		s.log.Warn().Str("role", me.Role.String()).Msg("unrecognized role tag, dashboard will show the fallback view")
	}
	s.log.Info().Str("role", me.Role.String()).Msg("session restored")
	return nil
}

// loginRequest is the login endpoint request body.
type loginRequest struct {
	Identifier   string `json:"identifier"`
	Password     string `json:"password"`
	UniversityID int    `json:"university_id"`
}

// loginPayload is the login endpoint response data.
type loginPayload struct {
	AccessToken string             `json:"access_token"`
	User        domain.UserProfile `json:"user"`
}

// Login authenticates against the backend. Validation failures never reach
// the network. On success the session is replaced in memory and then all
// three keys are persisted as a group. On failure the prior session, if any,
// is left untouched and the server's message propagates for display.
func (s *SessionService) Login(ctx context.Context, in ports.LoginInput) error {
	if err := ValidateLogin(in); err != nil {
		return err
	}

	prior := s.state
	s.state = StateAuthenticating

	env, err := s.gateway.Call(ctx, http.MethodPost, "/api/auth/login", ports.CallOptions{
		Body: loginRequest{
			Identifier:   in.Identifier,
			Password:     in.Password,
			UniversityID: in.UniversityID,
		},
	})
	if err != nil {
		s.state = prior
		return err
	}

	var res loginPayload
	if err := env.Decode(&res); err != nil || res.AccessToken == "" {
		s.state = prior
		return domain.NewRequestError(0, "")
	}

	s.session = domain.Session{
		Token: res.AccessToken,
		User:  &res.User,
		Role:  res.User.Role,
	}
	s.persist()
	s.state = StateAuthenticated

	if !res.User.Role.Known() {
		s.log.Warn().Str("role", res.User.Role.String()).Msg("unrecognized role tag, dashboard will show the fallback view")
	}
	s.log.Info().Str("role", res.User.Role.String()).Msg("login successful")
	return nil
}

// Logout clears the in-memory session and all persisted keys. Idempotent;
// always succeeds.
func (s *SessionService) Logout() {
	s.session = domain.Session{}
	s.state = StateAnonymous
	s.clearStore()
}

// persist writes the three session keys as a group, immediately after a
// successful state change. Store failures are logged, never fatal: the
// in-memory session stays authoritative for this run.
func (s *SessionService) persist() {
	if err := s.store.Set(ports.StoreKeyToken, s.session.Token); err != nil {
		s.log.Warn().Err(err).Msg("persist token failed")
	}
	if b, err := json.Marshal(s.session.User); err == nil {
		if err := s.store.Set(ports.StoreKeyUser, string(b)); err != nil {
			s.log.Warn().Err(err).Msg("persist user failed")
		}
	}
	if err := s.store.Set(ports.StoreKeyRole, s.session.Role.String()); err != nil {
		s.log.Warn().Err(err).Msg("persist role failed")
	}
}

func (s *SessionService) clearStore() {
	for _, key := range []string{ports.StoreKeyToken, ports.StoreKeyUser, ports.StoreKeyRole} {
		if err := s.store.Remove(key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("clear session key failed")
		}
	}
}

// failRestore transitions to RestoreFailed: the stale persisted copy is
// removed synchronously and the in-memory session is cleared.
func (s *SessionService) failRestore(cause error) {
	s.session = domain.Session{}
	s.clearStore()
	s.state = StateRestoreFailed
	s.log.Debug().Err(cause).Msg("session restore rejected, cleared stale session")
}
