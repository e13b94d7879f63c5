package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
)

type memStore struct {
	m map[string]string
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool) {
	v, ok := s.m[key]
	return v, ok
}

func (s *memStore) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *memStore) Remove(key string) error {
	delete(s.m, key)
	return nil
}

type stubGateway struct {
	handler func(method, path string, opts ports.CallOptions) (*ports.Envelope, error)
	calls   []string
}

func (g *stubGateway) Call(_ context.Context, method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
	g.calls = append(g.calls, method+" "+path)
	return g.handler(method, path, opts)
}

func (g *stubGateway) Download(_ context.Context, path, fallback string) (string, error) {
	g.calls = append(g.calls, "DOWNLOAD "+path)
	return fallback, nil
}

func (g *stubGateway) Busy() bool { return false }

func env(t *testing.T, data string) *ports.Envelope {
	t.Helper()
	return &ports.Envelope{Data: json.RawMessage(data)}
}

const universitiesJSON = `[
	{"university_id":3,"name":"State Tech","location":"Lagos"},
	{"university_id":7,"name":"Unity College","location":"Abuja"}
]`

func newTestService(t *testing.T, store *memStore, handler func(method, path string, opts ports.CallOptions) (*ports.Envelope, error)) (*SessionService, *stubGateway) {
	t.Helper()
	gw := &stubGateway{handler: handler}
	svc := NewSessionService(gw, store, zerolog.Nop())
	return svc, gw
}

func loginAndMeHandler(t *testing.T) func(method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
	t.Helper()
	return func(method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
		switch path {
		case "/api/auth/universities":
			return env(t, universitiesJSON), nil
		case "/api/auth/login":
			return env(t, `{"access_token":"abc","user":{"id":1,"name":"J Doe","role":"STUDENT","university_id":3,"university_name":"State Tech"}}`), nil
		case "/api/auth/me":
			return env(t, `{"id":1,"full_name":"J Doe","role":"STUDENT","university_id":3}`), nil
		default:
			t.Fatalf("unexpected call: %s %s", method, path)
			return nil, nil
		}
	}
}

func TestLogin_ValidationNeverReachesNetwork(t *testing.T) {
	svc, gw := newTestService(t, newMemStore(), loginAndMeHandler(t))

	err := svc.Login(context.Background(), ports.LoginInput{Identifier: "jdoe", Password: "secret"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Select your university first" {
		t.Fatalf("message = %q", ve.Message)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("validation failure must not issue requests, got %v", gw.calls)
	}

	err = svc.Login(context.Background(), ports.LoginInput{UniversityID: 3, Password: "secret"})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "identifier is required" {
		t.Fatalf("message = %q", ve.Message)
	}
}

// Scenario: successful login persists all three keys and authenticates.
func TestLogin_Success(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(t, store, loginAndMeHandler(t))

	if _, err := svc.LoadUniversities(context.Background()); err != nil {
		t.Fatalf("LoadUniversities: %v", err)
	}

	err := svc.Login(context.Background(), ports.LoginInput{
		Identifier:   "jdoe",
		Password:     "secret",
		UniversityID: 3,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if svc.State() != StateAuthenticated {
		t.Fatalf("state = %v, want authenticated", svc.State())
	}
	sess := svc.Current()
	if sess.Token != "abc" || sess.Role != domain.RoleStudent {
		t.Fatalf("session = %+v", sess)
	}
	if sess.User == nil || sess.User.Name != "J Doe" || sess.User.UniversityName != "State Tech" {
		t.Fatalf("user = %+v", sess.User)
	}

	// All three keys persisted as a group.
	if tok, _ := store.Get(ports.StoreKeyToken); tok != "abc" {
		t.Fatalf("persisted token = %q", tok)
	}
	if role, _ := store.Get(ports.StoreKeyRole); role != "STUDENT" {
		t.Fatalf("persisted role = %q", role)
	}
	userJSON, ok := store.Get(ports.StoreKeyUser)
	if !ok {
		t.Fatalf("user not persisted")
	}
	var u domain.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil || u.ID != 1 {
		t.Fatalf("persisted user = %q (%v)", userJSON, err)
	}
}

func TestLogin_FailureLeavesPriorSessionUntouched(t *testing.T) {
	store := newMemStore()
	failNext := false
	svc, _ := newTestService(t, store, func(method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
		if path == "/api/auth/login" && failNext {
			return nil, domain.NewRequestError(http.StatusUnauthorized, "Invalid credentials")
		}
		return loginAndMeHandler(t)(method, path, opts)
	})

	if err := svc.Login(context.Background(), ports.LoginInput{Identifier: "jdoe", Password: "secret", UniversityID: 3}); err != nil {
		t.Fatalf("first login: %v", err)
	}

	failNext = true
	err := svc.Login(context.Background(), ports.LoginInput{Identifier: "jdoe", Password: "wrong", UniversityID: 3})
	var reqErr *domain.RequestError
	if !errors.As(err, &reqErr) || reqErr.Message != "Invalid credentials" {
		t.Fatalf("expected propagated server message, got %v", err)
	}

	if svc.State() != StateAuthenticated {
		t.Fatalf("state = %v, prior session must survive", svc.State())
	}
	if svc.Current().Token != "abc" {
		t.Fatalf("prior session mutated: %+v", svc.Current())
	}
	if tok, _ := store.Get(ports.StoreKeyToken); tok != "abc" {
		t.Fatalf("persisted token mutated: %q", tok)
	}
}

// Round-trip: a restore from the persisted session yields the same role and
// the same university_name resolution as the original login.
func TestRestore_RoundTripMatchesLogin(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(t, store, loginAndMeHandler(t))

	if _, err := svc.LoadUniversities(context.Background()); err != nil {
		t.Fatalf("LoadUniversities: %v", err)
	}
	if err := svc.Login(context.Background(), ports.LoginInput{Identifier: "jdoe", Password: "secret", UniversityID: 3}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	original := svc.Current()

	// Fresh load: a new service instance over the same store.
	restored, _ := newTestService(t, store, loginAndMeHandler(t))
	if _, err := restored.LoadUniversities(context.Background()); err != nil {
		t.Fatalf("LoadUniversities: %v", err)
	}
	if err := restored.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	sess := restored.Current()
	if sess.Role != original.Role {
		t.Fatalf("restored role = %v, want %v", sess.Role, original.Role)
	}
	if sess.User.UniversityName != original.User.UniversityName {
		t.Fatalf("restored university_name = %q, want %q", sess.User.UniversityName, original.User.UniversityName)
	}
	if restored.State() != StateAuthenticated {
		t.Fatalf("state = %v", restored.State())
	}
}

func TestRestore_NoStoredTokenEndsAnonymous(t *testing.T) {
	svc, gw := newTestService(t, newMemStore(), loginAndMeHandler(t))

	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if svc.State() != StateAnonymous {
		t.Fatalf("state = %v, want anonymous", svc.State())
	}
	if len(gw.calls) != 0 {
		t.Fatalf("no token stored, yet requests issued: %v", gw.calls)
	}
}

// Scenario: a rejected stored token empties the persisted storage and the
// in-memory session; the caller shows the login form with no notification.
func TestRestore_RejectedTokenClearsEverything(t *testing.T) {
	store := newMemStore()
	store.m[ports.StoreKeyToken] = "stale"
	store.m[ports.StoreKeyUser] = `{"id":9}`
	store.m[ports.StoreKeyRole] = "HOD"

	svc, _ := newTestService(t, store, func(method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
		return nil, domain.NewRequestError(http.StatusUnauthorized, "token expired")
	})

	err := svc.Restore(context.Background())
	if !errors.Is(err, domain.ErrSessionRestoreFailed) {
		t.Fatalf("expected ErrSessionRestoreFailed, got %v", err)
	}

	if svc.State() != StateRestoreFailed {
		t.Fatalf("state = %v", svc.State())
	}
	if svc.Current().Authenticated() {
		t.Fatalf("in-memory session not cleared: %+v", svc.Current())
	}
	for _, key := range []string{ports.StoreKeyToken, ports.StoreKeyUser, ports.StoreKeyRole} {
		if _, ok := store.Get(key); ok {
			t.Fatalf("key %q not removed from store", key)
		}
	}
}

func TestRestore_MalformedPayloadIsAFailure(t *testing.T) {
	store := newMemStore()
	store.m[ports.StoreKeyToken] = "tok"

	svc, _ := newTestService(t, store, func(method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
		return env(t, `{}`), nil
	})

	if err := svc.Restore(context.Background()); !errors.Is(err, domain.ErrSessionRestoreFailed) {
		t.Fatalf("expected ErrSessionRestoreFailed, got %v", err)
	}
	if _, ok := store.Get(ports.StoreKeyToken); ok {
		t.Fatalf("stale token not removed")
	}
}

func TestRestore_UnknownUniversityYieldsEmptyName(t *testing.T) {
	store := newMemStore()
	store.m[ports.StoreKeyToken] = "tok"

	svc, _ := newTestService(t, store, func(method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
		switch path {
		case "/api/auth/universities":
			return env(t, universitiesJSON), nil
		case "/api/auth/me":
			return env(t, `{"id":4,"full_name":"New Staff","role":"LECTURER","university_id":99}`), nil
		}
		t.Fatalf("unexpected path %s", path)
		return nil, nil
	})

	if _, err := svc.LoadUniversities(context.Background()); err != nil {
		t.Fatalf("LoadUniversities: %v", err)
	}
	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if name := svc.Current().User.UniversityName; name != "" {
		t.Fatalf("university_name = %q, want empty for absent match", name)
	}
}

// Token/user/role are all present or all absent after every mutation.
func TestSessionAtomicity(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(t, store, loginAndMeHandler(t))

	checkAtomic := func(stage string) {
		t.Helper()
		_, hasToken := store.Get(ports.StoreKeyToken)
		_, hasUser := store.Get(ports.StoreKeyUser)
		_, hasRole := store.Get(ports.StoreKeyRole)
		if hasToken != hasUser || hasUser != hasRole {
			t.Fatalf("%s: mixed persisted state token=%v user=%v role=%v", stage, hasToken, hasUser, hasRole)
		}
		sess := svc.Current()
		inMem := sess.Token != ""
		if (sess.User != nil) != inMem || (sess.Role != "") != inMem {
			t.Fatalf("%s: mixed in-memory state %+v", stage, sess)
		}
	}

	checkAtomic("initial")
	_, _ = svc.LoadUniversities(context.Background())
	if err := svc.Login(context.Background(), ports.LoginInput{Identifier: "jdoe", Password: "secret", UniversityID: 3}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	checkAtomic("after login")
	svc.Logout()
	checkAtomic("after logout")
}

// Calling logout twice leaves the same empty state as calling it once.
func TestLogout_Idempotent(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(t, store, loginAndMeHandler(t))

	_, _ = svc.LoadUniversities(context.Background())
	if err := svc.Login(context.Background(), ports.LoginInput{Identifier: "jdoe", Password: "secret", UniversityID: 3}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc.Logout()
	svc.Logout()

	if svc.State() != StateAnonymous {
		t.Fatalf("state = %v", svc.State())
	}
	if svc.Current().Authenticated() {
		t.Fatalf("session survived logout: %+v", svc.Current())
	}
	if len(store.m) != 0 {
		t.Fatalf("store not empty after logout: %v", store.m)
	}
}

// Authenticated gates the dashboard: it hands out the session only once a
// full identity is in effect, and again refuses after logout.
func TestAuthenticated_GuardsDashboardEntry(t *testing.T) {
	svc, _ := newTestService(t, newMemStore(), loginAndMeHandler(t))

	if _, err := svc.Authenticated(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("before login: err = %v, want ErrNotAuthenticated", err)
	}

	if err := svc.Login(context.Background(), ports.LoginInput{Identifier: "jdoe", Password: "secret", UniversityID: 3}); err != nil {
		t.Fatalf("login: %v", err)
	}
	session, err := svc.Authenticated()
	if err != nil {
		t.Fatalf("after login: %v", err)
	}
	if session.Role != domain.RoleStudent || session.User == nil {
		t.Fatalf("unexpected session: %+v", session)
	}

	svc.Logout()
	if _, err := svc.Authenticated(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("after logout: err = %v, want ErrNotAuthenticated", err)
	}
}

func TestValidateBootstrap(t *testing.T) {
	if err := ValidateBootstrap(ports.BootstrapInput{}); err != nil {
		t.Fatalf("all-optional payload must validate: %v", err)
	}
	if err := ValidateBootstrap(ports.BootstrapInput{EstablishedYear: 1999}); err != nil {
		t.Fatalf("valid year rejected: %v", err)
	}

	err := ValidateBootstrap(ports.BootstrapInput{EstablishedYear: 12})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
