// Command educonsole is the EduInsight terminal console: sign in against the
// backend, then browse the dashboard views your role grants.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eduinsight/console-client/internal/console"
	"github.com/eduinsight/console-client/internal/console/view"
	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
	"github.com/eduinsight/console-client/internal/core/service"
	"github.com/eduinsight/console-client/internal/infrastructure/api"
	"github.com/eduinsight/console-client/internal/infrastructure/store"
	"github.com/eduinsight/console-client/internal/pkg/config"
	"github.com/eduinsight/console-client/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx := context.Background()

	sessionStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("session store unavailable")
	}

	var svc *service.SessionService
	gateway := api.NewClient(api.Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.HTTPTimeout,
		DownloadDir: cfg.DownloadDir,
		Token: func() string {
			if svc == nil {
				return ""
			}
			return svc.Token()
		},
		OnBusyChange: func(busy bool) {
			if busy {
				fmt.Fprint(os.Stderr, "… loading\r")
			} else {
				fmt.Fprint(os.Stderr, "          \r")
			}
		},
		Logger: log,
	})
	svc = service.NewSessionService(gateway, sessionStore, log)

	notifier := &terminalNotifier{out: os.Stderr}
	prompter := &terminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}

	if _, err := svc.LoadUniversities(ctx); err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.APIBaseURL).Msg("backend unreachable")
	}

	surface := view.NewTerminal(os.Stdout)

	for {
		if !startSession(ctx, svc, notifier, prompter) {
			return
		}

		session, err := svc.Authenticated()
		if err != nil {
			continue
		}
		fmt.Printf("\nSigned in as %s — %s (%s)\n", session.User.Name, session.User.UniversityName, session.Role)

		env := &console.Env{Gateway: gateway, Notifier: notifier, Prompter: prompter, Log: log}
		dash := console.NewDashboard(session.Role, console.ActionsFor(session.Role, env), surface, notifier, log)
		dash.Open(ctx)

		if !dashboardLoop(ctx, dash, svc, notifier, prompter) {
			return
		}
	}
}

func buildStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStore, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, err := store.ConnectRedis(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client, log), nil
	case config.BackendFile:
		dir := cfg.StateDir
		if dir == "" {
			base, err := os.UserConfigDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(base, "eduinsight")
		}
		return store.NewFileStore(dir, log)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// startSession resumes a persisted session when possible, otherwise walks
// the sign-in form. A rejected stored token falls through to the form with
// no notice: on startup an expired session is simply "not signed in".
// Returns false when the user quits at the form.
func startSession(ctx context.Context, svc *service.SessionService, notifier ports.Notifier, prompter ports.Prompter) bool {
	if svc.State() == service.StateAuthenticated {
		return true
	}
	_ = svc.Restore(ctx)
	if svc.State() == service.StateAuthenticated {
		return true
	}
	return loginLoop(ctx, svc, notifier, prompter)
}

// loginLoop prompts for credentials until a login succeeds. Returns false
// when the user quits instead.
func loginLoop(ctx context.Context, svc *service.SessionService, notifier ports.Notifier, prompter ports.Prompter) bool {
	universities := svc.Universities()

	for {
		fmt.Println("\nEduInsight — sign in (or type q to quit)")
		universityID, ok := chooseUniversity(universities, notifier, prompter)
		if !ok {
			return false
		}

		identifier, err := prompter.Ask("Matric no / staff ID / email")
		if err != nil || strings.EqualFold(identifier, "q") {
			return false
		}
		password, err := prompter.Ask("Password")
		if err != nil {
			return false
		}

		err = svc.Login(ctx, ports.LoginInput{
			Identifier:   strings.TrimSpace(identifier),
			Password:     password,
			UniversityID: universityID,
		})
		if err == nil {
			notifier.Notify("Signed in", false)
			return true
		}
		notifier.Notify(err.Error(), true)
	}
}

// chooseUniversity lists the universities and reads a selection. A single
// registered university is selected automatically.
func chooseUniversity(universities []domain.University, notifier ports.Notifier, prompter ports.Prompter) (int, bool) {
	if len(universities) == 0 {
		notifier.Notify("No universities registered yet", true)
		return 0, false
	}
	if len(universities) == 1 {
		u := universities[0]
		fmt.Printf("University: %s\n", universityLabel(u))
		return u.UniversityID, true
	}

	for i, u := range universities {
		fmt.Printf("  %d) %s\n", i+1, universityLabel(u))
	}
	// A typo keeps the user on the form; only an explicit q leaves it.
	for {
		answer, err := prompter.Ask("University")
		if err != nil || strings.EqualFold(strings.TrimSpace(answer), "q") {
			return 0, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || idx < 1 || idx > len(universities) {
			notifier.Notify("Select your university first", true)
			continue
		}
		return universities[idx-1].UniversityID, true
	}
}

func universityLabel(u domain.University) string {
	if u.Location == "" {
		return u.Name
	}
	return fmt.Sprintf("%s (%s)", u.Name, u.Location)
}

// dashboardLoop reads commands until the user logs out (true) or quits
// (false).
func dashboardLoop(ctx context.Context, dash *console.Dashboard, svc *service.SessionService, notifier ports.Notifier, prompter ports.Prompter) bool {
	for {
		fmt.Println()
		for i, c := range dash.Controls() {
			marker := " "
			if c.Active {
				marker = "*"
			}
			fmt.Printf("  %s %d) %s\n", marker, i+1, c.Label)
		}
		answer, err := prompter.Ask("View number, (r)efresh, (o)ut, (q)uit")
		if err != nil {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "q", "quit":
			return false
		case "o", "out", "logout":
			svc.Logout()
			notifier.Notify("Signed out", false)
			return true
		case "r", "refresh":
			dash.Rerun(ctx)
		default:
			idx, err := strconv.Atoi(strings.TrimSpace(answer))
			if err != nil || idx < 1 || idx > len(dash.Controls()) {
				notifier.Notify("Enter a view number, r, o or q", true)
				continue
			}
			dash.Select(ctx, idx-1)
		}
	}
}

// terminalNotifier is the transient-notice surface: one line on stderr so
// notices never mix with rendered dashboard content on stdout.
type terminalNotifier struct {
	out *os.File
}

func (n *terminalNotifier) Notify(message string, isError bool) {
	prefix := "✔"
	if isError {
		prefix = "✖"
	}
	fmt.Fprintf(n.out, "%s %s\n", prefix, message)
}

// terminalPrompter reads one line per question from stdin.
type terminalPrompter struct {
	in  *bufio.Reader
	out *os.File
}

func (p *terminalPrompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
