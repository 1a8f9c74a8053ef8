package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	LoggedIn bool
	Calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.LoggedIn }

func (s *stubExec) record(name string) error {
	s.Calls = append(s.Calls, name)
	return nil
}

func (s *stubExec) Register(context.Context) error { return s.record("register") }
func (s *stubExec) Login(context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(context.Context) error   { return s.record("logout") }
func (s *stubExec) WhoAmI(context.Context) error   { return s.record("whoami") }
func (s *stubExec) Ideas(context.Context) error    { return s.record("ideas") }
func (s *stubExec) Scripts(context.Context) error  { return s.record("scripts") }
func (s *stubExec) SEO(context.Context) error      { return s.record("seo") }
func (s *stubExec) Calendar(context.Context) error { return s.record("calendar") }

func runWithInput(t *testing.T, s *stubExec, input string) string {
	t.Helper()
	var buf bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), s, func() string { return "" }, scanner, &buf)
	return buf.String()
}

func TestREPL_DispatchesCommands(t *testing.T) {
	s := &stubExec{LoggedIn: true}
	runWithInput(t, s, "login\nideas\nscripts\nseo\ncalendar\nwhoami\nlogout\nexit\n")

	assert.Equal(t, []string{"login", "ideas", "scripts", "seo", "calendar", "whoami", "logout"}, s.Calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	s := &stubExec{}
	out := runWithInput(t, s, "frobnicate\nexit\n")

	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Empty(t, s.Calls)
}

func TestREPL_HelpDependsOnAuthState(t *testing.T) {
	out := runWithInput(t, &stubExec{LoggedIn: false}, "help\nexit\n")
	assert.Contains(t, out, "register, login")

	out = runWithInput(t, &stubExec{LoggedIn: true}, "help\nexit\n")
	assert.Contains(t, out, "ideas, scripts, seo, calendar")
}

func TestREPL_EmptyLinesIgnored(t *testing.T) {
	s := &stubExec{}
	runWithInput(t, s, "\n\n  \nexit\n")
	assert.Empty(t, s.Calls)
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	s := &stubExec{}
	runWithInput(t, s, "")
	assert.Empty(t, s.Calls)
}

func TestREPL_CancelledContextStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &stubExec{}
	var buf bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader("login\nexit\n"))
	runREPL(ctx, s, func() string { return "" }, scanner, &buf)

	assert.Empty(t, s.Calls)
}
