// Package cli is the interactive terminal front end of the CreatorGenius
// client. It owns no session logic: every auth decision is delegated to the
// session store, every backend call to the api client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/api"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/config"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/credstore"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/logging"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/session"
)

// sessioner is the slice of the session store the CLI needs.
// *session.Store satisfies it; tests provide a stub.
type sessioner interface {
	CheckAuthStatus(ctx context.Context)
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, name, email, password string) bool
	Logout(ctx context.Context)
	Snapshot() session.Snapshot
}

type App struct {
	config  *config.Config
	session sessioner
	api     api.Client
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger
}

// NewApp wires the full client pipeline: device sealing key, local database,
// credential store, request gateway, session store. The gateway's
// unauthorized hook is pointed at the session store's Logout so a rejected
// credential tears the session down exactly once per failing request chain.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	key, err := credstore.LoadOrCreateSealingKey(filepath.Join(cfg.DataDir, "device.secret"))
	if err != nil {
		return nil, err
	}

	db, err := credstore.OpenDatabase(ctx, filepath.Join(cfg.DataDir, "client.db"))
	if err != nil {
		return nil, err
	}

	creds := credstore.NewSQLiteStore(db, key)
	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, creds, log)
	store := session.New(client, creds, log)
	client.SetUnauthorizedHandler(store.Logout)

	return &App{
		config:  cfg,
		session: store,
		api:     client,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		log:     log,
	}, nil
}

// Run verifies the stored credential, reports the resulting state, and
// drops into the command loop.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Checking session...")
	a.session.CheckAuthStatus(ctx)

	if snap := a.session.Snapshot(); snap.LoggedIn() {
		fmt.Fprintf(a.out, "Logged in as %s\n", snap.User.Email)
	} else {
		fmt.Fprintln(a.out, "Not logged in (use 'login' or 'register')")
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin), a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().LoggedIn()
}

// status renders the prompt suffix, e.g. "(alice@example.org)".
func (a *App) status() string {
	snap := a.session.Snapshot()
	if snap.LoggedIn() {
		return "(" + snap.User.Email + ")"
	}
	return ""
}
