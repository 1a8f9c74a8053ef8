// Package session owns the client-side authentication state machine: the
// single source of truth for "who is logged in". It holds the current
// credential and cached profile, keeps them consistent with the persistent
// credential store, and tears everything down through one idempotent path.
package session

import (
	"context"
	"sync"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/credstore"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/logging"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/models"
)

// Lifecycle is the authentication state machine's current phase.
type Lifecycle int

const (
	Uninitialized Lifecycle = iota
	Verifying
	Authenticated
	Unauthenticated
)

func (l Lifecycle) String() string {
	switch l {
	case Uninitialized:
		return "uninitialized"
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// PendingOp distinguishes which user-initiated operation is in flight, since
// login and registration have independent loading/error surfaces.
type PendingOp int

const (
	OpNone PendingOp = iota
	OpLoggingIn
	OpRegistering
)

// Backend is the slice of the API surface the session layer needs.
// Login and Register return the issued credential; Me verifies the stored
// credential and returns the profile it belongs to.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	Me(ctx context.Context) (*models.UserProfile, error)
}

// Snapshot is a consistent, read-only view of the session.
//
// Invariants, for every observable Snapshot:
//   - User != nil implies Token != "".
//   - Lifecycle == Authenticated iff Token != "" and User != nil.
//   - Exactly one of the PendingOp values holds.
type Snapshot struct {
	Token     string
	User      *models.UserProfile
	Lifecycle Lifecycle
	Pending   PendingOp
	LastError string
}

// LoggedIn reports whether the snapshot represents an authenticated session.
func (s Snapshot) LoggedIn() bool {
	return s.Lifecycle == Authenticated
}

// Store is the session state machine. Construct exactly one per process and
// inject it where needed; it is safe for concurrent use.
//
// Store never returns errors from its actions: failures surface through
// state (LastError, Lifecycle). The in-memory credential is updated strictly
// after its paired storage operation settles, so memory and disk cannot
// drift; a storage failure forces the logged-out state instead.
type Store struct {
	backend Backend
	creds   credstore.Store
	log     logging.Logger

	mu    sync.Mutex
	state Snapshot
}

// New constructs a session store in the Uninitialized lifecycle.
func New(backend Backend, creds credstore.Store, log logging.Logger) *Store {
	return &Store{
		backend: backend,
		creds:   creds,
		log:     log,
		state:   Snapshot{Lifecycle: Uninitialized},
	}
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CheckAuthStatus verifies the persisted credential on cold start. It always
// terminates in Authenticated or Unauthenticated, never Verifying: any
// failure along the way (storage, network, rejection, malformed response)
// collapses to a full logout rather than a half-verified state.
//
// When no credential is stored, no network call is made.
func (s *Store) CheckAuthStatus(ctx context.Context) {
	s.mu.Lock()
	s.state.Lifecycle = Verifying
	s.mu.Unlock()

	token, err := s.creds.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "credential load failed on startup, forcing logout", "error", err)
		s.Logout(ctx)
		return
	}
	if token == "" {
		s.mu.Lock()
		s.state = Snapshot{Lifecycle: Unauthenticated}
		s.mu.Unlock()
		return
	}

	profile, err := s.backend.Me(ctx)
	if err != nil {
		s.log.Info(ctx, "stored credential failed verification, forcing logout", "error", err)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.state = Snapshot{Token: token, User: profile, Lifecycle: Authenticated}
	s.mu.Unlock()
	s.log.Info(ctx, "session restored", "user", profile.Email)
}

// Login authenticates with the backend. The credential is persisted before
// the profile fetch begins, and the login is not considered complete until
// the profile is retrievable: downstream code assumes Authenticated implies
// a usable profile. Any failure forces a full logout and records LastError.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	return s.authenticate(ctx, OpLoggingIn, func() (string, error) {
		return s.backend.Login(ctx, email, password)
	})
}

// Register creates an account; a successful registration also yields an
// authenticated session. Same contract as Login otherwise.
func (s *Store) Register(ctx context.Context, name, email, password string) bool {
	return s.authenticate(ctx, OpRegistering, func() (string, error) {
		return s.backend.Register(ctx, name, email, password)
	})
}

func (s *Store) authenticate(ctx context.Context, op PendingOp, obtainToken func() (string, error)) bool {
	s.mu.Lock()
	s.state.Pending = op
	s.state.LastError = ""
	s.mu.Unlock()

	token, err := obtainToken()
	if err != nil {
		s.failAuth(ctx, err.Error())
		return false
	}

	// Persist first; the in-memory credential is only set once the write
	// has settled, so the profile fetch below cannot race an unpersisted
	// token and a crash cannot leave memory ahead of disk.
	if err := s.creds.Save(ctx, token); err != nil {
		s.log.Error(ctx, "credential persist failed", "error", err)
		s.failAuth(ctx, "could not store credential")
		return false
	}

	s.mu.Lock()
	s.state.Token = token
	s.mu.Unlock()

	profile, err := s.backend.Me(ctx)
	if err != nil {
		s.failAuth(ctx, "could not load profile: "+err.Error())
		return false
	}

	s.mu.Lock()
	s.state = Snapshot{Token: token, User: profile, Lifecycle: Authenticated}
	s.mu.Unlock()
	return true
}

// failAuth tears the session down after a failed login/registration attempt
// and records a user-facing error. The partially-written credential, if any,
// is discarded.
func (s *Store) failAuth(ctx context.Context, msg string) {
	s.Logout(ctx)
	s.mu.Lock()
	s.state.LastError = msg
	s.mu.Unlock()
}

// Logout unconditionally clears the persisted credential and resets the
// session to its logged-out shape. It is idempotent and safe to invoke
// redundantly, which makes it the single teardown choke point for
// user-initiated logout, failed verification, and credential rejection
// reported by the request gateway.
//
// A storage failure during Clear is logged but does not prevent the reset:
// the in-memory session always ends logged out.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error(ctx, "credential clear failed", "error", err)
	}
	s.state = Snapshot{Lifecycle: Unauthenticated}
}
