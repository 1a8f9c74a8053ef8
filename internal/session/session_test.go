package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/credstore"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/logging"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/models"
)

// ---- fakes ----

type fakeBackend struct {
	LoginToken string
	LoginErr   error
	LoginCalls int

	RegisterToken string
	RegisterErr   error

	MeProfile *models.UserProfile
	MeErr     error
	MeCalls   int

	LastLoginEmail    string
	LastRegisterEmail string
}

func (f *fakeBackend) Login(_ context.Context, email, _ string) (string, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	return f.LoginToken, f.LoginErr
}

func (f *fakeBackend) Register(_ context.Context, _, email, _ string) (string, error) {
	f.LastRegisterEmail = email
	return f.RegisterToken, f.RegisterErr
}

func (f *fakeBackend) Me(context.Context) (*models.UserProfile, error) {
	f.MeCalls++
	return f.MeProfile, f.MeErr
}

// failStore wraps MemStore with injectable failures.
type failStore struct {
	*credstore.MemStore
	LoadErr  error
	SaveErr  error
	ClearErr error
}

func (f *failStore) Load(ctx context.Context) (string, error) {
	if f.LoadErr != nil {
		return "", f.LoadErr
	}
	return f.MemStore.Load(ctx)
}

func (f *failStore) Save(ctx context.Context, token string) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	return f.MemStore.Save(ctx, token)
}

func (f *failStore) Clear(ctx context.Context) error {
	if f.ClearErr != nil {
		return f.ClearErr
	}
	return f.MemStore.Clear(ctx)
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func profile() *models.UserProfile {
	return &models.UserProfile{ID: "u1", Name: "Alice", Email: "alice@example.org"}
}

// requireConsistent asserts the session invariants on a snapshot.
func requireConsistent(t *testing.T, snap Snapshot) {
	t.Helper()
	if snap.User != nil {
		require.NotEmpty(t, snap.Token, "user set without credential")
	}
	if snap.Lifecycle == Authenticated {
		require.NotEmpty(t, snap.Token)
		require.NotNil(t, snap.User)
	} else {
		require.False(t, snap.Token != "" && snap.User != nil && snap.Lifecycle != Authenticated,
			"credential and user present outside Authenticated")
	}
}

func storedToken(t *testing.T, s credstore.Store) string {
	t.Helper()
	tok, err := s.Load(context.Background())
	require.NoError(t, err)
	return tok
}

// ---- CheckAuthStatus ----

func TestCheckAuthStatus_NoStoredCredential(t *testing.T) {
	backend := &fakeBackend{MeProfile: profile()}
	store := New(backend, credstore.NewMemStore(), discardLogger())

	store.CheckAuthStatus(context.Background())

	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.Zero(t, backend.MeCalls, "must not call profile endpoint without a credential")
	requireConsistent(t, snap)
}

func TestCheckAuthStatus_AcceptedCredential(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	require.NoError(t, creds.Save(ctx, "T"))

	backend := &fakeBackend{MeProfile: profile()}
	store := New(backend, creds, discardLogger())

	store.CheckAuthStatus(ctx)

	snap := store.Snapshot()
	require.Equal(t, Authenticated, snap.Lifecycle)
	require.Equal(t, "T", snap.Token)
	require.Equal(t, "alice@example.org", snap.User.Email)
	requireConsistent(t, snap)
}

func TestCheckAuthStatus_RejectedCredential(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	require.NoError(t, creds.Save(ctx, "stale"))

	backend := &fakeBackend{MeErr: errors.New("unauthorized")}
	store := New(backend, creds, discardLogger())

	store.CheckAuthStatus(ctx)

	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.Empty(t, storedToken(t, creds), "rejected credential must be removed, not merely ignored")
	requireConsistent(t, snap)
}

func TestCheckAuthStatus_StorageLoadFailure(t *testing.T) {
	fs := &failStore{MemStore: credstore.NewMemStore(), LoadErr: errors.New("disk")}
	store := New(&fakeBackend{}, fs, discardLogger())

	store.CheckAuthStatus(context.Background())

	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	requireConsistent(t, snap)
}

// ---- Login ----

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	backend := &fakeBackend{LoginToken: "T", MeProfile: profile()}
	store := New(backend, creds, discardLogger())

	ok := store.Login(ctx, "alice@example.org", "pw")

	require.True(t, ok)
	snap := store.Snapshot()
	require.Equal(t, Authenticated, snap.Lifecycle)
	require.Equal(t, OpNone, snap.Pending)
	require.Empty(t, snap.LastError)
	require.Equal(t, "T", storedToken(t, creds))
	requireConsistent(t, snap)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	backend := &fakeBackend{LoginErr: errors.New("invalid credentials")}
	store := New(backend, creds, discardLogger())

	ok := store.Login(ctx, "alice@example.org", "nope")

	require.False(t, ok)
	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.Equal(t, OpNone, snap.Pending)
	require.Contains(t, snap.LastError, "invalid credentials")
	require.Empty(t, storedToken(t, creds))
	requireConsistent(t, snap)
}

func TestLogin_ProfileFetchFailure(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	backend := &fakeBackend{LoginToken: "T", MeErr: errors.New("boom")}
	store := New(backend, creds, discardLogger())

	ok := store.Login(ctx, "alice@example.org", "pw")

	require.False(t, ok)
	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.NotEmpty(t, snap.LastError)
	require.Empty(t, storedToken(t, creds), "partially-written credential must be cleared")
	requireConsistent(t, snap)
}

func TestLogin_StoragePersistFailure(t *testing.T) {
	ctx := context.Background()
	fs := &failStore{MemStore: credstore.NewMemStore(), SaveErr: errors.New("disk full")}
	backend := &fakeBackend{LoginToken: "T", MeProfile: profile()}
	store := New(backend, fs, discardLogger())

	ok := store.Login(ctx, "alice@example.org", "pw")

	require.False(t, ok)
	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.Zero(t, backend.MeCalls, "must not fetch profile before the credential is persisted")
	requireConsistent(t, snap)
}

func TestLogin_ClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{LoginErr: errors.New("first failure")}
	store := New(backend, credstore.NewMemStore(), discardLogger())

	require.False(t, store.Login(ctx, "a@b.c", "pw"))
	require.NotEmpty(t, store.Snapshot().LastError)

	backend.LoginErr = nil
	backend.LoginToken = "T"
	backend.MeProfile = profile()

	require.True(t, store.Login(ctx, "a@b.c", "pw"))
	require.Empty(t, store.Snapshot().LastError)
}

// ---- Register ----

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	backend := &fakeBackend{RegisterToken: "R", MeProfile: profile()}
	store := New(backend, creds, discardLogger())

	ok := store.Register(ctx, "Alice", "alice@example.org", "pw")

	require.True(t, ok)
	snap := store.Snapshot()
	require.Equal(t, Authenticated, snap.Lifecycle)
	require.Equal(t, "R", storedToken(t, creds))
	requireConsistent(t, snap)
}

func TestRegister_ServerRejects(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{RegisterErr: errors.New("email already in use")}
	store := New(backend, credstore.NewMemStore(), discardLogger())

	ok := store.Register(ctx, "Alice", "alice@example.org", "pw")

	require.False(t, ok)
	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.Contains(t, snap.LastError, "email already in use")
}

// ---- Logout ----

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	require.NoError(t, creds.Save(ctx, "T"))

	backend := &fakeBackend{MeProfile: profile()}
	store := New(backend, creds, discardLogger())
	store.CheckAuthStatus(ctx)
	require.Equal(t, Authenticated, store.Snapshot().Lifecycle)

	for i := 0; i < 3; i++ {
		store.Logout(ctx)

		snap := store.Snapshot()
		require.Equal(t, Unauthenticated, snap.Lifecycle)
		require.Empty(t, snap.Token)
		require.Nil(t, snap.User)
		require.Empty(t, snap.LastError)
		require.Empty(t, storedToken(t, creds))
		requireConsistent(t, snap)
	}
}

func TestLogout_ConcurrentInvocations(t *testing.T) {
	ctx := context.Background()
	creds := credstore.NewMemStore()
	require.NoError(t, creds.Save(ctx, "T"))

	backend := &fakeBackend{MeProfile: profile()}
	store := New(backend, creds, discardLogger())
	store.CheckAuthStatus(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Logout(ctx)
		}()
	}
	wg.Wait()

	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.Empty(t, storedToken(t, creds))
	requireConsistent(t, snap)
}

func TestLogout_StorageClearFailureStillLogsOut(t *testing.T) {
	ctx := context.Background()
	fs := &failStore{MemStore: credstore.NewMemStore(), ClearErr: errors.New("disk")}
	require.NoError(t, fs.MemStore.Save(ctx, "T"))

	backend := &fakeBackend{MeProfile: profile()}
	store := New(backend, fs, discardLogger())
	store.CheckAuthStatus(ctx)

	store.Logout(ctx)

	snap := store.Snapshot()
	require.Equal(t, Unauthenticated, snap.Lifecycle)
	require.Empty(t, snap.Token)
	requireConsistent(t, snap)
}
