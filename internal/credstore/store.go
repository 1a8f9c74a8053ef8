// Package credstore owns the persisted bearer credential.
//
// One logical key holds the opaque credential string; absence of the key is
// the canonical "logged out" representation. Load never treats absence as an
// error, so pre-authentication callers can probe freely.
package credstore

import "context"

// Store is the persistent-credential adapter.
//
// Contract:
//   - Load returns the stored credential, or "" with a nil error when none
//     is stored. A non-nil error means the store itself failed.
//   - Save persists the credential, replacing any previous one.
//   - Clear removes the credential; clearing an empty store is a no-op.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
