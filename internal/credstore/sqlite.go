package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/cryptox"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/dbx"
)

const credentialKey = "credential"

// nonceSize is the AES-GCM nonce length prefixed to the sealed value.
const nonceSize = 12

// SQLiteStore persists the credential in a single-row key/value table,
// sealed at rest with a device-local key.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

// NewSQLiteStore returns a store over db using key to seal stored values.
// The key must be 32 bytes (see cryptox.DeriveKey).
func NewSQLiteStore(db *sql.DB, key []byte) *SQLiteStore {
	return &SQLiteStore{db: db, key: key}
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credential WHERE key = ?`, credentialKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}

	if len(value) < nonceSize {
		return "", fmt.Errorf("stored credential is malformed")
	}

	plain, err := cryptox.Open(value[nonceSize:], value[:nonceSize], s.key)
	if err != nil {
		return "", fmt.Errorf("failed to unseal credential: %w", err)
	}
	return string(plain), nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	ciphertext, nonce, err := cryptox.Seal([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("failed to seal credential: %w", err)
	}

	// Stored value is nonce || ciphertext.
	value := append(nonce, ciphertext...)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credential (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, credentialKey, value)
		if err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credential WHERE key = ?`, credentialKey)
	if err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
