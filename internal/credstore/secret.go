package credstore

import (
	"fmt"
	"os"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/common"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/cryptox"
)

// secretFileSize is 32 bytes of device secret followed by 16 bytes of salt.
const secretFileSize = 48

// LoadOrCreateSealingKey returns the 32-byte key used to seal the stored
// credential. The key is derived from a random device secret kept in a
// 0600-permission file at path; the file is created on first run. This file
// stands in for the platform secure enclave on headless systems.
func LoadOrCreateSealingKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		raw = common.GenerateRandByteArray(secretFileSize)
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write device secret: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read device secret: %w", err)
	}

	if len(raw) != secretFileSize {
		return nil, fmt.Errorf("device secret file is malformed")
	}

	return cryptox.DeriveKey(raw[:32], raw[32:]), nil
}
