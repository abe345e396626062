package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

// CSRFKey derives the 32-byte CSRF key from the authentication key.
func (k SessionKeys) CSRFKey() ([]byte, error) {
	if len(k.AuthKey) < 32 {
		return nil, fmt.Errorf("APP_AUTH_KEY must decode to at least 32 bytes, got %d", len(k.AuthKey))
	}
	return k.AuthKey[:32], nil
}

// LoadSessionKeys decodes the base64 session keys. Without configured keys
// it generates ephemeral ones so development servers start; sessions then do
// not survive a restart.
func LoadSessionKeys(env ENV) (*SessionKeys, bool, error) {
	if env.AppAuthKey == "" && env.AppEncKey == "" {
		return &SessionKeys{
			AuthKey: securecookie.GenerateRandomKey(64),
			EncKey:  securecookie.GenerateRandomKey(32),
		}, true, nil
	}
	if env.AppAuthKey == "" {
		return nil, false, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, false, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, false, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, false, nil
}

// GenerateSessionKeys writes a fresh key pair in .env format to w and, when
// path is not empty, to that file.
func GenerateSessionKeys(w io.Writer, path string) error {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return fmt.Errorf("could not generate authentication key")
	}
	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return fmt.Errorf("could not generate encryption key")
	}

	lines := fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey))

	if _, err := io.WriteString(w, lines); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(lines), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", path, err)
	}
	return nil
}
