package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

// tokenName is the logical key the token is stored under in every scope.
const tokenName = "tutorhub_token"

// Codec signs and encrypts tokens at rest.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec derives an HMAC key and an AES-256 key from secret with HKDF and
// returns a codec whose values expire after maxAge (0 keeps them forever).
func NewCodec(secret string, maxAge time.Duration) (*Codec, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session codec: secret must be at least 32 bytes, got %d", len(secret))
	}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("tutorhub durable session"))
	hashKey := make([]byte, 64)
	blockKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, err
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(maxAge / time.Second))
	return &Codec{sc: sc}, nil
}

// Encode signs and encrypts token.
func (c *Codec) Encode(token string) (string, error) {
	return c.sc.Encode(tokenName, token)
}

// Decode reverses Encode. Tampered, expired or foreign values fail with a
// securecookie decode error.
func (c *Codec) Decode(value string) (string, error) {
	var token string
	err := c.sc.Decode(tokenName, value, &token)
	return token, err
}

// FileScope keeps an encoded token in a file. It is the durable scope for
// single-host deployments.
type FileScope struct {
	path  string
	codec *Codec
}

// NewFileScope stores the token for deviceID under dir.
func NewFileScope(dir, deviceID string, codec *Codec) *FileScope {
	return &FileScope{
		path:  filepath.Join(dir, filepath.Base(deviceID)+".token"),
		codec: codec,
	}
}

// Load returns "" for a missing file. A file that no longer decodes
// (expired, or written under another secret) is treated as absent.
func (f *FileScope) Load(context.Context) (string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	token, err := f.codec.Decode(string(b))
	if err != nil {
		if IsUndecodable(err) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (f *FileScope) Save(_ context.Context, token string) error {
	v, err := f.codec.Encode(token)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(v), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileScope) Clear(context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// IsUndecodable reports whether err means a stored value can no longer be
// read (bad MAC, expired, other secret) rather than an I/O failure.
func IsUndecodable(err error) bool {
	var scErr securecookie.Error
	return errors.As(err, &scErr) && scErr.IsDecode()
}
