// Package crypto cifra os tokens OAuth antes de irem para o banco.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const sealedPrefix = "enc:v1:"

var (
	ErrInvalidKey       = errors.New("token encryption key must be 32 bytes hex encoded")
	ErrMalformedPayload = errors.New("malformed encrypted token")
)

// TokenCipher usa XChaCha20-Poly1305. Um *TokenCipher nil não cifra nada,
// o que permite rodar localmente sem chave configurada.
type TokenCipher struct {
	key []byte
}

// NewTokenCipher recebe a chave em hexadecimal. Chave vazia devolve nil, nil.
func NewTokenCipher(hexKey string) (*TokenCipher, error) {
	if hexKey == "" {
		return nil, nil
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}

	return &TokenCipher{key: key}, nil
}

func (c *TokenCipher) Encrypt(plain string) (string, error) {
	if c == nil || plain == "" {
		return plain, nil
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plain), nil)

	return sealedPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt aceita valores gravados antes da chave existir (sem prefixo) e os devolve como estão
func (c *TokenCipher) Decrypt(value string) (string, error) {
	if !strings.HasPrefix(value, sealedPrefix) {
		return value, nil
	}

	if c == nil {
		return "", errors.New("encrypted token found but no encryption key configured")
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", ErrMalformedPayload
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	if len(raw) < aead.NonceSize() {
		return "", ErrMalformedPayload
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]

	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting token: %w", err)
	}

	return string(plain), nil
}
