// Package envelope implements the shared-secret cipher that wraps adopter and
// foster PII payloads on the wire. The server and any trusted client hold the
// same key; everything else sees an opaque `{"data": "<ciphertext>"}` blob.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrDecrypt indicates the ciphertext was produced under a different key or
// is malformed. Callers treat it as a bad request, not a server fault.
var ErrDecrypt = errors.New("envelope: cannot decrypt payload")

// Wire is the JSON wrapper carrying a sealed payload between client and
// server.
type Wire struct {
	Data string `json:"data"`
}

const nonceSize = 12

// Cipher seals and opens JSON payloads with AES-256-GCM under a static
// process-wide key.
type Cipher struct {
	aead cipher.AEAD
}

// New derives a 256-bit key from the configured secret and returns a Cipher.
func New(key string) (*Cipher, error) {
	if key == "" {
		return nil, errors.New("envelope: key is required")
	}
	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Seal serializes v to JSON and encrypts it. A fresh random nonce is drawn
// for every call, so two seals of the same payload never compare equal.
// The wire format is base64(nonce || ciphertext).
func (c *Cipher) Seal(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts data produced by Seal and unmarshals the plaintext into dst.
// Any tampering, truncation or key mismatch yields ErrDecrypt.
func (c *Cipher) Open(data string, dst any) error {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return ErrDecrypt
	}
	if len(raw) <= nonceSize {
		return ErrDecrypt
	}
	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return ErrDecrypt
	}
	if err := json.Unmarshal(plaintext, dst); err != nil {
		return ErrDecrypt
	}
	return nil
}
