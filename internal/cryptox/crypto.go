// Package cryptox wraps the primitives used to keep the persisted session
// confidential at rest: an argon2id key derivation and AES-GCM sealing of
// JSON documents.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys returned by DeriveKey (AES-256).
const KeySize = 32

// ErrEmptyPassphrase is returned by DeriveKey for an empty passphrase.
var ErrEmptyPassphrase = errors.New("empty passphrase")

// DeriveKey stretches passphrase with argon2id into a KeySize-byte key.
// The same (passphrase, salt) pair always yields the same key.
func DeriveKey(passphrase []byte, salt []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize), nil
}

// SealJSON marshals v to JSON and encrypts it with AES-GCM under key.
// A fresh random nonce is generated for every call and returned separately.
func SealJSON(v any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// OpenJSON decrypts ciphertext produced by SealJSON and unmarshals the
// plaintext into v. A wrong key or tampered input yields an error.
func OpenJSON(ciphertext, nonce, key []byte, v any) error {
	aead, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
