// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/ametkin/roomseal/models"
)

var (
	// ErrNoShares means the supplied key material holds no shares for
	// the requested id.
	ErrNoShares = errors.New("no key shares for id")

	// ErrDecryptFailed means the AEAD open failed: wrong or incomplete
	// shares, or a corrupted ciphertext.
	ErrDecryptFailed = errors.New("decryption failed")
)

// hkdfInfo domain-separates envelope keys from any other use of the same
// share material.
const hkdfInfo = "roomseal/envelope/v1"

// envelopeService is the private implementation of [EnvelopeService].
type envelopeService struct{}

// NewEnvelopeService constructs an [EnvelopeService] using
// XChaCha20-Poly1305 with a per-id key derived from the combined shares
// via HKDF-SHA256.
func NewEnvelopeService() EnvelopeService {
	return &envelopeService{}
}

// Seal implements [EnvelopeService]. It derives the AEAD key for id from
// material, generates a random 24-byte nonce, and seals plaintext into a
// version-1 envelope. Returns an error if material holds no shares for id
// or the random nonce read fails.
func (e *envelopeService) Seal(plaintext []byte, id models.CiphertextID, material *KeyMaterial) (models.EncryptedBlob, error) {
	aead, err := e.aeadFor(id, material)
	if err != nil {
		return models.EncryptedBlob{}, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("generate nonce: %w", err)
	}

	return models.EncryptedBlob{
		Version:    models.BlobVersion,
		ID:         id,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, id),
	}, nil
}

// Open implements [EnvelopeService]. It derives the AEAD key for blob.ID
// from material and opens the ciphertext. The id doubles as the AEAD
// associated data, so a ciphertext moved under a different id fails
// authentication. Returns [ErrDecryptFailed] on auth failure and
// [ErrNoShares] if material holds nothing for the id.
func (e *envelopeService) Open(blob models.EncryptedBlob, material *KeyMaterial) ([]byte, error) {
	aead, err := e.aeadFor(blob.ID, material)
	if err != nil {
		return nil, err
	}

	if len(blob.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: bad nonce length %d", ErrDecryptFailed, len(blob.Nonce))
	}

	plaintext, err := aead.Open(nil, blob.Nonce, blob.Ciphertext, blob.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	return plaintext, nil
}

func (e *envelopeService) aeadFor(id models.CiphertextID, material *KeyMaterial) (interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	NonceSize() int
}, error) {
	shares := material.SharesFor(id)
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoShares, id)
	}

	key, err := deriveKey(shares, id)
	if err != nil {
		return nil, err
	}

	return chacha20poly1305.NewX(key)
}

// deriveKey combines the shares into one secret and stretches it into a
// 256-bit AEAD key. Each share is first normalized to 32 bytes with
// BLAKE2b so shares of differing lengths combine cleanly, then the
// normalized shares are XORed and fed through HKDF-SHA256 with the id as
// salt. The scheme relies on shares being order-insensitive: XOR commutes,
// so server response order does not change the key.
func deriveKey(shares [][]byte, id models.CiphertextID) ([]byte, error) {
	var combined [32]byte
	for _, share := range shares {
		sum := blake2b.Sum256(share)
		for i := range combined {
			combined[i] ^= sum[i]
		}
	}

	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, combined[:], id, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive envelope key: %w", err)
	}

	return key, nil
}
