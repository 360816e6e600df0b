// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the envelope seal/open primitives used by the
// publish and recover pipelines. Key material arrives as per-id share
// sets from the key-server cluster; shares are combined and stretched into
// a one-off AEAD key per ciphertext. Nothing in this package persists key
// bytes.
package crypto

import "github.com/ametkin/roomseal/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// EnvelopeService seals plaintexts into encrypted blob envelopes and opens
// them again from the same key material.
type EnvelopeService interface {
	// Seal encrypts plaintext under the key derived for id from
	// material and returns the wire envelope.
	Seal(plaintext []byte, id models.CiphertextID, material *KeyMaterial) (models.EncryptedBlob, error)

	// Open decrypts blob with the key derived for blob.ID from material
	// and returns the plaintext.
	Open(blob models.EncryptedBlob, material *KeyMaterial) ([]byte, error)
}
