// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// BlobVersion is the envelope format version written by this release.
const BlobVersion = 1

// ErrMalformedBlob marks a blob payload that cannot be parsed into an
// [EncryptedBlob]: bad CBOR, an unknown envelope version, or an id that
// does not have the minted layout.
var ErrMalformedBlob = errors.New("malformed encrypted blob")

// EncryptedBlob is the wire envelope of one encrypted object as stored on
// the mirrors. The envelope is CBOR-encoded; the ciphertext payload stays
// opaque to everything except the decrypt step.
type EncryptedBlob struct {
	// Version is the envelope format version. Readers reject versions
	// they do not understand rather than guess at the layout.
	Version uint8 `cbor:"v"`

	// ID is the CiphertextID the payload was sealed under.
	ID CiphertextID `cbor:"id"`

	// Nonce is the AEAD nonce used when sealing the payload.
	Nonce []byte `cbor:"n"`

	// Ciphertext is the sealed payload, opaque until decryption.
	Ciphertext []byte `cbor:"ct"`
}

// encMode is a deterministic CBOR encoder shared by all envelope writes,
// so the same envelope always serializes to the same bytes (mirrors
// content-address by digest).
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes the envelope to its canonical CBOR form.
func (b EncryptedBlob) Encode() ([]byte, error) {
	raw, err := encMode.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode blob envelope: %w", err)
	}
	return raw, nil
}

// ParseBlob decodes raw mirror bytes into an [EncryptedBlob], validating
// the envelope version and the id layout. All failures wrap
// [ErrMalformedBlob] so callers can treat them as one per-item condition.
func ParseBlob(raw []byte) (EncryptedBlob, error) {
	var b EncryptedBlob
	if err := cbor.Unmarshal(raw, &b); err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}

	if b.Version != BlobVersion {
		return EncryptedBlob{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedBlob, b.Version)
	}
	if !b.ID.Valid() {
		return EncryptedBlob{}, fmt.Errorf("%w: id length %d", ErrMalformedBlob, len(b.ID))
	}

	return b, nil
}
