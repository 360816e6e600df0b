// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// ScopeLen is the length in bytes of the authorization-scope prefix
// embedded in every [CiphertextID]. The prefix is the identifier of the
// policy object that governs read access to the ciphertext.
const ScopeLen = 32

// NonceLen is the length in bytes of the random suffix appended to the
// scope prefix when a new [CiphertextID] is minted.
const NonceLen = 16

// CiphertextID is the opaque identifier of one encrypted object.
//
// Layout: scope (32 bytes) ‖ nonce (16 bytes). The scope prefix binds the
// ciphertext to exactly one authorization domain; the nonce makes the id
// unique among objects sharing a scope. Immutable once minted.
type CiphertextID []byte

// MintCiphertextID creates a fresh CiphertextID for the given
// authorization scope. The nonce is taken from a random UUID, so two mints
// for the same scope never collide. Returns an error if scope is not
// exactly [ScopeLen] bytes.
func MintCiphertextID(scope []byte) (CiphertextID, error) {
	if len(scope) != ScopeLen {
		return nil, fmt.Errorf("scope must be %d bytes, got %d", ScopeLen, len(scope))
	}

	nonce := uuid.New()

	id := make(CiphertextID, 0, ScopeLen+NonceLen)
	id = append(id, scope...)
	id = append(id, nonce[:]...)
	return id, nil
}

// ParseCiphertextID decodes the hex form produced by [CiphertextID.String]
// back into an id, rejecting input that does not have the minted layout.
func ParseCiphertextID(s string) (CiphertextID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("ciphertext id is not hex: %w", err)
	}

	id := CiphertextID(raw)
	if !id.Valid() {
		return nil, fmt.Errorf("ciphertext id must be %d bytes, got %d", ScopeLen+NonceLen, len(id))
	}
	return id, nil
}

// Valid reports whether the id has the minted layout (scope ‖ nonce).
func (id CiphertextID) Valid() bool {
	return len(id) == ScopeLen+NonceLen
}

// Scope returns the authorization-scope prefix of the id. The returned
// slice aliases the id and must not be mutated.
func (id CiphertextID) Scope() []byte {
	if !id.Valid() {
		return nil
	}
	return id[:ScopeLen]
}

// Equal reports whether two ids are byte-identical.
func (id CiphertextID) Equal(other CiphertextID) bool {
	return bytes.Equal(id, other)
}

// String returns the lowercase hex encoding of the id.
// It implements the [fmt.Stringer] interface.
func (id CiphertextID) String() string {
	return hex.EncodeToString(id)
}
