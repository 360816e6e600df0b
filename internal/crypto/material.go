// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/ametkin/roomseal/models"

// KeyMaterial holds the decryption key shares returned by the key-server
// cluster for one pipeline run, keyed by ciphertext id. It lives only for
// the duration of the run: callers must Discard it on every exit path and
// must never write it to storage.
type KeyMaterial struct {
	shares map[string][][]byte
}

// NewKeyMaterial returns an empty share set.
func NewKeyMaterial() *KeyMaterial {
	return &KeyMaterial{shares: make(map[string][][]byte)}
}

// Add records one key server's share for id.
func (m *KeyMaterial) Add(id models.CiphertextID, share []byte) {
	key := id.String()
	m.shares[key] = append(m.shares[key], share)
}

// SharesFor returns the shares collected for id, in arrival order.
func (m *KeyMaterial) SharesFor(id models.CiphertextID) [][]byte {
	return m.shares[id.String()]
}

// Merge moves every share of other into m. other is left empty.
func (m *KeyMaterial) Merge(other *KeyMaterial) {
	if other == nil {
		return
	}
	for key, shares := range other.shares {
		m.shares[key] = append(m.shares[key], shares...)
	}
	other.shares = make(map[string][][]byte)
}

// Len returns the number of ids material is held for.
func (m *KeyMaterial) Len() int {
	return len(m.shares)
}

// Discard zeroes every share byte and drops the map, so the material can
// be released without leaking key bytes into reachable memory. Safe on
// nil and safe to call twice.
func (m *KeyMaterial) Discard() {
	if m == nil {
		return
	}
	for _, shares := range m.shares {
		for _, share := range shares {
			for i := range share {
				share[i] = 0
			}
		}
	}
	m.shares = make(map[string][][]byte)
}
