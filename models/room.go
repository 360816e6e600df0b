// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RoomState is the on-chain view of one room: its display name, its
// authorization scope, and the set of ciphertext ids recorded under it.
// Produced by the room state reader boundary; read-only here.
type RoomState struct {
	// ID is the room's chain-level object id.
	ID string

	// Name is the room's display name.
	Name string

	// Scope is the policy-object id governing reads, used as the scope
	// prefix of every ciphertext minted for the room.
	Scope []byte

	// Ciphertexts are the ids recorded under the room, in chain order.
	Ciphertexts []CiphertextID
}

// Capability is one held capability object: proof that a holder
// administers a particular room.
type Capability struct {
	// ID is the capability object's id.
	ID string

	// RoomID is the room the capability administers.
	RoomID string
}
