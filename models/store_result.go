// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StoreStatus tags the outcome of publishing a blob to a mirror.
type StoreStatus int

const (
	// StoreNewlyCreated means the mirror accepted and certified the blob
	// for the first time.
	StoreNewlyCreated StoreStatus = iota

	// StoreAlreadyCertified means the mirror already held an identical
	// blob under the same id; the upload was a no-op.
	StoreAlreadyCertified
)

// String returns a short label for the status.
func (s StoreStatus) String() string {
	switch s {
	case StoreNewlyCreated:
		return "newly_created"
	case StoreAlreadyCertified:
		return "already_certified"
	default:
		return "unknown"
	}
}

// StoreResult is the typed outcome of a blob upload, decoded once at the
// adapter boundary. Untyped mirror response shapes never travel past the
// adapter.
type StoreResult struct {
	// ID is the id the blob was stored under.
	ID CiphertextID

	// Status says whether the blob is new or was already certified.
	Status StoreStatus

	// Mirror is the base URL of the mirror that accepted the blob.
	Mirror string
}
