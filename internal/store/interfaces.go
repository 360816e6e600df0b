// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the session-credential cache in a client-local
// SQLite database. Loss of the database is harmless: every miss just
// forces a fresh signing prompt on the next interactive resolve.
package store

import (
	"context"

	"github.com/ametkin/roomseal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CredentialRepository is the persisted credential cache, keyed by
// (authorization domain, holder identity).
type CredentialRepository interface {
	// Get returns the cached credential for (domain, holder), or
	// [ErrCredentialNotFound] on a miss. Expired rows are returned as-is;
	// expiry policy belongs to the service layer.
	Get(ctx context.Context, domain, holder string) (models.SessionCredential, error)

	// Put upserts the credential under its (domain, holder) key. The
	// write is a single atomic upsert so racing resolvers converge on
	// one persisted row.
	Put(ctx context.Context, cred models.SessionCredential) error

	// Delete removes the credential for (domain, holder). Deleting an
	// absent row is not an error.
	Delete(ctx context.Context, domain, holder string) error
}
