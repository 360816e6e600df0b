// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/models"
)

// credentialRepository is the SQLite-backed implementation of
// [CredentialRepository]. All queries run against the "credentials" table,
// primary-keyed by (domain, holder).
type credentialRepository struct {
	*DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by
// the provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

// Get implements [CredentialRepository]. A missing row maps to
// [ErrCredentialNotFound]; any other driver error is wrapped unchanged.
func (r *credentialRepository) Get(ctx context.Context, domain, holder string) (models.SessionCredential, error) {
	query, args, err := sq.
		Select("domain", "holder", "expires_at", "token", "key_ref").
		From("credentials").
		Where(sq.Eq{"domain": domain, "holder": holder}).
		ToSql()
	if err != nil {
		return models.SessionCredential{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var (
		cred      models.SessionCredential
		expiresAt int64
	)
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&cred.Domain, &cred.Holder, &expiresAt, &cred.Token, &cred.KeyRef); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SessionCredential{}, ErrCredentialNotFound
		}

		r.logger.Err(err).
			Str("func", "credentialRepository.Get").
			Str("domain", domain).
			Msg("error scanning credential row")
		return models.SessionCredential{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	cred.ExpiresAt = time.Unix(0, expiresAt)
	return cred, nil
}

// Put implements [CredentialRepository]. The upsert is one statement, so
// two resolvers racing on the same key leave exactly one winning row and
// never a torn write.
func (r *credentialRepository) Put(ctx context.Context, cred models.SessionCredential) error {
	query, args, err := sq.
		Insert("credentials").
		Columns("domain", "holder", "expires_at", "token", "key_ref").
		Values(cred.Domain, cred.Holder, cred.ExpiresAt.UnixNano(), cred.Token, cred.KeyRef).
		Suffix("ON CONFLICT (domain, holder) DO UPDATE SET expires_at = excluded.expires_at, token = excluded.token, key_ref = excluded.key_ref").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "credentialRepository.Put").
			Str("domain", cred.Domain).
			Msg("error upserting credential")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// Delete implements [CredentialRepository]. Zero affected rows is fine:
// invalidating an absent credential is a no-op by contract.
func (r *credentialRepository) Delete(ctx context.Context, domain, holder string) error {
	query, args, err := sq.
		Delete("credentials").
		Where(sq.Eq{"domain": domain, "holder": holder}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "credentialRepository.Delete").
			Str("domain", domain).
			Msg("error deleting credential")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
