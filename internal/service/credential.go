// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/store"
	"github.com/ametkin/roomseal/models"
)

type credentialService struct {
	repo store.CredentialRepository

	// now is swapped in tests
	now func() time.Time

	logger *logger.Logger
}

// NewCredentialService creates the [CredentialService] backed by the given
// credential repository.
func NewCredentialService(repo store.CredentialRepository, log *logger.Logger) CredentialService {
	return &credentialService{repo: repo, now: time.Now, logger: log}
}

// Resolve implements [CredentialService]. Cached-valid credentials are
// returned without any interaction; otherwise a fresh challenge is built,
// handed to signer, and the resulting credential persisted. A signing
// failure deletes whatever row was cached for the key so no half-minted
// credential survives.
func (s *credentialService) Resolve(ctx context.Context, holder, domain string, ttl time.Duration, signer ChallengeSigner) (models.SessionCredential, error) {
	if cached, err := s.repo.Get(ctx, domain, holder); err == nil {
		if cached.Valid(s.now(), holder) {
			return cached, nil
		}
	} else if !errors.Is(err, store.ErrCredentialNotFound) {
		// storage trouble is a cache miss, never a hard failure
		s.logger.Warn().Err(err).Msg("credential cache lookup failed, reissuing")
	}

	expiresAt := s.now().Add(ttl)
	token, err := s.mint(ctx, holder, domain, expiresAt, signer)
	if err != nil {
		if delErr := s.repo.Delete(ctx, domain, holder); delErr != nil {
			s.logger.Warn().Err(delErr).Msg("failed to drop stale credential after declined signing")
		}
		return models.SessionCredential{}, fmt.Errorf("%w: %v", ErrSigningDeclined, err)
	}

	cred := models.SessionCredential{
		Holder:    holder,
		Domain:    domain,
		ExpiresAt: expiresAt,
		Token:     token,
	}

	if err := s.repo.Put(ctx, cred); err != nil {
		// best-effort durability: the credential is still usable this
		// run, the next run just reprompts
		s.logger.Warn().Err(err).Msg("failed to persist credential")
	}

	return cred, nil
}

// mint builds the challenge as a JWS signing string, asks signer for the
// holder's signature over it, and assembles the compact token.
func (s *credentialService) mint(ctx context.Context, holder, domain string, expiresAt time.Time, signer ChallengeSigner) (string, error) {
	claims := models.CredentialClaims(holder, domain, expiresAt)
	challenge, err := jwt.NewWithClaims(holderSigningMethod{}, claims).SigningString()
	if err != nil {
		return "", fmt.Errorf("build credential challenge: %w", err)
	}

	sig, err := signer.Sign(ctx, holder, []byte(challenge))
	if err != nil {
		return "", err
	}

	return challenge + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// ResolveCached implements [CredentialService]. It never prompts: any
// miss, lookup failure or expired row is [ErrCredentialUnavailable].
func (s *credentialService) ResolveCached(ctx context.Context, holder, domain string) (models.SessionCredential, error) {
	cached, err := s.repo.Get(ctx, domain, holder)
	if err != nil {
		return models.SessionCredential{}, fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
	}
	if !cached.Valid(s.now(), holder) {
		return models.SessionCredential{}, fmt.Errorf("%w: cached credential expired", ErrCredentialUnavailable)
	}

	return cached, nil
}

// Invalidate implements [CredentialService].
func (s *credentialService) Invalidate(ctx context.Context, domain, holder string) error {
	if err := s.repo.Delete(ctx, domain, holder); err != nil {
		return fmt.Errorf("invalidate credential: %w", err)
	}
	return nil
}

// holderSigningMethod names the external-signer algorithm in the credential
// header. The token is never signed through the jwt library itself: the
// signature comes from the holder's [ChallengeSigner], the key servers
// verify it.
type holderSigningMethod struct{}

func (holderSigningMethod) Alg() string { return "EdDSA" }

func (holderSigningMethod) Sign(string, interface{}) ([]byte, error) {
	return nil, errors.New("credential is signed by the holder, not the jwt library")
}

func (holderSigningMethod) Verify(string, []byte, interface{}) error {
	return errors.New("credential is verified by the key servers, not the client")
}
