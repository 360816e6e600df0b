// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ametkin/roomseal/internal/adapter"
	"github.com/ametkin/roomseal/internal/config"
	"github.com/ametkin/roomseal/internal/crypto"
	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/models"
)

type publisher struct {
	mirror   adapter.BlobMirrorAdapter
	reader   RoomStateReader
	creds    CredentialService
	keys     KeyClient
	envelope crypto.EnvelopeService
	signer   ChallengeSigner

	mirrors        []string
	attemptTimeout time.Duration
	threshold      int
	holder         string
	domain         string
	credentialTTL  time.Duration

	// now is swapped in tests
	now func() time.Time

	logger *logger.Logger
}

// NewPublisher creates the sender-side [Publisher].
func NewPublisher(
	cfg *config.StructuredConfig,
	mirror adapter.BlobMirrorAdapter,
	reader RoomStateReader,
	creds CredentialService,
	keys KeyClient,
	envelope crypto.EnvelopeService,
	signer ChallengeSigner,
	log *logger.Logger,
) Publisher {
	return &publisher{
		mirror:         mirror,
		reader:         reader,
		creds:          creds,
		keys:           keys,
		envelope:       envelope,
		signer:         signer,
		mirrors:        cfg.Mirrors.URLs,
		attemptTimeout: cfg.Mirrors.AttemptTimeout,
		threshold:      cfg.KeyServers.Threshold,
		holder:         cfg.App.Holder,
		domain:         cfg.App.Domain,
		credentialTTL:  cfg.App.CredentialTTL,
		now:            time.Now,
		logger:         log,
	}
}

// Publish implements [Publisher]. The plaintext is stamped with the
// ordering marker, sealed under a freshly minted id carrying the room's
// authorization scope, and uploaded. Key material for the new id comes
// through the same authorization-gated path the recover side uses, so a
// holder who cannot read a room cannot publish into it either.
func (p *publisher) Publish(ctx context.Context, roomID string, plaintext []byte) (models.StoreResult, error) {
	state, err := p.reader.RoomState(ctx, roomID)
	if err != nil {
		return models.StoreResult{}, fmt.Errorf("%w: %v", ErrRoomStateUnavailable, err)
	}

	id, err := models.MintCiphertextID(state.Scope)
	if err != nil {
		return models.StoreResult{}, fmt.Errorf("mint ciphertext id: %w", err)
	}

	cred, err := p.creds.Resolve(ctx, p.holder, p.domain, p.credentialTTL, p.signer)
	if err != nil {
		return models.StoreResult{}, err
	}

	material, err := p.keys.FetchKeys(ctx, []models.CiphertextID{id}, cred, p.threshold)
	if err != nil {
		return models.StoreResult{}, err
	}
	defer material.Discard()

	stamped := append(encodeTimestampMarker(p.now()), plaintext...)

	blob, err := p.envelope.Seal(stamped, id, material)
	if err != nil {
		return models.StoreResult{}, fmt.Errorf("seal plaintext: %w", err)
	}

	raw, err := blob.Encode()
	if err != nil {
		return models.StoreResult{}, err
	}

	result, err := p.mirror.Store(ctx, id, raw, p.mirrors, p.attemptTimeout)
	if err != nil {
		return models.StoreResult{}, err
	}

	p.logger.Info().
		Str("room", roomID).
		Str("blob", id.String()).
		Str("status", result.Status.String()).
		Msg("published")

	return result, nil
}
