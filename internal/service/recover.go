// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ametkin/roomseal/internal/adapter"
	"github.com/ametkin/roomseal/internal/config"
	"github.com/ametkin/roomseal/internal/crypto"
	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/sniff"
	"github.com/ametkin/roomseal/models"
)

// keyFetchAttempts bounds how often a transiently unavailable key-server
// cluster is retried before recover gives up.
const keyFetchAttempts = 3

type pipeline struct {
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

	handles *handleRegistry

	logger *logger.Logger
}

// NewPipeline creates the recover orchestrator from its collaborators and
// the client configuration.
func NewPipeline(
	cfg *config.StructuredConfig,
	mirror adapter.BlobMirrorAdapter,
	reader RoomStateReader,
	creds CredentialService,
	keys KeyClient,
	envelope crypto.EnvelopeService,
	signer ChallengeSigner,
	log *logger.Logger,
) Pipeline {
	return &pipeline{
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
		handles:        newHandleRegistry(),
		logger:         log,
	}
}

// Recover implements [Pipeline].
func (p *pipeline) Recover(ctx context.Context, roomID string, ids []models.CiphertextID) (models.RecoverResult, error) {
	return p.run(ctx, roomID, ids, true)
}

// RecoverCached implements [Pipeline].
func (p *pipeline) RecoverCached(ctx context.Context, roomID string, ids []models.CiphertextID) (models.RecoverResult, error) {
	return p.run(ctx, roomID, ids, false)
}

// ReleaseRoom implements [Pipeline].
func (p *pipeline) ReleaseRoom(roomID string) {
	p.handles.release(roomID)
}

func (p *pipeline) run(ctx context.Context, roomID string, ids []models.CiphertextID, interactive bool) (models.RecoverResult, error) {
	roomName, ids, err := p.resolveRoom(ctx, roomID, ids)
	if err != nil {
		return models.RecoverResult{}, err
	}

	result := models.RecoverResult{Room: roomName}
	if len(ids) == 0 {
		p.handles.swap(roomID, nil)
		return result, nil
	}

	blobs, failures, fetched := p.fetchAll(ctx, ids)
	result.Failures = append(result.Failures, failures...)
	if fetched == 0 {
		return models.RecoverResult{}, fmt.Errorf("%w: 0 of %d fetches succeeded", ErrAllMirrorsUnreachable, len(ids))
	}
	if len(blobs) == 0 {
		// every fetched blob failed to parse: a per-item condition, so
		// the call still succeeds and carries the notes
		p.handles.swap(roomID, nil)
		return result, nil
	}

	var cred models.SessionCredential
	if interactive {
		cred, err = p.creds.Resolve(ctx, p.holder, p.domain, p.credentialTTL, p.signer)
	} else {
		cred, err = p.creds.ResolveCached(ctx, p.holder, p.domain)
	}
	if err != nil {
		return models.RecoverResult{}, err
	}

	material, err := p.fetchKeys(ctx, blobIDs(blobs), cred)
	if err != nil {
		return models.RecoverResult{}, err
	}
	defer material.Discard()

	items, decryptFailures := p.decryptAll(ctx, blobs, material)
	result.Failures = append(result.Failures, decryptFailures...)

	sortByTimestamp(items)
	result.Items = items

	newHandles := make([]*models.BlobHandle, 0, len(items))
	for _, item := range items {
		newHandles = append(newHandles, item.Handle)
	}
	p.handles.swap(roomID, newHandles)

	return result, nil
}

// resolveRoom reads the room's chain state for its display name and, when
// the caller supplied no explicit ids, its recorded ciphertext set.
func (p *pipeline) resolveRoom(ctx context.Context, roomID string, ids []models.CiphertextID) (string, []models.CiphertextID, error) {
	state, err := p.reader.RoomState(ctx, roomID)
	if err != nil {
		if len(ids) == 0 {
			return "", nil, fmt.Errorf("%w: %v", ErrRoomStateUnavailable, err)
		}
		// explicit ids carry the call even without a readable room
		p.logger.Debug().Err(err).Str("room", roomID).Msg("room state unreadable, recovering supplied ids")
		return "", ids, nil
	}

	if len(ids) == 0 {
		ids = state.Ciphertexts
	}

	return state.Name, ids, nil
}

// fetchAll downloads every blob in parallel; each id fails or succeeds on
// its own. Fetch and parse failures become per-item notes, never call
// failures. The returned count is the number of successful downloads,
// before parsing, so the caller can tell "no mirror answered" apart from
// "nothing parsed".
func (p *pipeline) fetchAll(ctx context.Context, ids []models.CiphertextID) ([]models.EncryptedBlob, []models.ItemFailure, int) {
	raws := make([][]byte, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			raws[i], errs[i] = p.mirror.Fetch(ctx, id, p.mirrors, p.attemptTimeout)
			return nil
		})
	}
	_ = g.Wait()

	blobs := make([]models.EncryptedBlob, 0, len(ids))
	var failures []models.ItemFailure
	fetched := 0

	for i, id := range ids {
		if errs[i] != nil {
			failures = append(failures, models.ItemFailure{ID: id, Stage: "fetch", Err: errs[i]})
			continue
		}
		fetched++

		blob, err := models.ParseBlob(raws[i])
		if err != nil {
			failures = append(failures, models.ItemFailure{ID: id, Stage: "parse", Err: err})
			continue
		}
		if !blob.ID.Equal(id) {
			failures = append(failures, models.ItemFailure{
				ID:    id,
				Stage: "parse",
				Err:   fmt.Errorf("%w: envelope carries id %s", models.ErrMalformedBlob, blob.ID),
			})
			continue
		}

		blobs = append(blobs, blob)
	}

	return blobs, failures, fetched
}

// fetchKeys requests material for the surviving ids, retrying a
// transiently unavailable cluster and invalidating the cached credential
// on a verifier rejection.
func (p *pipeline) fetchKeys(ctx context.Context, ids []models.CiphertextID, cred models.SessionCredential) (*crypto.KeyMaterial, error) {
	var lastErr error

	for attempt := 1; attempt <= keyFetchAttempts; attempt++ {
		material, err := p.keys.FetchKeys(ctx, ids, cred, p.threshold)
		if err == nil {
			return material, nil
		}

		if errors.Is(err, ErrAccessDenied) {
			if invErr := p.creds.Invalidate(ctx, p.domain, p.holder); invErr != nil {
				p.logger.Warn().Err(invErr).Msg("failed to invalidate credential after verifier rejection")
			}
			return nil, err
		}
		if !errors.Is(err, ErrKeyServersUnavailable) {
			return nil, err
		}

		lastErr = err
		p.logger.Debug().Err(err).Int("attempt", attempt).Msg("key servers unavailable, retrying batch")
	}

	return nil, lastErr
}

// decryptAll opens every blob in parallel, classifies the plaintext and
// extracts the ordering timestamp. A failed item is noted and dropped.
func (p *pipeline) decryptAll(ctx context.Context, blobs []models.EncryptedBlob, material *crypto.KeyMaterial) ([]models.DecryptedItem, []models.ItemFailure) {
	items := make([]*models.DecryptedItem, len(blobs))
	errs := make([]error, len(blobs))

	var g errgroup.Group
	for i, blob := range blobs {
		i, blob := i, blob
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			plaintext, err := p.envelope.Open(blob, material)
			if err != nil {
				errs[i] = err
				return nil
			}

			ts, payload := splitTimestampMarker(plaintext)
			items[i] = &models.DecryptedItem{
				ID:        blob.ID,
				Data:      payload,
				Media:     sniff.Classify(payload),
				Timestamp: ts,
				Handle:    models.NewBlobHandle(zeroBytes(payload)),
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.DecryptedItem, 0, len(blobs))
	var failures []models.ItemFailure

	for i, blob := range blobs {
		if errs[i] != nil {
			failures = append(failures, models.ItemFailure{ID: blob.ID, Stage: "decrypt", Err: errs[i]})
			continue
		}
		out = append(out, *items[i])
	}

	return out, failures
}

// sortByTimestamp orders items by extracted timestamp ascending, undated
// items after all dated ones, otherwise preserving retrieval order.
func sortByTimestamp(items []models.DecryptedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := items[i].Timestamp, items[j].Timestamp
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.Before(*tj)
		}
	})
}

func blobIDs(blobs []models.EncryptedBlob) []models.CiphertextID {
	ids := make([]models.CiphertextID, 0, len(blobs))
	for _, blob := range blobs {
		ids = append(ids, blob.ID)
	}
	return ids
}

// zeroBytes is the release action of a decrypted item's handle: it wipes
// the plaintext buffer so released items stop holding recoverable content.
func zeroBytes(data []byte) func() {
	return func() {
		for i := range data {
			data[i] = 0
		}
	}
}
