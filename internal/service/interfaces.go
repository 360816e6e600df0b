// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the business layer of the roomseal client:
// credential resolution, authorization-gated key retrieval, the publish and
// recover pipelines, and the background room poller. Transport concerns
// stay in the adapter package; persistence in store.
package service

import (
	"context"
	"time"

	"github.com/ametkin/roomseal/internal/crypto"
	"github.com/ametkin/roomseal/models"
)

// The service mocks live in their own package: internal/mock imports this
// package's collaborators only, while servicemock imports this package, so
// in-package tests here can still use the store/adapter/crypto mocks
// without an import cycle.
//go:generate mockgen -source=interfaces.go -destination=../mock/servicemock/service_mock.go -package=servicemock

// ChallengeSigner produces the holder's signature over a credential
// challenge. This is the single interactive boundary of the whole client:
// implementations may open a wallet prompt, touch a hardware token, or
// fail with a decline. Only user-initiated calls may reach it.
type ChallengeSigner interface {
	// Sign returns the holder's signature over challenge, or an error if
	// the holder declined or signing failed.
	Sign(ctx context.Context, holder string, challenge []byte) ([]byte, error)
}

// RoomStateReader is the chain-state boundary: it reports what the ledger
// knows about rooms and capabilities. Implementations are external
// collaborators; the pipeline only reads.
type RoomStateReader interface {
	// RoomState returns the room's display name, authorization scope and
	// recorded ciphertext ids.
	RoomState(ctx context.Context, roomID string) (models.RoomState, error)

	// Capabilities returns the capability objects held by holder and the
	// room each one administers.
	Capabilities(ctx context.Context, holder string) ([]models.Capability, error)
}

// CredentialService resolves, caches and invalidates session credentials
// keyed by (authorization domain, holder identity).
type CredentialService interface {
	// Resolve returns a valid credential for (holder, domain), reusing
	// the cached one when still valid and otherwise minting a fresh one
	// via signer with the given ttl. Minting prompts the holder; a
	// declined or failed signature fails with [ErrSigningDeclined] and
	// leaves no partial credential behind.
	Resolve(ctx context.Context, holder, domain string, ttl time.Duration, signer ChallengeSigner) (models.SessionCredential, error)

	// ResolveCached is the non-interactive variant: it returns the cached
	// credential when valid and fails with [ErrCredentialUnavailable]
	// otherwise. It never prompts.
	ResolveCached(ctx context.Context, holder, domain string) (models.SessionCredential, error)

	// Invalidate drops the cached credential for (domain, holder).
	Invalidate(ctx context.Context, domain, holder string) error
}

// KeyClient obtains decryption key material from the key-server cluster,
// gated by a per-id authorization proof.
type KeyClient interface {
	// FetchKeys requests material for ids in batches, submitting each
	// batch with cred and an unsigned proof transaction to every
	// configured key server. Material is usable for an id once at least
	// threshold servers returned an identical share for it. A verifier
	// rejection fails the whole call with [ErrAccessDenied] and no
	// partial material; too few agreeing servers is
	// [ErrKeyServersUnavailable]. The caller must Discard the returned
	// material on every exit path.
	FetchKeys(ctx context.Context, ids []models.CiphertextID, cred models.SessionCredential, threshold int) (*crypto.KeyMaterial, error)
}

// Pipeline is the end-to-end recover orchestrator.
type Pipeline interface {
	// Recover downloads, authorizes and decrypts the room's ciphertexts
	// and returns the ordered plaintexts plus per-item failure notes.
	// When ids is empty the room's recorded ids are read from the chain
	// state. This is the user-initiated path: resolving a credential may
	// prompt the holder.
	Recover(ctx context.Context, roomID string, ids []models.CiphertextID) (models.RecoverResult, error)

	// RecoverCached is the background variant: identical to Recover
	// except that it only uses an already-cached credential and fails
	// with [ErrCredentialUnavailable] instead of prompting.
	RecoverCached(ctx context.Context, roomID string, ids []models.CiphertextID) (models.RecoverResult, error)

	// ReleaseRoom releases every resource handle still outstanding for
	// roomID. Safe to call at any time, including for unknown rooms.
	ReleaseRoom(roomID string)
}

// Publisher is the sender-side pipeline: seal a plaintext for a room and
// upload the envelope to the mirrors.
type Publisher interface {
	// Publish stamps plaintext with an ordering timestamp, seals it under
	// a freshly minted ciphertext id bound to the room's scope, uploads
	// the envelope, and returns the typed store outcome.
	Publish(ctx context.Context, roomID string, plaintext []byte) (models.StoreResult, error)
}

// PollJob periodically re-runs the non-interactive recover path for one
// room subscription.
type PollJob interface {
	// Start begins polling roomID: the first tick is immediate, later
	// ticks fire every interval. A tick still in flight when the next is
	// due suppresses it; ticks never overlap for a room. Any previously
	// running job is stopped first.
	Start(ctx context.Context, roomID string, interval time.Duration)

	// Stop cancels future ticks without aborting an in-flight one, waits
	// for the loop to exit, and releases the room's outstanding handles.
	// Safe to call repeatedly and when not started.
	Stop()
}
