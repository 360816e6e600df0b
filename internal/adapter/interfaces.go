// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter implements the outbound HTTP boundaries of the system:
// the content-addressed blob mirrors and the key-server cluster. It maps
// transport-level responses into sentinel errors and typed results; no
// untyped response shape leaves this package.
package adapter

import (
	"context"
	"time"

	"github.com/ametkin/roomseal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// BlobMirrorAdapter reads and writes content-addressed blobs across a set
// of mirror endpoints.
type BlobMirrorAdapter interface {
	// Fetch retrieves the blob stored under id, trying mirrors in order
	// with perAttemptTimeout per attempt. Individual mirror failures are
	// not surfaced; once every mirror has been tried the call fails with
	// [ErrNotFound].
	Fetch(ctx context.Context, id models.CiphertextID, mirrors []string, perAttemptTimeout time.Duration) ([]byte, error)

	// Store uploads an encoded blob envelope under its id, trying
	// mirrors in order until one accepts. The result distinguishes a
	// first-time write from a blob the mirror had already certified.
	Store(ctx context.Context, id models.CiphertextID, raw []byte, mirrors []string, perAttemptTimeout time.Duration) (models.StoreResult, error)
}

// KeyShare is one key server's response entry for one ciphertext id.
type KeyShare struct {
	ID    string `json:"id"`
	Share []byte `json:"share"`
}

// KeyServerAdapter submits one authorization-gated share request to one
// key server.
type KeyServerAdapter interface {
	// FetchShares posts the proof and credential for a batch of ids to
	// the key server at baseURL and returns its per-id shares. A
	// verifier rejection surfaces as [ErrDenied], transient outage as
	// [ErrUnavailable] or [ErrUnreachable].
	FetchShares(ctx context.Context, baseURL string, req ShareRequest) ([]KeyShare, error)
}

// ShareRequest is the wire form of one batch share request.
type ShareRequest struct {
	// Credential is the compact session credential token.
	Credential string `json:"credential"`

	// Proof is the CBOR-encoded unsigned authorization-check
	// transaction asserting, per id, the holder's right to read it.
	Proof []byte `json:"proof"`

	// IDs are the hex ciphertext ids of the batch, ≤ the verifier's
	// transaction size limit.
	IDs []string `json:"ids"`
}
