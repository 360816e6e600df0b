// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/ametkin/roomseal/internal/adapter"
	"github.com/ametkin/roomseal/internal/config"
	"github.com/ametkin/roomseal/internal/crypto"
	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/store"
)

// Services aggregates the business layer for wiring at startup.
type Services struct {
	Credentials CredentialService
	Keys        KeyClient
	Pipeline    Pipeline
	Publisher   Publisher
	Poller      PollJob
}

// NewServices wires the full business layer from configuration, the
// persistence layer, the outbound adapters, and the external boundary
// collaborators (chain-state reader and challenge signer).
func NewServices(
	cfg *config.StructuredConfig,
	credRepo store.CredentialRepository,
	mirror adapter.BlobMirrorAdapter,
	keyServers adapter.KeyServerAdapter,
	reader RoomStateReader,
	signer ChallengeSigner,
	log *logger.Logger,
) *Services {
	envelope := crypto.NewEnvelopeService()
	creds := NewCredentialService(credRepo, log)
	keys := NewKeyClient(keyServers, cfg.KeyServers.URLs, cfg.KeyServers.RequestTimeout, log)
	pipeline := NewPipeline(cfg, mirror, reader, creds, keys, envelope, signer, log)

	return &Services{
		Credentials: creds,
		Keys:        keys,
		Pipeline:    pipeline,
		Publisher:   NewPublisher(cfg, mirror, reader, creds, keys, envelope, signer, log),
		Poller:      NewPollJob(pipeline, log),
	}
}
