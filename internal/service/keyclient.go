// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/ametkin/roomseal/internal/adapter"
	"github.com/ametkin/roomseal/internal/crypto"
	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/models"
)

// batchSize is the verifier's transaction size limit: one proof
// transaction asserts at most this many ids.
const batchSize = 10

type keyClient struct {
	adapter adapter.KeyServerAdapter

	servers        []string
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewKeyClient creates the [KeyClient] talking to the configured
// key-server cluster through the given adapter.
func NewKeyClient(keyAdapter adapter.KeyServerAdapter, servers []string, requestTimeout time.Duration, log *logger.Logger) KeyClient {
	return &keyClient{
		adapter:        keyAdapter,
		servers:        servers,
		requestTimeout: requestTimeout,
		logger:         log,
	}
}

// proofTransaction is the unsigned authorization-check transaction sent
// alongside every batch. The verifier replays it against the chain state:
// each assertion claims the holder's right to read one id's scope.
type proofTransaction struct {
	RequestID  string           `cbor:"req"`
	Domain     string           `cbor:"dom"`
	Holder     string           `cbor:"hld"`
	Assertions []scopeAssertion `cbor:"as"`
}

type scopeAssertion struct {
	ID    string `cbor:"id"`
	Scope []byte `cbor:"sc"`
}

// FetchKeys implements [KeyClient]. Batches run sequentially; within a
// batch every configured server is asked and per-id shares are accepted
// once at least threshold servers returned byte-identical values. Any
// verifier rejection aborts the whole call with no partial material.
func (c *keyClient) FetchKeys(ctx context.Context, ids []models.CiphertextID, cred models.SessionCredential, threshold int) (*crypto.KeyMaterial, error) {
	if threshold < 1 || threshold > len(c.servers) {
		return nil, fmt.Errorf("%w: threshold %d with %d servers", ErrKeyServersUnavailable, threshold, len(c.servers))
	}

	material := crypto.NewKeyMaterial()

	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))

		batchMaterial, err := c.fetchBatch(ctx, ids[start:end], cred, threshold)
		if err != nil {
			material.Discard()
			return nil, err
		}

		material.Merge(batchMaterial)
		batchMaterial.Discard()
	}

	return material, nil
}

// fetchBatch runs one authorization-gated request for up to batchSize ids
// against every server and performs the threshold agreement count.
func (c *keyClient) fetchBatch(ctx context.Context, batch []models.CiphertextID, cred models.SessionCredential, threshold int) (*crypto.KeyMaterial, error) {
	req, err := c.buildRequest(batch, cred)
	if err != nil {
		return nil, err
	}

	// votes[idHex][shareBytes] counts how many servers returned that
	// exact share for that id
	votes := make(map[string]map[string]int, len(batch))

	for _, server := range c.servers {
		shares, err := c.fetchFromServer(ctx, server, req)
		if err != nil {
			mapped := mapKeyServerError(err)
			if errors.Is(mapped, ErrAccessDenied) {
				// atomic batch failure, no partial material
				return nil, mapped
			}
			c.logger.Debug().Err(err).Str("server", server).Msg("key server attempt failed")
			continue
		}

		for _, share := range shares {
			if votes[share.ID] == nil {
				votes[share.ID] = make(map[string]int, 1)
			}
			votes[share.ID][string(share.Share)]++
		}
	}

	material := crypto.NewKeyMaterial()
	for _, id := range batch {
		agreed, ok := agreedShare(votes[id.String()], threshold)
		if !ok {
			material.Discard()
			return nil, fmt.Errorf("%w: no agreed share for %s", ErrKeyServersUnavailable, id)
		}
		material.Add(id, agreed)
	}

	return material, nil
}

func (c *keyClient) buildRequest(batch []models.CiphertextID, cred models.SessionCredential) (adapter.ShareRequest, error) {
	proof := proofTransaction{
		RequestID:  uuid.NewString(),
		Domain:     cred.Domain,
		Holder:     cred.Holder,
		Assertions: make([]scopeAssertion, 0, len(batch)),
	}

	idsHex := make([]string, 0, len(batch))
	for _, id := range batch {
		proof.Assertions = append(proof.Assertions, scopeAssertion{ID: id.String(), Scope: id.Scope()})
		idsHex = append(idsHex, id.String())
	}

	rawProof, err := cbor.Marshal(proof)
	if err != nil {
		return adapter.ShareRequest{}, fmt.Errorf("encode proof transaction: %w", err)
	}

	return adapter.ShareRequest{
		Credential: cred.Token,
		Proof:      rawProof,
		IDs:        idsHex,
	}, nil
}

func (c *keyClient) fetchFromServer(ctx context.Context, server string, req adapter.ShareRequest) ([]adapter.KeyShare, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	return c.adapter.FetchShares(reqCtx, server, req)
}

// agreedShare returns the share value at least threshold servers agree on.
func agreedShare(shareVotes map[string]int, threshold int) ([]byte, bool) {
	for share, count := range shareVotes {
		if count >= threshold {
			return []byte(share), true
		}
	}
	return nil, false
}
