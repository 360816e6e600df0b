// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/utils"
	"github.com/ametkin/roomseal/models"
)

type blobMirrorAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewBlobMirrorAdapter constructs an HTTP implementation of
// [BlobMirrorAdapter]. Mirror base URLs are supplied per call, so a single
// adapter serves any registry the caller selects.
func NewBlobMirrorAdapter(logger *logger.Logger) BlobMirrorAdapter {
	return &blobMirrorAdapter{client: utils.NewHTTPClient(), logger: logger}
}

// Fetch implements [BlobMirrorAdapter]. It GETs /v1/blobs/{id} from each
// mirror in turn, bounding every attempt with perAttemptTimeout. The first
// 2xx body wins. Failed attempts are logged at debug level and otherwise
// absorbed; when the list is exhausted the call fails with [ErrNotFound].
func (a *blobMirrorAdapter) Fetch(ctx context.Context, id models.CiphertextID, mirrors []string, perAttemptTimeout time.Duration) ([]byte, error) {
	if len(mirrors) == 0 {
		return nil, fmt.Errorf("%w: no mirrors configured", ErrNotFound)
	}

	for _, mirror := range mirrors {
		base, err := normalizeBaseURL(mirror)
		if err != nil {
			a.logger.Debug().Err(err).Str("mirror", mirror).Msg("skipping invalid mirror url")
			continue
		}

		payload, err := a.fetchOne(ctx, base, id, perAttemptTimeout)
		if err != nil {
			a.logger.Debug().Err(err).
				Str("mirror", base).
				Str("blob", id.String()).
				Msg("mirror attempt failed, trying next")
			continue
		}

		return payload, nil
	}

	return nil, fmt.Errorf("%w: %s after %d mirrors", ErrNotFound, id, len(mirrors))
}

func (a *blobMirrorAdapter) fetchOne(ctx context.Context, base string, id models.CiphertextID, timeout time.Duration) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := a.client.R().
		SetContext(attemptCtx).
		Get(base + "/v1/blobs/" + id.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// Store implements [BlobMirrorAdapter]. It PUTs the encoded envelope to
// /v1/blobs/{id} on each mirror in turn until one accepts. The HTTP status
// is decoded once, here, into the typed [models.StoreResult]:
// 201 Created means newly certified, any other 2xx means the mirror
// already held the blob.
func (a *blobMirrorAdapter) Store(ctx context.Context, id models.CiphertextID, raw []byte, mirrors []string, perAttemptTimeout time.Duration) (models.StoreResult, error) {
	if len(mirrors) == 0 {
		return models.StoreResult{}, fmt.Errorf("%w: no mirrors configured", ErrUnreachable)
	}

	var lastErr error
	for _, mirror := range mirrors {
		base, err := normalizeBaseURL(mirror)
		if err != nil {
			lastErr = err
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, perAttemptTimeout)
		resp, err := a.client.R().
			SetContext(attemptCtx).
			SetHeader("Content-Type", "application/cbor").
			SetBody(raw).
			Put(base + "/v1/blobs/" + id.String())
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrUnreachable, err)
			continue
		}
		if err = mapHTTPError(resp); err != nil {
			lastErr = err
			continue
		}

		status := models.StoreAlreadyCertified
		if resp.StatusCode() == http.StatusCreated {
			status = models.StoreNewlyCreated
		}

		return models.StoreResult{ID: id, Status: status, Mirror: base}, nil
	}

	return models.StoreResult{}, fmt.Errorf("store blob %s: %w", id, lastErr)
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
