// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/utils"
)

type keyServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewKeyServerAdapter constructs an HTTP implementation of
// [KeyServerAdapter]. The cluster's server URLs are supplied per call; one
// adapter serves any cluster configuration.
func NewKeyServerAdapter(logger *logger.Logger) KeyServerAdapter {
	return &keyServerAdapter{client: utils.NewHTTPClient(), logger: logger}
}

type shareResponse struct {
	Shares []KeyShare `json:"shares"`
}

// FetchShares implements [KeyServerAdapter]. It POSTs req to
// {baseURL}/v1/keys and returns the server's per-id shares. The verifier's
// rejection (401/403) maps to [ErrDenied]; transient statuses map to
// [ErrUnavailable]; a transport failure maps to [ErrUnreachable].
func (a *keyServerAdapter) FetchShares(ctx context.Context, baseURL string, req ShareRequest) ([]KeyShare, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid key server address: %w", err)
	}

	var result shareResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post(base + "/v1/keys")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if len(result.Shares) == 0 {
		return nil, fmt.Errorf("%w: empty share response", ErrUnavailable)
	}

	return result.Shares, nil
}
