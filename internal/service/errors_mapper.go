// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/ametkin/roomseal/internal/adapter"
)

// mapKeyServerError translates the adapter's transport error into the
// service taxonomy for the key-request path: a verifier rejection is
// Denied, everything transient is Unavailable.
func mapKeyServerError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrDenied):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)

	case errors.Is(err, adapter.ErrUnavailable),
		errors.Is(err, adapter.ErrUnreachable),
		errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrKeyServersUnavailable, err)
	}

	return err
}
