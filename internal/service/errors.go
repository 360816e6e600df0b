package service

import "errors"

var (
	// ErrAllMirrorsUnreachable means not a single requested blob could be
	// fetched from any configured mirror. This is the only all-or-nothing
	// gate of the recover pipeline.
	ErrAllMirrorsUnreachable = errors.New("all mirrors unreachable")

	// ErrAccessDenied means the verifier rejected the holder for an id or
	// batch. Not retriable with the same credential; the cached
	// credential is invalidated when this surfaces from recover.
	ErrAccessDenied = errors.New("access denied by verifier")

	// ErrKeyServersUnavailable means fewer than threshold key servers
	// produced an agreeing share. Transient; retriable with backoff.
	ErrKeyServersUnavailable = errors.New("key server threshold not met")

	// ErrSigningDeclined means the holder refused or failed to sign the
	// credential challenge. Fatal to that resolve call only.
	ErrSigningDeclined = errors.New("credential signing declined")

	// ErrCredentialUnavailable means no valid cached credential exists
	// and the caller is not allowed to prompt for one.
	ErrCredentialUnavailable = errors.New("no valid cached credential")

	// ErrRoomStateUnavailable means the chain-state reader could not
	// report the room, so there is nothing to recover or publish into.
	ErrRoomStateUnavailable = errors.New("room state unavailable")
)
