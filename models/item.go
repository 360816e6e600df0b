// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"sync"
	"time"
)

// BlobHandle is a revocable handle to a decrypted resource. The holder of
// the handle owns the underlying resource until Release is called; Release
// is idempotent and safe to call from any goroutine.
type BlobHandle struct {
	once    sync.Once
	release func()
}

// NewBlobHandle wraps release into a handle. release runs at most once,
// on the first Release call. A nil release func yields a no-op handle.
func NewBlobHandle(release func()) *BlobHandle {
	return &BlobHandle{release: release}
}

// Release revokes the resource behind the handle. Subsequent calls are
// no-ops.
func (h *BlobHandle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if h.release != nil {
			h.release()
		}
	})
}

// DecryptedItem is one successfully recovered plaintext, owned by the
// caller after the pipeline returns. The caller releases Handle once the
// item is no longer displayed; the pipeline itself releases superseded
// handles before issuing a new batch for the same room.
type DecryptedItem struct {
	// ID is the CiphertextID the item was recovered from.
	ID CiphertextID

	// Data is the plaintext with any leading ordering marker stripped.
	Data []byte

	// Media is the sniffed media type of Data.
	Media MediaType

	// Timestamp is the ordering timestamp extracted from the plaintext's
	// leading marker, or nil if the plaintext carried none.
	Timestamp *time.Time

	// Handle revokes the decrypted resource. Never nil on items returned
	// by the pipeline.
	Handle *BlobHandle
}

// ItemFailure records a per-item, non-fatal pipeline failure (download
// exhausted, parse error, decrypt error). Failed items are excluded from
// the result but surfaced so the caller can tell "missing" from "never
// existed".
type ItemFailure struct {
	// ID is the id of the item that was dropped.
	ID CiphertextID

	// Stage names the pipeline stage that dropped it:
	// "fetch", "parse" or "decrypt".
	Stage string

	// Err is the underlying cause.
	Err error
}

// RecoverResult is the full outcome of one recover run: the ordered
// surviving items plus a note for every item that fell out along the way.
type RecoverResult struct {
	// Room is the display name of the room, as reported by the room
	// state reader, when known.
	Room string

	// Items are the recovered plaintexts, sorted by extracted timestamp
	// ascending with undated items after all dated ones.
	Items []DecryptedItem

	// Failures lists the ids excluded from Items and why.
	Failures []ItemFailure
}
