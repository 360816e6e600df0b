// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/ametkin/roomseal/models"
)

// handleRegistry tracks the resource handles a pipeline has issued per
// room, so a new recover run (or a controller stop) can release the
// superseded batch before new handles are handed out. Without it a polling
// loop would grow one batch of live plaintext buffers per tick.
type handleRegistry struct {
	mu     sync.Mutex
	byRoom map[string][]*models.BlobHandle
}

func newHandleRegistry() *handleRegistry {
	return &handleRegistry{byRoom: make(map[string][]*models.BlobHandle)}
}

// swap releases every handle previously tracked for roomID and replaces
// them with next.
func (r *handleRegistry) swap(roomID string, next []*models.BlobHandle) {
	r.mu.Lock()
	prev := r.byRoom[roomID]
	r.byRoom[roomID] = next
	r.mu.Unlock()

	for _, h := range prev {
		h.Release()
	}
}

// release drops and releases every handle tracked for roomID.
func (r *handleRegistry) release(roomID string) {
	r.swap(roomID, nil)
}

// outstanding reports how many handles are currently tracked for roomID.
func (r *handleRegistry) outstanding(roomID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byRoom[roomID])
}
