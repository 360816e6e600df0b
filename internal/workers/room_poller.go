// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/ametkin/roomseal/internal/service"
)

// RoomPoller adapts one room subscription's poll job to the [Worker]
// contract so it participates in the aggregate lifecycle.
type RoomPoller struct {
	job      service.PollJob
	roomID   string
	interval time.Duration
}

// NewRoomPoller binds job to roomID with the given tick interval.
func NewRoomPoller(job service.PollJob, roomID string, interval time.Duration) *RoomPoller {
	return &RoomPoller{job: job, roomID: roomID, interval: interval}
}

// Run implements [Worker].
func (p *RoomPoller) Run(ctx context.Context) {
	p.job.Start(ctx, p.roomID, p.interval)
}

// Stop implements [Worker].
func (p *RoomPoller) Stop() {
	p.job.Stop()
}
