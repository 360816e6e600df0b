// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ametkin/roomseal/internal/logger"
)

type pollJob struct {
	pipeline Pipeline

	mu     sync.Mutex
	roomID string
	cancel context.CancelFunc
	wg     sync.WaitGroup

	inFlight atomic.Bool

	logger *logger.Logger
}

// NewPollJob creates a [PollJob] that re-runs the pipeline's
// non-interactive recover path on a ticker. The job is idle until Start is
// called.
func NewPollJob(pipeline Pipeline, log *logger.Logger) PollJob {
	return &pollJob{pipeline: pipeline, logger: log}
}

// Start implements [PollJob]. It stops any previously running job, then
// launches a goroutine that ticks immediately and every interval after. If
// interval is zero or negative it defaults to 30 seconds. Scheduling ends
// when ctx is cancelled or Stop is called; a tick already in flight runs
// to completion either way.
func (j *pollJob) Start(ctx context.Context, roomID string, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	j.Stop()

	j.mu.Lock()
	// Stop cancels only the scheduling loop, not the caller's ctx, so an
	// in-flight tick is never aborted by Stop.
	loopCtx, cancel := context.WithCancel(context.Background())
	j.roomID = roomID
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.tick(ctx, roomID)

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ctx.Done():
				return
			case <-t.C:
				j.tick(ctx, roomID)
			}
		}
	}()
}

// tick runs one non-interactive recover. A tick that finds the previous
// one still in flight is skipped, never queued. A missing cached
// credential is "no update", not an error worth more than a debug line.
func (j *pollJob) tick(ctx context.Context, roomID string) {
	if !j.inFlight.CompareAndSwap(false, true) {
		j.logger.Debug().Str("room", roomID).Msg("previous poll still in flight, skipping tick")
		return
	}
	defer j.inFlight.Store(false)

	result, err := j.pipeline.RecoverCached(ctx, roomID, nil)
	if err != nil {
		if errors.Is(err, ErrCredentialUnavailable) {
			j.logger.Debug().Str("room", roomID).Msg("no cached credential, poll tick skipped")
			return
		}
		j.logger.Warn().Err(err).Str("room", roomID).Msg("poll tick failed")
		return
	}

	j.logger.Debug().
		Str("room", roomID).
		Int("items", len(result.Items)).
		Int("failures", len(result.Failures)).
		Msg("poll tick complete")
}

// Stop implements [PollJob]. It cancels the scheduling loop, waits for it
// to exit (which includes any tick currently running), and releases the
// room's handles. No-op when the job is not running.
func (j *pollJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	roomID := j.roomID
	j.cancel = nil
	j.roomID = ""
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()

	if roomID != "" {
		j.pipeline.ReleaseRoom(roomID)
	}
}
