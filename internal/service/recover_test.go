// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ametkin/roomseal/internal/config"
	"github.com/ametkin/roomseal/internal/crypto"
	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/mock"
	"github.com/ametkin/roomseal/models"
)

// ── hand-rolled collaborators (mockgen on service interfaces would import-cycle) ──

type stubReader struct {
	state models.RoomState
	err   error
}

func (r *stubReader) RoomState(context.Context, string) (models.RoomState, error) {
	return r.state, r.err
}

func (r *stubReader) Capabilities(context.Context, string) ([]models.Capability, error) {
	return nil, nil
}

type stubCreds struct {
	cred models.SessionCredential

	resolveErr error
	cachedErr  error

	resolveCalls    int
	cachedCalls     int
	invalidateCalls int
}

func (c *stubCreds) Resolve(context.Context, string, string, time.Duration, ChallengeSigner) (models.SessionCredential, error) {
	c.resolveCalls++
	return c.cred, c.resolveErr
}

func (c *stubCreds) ResolveCached(context.Context, string, string) (models.SessionCredential, error) {
	c.cachedCalls++
	return c.cred, c.cachedErr
}

func (c *stubCreds) Invalidate(context.Context, string, string) error {
	c.invalidateCalls++
	return nil
}

type stubKeys struct {
	fn    func(ids []models.CiphertextID) (*crypto.KeyMaterial, error)
	calls int
}

func (k *stubKeys) FetchKeys(_ context.Context, ids []models.CiphertextID, _ models.SessionCredential, _ int) (*crypto.KeyMaterial, error) {
	k.calls++
	return k.fn(ids)
}

// ── fixtures ─────────────────────────────────────────────────────────────────

var testShare = []byte("agreed-cluster-share")

// materialFor builds fresh key material holding the test share for each id.
// Fresh per call: the pipeline discards material after every run.
func materialFor(ids ...models.CiphertextID) *crypto.KeyMaterial {
	m := crypto.NewKeyMaterial()
	for _, id := range ids {
		m.Add(id, bytes.Clone(testShare))
	}
	return m
}

func sealTestBlob(t *testing.T, id models.CiphertextID, plaintext []byte) []byte {
	t.Helper()

	material := materialFor(id)
	defer material.Discard()

	blob, err := crypto.NewEnvelopeService().Seal(plaintext, id, material)
	require.NoError(t, err)
	raw, err := blob.Encode()
	require.NoError(t, err)
	return raw
}

func stamped(t time.Time, payload string) []byte {
	return append(encodeTimestampMarker(t), []byte(payload)...)
}

func testPipelineConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Holder:        "0xholder",
			Domain:        "0xpolicy",
			CredentialTTL: 30 * time.Minute,
		},
		Mirrors: config.Mirrors{
			URLs:           []string{"m1", "m2"},
			AttemptTimeout: time.Second,
		},
		KeyServers: config.KeyServers{
			URLs:      []string{"ks1"},
			Threshold: 1,
		},
	}
}

func newPipelineTest(t *testing.T, reader *stubReader, creds *stubCreds, keys *stubKeys) (*pipeline, *mock.MockBlobMirrorAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mirror := mock.NewMockBlobMirrorAdapter(ctrl)

	p := NewPipeline(
		testPipelineConfig(),
		mirror,
		reader,
		creds,
		keys,
		crypto.NewEnvelopeService(),
		&stubSigner{sig: []byte("sig")},
		logger.Nop(),
	).(*pipeline)

	return p, mirror
}

func agreeingKeys() *stubKeys {
	return &stubKeys{fn: func(ids []models.CiphertextID) (*crypto.KeyMaterial, error) {
		return materialFor(ids...), nil
	}}
}

// ── ordering and round trip ──────────────────────────────────────────────────

func TestPipeline_Recover_OrdersByTimestampUndatedLast(t *testing.T) {
	ids := mintTestIDs(t, 3)
	later := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)

	payloads := map[string][]byte{
		ids[0].String(): stamped(later, "second message"),
		ids[1].String(): stamped(earlier, "first message"),
		ids[2].String(): []byte("undated message"),
	}

	reader := &stubReader{state: models.RoomState{ID: "room-1", Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	for _, id := range ids {
		mirror.EXPECT().Fetch(gomock.Any(), id, []string{"m1", "m2"}, time.Second).
			Return(sealTestBlob(t, id, payloads[id.String()]), nil)
	}

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)

	assert.Equal(t, "ops", result.Room)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Items, 3)

	assert.Equal(t, []byte("first message"), result.Items[0].Data)
	assert.Equal(t, []byte("second message"), result.Items[1].Data)
	assert.Equal(t, []byte("undated message"), result.Items[2].Data)

	assert.NotNil(t, result.Items[0].Timestamp)
	assert.Nil(t, result.Items[2].Timestamp, "undated items sort after all dated ones")
	assert.Equal(t, models.MediaText, result.Items[0].Media)
}

func TestPipeline_Recover_ListsIDsFromRoomState(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{ID: "room-1", Name: "ops", Ciphertexts: ids}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	for _, id := range ids {
		mirror.EXPECT().Fetch(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(sealTestBlob(t, id, []byte("payload")), nil)
	}

	result, err := p.Recover(context.Background(), "room-1", nil)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
}

func TestPipeline_Recover_EmptyRoom(t *testing.T) {
	reader := &stubReader{state: models.RoomState{ID: "room-1", Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, _ := newPipelineTest(t, reader, creds, agreeingKeys())

	result, err := p.Recover(context.Background(), "room-1", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, creds.resolveCalls, "an empty room needs no credential")
}

func TestPipeline_Recover_RoomStateUnavailable(t *testing.T) {
	reader := &stubReader{err: assert.AnError}
	creds := &stubCreds{cred: testCredential()}
	p, _ := newPipelineTest(t, reader, creds, agreeingKeys())

	_, err := p.Recover(context.Background(), "room-1", nil)
	assert.ErrorIs(t, err, ErrRoomStateUnavailable)
}

func TestPipeline_Recover_ExplicitIDsSurviveUnreadableRoom(t *testing.T) {
	ids := mintTestIDs(t, 1)

	reader := &stubReader{err: assert.AnError}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[0], []byte("payload")), nil)

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Empty(t, result.Room)
}

// ── fetch and parse failure policy ───────────────────────────────────────────

func TestPipeline_Recover_AllMirrorsUnreachable(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	for _, id := range ids {
		mirror.EXPECT().Fetch(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)
	}

	_, err := p.Recover(context.Background(), "room-1", ids)
	assert.ErrorIs(t, err, ErrAllMirrorsUnreachable)
	assert.Zero(t, creds.resolveCalls, "no credential work when nothing was fetched")
}

func TestPipeline_Recover_PartialFetchFailureIsPerItem(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)
	mirror.EXPECT().Fetch(gomock.Any(), ids[1], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[1], []byte("survivor")), nil)

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, []byte("survivor"), result.Items[0].Data)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "fetch", result.Failures[0].Stage)
	assert.True(t, result.Failures[0].ID.Equal(ids[0]))
}

func TestPipeline_Recover_ParseFailureIsPerItem(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return([]byte("not a cbor envelope"), nil)
	mirror.EXPECT().Fetch(gomock.Any(), ids[1], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[1], []byte("survivor")), nil)

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "parse", result.Failures[0].Stage)
	assert.ErrorIs(t, result.Failures[0].Err, models.ErrMalformedBlob)
}

func TestPipeline_Recover_AllParseFailuresDoNotAbort(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	keys := agreeingKeys()
	p, mirror := newPipelineTest(t, reader, creds, keys)

	// every mirror download succeeds, none of the payloads is an envelope
	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return([]byte("not a cbor envelope"), nil)
	mirror.EXPECT().Fetch(gomock.Any(), ids[1], gomock.Any(), gomock.Any()).
		Return([]byte("also not an envelope"), nil)

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err, "parse failures are per-item, not a mirror outage")

	assert.Empty(t, result.Items)
	require.Len(t, result.Failures, 2)
	for _, failure := range result.Failures {
		assert.Equal(t, "parse", failure.Stage)
		assert.ErrorIs(t, failure.Err, models.ErrMalformedBlob)
	}

	assert.Zero(t, creds.resolveCalls, "nothing decryptable, no credential needed")
	assert.Zero(t, keys.calls)
}

func TestPipeline_Recover_EnvelopeIDMismatchIsParseFailure(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	// mirror serves a blob sealed under a different id
	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[1], []byte("misfiled")), nil)
	mirror.EXPECT().Fetch(gomock.Any(), ids[1], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[1], []byte("survivor")), nil)

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "parse", result.Failures[0].Stage)
	assert.True(t, result.Failures[0].ID.Equal(ids[0]))
}

// ── credential and key policy ────────────────────────────────────────────────

func TestPipeline_Recover_SigningDeclinedAborts(t *testing.T) {
	ids := mintTestIDs(t, 1)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{resolveErr: ErrSigningDeclined}
	keys := agreeingKeys()
	p, mirror := newPipelineTest(t, reader, creds, keys)

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[0], []byte("payload")), nil)

	_, err := p.Recover(context.Background(), "room-1", ids)
	assert.ErrorIs(t, err, ErrSigningDeclined)
	assert.Zero(t, keys.calls)
}

func TestPipeline_Recover_DeniedAbortsAndInvalidatesCredential(t *testing.T) {
	ids := mintTestIDs(t, 1)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	keys := &stubKeys{fn: func([]models.CiphertextID) (*crypto.KeyMaterial, error) {
		return nil, ErrAccessDenied
	}}
	p, mirror := newPipelineTest(t, reader, creds, keys)

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[0], []byte("payload")), nil)

	_, err := p.Recover(context.Background(), "room-1", ids)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 1, keys.calls, "denied batches are never retried")
	assert.Equal(t, 1, creds.invalidateCalls, "a verifier rejection invalidates the cached credential")
}

func TestPipeline_Recover_UnavailableRetriesBounded(t *testing.T) {
	ids := mintTestIDs(t, 1)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	keys := &stubKeys{fn: func([]models.CiphertextID) (*crypto.KeyMaterial, error) {
		return nil, ErrKeyServersUnavailable
	}}
	p, mirror := newPipelineTest(t, reader, creds, keys)

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[0], []byte("payload")), nil)

	_, err := p.Recover(context.Background(), "room-1", ids)
	assert.ErrorIs(t, err, ErrKeyServersUnavailable)
	assert.Equal(t, keyFetchAttempts, keys.calls)
}

func TestPipeline_Recover_UnavailableThenSuccess(t *testing.T) {
	ids := mintTestIDs(t, 1)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}

	attempts := 0
	keys := &stubKeys{fn: func(reqIDs []models.CiphertextID) (*crypto.KeyMaterial, error) {
		attempts++
		if attempts < 3 {
			return nil, ErrKeyServersUnavailable
		}
		return materialFor(reqIDs...), nil
	}}
	p, mirror := newPipelineTest(t, reader, creds, keys)

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[0], []byte("payload")), nil)

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 3, keys.calls)
}

func TestPipeline_Recover_DecryptFailureIsPerItem(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	keys := &stubKeys{fn: func(reqIDs []models.CiphertextID) (*crypto.KeyMaterial, error) {
		m := crypto.NewKeyMaterial()
		for _, id := range reqIDs {
			if id.Equal(ids[0]) {
				m.Add(id, []byte("wrong-share"))
				continue
			}
			m.Add(id, bytes.Clone(testShare))
		}
		return m, nil
	}}
	p, mirror := newPipelineTest(t, reader, creds, keys)

	for _, id := range ids {
		mirror.EXPECT().Fetch(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(sealTestBlob(t, id, []byte("payload")), nil)
	}

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "decrypt", result.Failures[0].Stage)
	assert.ErrorIs(t, result.Failures[0].Err, crypto.ErrDecryptFailed)
}

// ── non-interactive path ─────────────────────────────────────────────────────

func TestPipeline_RecoverCached_NeverPrompts(t *testing.T) {
	ids := mintTestIDs(t, 1)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cachedErr: ErrCredentialUnavailable}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[0], []byte("payload")), nil)

	_, err := p.RecoverCached(context.Background(), "room-1", ids)
	assert.ErrorIs(t, err, ErrCredentialUnavailable)
	assert.Zero(t, creds.resolveCalls, "the background path must never reach the interactive resolver")
	assert.Equal(t, 1, creds.cachedCalls)
}

// ── resource handles ─────────────────────────────────────────────────────────

func TestPipeline_Recover_HandleHygieneAcrossPolls(t *testing.T) {
	ids := mintTestIDs(t, 2)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	mirror.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id models.CiphertextID, _ []string, _ time.Duration) ([]byte, error) {
			return sealTestBlob(t, id, []byte("payload-"+id.String()[:8])), nil
		}).Times(4)

	first, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)
	second, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)

	assert.Equal(t, len(second.Items), p.handles.outstanding("room-1"),
		"outstanding handles never exceed the latest batch")

	// the superseded batch's plaintext is wiped
	for _, item := range first.Items {
		assert.Equal(t, bytes.Repeat([]byte{0}, len(item.Data)), item.Data)
	}
	for _, item := range second.Items {
		assert.NotEqual(t, bytes.Repeat([]byte{0}, len(item.Data)), item.Data)
	}
}

func TestPipeline_ReleaseRoom_WipesOutstandingItems(t *testing.T) {
	ids := mintTestIDs(t, 1)

	reader := &stubReader{state: models.RoomState{Name: "ops"}}
	creds := &stubCreds{cred: testCredential()}
	p, mirror := newPipelineTest(t, reader, creds, agreeingKeys())

	mirror.EXPECT().Fetch(gomock.Any(), ids[0], gomock.Any(), gomock.Any()).
		Return(sealTestBlob(t, ids[0], []byte("payload")), nil)

	result, err := p.Recover(context.Background(), "room-1", ids)
	require.NoError(t, err)

	p.ReleaseRoom("room-1")
	assert.Zero(t, p.handles.outstanding("room-1"))
	assert.Equal(t, bytes.Repeat([]byte{0}, len(result.Items[0].Data)), result.Items[0].Data)
}

func TestSortByTimestamp_StableAmongUndated(t *testing.T) {
	ids := mintTestIDs(t, 4)
	early := testNow.Add(-time.Hour)
	late := testNow

	items := []models.DecryptedItem{
		{ID: ids[0], Data: []byte("undated-a")},
		{ID: ids[1], Timestamp: &late, Data: []byte("late")},
		{ID: ids[2], Data: []byte("undated-b")},
		{ID: ids[3], Timestamp: &early, Data: []byte("early")},
	}

	sortByTimestamp(items)

	assert.Equal(t, []byte("early"), items[0].Data)
	assert.Equal(t, []byte("late"), items[1].Data)
	assert.Equal(t, []byte("undated-a"), items[2].Data, "undated items keep retrieval order")
	assert.Equal(t, []byte("undated-b"), items[3].Data)
}
