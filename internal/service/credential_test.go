// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ametkin/roomseal/internal/logger"
	"github.com/ametkin/roomseal/internal/mock"
	"github.com/ametkin/roomseal/internal/store"
	"github.com/ametkin/roomseal/models"
)

// stubSigner is a hand-rolled ChallengeSigner (mockgen would create an
// import cycle for service-level interfaces).
type stubSigner struct {
	sig   []byte
	err   error
	calls int

	lastChallenge []byte
}

func (s *stubSigner) Sign(_ context.Context, _ string, challenge []byte) ([]byte, error) {
	s.calls++
	s.lastChallenge = challenge
	if s.err != nil {
		return nil, s.err
	}
	return s.sig, nil
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newCredentialServiceTest(t *testing.T) (*credentialService, *mock.MockCredentialRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockCredentialRepository(ctrl)

	svc := NewCredentialService(repo, logger.Nop()).(*credentialService)
	svc.now = func() time.Time { return testNow }

	return svc, repo
}

func validTestCredential() models.SessionCredential {
	return models.SessionCredential{
		Holder:    "0xholder",
		Domain:    "0xpolicy",
		ExpiresAt: testNow.Add(10 * time.Minute),
		Token:     "h.p.s",
	}
}

// ── Resolve ──────────────────────────────────────────────────────────────────

func TestCredentialService_Resolve_CachedValid_NoPrompt(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	cached := validTestCredential()
	signer := &stubSigner{sig: []byte("sig")}

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").Return(cached, nil)

	cred, err := svc.Resolve(context.Background(), "0xholder", "0xpolicy", 30*time.Minute, signer)
	require.NoError(t, err)
	assert.Equal(t, cached, cred)
	assert.Zero(t, signer.calls, "a valid cached credential must not prompt")
}

func TestCredentialService_Resolve_SecondCallUsesCache(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	signer := &stubSigner{sig: []byte("sig")}

	// first call misses and mints; second call hits the cache
	miss := repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").
		Return(models.SessionCredential{}, store.ErrCredentialNotFound)

	var persisted models.SessionCredential
	repo.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cred models.SessionCredential) error {
			persisted = cred
			return nil
		})

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").
		DoAndReturn(func(context.Context, string, string) (models.SessionCredential, error) {
			return persisted, nil
		}).After(miss)

	_, err := svc.Resolve(context.Background(), "0xholder", "0xpolicy", 30*time.Minute, signer)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), "0xholder", "0xpolicy", 30*time.Minute, signer)
	require.NoError(t, err)

	assert.Equal(t, 1, signer.calls, "second resolve must not prompt again")
}

func TestCredentialService_Resolve_ExpiredCache_ReissuesOnce(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	signer := &stubSigner{sig: []byte("fresh-signature")}

	expired := validTestCredential()
	expired.ExpiresAt = testNow.Add(-time.Minute)

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").Return(expired, nil)

	var persisted models.SessionCredential
	repo.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cred models.SessionCredential) error {
			persisted = cred
			return nil
		})

	cred, err := svc.Resolve(context.Background(), "0xholder", "0xpolicy", 30*time.Minute, signer)
	require.NoError(t, err)

	assert.Equal(t, 1, signer.calls)
	assert.True(t, cred.ExpiresAt.After(expired.ExpiresAt), "fresh credential must outlive the expired one")
	assert.Equal(t, cred, persisted)
}

func TestCredentialService_Resolve_SigningDeclined(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	signer := &stubSigner{err: assert.AnError}

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").
		Return(models.SessionCredential{}, store.ErrCredentialNotFound)

	// no partial credential may survive a declined signing
	repo.EXPECT().Delete(gomock.Any(), "0xpolicy", "0xholder").Return(nil)

	_, err := svc.Resolve(context.Background(), "0xholder", "0xpolicy", 30*time.Minute, signer)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSigningDeclined)
}

func TestCredentialService_Resolve_PersistFailure_StillReturnsCredential(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	signer := &stubSigner{sig: []byte("sig")}

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").
		Return(models.SessionCredential{}, store.ErrCredentialNotFound)
	repo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(assert.AnError)

	cred, err := svc.Resolve(context.Background(), "0xholder", "0xpolicy", 30*time.Minute, signer)
	require.NoError(t, err, "cache durability is best-effort")
	assert.NotEmpty(t, cred.Token)
}

func TestCredentialService_Resolve_TokenShape(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	signer := &stubSigner{sig: []byte("raw-signature-bytes")}

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").
		Return(models.SessionCredential{}, store.ErrCredentialNotFound)
	repo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	cred, err := svc.Resolve(context.Background(), "0xholder", "0xpolicy", 30*time.Minute, signer)
	require.NoError(t, err)

	parts := strings.Split(cred.Token, ".")
	require.Len(t, parts, 3, "compact token is header.payload.signature")
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(signer.sig), parts[2])
	assert.Equal(t, parts[0]+"."+parts[1], string(signer.lastChallenge),
		"the signed challenge is the token's signing string")

	assert.Equal(t, "0xholder", cred.Holder)
	assert.Equal(t, "0xpolicy", cred.Domain)
	assert.Equal(t, testNow.Add(30*time.Minute), cred.ExpiresAt)
}

// ── ResolveCached ────────────────────────────────────────────────────────────

func TestCredentialService_ResolveCached_Valid(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	cached := validTestCredential()

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").Return(cached, nil)

	cred, err := svc.ResolveCached(context.Background(), "0xholder", "0xpolicy")
	require.NoError(t, err)
	assert.Equal(t, cached, cred)
}

func TestCredentialService_ResolveCached_Miss(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").
		Return(models.SessionCredential{}, store.ErrCredentialNotFound)

	_, err := svc.ResolveCached(context.Background(), "0xholder", "0xpolicy")
	assert.ErrorIs(t, err, ErrCredentialUnavailable)
}

func TestCredentialService_ResolveCached_Expired(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	expired := validTestCredential()
	expired.ExpiresAt = testNow.Add(-time.Second)

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").Return(expired, nil)

	_, err := svc.ResolveCached(context.Background(), "0xholder", "0xpolicy")
	assert.ErrorIs(t, err, ErrCredentialUnavailable)
}

func TestCredentialService_ResolveCached_WrongHolder(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)
	other := validTestCredential()
	other.Holder = "0xsomeoneelse"

	repo.EXPECT().Get(gomock.Any(), "0xpolicy", "0xholder").Return(other, nil)

	_, err := svc.ResolveCached(context.Background(), "0xholder", "0xpolicy")
	assert.ErrorIs(t, err, ErrCredentialUnavailable, "a credential never serves a different holder")
}

// ── Invalidate ───────────────────────────────────────────────────────────────

func TestCredentialService_Invalidate(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)

	repo.EXPECT().Delete(gomock.Any(), "0xpolicy", "0xholder").Return(nil)

	assert.NoError(t, svc.Invalidate(context.Background(), "0xpolicy", "0xholder"))
}

func TestCredentialService_Invalidate_RepositoryError(t *testing.T) {
	svc, repo := newCredentialServiceTest(t)

	repo.EXPECT().Delete(gomock.Any(), "0xpolicy", "0xholder").Return(assert.AnError)

	assert.Error(t, svc.Invalidate(context.Background(), "0xpolicy", "0xholder"))
}
