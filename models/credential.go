// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCredential is a short-lived, holder-signed proof of identity that
// the key servers accept in place of a fresh signature on every request.
//
// The credential is minted by having the holder sign a challenge encoded
// as a JWT signing string; the resulting compact token travels with every
// key-material request. Validity is local and cheap to check (expiry and
// holder match); the cryptographic verification of the signature is the
// key servers' job, not ours.
type SessionCredential struct {
	// Holder is the identity the credential was signed by. A credential
	// must never be honored for a different active holder.
	Holder string `json:"holder"`

	// Domain is the authorization domain the credential is scoped to.
	// A credential minted for one domain is not valid in another.
	Domain string `json:"domain"`

	// ExpiresAt is the instant after which the credential is dead and
	// must be re-issued through a fresh signing prompt.
	ExpiresAt time.Time `json:"expires_at"`

	// Token is the compact serialized credential
	// (base64url header.payload.signature), ready for transport.
	Token string `json:"token"`

	// KeyRef is an opaque reference handed back by the key servers when
	// the credential was registered, if any. Empty is fine.
	KeyRef string `json:"key_ref,omitempty"`
}

// CredentialClaims builds the registered JWT claim set for a credential
// challenge: sub carries the holder identity, aud the authorization
// domain, and exp the requested expiry.
func CredentialClaims(holder, domain string, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   holder,
		Audience:  jwt.ClaimStrings{domain},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
}

// Valid reports whether the credential may still be used by holder at
// instant now: the holder must match and the expiry must not have passed.
func (c SessionCredential) Valid(now time.Time, holder string) bool {
	if c.Token == "" || c.Holder != holder {
		return false
	}
	return now.Before(c.ExpiresAt)
}
