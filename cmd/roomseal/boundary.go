// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ametkin/roomseal/models"
)

// manifestRoomReader is a file-backed room state reader for the CLI. The
// manifest is produced by whatever indexes the chain; the CLI only needs
// the resulting view: room names, scopes, and recorded ciphertext ids.
type manifestRoomReader struct {
	path string
}

type roomManifest struct {
	Rooms        []manifestRoom       `json:"rooms"`
	Capabilities []manifestCapability `json:"capabilities"`
}

type manifestRoom struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Scope       string   `json:"scope"`
	Ciphertexts []string `json:"ciphertexts"`
}

type manifestCapability struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`
}

func newManifestRoomReader(path string) *manifestRoomReader {
	return &manifestRoomReader{path: path}
}

func (r *manifestRoomReader) load() (roomManifest, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return roomManifest{}, fmt.Errorf("read room manifest: %w", err)
	}

	var m roomManifest
	if err = json.Unmarshal(raw, &m); err != nil {
		return roomManifest{}, fmt.Errorf("decode room manifest %s: %w", r.path, err)
	}

	return m, nil
}

// RoomState implements [service.RoomStateReader].
func (r *manifestRoomReader) RoomState(_ context.Context, roomID string) (models.RoomState, error) {
	m, err := r.load()
	if err != nil {
		return models.RoomState{}, err
	}

	for _, room := range m.Rooms {
		if room.ID != roomID {
			continue
		}

		scope, err := hex.DecodeString(room.Scope)
		if err != nil {
			return models.RoomState{}, fmt.Errorf("room %s: bad scope hex: %w", roomID, err)
		}

		ids := make([]models.CiphertextID, 0, len(room.Ciphertexts))
		for _, encoded := range room.Ciphertexts {
			id, err := hex.DecodeString(encoded)
			if err != nil {
				return models.RoomState{}, fmt.Errorf("room %s: bad ciphertext id %q: %w", roomID, encoded, err)
			}
			ids = append(ids, id)
		}

		return models.RoomState{ID: room.ID, Name: room.Name, Scope: scope, Ciphertexts: ids}, nil
	}

	return models.RoomState{}, fmt.Errorf("room %s not present in manifest %s", roomID, r.path)
}

// Capabilities implements [service.RoomStateReader].
func (r *manifestRoomReader) Capabilities(_ context.Context, _ string) ([]models.Capability, error) {
	m, err := r.load()
	if err != nil {
		return nil, err
	}

	caps := make([]models.Capability, 0, len(m.Capabilities))
	for _, c := range m.Capabilities {
		caps = append(caps, models.Capability{ID: c.ID, RoomID: c.RoomID})
	}

	return caps, nil
}

// keyFileSigner signs credential challenges with an ed25519 key loaded
// from a hex seed file. It stands in for the wallet prompt a desktop
// client would raise.
type keyFileSigner struct {
	key ed25519.PrivateKey
}

func newKeyFileSigner(path string) (*keyFileSigner, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holder key: %w", err)
	}

	seed, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("decode holder key %s: %w", path, err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("holder key %s: seed must be %d bytes, got %d", path, ed25519.SeedSize, len(seed))
	}

	return &keyFileSigner{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign implements [service.ChallengeSigner].
func (s *keyFileSigner) Sign(_ context.Context, _ string, challenge []byte) ([]byte, error) {
	return ed25519.Sign(s.key, challenge), nil
}
