// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sniff classifies decrypted byte buffers into media types using
// magic-byte prefixes and a printable-text heuristic. Classification is a
// pure, total function: it never fails, it falls back to unknown binary.
package sniff

import (
	"bytes"

	"github.com/ametkin/roomseal/models"
)

// textSampleLen bounds how far into a buffer the printable-text scan
// looks.
const textSampleLen = 1024

type magic struct {
	prefix []byte
	media  models.MediaType
}

// Magic prefixes are checked in order, longest first where prefixes
// overlap.
var magics = []magic{
	{[]byte{0x89, 0x50, 0x4E, 0x47}, models.MediaPNG},
	{[]byte{0x50, 0x4B, 0x03, 0x04}, models.MediaZIP},
	{[]byte{0x47, 0x49, 0x46, 0x38}, models.MediaGIF},
	{[]byte("%PDF"), models.MediaPDF},
	{[]byte{0xFF, 0xD8, 0xFF}, models.MediaJPEG},
	{[]byte{0x1F, 0x8B}, models.MediaGZIP},
}

// Classify returns the media type of data. Detection order: fixed magic
// prefixes first; then, if every byte of the first kilobyte is printable
// ASCII or common whitespace, text — with a leading '{' or '[' (after
// whitespace trim) promoting it to structured text; otherwise unknown
// binary. Empty input is unknown binary.
func Classify(data []byte) models.MediaType {
	if len(data) == 0 {
		return models.MediaUnknown
	}

	for _, m := range magics {
		if bytes.HasPrefix(data, m.prefix) {
			return m.media
		}
	}

	sample := data
	if len(sample) > textSampleLen {
		sample = sample[:textSampleLen]
	}
	if !printableASCII(sample) {
		return models.MediaUnknown
	}

	trimmed := bytes.TrimLeft(sample, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return models.MediaStructuredText
	}

	return models.MediaText
}

func printableASCII(sample []byte) bool {
	for _, b := range sample {
		if b >= 0x20 && b < 0x7F {
			continue
		}
		switch b {
		case '\t', '\n', '\r', '\v', '\f':
			continue
		}
		return false
	}
	return true
}
