// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MediaType classifies the content of a decrypted payload.
type MediaType string

// Media types recognized by the content sniffer. MediaUnknown is the
// total-function fallback: classification never fails, it degrades to
// "unknown binary".
const (
	MediaJPEG           MediaType = "image/jpeg"
	MediaPNG            MediaType = "image/png"
	MediaGIF            MediaType = "image/gif"
	MediaPDF            MediaType = "application/pdf"
	MediaZIP            MediaType = "application/zip"
	MediaGZIP           MediaType = "application/gzip"
	MediaText           MediaType = "text/plain"
	MediaStructuredText MediaType = "application/json"
	MediaUnknown        MediaType = "application/octet-stream"
)

// String returns the MIME string of the media type.
func (m MediaType) String() string {
	return string(m)
}
