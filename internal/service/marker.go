// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"strconv"
	"time"
)

// timestampMarkerPrefix introduces the optional ordering marker published
// plaintexts carry on their first line: "ts:<unix-millis>\n".
const timestampMarkerPrefix = "ts:"

// maxMarkerLen bounds the marker scan so binary payloads that happen to
// start with "ts:" are not searched end to end for a newline.
const maxMarkerLen = 32

// encodeTimestampMarker renders t as the leading ordering marker.
func encodeTimestampMarker(t time.Time) []byte {
	return []byte(timestampMarkerPrefix + strconv.FormatInt(t.UnixMilli(), 10) + "\n")
}

// splitTimestampMarker extracts the ordering timestamp from data's leading
// marker, returning the timestamp and the payload with the marker
// stripped. Payloads without a parseable marker come back unchanged with a
// nil timestamp.
func splitTimestampMarker(data []byte) (*time.Time, []byte) {
	if !bytes.HasPrefix(data, []byte(timestampMarkerPrefix)) {
		return nil, data
	}

	limit := min(len(data), maxMarkerLen)
	nl := bytes.IndexByte(data[:limit], '\n')
	if nl < 0 {
		return nil, data
	}

	millis, err := strconv.ParseInt(string(data[len(timestampMarkerPrefix):nl]), 10, 64)
	if err != nil {
		return nil, data
	}

	ts := time.UnixMilli(millis).UTC()
	return &ts, data[nl+1:]
}
