// Package io provides text import and export for polymer chains.
//
// # Overview
//
// The primary exchange format is XYZ, the plain-text point-cloud layout
// understood by most molecular viewers:
//
//	3
//	Generated polymer chain
//	C 0.000000 0.000000 0.000000
//	C 1.000000 0.000000 1.000000
//	C 1.000000 1.000000 2.000000
//
// The first line is the atom count, the second a free-text comment, and each
// remaining line a whitespace-separated "label x y z" record. Records appear in
// chain order, which viewers rely on to draw the backbone.
//
// # Writing
//
// [FormatXYZ] and [WriteXYZ] serialize a chain. The declared count must match
// the number of points; a mismatch is an INVALID_ARGUMENT error. Non-finite
// coordinates are rejected with NUMERIC_DOMAIN. Validation happens before any
// byte is written, so a failing call produces no partial output.
//
//	text, err := io.FormatXYZ(len(c), c)
//
// # Reading
//
// [ParseXYZ], [ReadXYZ] and [ImportXYZ] recover a single frame. Extra columns
// after z are ignored; a count that disagrees with the records is an
// INVALID_FORMAT error.
//
// # Documents
//
// [Document] wraps a chain with its comment and generation parameters for the
// JSON, YAML and MessagePack exports written by [WriteJSON], [WriteYAML] and
// [WriteMsgpack]. The binary form reuses the JSON field names.
package io
