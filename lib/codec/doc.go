// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for the mirror
// registry store.
//
// Grainmirror uses two serialization formats with a clear boundary:
// JSON for everything an operator edits or pipes (CLI --json output,
// saved rebalance plans), CBOR for the registry store file that only
// the tool itself reads and writes.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// The same registry state always serializes to identical bytes, so a
// no-op read-modify-write cycle leaves the store file byte-identical.
//
// Decoding accepts standard CBOR and silently ignores unknown fields,
// so a registry written by a newer release still loads in an older
// one.
//
// [Diagnose] renders a store file in CBOR diagnostic notation
// (RFC 8949 §8); "grainmirror registry dump" exposes it for human
// inspection of the otherwise-binary store file.
package codec
