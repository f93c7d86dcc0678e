// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package contenthash computes the content digests that drive drift
// detection. A "logical file" is in sync across its mirrors exactly
// when every copy has the same digest, so the only property demanded
// of the hash is negligible collision probability; BLAKE3 in keyed
// mode provides that with a fixed 32-byte output.
//
// The keyed mode uses a single domain key ("grainmirror.content",
// zero-padded) so that digests from this tool never collide with
// digests another BLAKE3 user computed over the same bytes. Changing
// the key invalidates every recorded digest, which the verify engine
// would report as universal drift — the key is therefore a fixed
// constant, not configuration.
//
// [Digest] is the 32-byte value; its canonical text form is the
// 64-character lowercase hex string produced by [Digest.String] and
// accepted by [Parse]. [HashBytes] hashes in-memory content and
// [HashFile] reads a file through the filesystem collaborator first.
package contenthash
