// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/grainmirror/grainmirror/lib/fsys"
)

// Digest is a 32-byte BLAKE3 content digest.
type Digest [32]byte

// DigestHexLength is the length of the canonical hex form.
const DigestHexLength = 64

// contentDomainKey is the fixed 32-byte key for BLAKE3 keyed hashing.
// The byte values are the ASCII encoding of the domain name,
// zero-padded, so the key is inspectable in hex dumps without losing
// any cryptographic property.
var contentDomainKey = [32]byte{
	'g', 'r', 'a', 'i', 'n', 'm', 'i', 'r', 'r', 'o', 'r', '.',
	'c', 'o', 'n', 't', 'e', 'n', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashBytes computes the content digest of data.
func HashBytes(data []byte) Digest {
	// NewKeyed only fails for a wrong key length, which the fixed-size
	// array rules out.
	hasher, err := blake3.NewKeyed(contentDomainKey[:])
	if err != nil {
		panic("contenthash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashFile reads the file at path through fs and returns its content
// digest.
func HashFile(fs fsys.FS, path string) (Digest, error) {
	data, err := fs.Read(path)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return HashBytes(data), nil
}

// String returns the canonical 64-character lowercase hex form.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Parse decodes a canonical hex digest string.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing content digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("content digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
