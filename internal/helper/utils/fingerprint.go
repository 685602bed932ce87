package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

const fingerprintChunkSize = 4096

// Fingerprint computes the hex-encoded SHA-256 digest of the full content of
// r, reading in fixed-size chunks so large uploads never sit in memory whole.
// The reader is rewound to the start both before hashing and after, so a
// downstream consumer (the storage backend) can read the same stream again.
func Fingerprint(r io.ReadSeeker) (string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	h := sha256.New()
	buf := make([]byte, fingerprintChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
