package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintMatchesFullDigest(t *testing.T) {
	content := []byte("receipt body")
	want := sha256.Sum256(content)

	got, err := Fingerprint(bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), got)
}

func TestFingerprintLargeInput(t *testing.T) {
	// several chunks plus a partial tail
	content := bytes.Repeat([]byte("x"), fingerprintChunkSize*3+17)
	want := sha256.Sum256(content)

	got, err := Fingerprint(bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), got)
}

func TestFingerprintRewindsBeforeAndAfter(t *testing.T) {
	content := []byte("same bytes every time")
	r := bytes.NewReader(content)

	// start mid-stream; the digest must still cover the whole content
	_, err := r.Seek(5, io.SeekStart)
	require.NoError(t, err)

	want := sha256.Sum256(content)
	got, err := Fingerprint(r)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), got)

	// after hashing the reader is back at the start
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, rest)
}

func TestFingerprintSameContentSameHash(t *testing.T) {
	a, err := Fingerprint(strings.NewReader("identical"))
	require.NoError(t, err)
	b, err := Fingerprint(strings.NewReader("identical"))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Fingerprint(strings.NewReader("different"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error)       { return 0, errors.New("disk error") }
func (brokenReader) Seek(int64, int) (int64, error) { return 0, nil }

func TestFingerprintReadError(t *testing.T) {
	_, err := Fingerprint(brokenReader{})
	assert.Error(t, err)
}
