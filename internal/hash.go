package internal

import (
	"crypto/sha256"
	"encoding/binary"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/sashkashishka/balakanyna-sub000/pkg/id"
)

// HashSize is the length of the strings produced by Hash.Update.
var HashSize = id.EncodedLen(hashBytes)

const hashBytes = 5

var hashInfo = []byte("balakanyna hash")

// Hash derives short URL-safe ids from input bytes and the current time.
// The same input at the same instant always yields the same id.
type Hash struct {
	now func() time.Time
}

// NewHash creates a Hash reading time from now, or time.Now when nil.
func NewHash(now func() time.Time) *Hash {
	if now == nil {
		now = time.Now
	}
	return &Hash{now: now}
}

// Update returns an 8-character Crockford Base32 id for data.
func (h *Hash) Update(data []byte) string {
	var salt [8]byte
	binary.BigEndian.PutUint64(salt[:], uint64(h.now().UnixNano()))

	out := make([]byte, hashBytes)
	// HKDF-SHA256 can produce up to 8160 bytes; a 5-byte read never fails.
	_, _ = io.ReadFull(hkdf.New(sha256.New, data, salt[:], hashInfo), out)
	return id.Encode(out)
}
