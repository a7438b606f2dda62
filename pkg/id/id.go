// Package id encodes binary identifiers as short, URL-safe strings.
package id

import (
	"errors"
	"strings"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ErrInvalidChar is returned by Decode for input outside the alphabet.
var ErrInvalidChar = errors.New("id: invalid character")

// EncodedLen returns the length of the Encode output for n input bytes.
func EncodedLen(n int) int {
	return (n*8 + 4) / 5
}

// Encode packs b into Crockford Base32, five bits per character, without padding.
// A trailing partial group is zero-filled on the right.
func Encode(b []byte) string {
	var sb strings.Builder
	sb.Grow(EncodedLen(len(b)))

	var buf uint32
	bits := 0
	for _, c := range b {
		buf = buf<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(crockfordBase32[(buf>>bits)&0x1F])
		}
	}
	if bits > 0 {
		sb.WriteByte(crockfordBase32[(buf<<(5-bits))&0x1F])
	}
	return sb.String()
}

// Decode reverses Encode. Lowercase input is accepted, and so are the
// Crockford aliases O→0 and I/L→1.
func Decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*5/8)
	var buf uint32
	bits := 0
	for i := 0; i < len(s); i++ {
		v, ok := decodeChar(s[i])
		if !ok {
			return nil, ErrInvalidChar
		}
		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
		}
	}
	return out, nil
}

// Valid reports whether s is a non-empty Crockford Base32 string of length n.
func Valid(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if _, ok := decodeChar(s[i]); !ok {
			return false
		}
	}
	return n > 0
}

// Canonical rewrites s in the upper-case alphabet with aliases resolved,
// so equal identifiers compare equal as strings.
func Canonical(s string) (string, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		v, ok := decodeChar(s[i])
		if !ok {
			return "", ErrInvalidChar
		}
		out[i] = crockfordBase32[v]
	}
	return string(out), nil
}

func decodeChar(c byte) (byte, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch c {
	case 'O':
		c = '0'
	case 'I', 'L':
		c = '1'
	}
	idx := strings.IndexByte(crockfordBase32, c)
	if idx < 0 {
		return 0, false
	}
	return byte(idx), true
}
