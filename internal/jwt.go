package internal

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"maps"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyJWTKey   = errors.New("jwt: signing key is not configured")
	ErrInvalidJWTKey = errors.New("jwt: invalid JSON Web Key")
)

// Payload is the set of claims carried by a token.
type Payload = map[string]any

// JWT signs and verifies HS256 tokens with one symmetric key.
type JWT struct {
	now func() time.Time
	key []byte
	ttl time.Duration
}

// NewJWT builds the helper from a raw secret or an "oct" JSON Web Key.
// An empty key yields a helper whose Sign fails and whose Verify rejects everything.
func NewJWT(key string, ttl time.Duration, now func() time.Time) (*JWT, error) {
	if now == nil {
		now = time.Now
	}
	raw, err := parseJWTKey(key)
	if err != nil {
		return nil, err
	}
	return &JWT{key: raw, ttl: ttl, now: now}, nil
}

// Sign issues a token for payload with iat and exp claims added.
func (j *JWT) Sign(payload Payload) (string, error) {
	if len(j.key) == 0 {
		return "", ErrEmptyJWTKey
	}

	now := j.now()
	claims := jwtlib.MapClaims{}
	maps.Copy(claims, payload)
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(j.ttl).Unix()

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(j.key)
}

// Verify returns the claims of a valid token. Any failure, including a bad
// signature or an expired token, yields (nil, false).
func (j *JWT) Verify(token string) (Payload, bool) {
	if len(j.key) == 0 || token == "" {
		return nil, false
	}

	parsed, err := jwtlib.ParseWithClaims(token, jwtlib.MapClaims{},
		func(*jwtlib.Token) (any, error) { return j.key, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(j.now),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithIssuedAt(),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}
	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, false
	}
	return Payload(claims), true
}

type jwk struct {
	Kty string `json:"kty"`
	K   string `json:"k"`
}

func parseJWTKey(key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, "{") {
		return []byte(key), nil
	}

	var k jwk
	if err := json.Unmarshal([]byte(key), &k); err != nil {
		return nil, errors.Join(ErrInvalidJWTKey, err)
	}
	if k.Kty != "oct" || k.K == "" {
		return nil, ErrInvalidJWTKey
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(k.K, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidJWTKey, err)
	}
	return raw, nil
}
