package middlewares

import (
	"github.com/sashkashishka/balakanyna-sub000/internal"
)

// TokenCookie is the cookie holding the admin session token.
const TokenCookie = "token"

type claimsKey struct{}

// AuthConfig configures the auth middleware.
type AuthConfig struct {
	Extractor internal.Extractor
	Message   string
}

// AuthOption configures AuthConfig.
type AuthOption func(*AuthConfig)

// WithAuthExtractor replaces where the token is read from.
func WithAuthExtractor(sources ...internal.ExtractorSource) AuthOption {
	return func(cfg *AuthConfig) {
		if len(sources) > 0 {
			cfg.Extractor = internal.NewExtractor(sources...)
		}
	}
}

// WithAuthMessage sets the message of the 401 response.
func WithAuthMessage(msg string) AuthOption {
	return func(cfg *AuthConfig) {
		cfg.Message = msg
	}
}

// Auth lets a request continue only with a token that passes ctx.JWT().Verify.
// The token is read from the "token" cookie, then from a Bearer header.
// Verified claims are available through Claims.
func Auth(opts ...AuthOption) Middleware {
	cfg := &AuthConfig{
		Extractor: internal.NewExtractor(
			internal.FromCookie(TokenCookie),
			internal.FromBearerToken(),
		),
		Message: "unauthorized",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *internal.Context, next internal.Next[*internal.Context]) error {
		token, ok := cfg.Extractor.Extract(c)
		if !ok {
			return internal.ErrUnauthorized(cfg.Message, internal.WithErrorCode(internal.CodeUnauthorized))
		}

		claims, ok := c.JWT().Verify(token)
		if !ok {
			return internal.ErrUnauthorized(cfg.Message, internal.WithErrorCode(internal.CodeUnauthorized))
		}

		c.Set(claimsKey{}, claims)
		return next(c)
	}
}

// Claims returns the token claims stored by Auth.
func Claims(c *internal.Context) (internal.Payload, bool) {
	claims, ok := c.Get(claimsKey{}).(internal.Payload)
	return claims, ok
}
