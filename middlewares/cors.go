package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

// DefaultCORSMaxAge is how long browsers may cache a preflight answer.
const DefaultCORSMaxAge = 12 * time.Hour

// CORSConfig describes which cross-origin callers the admin and public
// APIs answer.
type CORSConfig struct {
	// AllowOrigins lists accepted origins. "*" accepts any origin.
	AllowOrigins []string
	// AllowOriginFunc replaces the AllowOrigins lookup when set.
	AllowOriginFunc  func(origin string) bool
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	// MaxAge of zero omits Access-Control-Max-Age.
	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins replaces the origin list. An empty list is ignored so
// an unset config value keeps the "*" default.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		if len(origins) > 0 {
			cfg.AllowOrigins = origins
		}
	}
}

// WithAllowOriginFunc decides per origin, ignoring AllowOrigins.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowOriginFunc = fn }
}

func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowMethods = methods }
}

func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowHeaders = headers }
}

func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.ExposeHeaders = headers }
}

// WithAllowCredentials lets the admin UI send the token cookie. The
// request origin is echoed back instead of "*". Credentials are only
// granted to vetted origins: with the "*" wildcard and no AllowOriginFunc
// the setting is ignored.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowCredentials = true }
}

func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) { cfg.MaxAge = d }
}

func defaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", internal.RequestIDHeader},
		ExposeHeaders: []string{internal.RequestIDHeader},
		MaxAge:        DefaultCORSMaxAge,
	}
}

type corsPolicy struct {
	cfg         CORSConfig
	wildcard    bool
	credentials bool
	methods     string
	headers     string
	expose      string
	maxAge      string
}

func (p *corsPolicy) allows(origin string) bool {
	switch {
	case origin == "":
		return false
	case p.cfg.AllowOriginFunc != nil:
		return p.cfg.AllowOriginFunc(origin)
	case p.wildcard:
		return true
	default:
		return slices.Contains(p.cfg.AllowOrigins, origin)
	}
}

// CORS answers preflight requests itself and decorates every other
// response coming from an accepted origin.
func CORS(opts ...CORSOption) Middleware {
	cfg := defaultCORSConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &corsPolicy{
		cfg:      cfg,
		wildcard: slices.Contains(cfg.AllowOrigins, "*"),
		methods:  strings.Join(cfg.AllowMethods, ", "),
		headers:  strings.Join(cfg.AllowHeaders, ", "),
		expose:   strings.Join(cfg.ExposeHeaders, ", "),
	}
	p.credentials = cfg.AllowCredentials && (cfg.AllowOriginFunc != nil || !p.wildcard)
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}

	return func(c *internal.Context, next internal.Next[*internal.Context]) error {
		origin := c.Header("Origin")
		if !p.allows(origin) {
			return next(c)
		}

		h := c.Response().Header()
		h.Add("Vary", "Origin")

		allowOrigin := origin
		if p.wildcard && !p.credentials {
			allowOrigin = "*"
		}
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		if p.credentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if p.expose != "" {
			h.Set("Access-Control-Expose-Headers", p.expose)
		}

		if c.Method() != http.MethodOptions {
			return next(c)
		}

		h.Add("Vary", "Access-Control-Request-Method")
		h.Add("Vary", "Access-Control-Request-Headers")
		h.Set("Access-Control-Allow-Methods", p.methods)
		h.Set("Access-Control-Allow-Headers", p.headers)
		if p.maxAge != "" {
			h.Set("Access-Control-Max-Age", p.maxAge)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
