package cookie

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Errors.
var (
	ErrEmptyName   = errors.New("cookie: name is required")
	ErrInvalidName = errors.New("cookie: invalid name")
	ErrInvalidAttr = errors.New("cookie: invalid attribute value")
)

// Options holds the attributes written alongside a cookie value.
type Options struct {
	Expires  time.Time
	Path     string
	Domain   string
	MaxAge   int
	SameSite http.SameSite
	Secure   bool
	HTTPOnly bool
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the attributes applied when no option overrides them.
func DefaultOptions() Options {
	return Options{
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewOptions applies opts on top of base.
func NewOptions(base Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithMaxAge sets Max-Age in seconds. Negative values expire the cookie.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithExpires sets the Expires attribute.
func WithExpires(t time.Time) Option {
	return func(o *Options) {
		o.Expires = t
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HTTPOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = ss
	}
}

// Expire marks the cookie for immediate removal on the client.
func Expire() Option {
	return func(o *Options) {
		o.MaxAge = -1
		o.Expires = time.Unix(0, 0)
	}
}

// ParseSameSite maps a configuration string to http.SameSite.
// Unknown values fall back to Lax.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Parse decodes a Cookie request header into name/value pairs.
// When a name appears more than once the last occurrence wins.
// Malformed pairs are skipped.
func Parse(header string) map[string]string {
	out := make(map[string]string)
	for part := range strings.SplitSeq(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if name == "" || !validName(name) {
			continue
		}
		out[name] = unquote(strings.TrimSpace(value))
	}
	return out
}

// Serialize encodes a single Set-Cookie header value.
func Serialize(name, value string, opts Options) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if !validName(name) {
		return "", errors.Join(ErrInvalidName, errors.New(name))
	}

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  opts.Expires,
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: opts.HTTPOnly,
		SameSite: opts.SameSite,
	}
	if err := c.Valid(); err != nil {
		return "", errors.Join(ErrInvalidAttr, err)
	}
	return c.String(), nil
}

func unquote(v string) string {
	if len(v) > 1 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// validName reports whether name is an RFC 7230 token.
func validName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte("()<>@,;:\\\"/[]?={}", c) >= 0 {
			return false
		}
	}
	return true
}
