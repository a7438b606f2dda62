package internal

import "strings"

// ExtractorSource reads one candidate value from the request.
// Returns ("", false) when the value is not present.
type ExtractorSource = func(*Context) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c *Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c *Context) (string, bool) {
		v := c.Header(name)
		return v, v != ""
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c *Context) (string, bool) {
		v := c.Query(name)
		return v, v != ""
	}
}

// FromCookie reads a request cookie.
func FromCookie(name string) ExtractorSource {
	return func(c *Context) (string, bool) {
		v, ok := c.Cookie().GetCookie(name)
		return v, ok && v != ""
	}
}

// FromBearerToken reads a Bearer token from the Authorization header.
// The scheme is matched case-insensitively.
func FromBearerToken() ExtractorSource {
	return func(c *Context) (string, bool) {
		auth := c.Header("Authorization")
		if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
			return "", false
		}
		token := strings.TrimSpace(auth[7:])
		return token, token != ""
	}
}
