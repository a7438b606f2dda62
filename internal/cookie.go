package internal

import (
	"net/http"
	"strings"

	"github.com/sashkashishka/balakanyna-sub000/pkg/cookie"
)

// Cookie reads request cookies and appends Set-Cookie response headers.
// Reads are parsed fresh from the Cookie header on every call.
type Cookie struct {
	req      *http.Request
	w        http.ResponseWriter
	defaults cookie.Options
}

func newCookie(req *http.Request, w http.ResponseWriter, defaults cookie.Options) *Cookie {
	return &Cookie{req: req, w: w, defaults: defaults}
}

// GetCookies returns every request cookie. Duplicate names resolve to the last value.
func (c *Cookie) GetCookies() map[string]string {
	return cookie.Parse(strings.Join(c.req.Header.Values("Cookie"), "; "))
}

// GetCookie returns a single request cookie.
func (c *Cookie) GetCookie(name string) (string, bool) {
	v, ok := c.GetCookies()[name]
	return v, ok
}

// SetCookie adds a Set-Cookie header, keeping any already present.
// Options override the router defaults.
func (c *Cookie) SetCookie(name, value string, opts ...cookie.Option) error {
	header, err := cookie.Serialize(name, value, cookie.NewOptions(c.defaults, opts...))
	if err != nil {
		return err
	}

	h := c.w.Header()
	values := append(h.Values("Set-Cookie"), header)
	h["Set-Cookie"] = values
	return nil
}

// DeleteCookie instructs the client to drop a cookie.
func (c *Cookie) DeleteCookie(name string, opts ...cookie.Option) error {
	return c.SetCookie(name, "", append(opts, cookie.Expire())...)
}
