// Package cookie encodes and decodes HTTP cookie headers.
//
// Parse reads a Cookie request header into a map where the last occurrence
// of a name wins. Serialize produces one Set-Cookie header value per cookie.
//
//	values := cookie.Parse(r.Header.Get("Cookie"))
//
//	opts := cookie.NewOptions(cookie.DefaultOptions(),
//		cookie.WithMaxAge(3600),
//		cookie.WithSecure(true),
//	)
//	header, err := cookie.Serialize("token", jwt, opts)
//
// # Configuration
//
// Defaults from [DefaultOptions]: Path "/", HttpOnly, SameSite Lax.
//   - [WithDomain], [WithPath], [WithMaxAge], [WithExpires]
//   - [WithSecure], [WithHTTPOnly], [WithSameSite]
//   - [Expire]: remove the cookie on the client
package cookie
