package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every invalid field, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	if c.Server.Timeouts.Connection <= 0 {
		errs = append(errs, errors.New("server.timeouts.connection must be > 0"))
	}
	if c.Server.Timeouts.Request <= 0 {
		errs = append(errs, errors.New("server.timeouts.request must be > 0"))
	}
	if c.Server.Timeouts.Close <= 0 {
		errs = append(errs, errors.New("server.timeouts.close must be > 0"))
	}

	if strings.TrimSpace(c.JWT.Key) == "" {
		errs = append(errs, errors.New("jwt.key is required"))
	}
	if c.JWT.ExpirationTime <= 0 {
		errs = append(errs, errors.New("jwt.expiration_time must be > 0"))
	}

	switch strings.ToLower(c.Cookie.SameSite) {
	case "lax", "strict", "none", "":
	default:
		errs = append(errs, fmt.Errorf("cookie.same_site must be lax, strict or none, got %q", c.Cookie.SameSite))
	}

	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required"))
	}

	if (c.Admin.Name == "") != (c.Admin.Password == "") {
		errs = append(errs, errors.New("admin.name and admin.password must be set together"))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path))
	}

	return errors.Join(errs...)
}
