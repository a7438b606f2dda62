package internal

import "strconv"

// Scalar lists the types a query parameter can be converted to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// Value returns a request-scoped value stored with Set, or the zero value
// when it is missing or of another type.
func Value[T any](c *Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Query returns a typed query parameter. Missing or malformed values yield the zero value.
func Query[T Scalar](c *Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault returns a typed query parameter, or def when it is empty or malformed.
func QueryDefault[T Scalar](c *Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	if v, ok := parseScalar[T](raw); ok {
		return v
	}
	return def
}

func parseScalar[T Scalar](raw string) (T, bool) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return out, false
		}
		*p = v
	case *int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return out, false
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, false
		}
		*p = v
	case *bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return out, false
		}
		*p = v
	default:
		return out, false
	}
	return out, true
}
