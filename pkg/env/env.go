// Package env applies environment variable overrides onto configuration fields.
// An empty variable name or an unset variable leaves the destination untouched.
package env

import (
	"os"
	"strconv"
	"strings"
)

// String overwrites dst with the value of key when set.
func String(dst *string, key string) {
	if v := lookup(key); v != "" {
		*dst = v
	}
}

// Int overwrites dst with the integer value of key when set and parseable.
func Int(dst *int, key string) {
	if v := lookup(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Bool overwrites dst with the boolean value of key when set and parseable.
func Bool(dst *bool, key string) {
	if v := lookup(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// List overwrites dst with the comma-separated, trimmed, non-empty values of key.
func List(dst *[]string, key string) {
	v := lookup(key)
	if v == "" {
		return
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*dst = out
}

func lookup(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}
