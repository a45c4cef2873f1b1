// Package raw is the bootstrap env reader used before logging is up.
// It must not import the logger package (the logger reads its options through here)
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a namespaced view over environment variables (e.g. "LOG_")
type Conf struct{ prefix string }

// New returns a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// Get returns the trimmed env var or def if empty
func (c Conf) Get(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1|true|yes (any case) as true, anything else set is false
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(c.lookup(key))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

// GetInt parses a non-negative integer, def on empty or garbage
func (c Conf) GetInt(key string, def int) int {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// GetOneOf returns the lowercased value when it is in allowed, def otherwise
func (c Conf) GetOneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(c.lookup(key))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
