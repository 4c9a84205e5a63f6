package env

import (
	"os"
	"strings"
)

// LookupFunc reports the value of an environment variable and whether it is
// set.
type LookupFunc func(name string) (string, bool)

// MapLookup serves lookups from a fixed map.
func MapLookup(vars map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// Chain tries each lookup in order and returns the first hit.
func Chain(lookups ...LookupFunc) LookupFunc {
	return func(name string) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v, ok := l(name); ok {
				return v, true
			}
		}
		return "", false
	}
}

// Snapshot copies an environ-style list (KEY=value) into a lookup that never
// changes afterwards. Pass os.Environ() to capture the process environment.
func Snapshot(environ []string) LookupFunc {
	vars := make(map[string]string, len(environ))
	for _, e := range environ {
		key, value, found := strings.Cut(e, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = value
	}
	return MapLookup(vars)
}

// SystemSnapshot captures the current process environment.
func SystemSnapshot() LookupFunc {
	return Snapshot(os.Environ())
}
