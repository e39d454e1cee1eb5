package envcheck

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Snapshot is a read-only view of environment variables captured at one
// point in time. The zero value is an empty snapshot.
type Snapshot struct {
	vars map[string]string
}

// FromMap builds a snapshot from a copy of m.
func FromMap(m map[string]string) Snapshot {
	vars := make(map[string]string, len(m))
	for k, v := range m {
		vars[k] = v
	}
	return Snapshot{vars: vars}
}

// FromEnviron builds a snapshot from KEY=VALUE entries as returned by
// os.Environ. Entries without '=' are ignored; the first occurrence of a key wins.
func FromEnviron(environ []string) Snapshot {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if _, exists := vars[key]; exists {
			continue
		}
		vars[key] = value
	}
	return Snapshot{vars: vars}
}

// ProcessSnapshot captures the current process environment.
func ProcessSnapshot() Snapshot {
	return FromEnviron(os.Environ())
}

// ReadFiles parses dotenv files into a snapshot without touching the
// process environment. Earlier files win over later ones.
func ReadFiles(paths ...string) (Snapshot, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	vars := make(map[string]string)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return Snapshot{}, fmt.Errorf("read env file %q: %w", path, err)
		}
		for k, v := range values {
			if _, exists := vars[k]; !exists {
				vars[k] = v
			}
		}
	}
	return Snapshot{vars: vars}, nil
}

// Overlay merges two snapshots. Keys in base take precedence over keys in
// top, which mirrors godotenv.Load leaving already-set variables alone.
func Overlay(base, top Snapshot) Snapshot {
	vars := make(map[string]string, len(base.vars)+len(top.vars))
	for k, v := range top.vars {
		vars[k] = v
	}
	for k, v := range base.vars {
		vars[k] = v
	}
	return Snapshot{vars: vars}
}

// Lookup returns the value stored under key and whether it was present.
func (s Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.vars[key]
	return v, ok
}

func (s Snapshot) Len() int {
	return len(s.vars)
}

// Keys returns the variable names in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
