package rolecall

import (
	"sort"
	"strings"
	"unicode"
)

// Registry is the immutable whitelist configuration: the set of role names
// members may assign to themselves, the color given to roles the bot creates,
// and the per-member role limit. It is built once at startup and shared by
// value; lookups are case-insensitive but every entry keeps the casing it was
// configured with.
type Registry struct {
	prefix string
	color  int
	max    int
	names  []string
	lookup map[string]string
}

// NewRegistry builds a Registry from a configured whitelist. Entries that
// collide case-insensitively keep the first casing seen; names are kept
// sorted.
func NewRegistry(prefix string, color, max int, whitelist []string) Registry {
	r := Registry{
		prefix: prefix,
		color:  color,
		max:    max,
		lookup: make(map[string]string, len(whitelist)),
	}

	for _, name := range whitelist {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := r.lookup[key]; ok {
			continue
		}
		r.lookup[key] = name
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	return r
}

// Prefix is the display prefix for this role family, e.g. "distro".
func (r Registry) Prefix() string {
	return r.prefix
}

// Title is the capitalized prefix used in embed titles.
func (r Registry) Title() string {
	if r.prefix == "" {
		return ""
	}
	runes := []rune(strings.ToLower(r.prefix))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Color is the color applied to roles the bot creates.
func (r Registry) Color() int {
	return r.color
}

// MaxRoles is the number of whitelisted roles one member may hold.
func (r Registry) MaxRoles() int {
	return r.max
}

// Len is the number of whitelist entries.
func (r Registry) Len() int {
	return len(r.names)
}

// Names returns the whitelist in sorted, canonical casing.
func (r Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Contains reports whether name is whitelisted, ignoring case.
func (r Registry) Contains(name string) bool {
	_, ok := r.lookup[strings.ToLower(name)]
	return ok
}

// Canonical resolves name to the casing stored in the whitelist.
func (r Registry) Canonical(name string) (string, bool) {
	canonical, ok := r.lookup[strings.ToLower(name)]
	return canonical, ok
}
