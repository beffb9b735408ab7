// Package access decides whether an authenticated user may call an admin
// endpoint. Endpoints are identified by their route template and verb, the
// same pair stored on every permission row.
package access

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type Verb string

const (
	VerbGet    Verb = "get"
	VerbPost   Verb = "post"
	VerbPut    Verb = "put"
	VerbPatch  Verb = "patch"
	VerbDelete Verb = "delete"
)

// ParseVerb lower-cases an HTTP method and reports whether it is a verb
// permissions can be granted for.
func ParseVerb(method string) (Verb, bool) {
	v := Verb(strings.ToLower(strings.TrimSpace(method)))
	switch v {
	case VerbGet, VerbPost, VerbPut, VerbPatch, VerbDelete:
		return v, true
	}
	return "", false
}

// Route is one admin endpoint template, e.g. {"products/{id}", "put"}.
type Route struct {
	Pattern string
	Verb    Verb
}

func (r Route) String() string {
	return string(r.Verb) + " " + r.Pattern
}

// Entry is a registered route with the human readable data used to seed its
// permission row.
type Entry struct {
	Route
	Title    string
	Category string
}

// Registry is built once at startup while the admin routes are mounted. It
// maps gin's matched route (c.FullPath()) back to the Route permissions are
// stored against.
type Registry struct {
	prefix string

	mu      sync.RWMutex
	byPath  map[string]Route
	entries []Entry
}

// NewRegistry returns a registry for routes mounted under prefix, e.g.
// "/api/admin". The prefix is not part of stored patterns.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: "/" + strings.Trim(prefix, "/"),
		byPath: make(map[string]Route),
	}
}

// Register records a route. path is relative to the registry prefix and uses
// gin syntax (":id"). Registering the same method and path twice panics, like
// gin itself does.
func (r *Registry) Register(method, path, title, category string) Route {
	verb, ok := ParseVerb(method)
	if !ok {
		panic(fmt.Sprintf("access: unsupported method %q for %s", method, path))
	}
	route := Route{Pattern: PatternOf(path), Verb: verb}
	key := lookupKey(verb, r.FullPath(path))

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byPath[key]; dup {
		panic(fmt.Sprintf("access: route %s registered twice", route))
	}
	r.byPath[key] = route
	r.entries = append(r.entries, Entry{Route: route, Title: title, Category: category})
	return route
}

// FullPath joins a relative route path onto the registry prefix the way gin
// reports it from c.FullPath().
func (r *Registry) FullPath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return r.prefix
	}
	if r.prefix == "/" {
		return "/" + path
	}
	return r.prefix + "/" + path
}

// Resolve maps the request method and gin's matched route template to a
// registered Route.
func (r *Registry) Resolve(method, fullPath string) (Route, bool) {
	verb, ok := ParseVerb(method)
	if !ok {
		return Route{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.byPath[lookupKey(verb, fullPath)]
	return route, ok
}

// Derive builds the Route for a matched gin path that was never
// registered. It reports false for paths outside the prefix and unsupported
// methods.
func (r *Registry) Derive(method, fullPath string) (Route, bool) {
	verb, ok := ParseVerb(method)
	if !ok {
		return Route{}, false
	}
	rel, ok := strings.CutPrefix(fullPath, r.prefix)
	if !ok {
		return Route{}, false
	}
	if r.prefix != "/" && rel != "" && rel[0] != '/' {
		return Route{}, false
	}
	return Route{Pattern: PatternOf(rel), Verb: verb}, true
}

// Entries returns the registered routes sorted by pattern then verb.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Pattern != out[j].Pattern {
			return out[i].Pattern < out[j].Pattern
		}
		return out[i].Verb < out[j].Verb
	})
	return out
}

// Has reports whether route was registered.
func (r *Registry) Has(route Route) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.Route == route {
			return true
		}
	}
	return false
}

// PatternOf converts a gin path ("/products/:id") to the stored template
// form ("products/{id}").
func PatternOf(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "*") {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}

func lookupKey(v Verb, fullPath string) string {
	return string(v) + " " + fullPath
}
