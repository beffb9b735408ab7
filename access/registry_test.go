package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternOf(t *testing.T) {
	cases := map[string]string{
		"/products":                         "products",
		"/products/:id":                     "products/{id}",
		"categories/:categoryId/attributes": "categories/{categoryId}/attributes",
		"/products/title_is_exist/:title":   "products/title_is_exist/{title}",
	}
	for in, want := range cases {
		assert.Equal(t, want, PatternOf(in), in)
	}
}

func TestParseVerb(t *testing.T) {
	v, ok := ParseVerb("GET")
	require.True(t, ok)
	assert.Equal(t, VerbGet, v)

	v, ok = ParseVerb(" Delete ")
	require.True(t, ok)
	assert.Equal(t, VerbDelete, v)

	_, ok = ParseVerb("OPTIONS")
	assert.False(t, ok)
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry("/api/admin")
	want := reg.Register("PUT", "/products/:id", "Edit product", "products")

	assert.Equal(t, Route{Pattern: "products/{id}", Verb: VerbPut}, want)
	assert.Equal(t, "/api/admin/products/:id", reg.FullPath("/products/:id"))

	got, ok := reg.Resolve("put", "/api/admin/products/:id")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = reg.Resolve("GET", "/api/admin/products/:id")
	assert.False(t, ok, "verb is part of the route identity")

	_, ok = reg.Resolve("PUT", "/api/admin/products/7")
	assert.False(t, ok, "only route templates resolve")

	assert.True(t, reg.Has(want))
	assert.False(t, reg.Has(Route{Pattern: "products/{id}", Verb: VerbDelete}))
}

func TestRegistryDerive(t *testing.T) {
	reg := NewRegistry("/api/admin")

	got, ok := reg.Derive("DELETE", "/api/admin/reports/:id")
	require.True(t, ok)
	assert.Equal(t, Route{Pattern: "reports/{id}", Verb: VerbDelete}, got)

	_, ok = reg.Derive("GET", "/api/administrators")
	assert.False(t, ok)
	_, ok = reg.Derive("GET", "/api/auth/user")
	assert.False(t, ok)
	_, ok = reg.Derive("OPTIONS", "/api/admin/reports")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry("/api/admin")
	reg.Register("GET", "/colors", "List colors", "colors")
	assert.Panics(t, func() { reg.Register("get", "colors", "again", "colors") })
}

func TestRegistryEntriesSorted(t *testing.T) {
	reg := NewRegistry("api/admin/")
	reg.Register("POST", "/products", "Create product", "products")
	reg.Register("GET", "/colors", "List colors", "colors")
	reg.Register("GET", "/products", "List products", "products")

	entries := reg.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "get colors", entries[0].String())
	assert.Equal(t, "get products", entries[1].String())
	assert.Equal(t, "post products", entries[2].String())
	assert.Equal(t, "List colors", entries[0].Title)
}
