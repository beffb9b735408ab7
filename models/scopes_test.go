package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := map[string]struct {
		page, count string
		want        Page
	}{
		"no page":           {"", "20", Page{}},
		"default count":     {"2", "", Page{Page: 2, Count: DefaultPageSize}},
		"explicit count":    {"3", "25", Page{Page: 3, Count: 25}},
		"count clamped":     {"1", "100000", Page{Page: 1, Count: MaxPageSize}},
		"page clamped":      {"9999999999", "10", Page{Page: MaxPage, Count: 10}},
		"page out of range": {"99999999999999999999999", "100000000000000000000", Page{Page: MaxPage, Count: MaxPageSize}},
		"negative count":    {"1", "-5", Page{Page: 1, Count: DefaultPageSize}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePage(tc.page, tc.count))
		})
	}
}
