package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"geoaccess/internal/filter"
)

func TestTranslateSQL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`hole_id == 'BH-001'`, `hole_id = 'BH-001'`},
		{`block == "NORTH"`, `block = 'NORTH'`},
		{`depth > 100`, `depth > 100`},
		{`a == 1 and b == 2`, `a = 1 and b = 2`},
		{`name == 'O\'Brien'`, `name = 'O''Brien'`},
		{`tag == "a==b"`, `tag = 'a==b'`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, filter.TranslateSQL(tc.in), tc.in)
	}
}
