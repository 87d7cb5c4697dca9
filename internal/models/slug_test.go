package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Already--dashed  ", "already-dashed"},
		{"Tournée d'Adieu", "tournee-d-adieu"},
		{"Café Olé", "cafe-ole"},
		{"1999 (Remaster)", "1999-remaster"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
