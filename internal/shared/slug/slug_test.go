package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	cases := map[string]string{
		"Champú Anticaspa":      "champu-anticaspa",
		"  Detergente 3L  ":     "detergente-3l",
		"ACONDICIONADOR__Ñandú": "acondicionador-nandu",
		"***":                   "archivo",
		"":                      "archivo",
	}
	for in, want := range cases {
		assert.Equal(t, want, FromName(in), "FromName(%q)", in)
	}
}
